package assets

import (
	"net/http"

	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for assets
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) List(c *gin.Context) {
	assets, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req AssetRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	fields, err := ValidateAssetRequest(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	asset, err := ctrl.service.Create(c.Request.Context(), fields)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (ctrl *Controller) Get(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	asset, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// Allocations godoc
// @Summary Holders of an asset
// @Description The asset with one entry per allocation: client id, name, email and quantity
// @Tags ativos
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} AssetAllocationsResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /ativos/{id}/alocacoes [get]
func (ctrl *Controller) Allocations(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	resp, err := ctrl.service.Allocations(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req AssetRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	fields, err := ValidateAssetRequest(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	asset, err := ctrl.service.Update(c.Request.Context(), id, fields)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
