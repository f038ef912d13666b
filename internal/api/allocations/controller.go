package allocations

import (
	"net/http"

	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for allocations
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) List(c *gin.Context) {
	allocations, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocations)
}

// Create godoc
// @Summary Allocate a quantity of an asset to a client
// @Tags alocacoes
// @Accept json
// @Produce json
// @Param request body CreateAllocationRequest true "Allocation"
// @Success 201 {object} types.Allocation
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /alocacoes [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateAllocationRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	fields, err := ValidateCreateRequest(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	allocation, err := ctrl.service.Create(c.Request.Context(), fields)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, allocation)
}

func (ctrl *Controller) Get(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	allocation, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocation)
}

func (ctrl *Controller) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req UpdateAllocationRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	quantity, err := ValidateUpdateRequest(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	allocation, err := ctrl.service.Update(c.Request.Context(), id, quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocation)
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
