package clients

import (
	"net/http"

	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for clients
type Controller struct {
	service *Service
}

// NewController creates a new clients controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// List godoc
// @Summary List clients
// @Description Every client with its allocations, each carrying its asset
// @Tags clientes
// @Produce json
// @Success 200 {array} types.ClientWithAllocations
// @Failure 500 {object} types.ErrorResponse
// @Router /clientes [get]
func (ctrl *Controller) List(c *gin.Context) {
	clients, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// Create godoc
// @Summary Create a client
// @Tags clientes
// @Accept json
// @Produce json
// @Param request body ClientRequest true "Client"
// @Success 201 {object} types.Client
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /clientes [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req ClientRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	fields, err := ValidateClientRequest(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	client, err := ctrl.service.Create(c.Request.Context(), fields)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// Get serves both GET /clientes/:id and GET /clientes/:id/ativos.
func (ctrl *Controller) Get(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	client, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (ctrl *Controller) Allocations(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	client, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FlattenAllocations(client))
}

func (ctrl *Controller) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req ClientRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	fields, err := ValidateClientRequest(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	client, err := ctrl.service.Update(c.Request.Context(), id, fields)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
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
