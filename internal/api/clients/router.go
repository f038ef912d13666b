package clients

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store Store) {
	service := NewService(store)
	controller := NewController(service)

	group := router.Group("/clientes")
	group.GET("", controller.List)
	group.POST("", controller.Create)
	group.GET("/:id", controller.Get)
	group.PUT("/:id", controller.Update)
	group.DELETE("/:id", controller.Delete)
	group.GET("/:id/ativos", controller.Get)
	group.GET("/:id/alocacoes", controller.Allocations)
}
