package api

import (
	"net/http"

	"github.com/Conversly/carteira-api/internal/api/allocations"
	"github.com/Conversly/carteira-api/internal/api/assets"
	"github.com/Conversly/carteira-api/internal/api/clients"
	"github.com/Conversly/carteira-api/internal/config"
	"github.com/Conversly/carteira-api/internal/loaders"
	"github.com/Conversly/carteira-api/internal/shared"
	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with middleware and every feature router
// registered against store.
func NewRouter(store loaders.Store, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		shared.Recovery(),
		shared.RequestID(),
		shared.RequestLogger(),
		shared.CORS(cfg.AllowedOrigins),
	)

	RegisterRoutes(&router.RouterGroup, store, cfg)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Message: "route not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, types.ErrorResponse{Message: "method not allowed"})
	})
	return router
}

// RegisterRoutes registers all feature routers to the main router.
func RegisterRoutes(router *gin.RouterGroup, store loaders.Store, cfg *config.Config) {
	clients.RegisterRoutes(router, store)
	assets.RegisterRoutes(router, store)
	allocations.RegisterRoutes(router, store)

	router.GET("/healthz", func(c *gin.Context) {
		health := types.HealthResponse{Status: "ok", Service: cfg.ServiceName, Store: store.Driver()}
		if err := store.Ping(c.Request.Context()); err != nil {
			utils.Zlog.Error("Health check failed", zap.Error(err))
			health.Status = "unavailable"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
		c.JSON(http.StatusOK, health)
	})
}
