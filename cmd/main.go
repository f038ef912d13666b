package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Conversly/carteira-api/internal/api"
	"github.com/Conversly/carteira-api/internal/config"
	"github.com/Conversly/carteira-api/internal/loaders"
	"github.com/Conversly/carteira-api/internal/shared"
	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens.
func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Debug, cfg.ServiceName); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer utils.Zlog.Sync()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := loaders.Open(ctx, cfg)
	if err != nil {
		utils.Zlog.Error("Failed to open store",
			zap.String("driver", cfg.StoreDriver),
			zap.Error(err))
		return 1
	}
	defer store.Close()

	router := api.NewRouter(store, cfg)
	srv := shared.NewServer(cfg.Addr(), router, cfg.ShutdownTimeout)

	ln, err := srv.Listen()
	if err != nil {
		utils.Zlog.Error("Failed to bind listener", zap.String("addr", cfg.Addr()), zap.Error(err))
		return 1
	}

	utils.Zlog.Info("Starting carteira API",
		zap.String("environment", cfg.Environment),
		zap.String("store", store.Driver()),
		zap.Strings("allowedOrigins", cfg.AllowedOrigins))

	if err := srv.Run(ctx, ln); err != nil {
		utils.Zlog.Error("HTTP server failed", zap.Error(err))
		return 1
	}
	utils.Zlog.Info("Server stopped")
	return 0
}
