package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"NewsToChat/internal/app"
	"NewsToChat/internal/config"
	"NewsToChat/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	srv, err := app.NewServer(cfg, logger)
	if err != nil {
		logger.Error("cannot start demo backend", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		logger.Error("demo backend stopped", "error", err)
		os.Exit(1)
	}
}
