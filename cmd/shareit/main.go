package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/shareit/internal/app"
	"github.com/Freeeeeet/shareit/internal/config"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting shareit",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("bot_enabled", cfg.BotEnabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("Service stopped with error", zap.Error(err))
		stop()
		logger.Sync()
		log.Fatal(err)
	}

	logger.Info("Service stopped")
}
