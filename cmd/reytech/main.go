package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"reytech/internal/config"
	"reytech/internal/infrastructure/logger"
	"reytech/internal/product"
	"reytech/internal/terminal"
)

func main() {
	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zapLogger := logger.NewFile(cfg.Log.Level, cfg.Log.File)
	defer zapLogger.Sync()

	zapLogger.Info("starting", zap.String("apiBaseUrl", cfg.API.BaseURL), zap.Duration("apiTimeout", cfg.API.Timeout))

	module := product.NewModule(cfg.API, zapLogger)
	app := terminal.NewApp(module, os.Stdin, os.Stdout, cfg.UI.SplashDuration, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		zapLogger.Error("terminal stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger.Info("stopped")
}
