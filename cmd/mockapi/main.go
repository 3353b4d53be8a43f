package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"reytech/internal/config"
	"reytech/internal/infrastructure/logger"
	"reytech/internal/mockapi"
	"reytech/internal/server"
)

func main() {
	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	store := mockapi.NewStore()
	if cfg.MockAPI.SeedFile != "" {
		products, err := mockapi.LoadSeed(cfg.MockAPI.SeedFile)
		if err != nil {
			zapLogger.Fatal("loading seed file", zap.Error(err))
		}
		store.Seed(products)
		zapLogger.Info("store seeded", zap.Int("products", len(products)))
	}

	metrics := mockapi.NewMetrics()
	uploads := mockapi.NewUploads(cfg.MockAPI.UploadDir)
	handler := mockapi.NewHandler(store, uploads, metrics, zapLogger)

	router := server.NewRouter(handler, metrics, uploads.Dir(), zapLogger)
	srv := server.New(cfg.MockAPI.Port, router, zapLogger)

	ln, err := srv.Listen()
	if err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx, ln); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
