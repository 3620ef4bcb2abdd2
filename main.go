// main.go
package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"cinema-client/cmd"
	"cinema-client/internal/data/blobstore"
	"cinema-client/internal/data/credstore"
	"cinema-client/internal/data/gateway"
	"cinema-client/internal/usecase"
	"cinema-client/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("api", config.API.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	dataDir, err := resolveDataDir(config)
	if err != nil {
		logger.Fatal("Failed to resolve data dir", zap.Error(err))
	}

	// Wire stores, gateway and services; one instance of each, injected down.
	creds := credstore.NewFileStore(dataDir, logger)
	blobs := blobstore.NewFileStore(dataDir, logger)
	gw := gateway.NewClient(
		config.API.BaseURL,
		time.Duration(config.API.TimeoutSeconds)*time.Second,
		creds,
		logger,
	)
	service := usecase.NewService(gw, creds, blobs, config, logger)

	if err := service.Ledger.Reload(); err != nil {
		logger.Warn("Failed to reload ticket ledger", zap.Error(err))
	}

	if err := cmd.Execute(service, gw, creds, config, logger); err != nil {
		os.Exit(1)
	}
}

func resolveDataDir(config *utils.Config) (string, error) {
	if config.App.DataDir != "" {
		return config.App.DataDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, config.App.Name), nil
}
