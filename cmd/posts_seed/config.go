package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/posts-feed/internal/storage/factory"
	"github.com/DjordjeVuckovic/posts-feed/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type SeedConfig struct {
	FixturePath string
	BatchSize   int
	factory.StorageConfig
}

func (as *AppConfig) Load() (*SeedConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/posts_seed/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	fixturePath := os.Getenv("FIXTURE_PATH")
	if fixturePath == "" {
		return nil, fmt.Errorf("FIXTURE_PATH environment variable is not set")
	}

	batchSize, err := strconv.Atoi(os.Getenv("SEED_BATCH_SIZE"))
	if err != nil {
		batchSize = 1_000
	}

	return &SeedConfig{
		FixturePath:   fixturePath,
		BatchSize:     batchSize,
		StorageConfig: *storageCfg,
	}, nil
}
