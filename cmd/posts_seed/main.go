package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DjordjeVuckovic/posts-feed/internal/posts"
	"github.com/DjordjeVuckovic/posts-feed/internal/seed"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage/factory"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	file, err := os.Open(cfg.FixturePath)
	if err != nil {
		slog.Error("failed to open fixture file", "path", cfg.FixturePath, "error", err)
		return 1
	}
	defer file.Close()

	fixture, err := seed.NewYAMLFixtureLoader(file).Load(true)
	if err != nil {
		slog.Error("failed to load fixture", "error", err)
		return 1
	}

	backend, err := factory.NewBackend(ctx, cfg.StorageConfig)
	if err != nil {
		slog.Error("failed to create storage backend", "error", err)
		return 1
	}
	defer backend.Close()

	start := time.Now()
	total, err := seed.NewSeeder(posts.NewService(backend.Store), cfg.BatchSize).Run(ctx, fixture)
	if err != nil {
		slog.Error("seeding stopped", "created", total, "error", err)
		return 1
	}

	slog.Info("Seeding completed", "created", total, "storage", cfg.Type, "took", time.Since(start))
	return 0
}
