// Package main Posts Feed API
// @title Posts Feed API
// @version 1.0
// @description Lists posts with id-cursor pagination
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/DjordjeVuckovic/posts-feed/internal/api/router"
	apiserver "github.com/DjordjeVuckovic/posts-feed/internal/api/server"
	"github.com/DjordjeVuckovic/posts-feed/internal/posts"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	sCfg, err := apiserver.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(sCfg.LogLevel)

	s := apiserver.New(sCfg, nil).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Posts Feed API is running")
	})

	backend, err := factory.NewBackend(s.Context(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	s.SetHealthChecker(backend.Health).
		SetupHealthChecks("/health")

	var routerOpts []router.PostsRouterOption
	if sCfg.PublicBaseURL != nil {
		routerOpts = append(routerOpts, router.WithPublicBaseURL(sCfg.PublicBaseURL))
	}

	postsRouter := router.NewPostsRouter(s.Echo, posts.NewService(backend.Store), routerOpts...)
	postsRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		backend.Close()
		os.Exit(1)
	}
}
