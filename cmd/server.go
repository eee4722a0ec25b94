package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"toolnav/internal/caching"
	"toolnav/internal/common"
	"toolnav/internal/config"
	"toolnav/internal/handlers"
	"toolnav/internal/middleware"
	"toolnav/internal/repositories"
	"toolnav/internal/services"
	"toolnav/pkg/database"
)

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	pool, err := database.NewPool(ctx, databaseConfig(cfg), log)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := repositories.NewToolStore(cfg.Schema.Generation, pool)
	if err != nil {
		return err
	}

	images, err := newImageStore(cfg)
	if err != nil {
		return err
	}

	// health only reports redis when it is configured
	var healthLimiter caching.RateLimiter
	limiter := caching.NewNoopRateLimiter()
	if cfg.Redis.Addr != "" {
		client := caching.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		limiter = caching.NewRedisRateLimiter(client, cfg.Submission.RateLimit, cfg.Submission.RateWindow, log)
		healthLimiter = limiter
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	projector := services.NewProjector(services.NewMediaResolver(cfg.Media.FrontendImageBaseURL))
	toolService := services.NewToolService(store, projector)
	submissionService := services.NewSubmissionService(store, repositories.NewSubmissionRepo(pool), log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = common.HTTPErrorHandler(log)

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(middleware.VersionHeader(middleware.APIVersion))

	handlers.RegisterRoutes(e, &handlers.Handlers{
		Tools:       handlers.NewToolHandlers(toolService),
		Categories:  handlers.NewCategoryHandlers(toolService),
		Submissions: handlers.NewSubmissionHandlers(submissionService, limiter, metrics, log),
		Images:      handlers.NewImageHandlers(images, cfg.Media.CacheMaxAge),
		Health:      handlers.NewHealthHandlers(pool, healthLimiter, images, store.Generation(), log),
		Metrics:     metrics.Handler(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("schema", store.Generation()),
			zap.String("media_backend", cfg.Media.Backend))
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newImageStore(cfg config.Config) (services.ImageStore, error) {
	if cfg.Media.Backend == "minio" {
		return services.NewMinioImageStore(services.MinioOptions{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
			Prefix:    cfg.Media.ImageSubdir,
		})
	}
	return services.NewLocalImageStore(cfg.Media.ImageDir, cfg.Media.ImageSubdir), nil
}
