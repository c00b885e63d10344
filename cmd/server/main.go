package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trashit/internal/cache/redis"
	"trashit/internal/config"
	"trashit/internal/handler"
	"trashit/internal/logger"
	"trashit/internal/port"
	"trashit/internal/ratecard"
	"trashit/internal/router"
	"trashit/internal/service"
	"trashit/internal/storage"
	"trashit/internal/valuation"
	"trashit/internal/vision"
	"trashit/internal/vision/providers"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl := logger.New(cfg.Log)
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize vision classifier chain
	providers.RegisterAll()
	classifier, err := vision.NewFromConfig(&cfg.Vision, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize vision classifier: %w", err)
	}

	// Initialize classification cache
	var cache port.ClassificationCache
	if cfg.Cache.Enabled {
		client := redis.NewClient(&cfg.Cache)
		defer func() { _ = client.Close() }()
		cache = redis.NewClassificationCache(client, &cfg.Cache)
		if err := cache.Ping(context.Background()); err != nil {
			zl.Warn("classification cache not reachable at startup", zap.String("address", cfg.Cache.Address), zap.Error(err))
		}
	}

	// Initialize archive storage
	archive, err := storage.New(&cfg.Archive)
	if err != nil {
		return fmt.Errorf("failed to initialize archive storage: %w", err)
	}

	// Lookup tables are built once and shared read-only
	tables := valuation.NewTables(&cfg.Grading)

	// Initialize services and handlers
	valuationSvc := service.NewValuationService(classifier, cache, archive, tables, cfg, zl)

	valuationH := handler.NewValuationHandler(valuationSvc, cfg.Upload.MaxBytes())
	rateCardH := handler.NewRateCardHandler(ratecard.Build(tables))
	healthH := handler.NewHealthHandler(cache)

	r := router.Setup(cfg, zl, valuationH, rateCardH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("vision_provider", cfg.Vision.PrimaryConfig().Provider),
			zap.Bool("cache_enabled", cfg.Cache.Enabled),
			zap.String("archive_provider", cfg.Archive.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		valuationSvc.Wait()
		return err
	})

	return g.Wait()
}
