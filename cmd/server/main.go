package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/merchops/pricedesk/internal/api"
	"github.com/merchops/pricedesk/internal/cache"
	"github.com/merchops/pricedesk/internal/catalog"
	"github.com/merchops/pricedesk/internal/config"
	"github.com/merchops/pricedesk/internal/domain"
	"github.com/merchops/pricedesk/internal/service"
	"github.com/merchops/pricedesk/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store := catalog.New()
	if cfg.App.SnapshotPath != "" {
		snap, err := catalog.ReadSnapshot(cfg.App.SnapshotPath)
		if err != nil {
			logger.Log.Fatal().Err(err).Str("path", cfg.App.SnapshotPath).Msg("Failed to load catalog snapshot")
		}
		store.Load(snap)
		logger.Log.Info().
			Int("products", len(snap.Products)).
			Int("price_logs", len(snap.PriceLogs)).
			Msg("Catalog snapshot loaded")
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	productService := service.NewProductService(store)
	dashboardService := service.NewDashboardService(store, dashboardCache, cfg.Dashboard.IncludeToday, cfg.Dashboard.DefaultRange)

	// Catalog mutations make cached dashboards stale.
	productService.OnUpdateProduct = func(p domain.Product) {
		logger.Log.Debug().Str("sku", p.SKU).Msg("product updated")
		dashboardService.Invalidate(context.Background())
	}

	router := api.NewRouter(&api.Services{
		Products:  productService,
		Dashboard: dashboardService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
