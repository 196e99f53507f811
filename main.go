package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-pricing/config"
	"hotel-pricing/controllers"
	"hotel-pricing/routes"
	"hotel-pricing/services"
)

func main() {
	cfg := config.Load()

	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	source, err := buildCompetitorSource(cfg, logger)
	if err != nil {
		logger.Error("competitor source init failed", "error", err)
		os.Exit(1)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Info("redis not configured or unreachable; competitor cache disabled")
	} else {
		defer rdb.Close()
	}
	competitors := services.NewCachedCompetitorSource(source, rdb, cfg.CompetitorCacheTTL, cfg.CompetitorFetchTimeout, logger)

	var publisher services.AllocationPublisher = services.NoopAllocationPublisher{}
	if cfg.RabbitMQURL != "" {
		publisher = services.NewAMQPAllocationPublisher(cfg.RabbitMQURL, cfg.AllocationQueue, logger)
		logger.Info("room allocated events enabled", "queue", cfg.AllocationQueue)
	}

	// Initialize services
	pricingService := services.NewPricingService(logger)
	allocationService := services.NewRoomAllocationService(logger)

	// Initialize controllers
	pricingController := controllers.NewPricingController(pricingService, competitors, cfg.CompetitorFetchTimeout, logger)
	roomController := controllers.NewRoomAllocationController(
		pricingService, allocationService, competitors, publisher,
		cfg.CompetitorFetchTimeout, cfg.DefaultOccupancyRate, logger,
	)
	bookingController := controllers.NewBookingController(
		pricingService, allocationService, competitors, publisher,
		cfg.CompetitorFetchTimeout, logger,
	)

	router := routes.SetupRouter(pricingController, roomController, bookingController, cfg.CorsOrigins, logger)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", addr, "env", cfg.Env, "competitor_source", cfg.CompetitorSource)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}
	logger.Info("server stopped gracefully")
}

// buildCompetitorSource returns the CSV file source, or the MySQL table
// seeded from that file when COMPETITOR_SOURCE=mysql.
func buildCompetitorSource(cfg config.Config, logger *slog.Logger) (services.CompetitorSource, error) {
	csvSource := services.NewCSVCompetitorSource(cfg.CompetitorCSVPath, logger)
	if cfg.CompetitorSource != config.SourceMySQL {
		logger.Info("competitor prices from csv", "path", cfg.CompetitorCSVPath)
		return csvSource, nil
	}

	db, err := config.ConnectDatabase(logger)
	if err != nil {
		return nil, err
	}
	store := services.NewGormCompetitorSource(db, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := config.SeedCompetitorPrices(ctx, store, csvSource.Records, logger); err != nil {
		// An unseeded table still serves whatever rows it has.
		logger.Warn("competitor seed failed", "error", err)
	}
	logger.Info("competitor prices from mysql")
	return store, nil
}
