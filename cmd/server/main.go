package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketsearch-service/internal/infrastructure/config"
	"ticketsearch-service/internal/infrastructure/persistence"
	"ticketsearch-service/internal/interface/handler"
	"ticketsearch-service/internal/interface/nationalbank"
	"ticketsearch-service/internal/interface/provider"
	"ticketsearch-service/internal/interface/repository"
	"ticketsearch-service/internal/usecase"
	"ticketsearch-service/pkg/logger"
	"ticketsearch-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Ticket Search Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection (result store)
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up Redis connection (work queue + rate snapshot)
	log.Info("Connecting to Redis")
	redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}

	// Set up metrics
	appMetrics := metrics.NewMetrics("ticketsearch")

	// Set up repositories
	searchQueue := repository.NewRedisSearchQueueRepository(redisClient, cfg.SearchStream, cfg.SearchGroup, cfg.ConsumerName, log)
	resultRepo := repository.NewMongoSearchResultRepository(db)
	rateRepo := repository.NewRedisExchangeRateRepository(redisClient)

	// Set up provider gateways and the national bank feed client
	alphaClient := provider.NewAlphaClient(cfg.AlphaBaseURL, cfg.ProviderTimeout, log)
	bettaClient := provider.NewBettaClient(cfg.BettaBaseURL, cfg.ProviderTimeout, log)
	nbClient := nationalbank.NewClient(cfg.NationalBankURL, cfg.ProviderTimeout, log)

	// Set up the rate refresher and run the eager fetch before serving
	rateRefresher := usecase.NewRateRefresher(nbClient, rateRepo, cfg.RateRefreshInterval, log)
	if err := rateRefresher.Refresh(ctx); err != nil {
		log.Error("Initial exchange rate fetch failed", "error", err)
	}
	go rateRefresher.Start(ctx)

	// Start the search consumer in a goroutine
	searchConsumer := usecase.NewSearchConsumer(searchQueue, resultRepo, alphaClient, bettaClient, appMetrics, log, usecase.SearchConsumerOptions{
		PollTimeout:    cfg.PollTimeout,
		IdleSleep:      cfg.IdleSleep,
		ConsumeBackoff: cfg.ConsumeBackoff,
	})
	go func() {
		if err := searchConsumer.Start(ctx); err != nil {
			log.Fatal("Search consumer failed to start", "error", err)
		}
	}()

	// Set up HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	searchHandler := handler.NewSearchHandler(searchQueue, resultRepo, rateRepo, usecase.NewCurrencyConverter(), appMetrics, log)
	ratesHandler := handler.NewExchangeRatesHandler(rateRepo, nbClient, log)

	api := router.Group("/api/v1")
	searchHandler.RegisterRoutes(api)
	ratesHandler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to Ticket Search API",
			"version": cfg.AppVersion,
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	// Stop background workers; unacknowledged entries stay redeliverable
	searchConsumer.Stop()
	rateRefresher.Stop()
	cancel()

	// Release provider connections and clients
	alphaClient.Close()
	bettaClient.Close()

	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", "error", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Ticket Search Service stopped")
}
