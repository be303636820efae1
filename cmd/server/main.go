package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/auth"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/cache"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/config"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/database"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/events"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/ipoalerts"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Cache layer
	var store *cache.Store
	if cfg.Cache.Enabled {
		store = cache.New(cfg.Cache.DefaultTTL)
	} else {
		store = cache.NewDisabled()
		log.Println("Cache disabled")
	}

	// Websocket push hub
	hub := events.NewHub(cfg.CORS.AllowedOrigins)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	feedClient := ipoalerts.NewClient(cfg.Sync.BaseURL, cfg.Sync.APIKey)

	// Create repositories
	ipoRepo := repository.NewIPORepository(db)
	brokerRepo := repository.NewBrokerRepository(db)
	investorRepo := repository.NewInvestorRepository(db)
	userRepo := repository.NewUserRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	syncRepo := repository.NewSyncRepository(db)

	// Create services
	syncService := service.NewSyncService(
		cfg.Sync,
		cfg.IsProduction(),
		feedClient,
		ipoRepo,
		syncRepo,
		store,
		hub,
	)
	svcs := api.Services{
		System:    service.NewSystemService(db),
		Auth:      service.NewAuthService(userRepo, tokens),
		IPO:       service.NewIPOService(ipoRepo, store, hub),
		Broker:    service.NewBrokerService(brokerRepo, store),
		Investor:  service.NewInvestorService(investorRepo, store),
		User:      service.NewUserService(userRepo),
		Portfolio: service.NewPortfolioService(db, userRepo, ipoRepo, holdingRepo),
		Sync:      syncService,
	}

	// Create router
	router := api.NewRouter(svcs, cfg, hub)

	// Scheduled feed sync
	var scheduler *cron.Cron
	if cfg.Sync.Schedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Sync.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := syncService.Sync(ctx); err != nil {
				log.Printf("Scheduled sync failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid SYNC_SCHEDULE: %v", err)
		}
		scheduler.Start()
		log.Printf("Scheduled feed sync: %s", cfg.Sync.Schedule)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}
	hub.Close()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
