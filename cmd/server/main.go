package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "totalpark-backend/internal/api/http"
	"totalpark-backend/internal/clock"
	"totalpark-backend/internal/config"
	"totalpark-backend/internal/logger"
	"totalpark-backend/internal/repository/postgres"
	"totalpark-backend/internal/security"
	"totalpark-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load environment overrides from .env when present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Total Park Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize delivery channels
	var emailSender service.EmailSender
	if cfg.SendGrid.APIKey != "" {
		emailSender = service.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
		logger.Info("Email delivery enabled", "from", cfg.SendGrid.FromEmail)
	} else {
		logger.Warn("Email delivery disabled: no SendGrid API key configured")
	}

	var pushSender service.PushSender
	if cfg.FCM.CredentialsFile != "" {
		pushSender, err = service.NewFCMSender(context.Background(), cfg.FCM.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM", "error", err)
			log.Fatalf("Failed to initialize FCM: %v", err)
		}
		logger.Info("Push delivery enabled")
	} else {
		logger.Warn("Push delivery disabled: no FCM credentials configured")
	}

	notifier := service.NewCompositeNotifier(store.UserRepository, store.NotificationRepository, emailSender, pushSender)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	ledgerSvc := service.NewLedgerService(store.UserRepository, store.PaymentRepository)
	reservationSvc := service.NewReservationService(
		store.ReservationRepository,
		store.SpaceRepository,
		store.ZoneRepository,
		store.VehicleRepository,
		ledgerSvc,
		notifier,
		clock.System{},
		cfg.MonitorTick(),
	)
	spaceSvc := service.NewSpaceService(store.SpaceRepository, store.ZoneRepository)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Reservations:  reservationSvc,
		Ledger:        ledgerSvc,
		Spaces:        spaceSvc,
		Vehicles:      vehicleSvc,
		Notifications: noteSvc,
	}, tokenManager, db)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown did not complete cleanly", "error", err)
	}
	reservationSvc.StopMonitors()
	logger.Info("Server stopped. Goodbye!")
}
