package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"totalpark-backend/internal/clock"
	"totalpark-backend/internal/config"
	"totalpark-backend/internal/jobs"
	"totalpark-backend/internal/logger"
	"totalpark-backend/internal/repository/postgres"
	"totalpark-backend/internal/scheduler"
	"totalpark-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-overdue-reservations', 'all')")
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
	logger.Info("Starting Total Park Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize delivery channels
	var emailSender service.EmailSender
	if cfg.SendGrid.APIKey != "" {
		emailSender = service.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
	}

	var pushSender service.PushSender
	if cfg.FCM.CredentialsFile != "" {
		pushSender, err = service.NewFCMSender(context.Background(), cfg.FCM.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM", "error", err)
			log.Fatalf("Failed to initialize FCM: %v", err)
		}
	}

	notifier := service.NewCompositeNotifier(store.UserRepository, store.NotificationRepository, emailSender, pushSender)

	// Initialize Services
	ledgerService := service.NewLedgerService(store.UserRepository, store.PaymentRepository)
	reservationService := service.NewReservationService(
		store.ReservationRepository,
		store.SpaceRepository,
		store.ZoneRepository,
		store.VehicleRepository,
		ledgerService,
		notifier,
		clock.System{},
		0, // the sweep job is the expiry path here, no per-session monitors
	)

	jobServices := &jobs.Services{
		Reservation: reservationService,
		Notifier:    notifier,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg, clock.System{})

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "expire-overdue-reservations":
		jobRunner.ExpireOverdueReservations()
	case "send-expiry-reminders":
		jobRunner.SendExpiryReminders()
	case "all":
		jobRunner.RunAllSweepJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - expire-overdue-reservations\n")
		fmt.Printf("  - send-expiry-reminders\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
