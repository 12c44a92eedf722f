package jobs

import (
	"database/sql"

	"totalpark-backend/internal/clock"
	"totalpark-backend/internal/config"
	"totalpark-backend/internal/logger"
	"totalpark-backend/internal/repository/postgres"
	"totalpark-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
	clock    clock.Clock
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reservation service.ReservationService
	Notifier    service.Notifier
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config, clk clock.Clock) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
		clock:    clk,
	}
}

// Config exposes the configuration for the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllSweepJobs runs every scheduled job once (for manual execution)
func (jr *JobRunner) RunAllSweepJobs() {
	jr.ExpireOverdueReservations()
	jr.SendExpiryReminders()
}
