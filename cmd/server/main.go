package main

import (
	"os"
	"os/signal"
	"syscall"

	"coop_renewal_service/internal/app"
	"coop_renewal_service/internal/infra/config"
	idb "coop_renewal_service/internal/infra/database"
	"coop_renewal_service/internal/infra/httpapi"
	"coop_renewal_service/internal/infra/logger"
	"coop_renewal_service/internal/infra/mailer"
	"coop_renewal_service/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	memberRepo := idb.NewPostgresMemberRepository(db)
	renewalRepo := idb.NewPostgresRenewalRepository(db)
	carwashRepo := idb.NewPostgresCarwashRepository(db)
	notificationRepo := idb.NewPostgresNotificationRepository(db)
	log.Info("Repositories initialized.")

	// Initialize Services
	smtp := mailer.NewGomailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	renewalService := app.NewRenewalService(memberRepo, renewalRepo, log, cfg.UrgentDaysMax, cfg.BatchUrgentDaysMax)
	complianceService := app.NewComplianceService(memberRepo, carwashRepo, log)
	notificationService := app.NewNotificationService(notificationRepo, memberRepo, log)
	reminderService := app.NewReminderService(memberRepo, renewalService, notificationRepo, smtp, log, cfg.UrgentDaysMax)
	log.Info("Services initialized.")

	// Initialize Scheduler for the periodic sweeps
	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		notificationService,
		log,
		cfg.CronSpecReminderSweep,
		cfg.CronSpecNotificationCleanup,
		cfg.NotificationRetentionDays,
	)
	reminderScheduler.Start()

	// Initialize HTTP API
	server := httpapi.NewServer(renewalService, complianceService, reminderService, notificationService, log)
	go func() {
		if err := server.ListenAndServe(cfg.HTTPAddr); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Info("Application setup complete. API and scheduler are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	reminderScheduler.Stop()
	if err := server.Shutdown(); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
