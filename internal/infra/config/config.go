package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string
	HTTPAddr    string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	UrgentDaysMax      int // inclusive upper bound of the urgent bucket, most views
	BatchUrgentDaysMax int // historical tighter bound used by batch-detail tables

	CronSpecReminderSweep       string
	CronSpecNotificationCleanup string
	NotificationRetentionDays   int

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	cfg.SMTPPort, err = intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	if cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("SMTP_FROM is not set")
	}

	cfg.UrgentDaysMax, err = intEnv("URGENT_DAYS_MAX", 29)
	if err != nil {
		return nil, err
	}
	cfg.BatchUrgentDaysMax, err = intEnv("BATCH_URGENT_DAYS_MAX", 15)
	if err != nil {
		return nil, err
	}

	cfg.CronSpecReminderSweep = os.Getenv("CRON_SPEC_REMINDER_SWEEP")
	if cfg.CronSpecReminderSweep == "" {
		cfg.CronSpecReminderSweep = "0 8 * * *" // Default: 8:00 AM daily
	}
	cfg.CronSpecNotificationCleanup = os.Getenv("CRON_SPEC_NOTIFICATION_CLEANUP")
	if cfg.CronSpecNotificationCleanup == "" {
		cfg.CronSpecNotificationCleanup = "0 3 * * 0" // Default: 3:00 AM Sundays
	}
	cfg.NotificationRetentionDays, err = intEnv("NOTIFICATION_RETENTION_DAYS", 30)
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
