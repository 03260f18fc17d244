package scheduler

import (
	"context"
	"time"

	"coop_renewal_service/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler plays the external periodic actor: it triggers the bulk
// reminder sweep and the notification retention cleanup on cron schedules.
// The engine itself owns no timers; each job is an ordinary invocation of the
// same services the web actions call.
type ReminderScheduler struct {
	cronEngine    *cron.Cron
	reminders     *app.ReminderService
	notifications *app.NotificationService
	logger        *logrus.Logger

	cronSpecSweep   string
	cronSpecCleanup string
	retentionDays   int
}

func NewReminderScheduler(
	reminders *app.ReminderService,
	notifications *app.NotificationService,
	logger *logrus.Logger,
	cronSpecSweep string,
	cronSpecCleanup string,
	retentionDays int,
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:      cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		reminders:       reminders,
		notifications:   notifications,
		logger:          logger,
		cronSpecSweep:   cronSpecSweep,
		cronSpecCleanup: cronSpecCleanup,
		retentionDays:   retentionDays,
	}
}

func (s *ReminderScheduler) Start() {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecSweep, func() {
		s.logger.Info("Cron job triggered: daily reminder sweep.")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		report, err := s.reminders.SendBulk(ctx, app.BulkFilter{Type: app.FilterNext60}, time.Now())
		if err != nil {
			s.logger.Errorf("Daily reminder sweep failed: %v", err)
			return
		}
		s.logger.Infof("Daily reminder sweep %s done: sent=%d failed=%d", report.RunID, report.Sent, report.Failed)
	})
	if err != nil {
		s.logger.Fatalf("Could not add reminder sweep cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecCleanup, func() {
		s.logger.Info("Cron job triggered: notification cleanup.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if _, err := s.notifications.DeleteOld(ctx, s.retentionDays, time.Now()); err != nil {
			s.logger.Errorf("Notification cleanup failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add notification cleanup cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Reminder scheduler started with jobs.")
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
