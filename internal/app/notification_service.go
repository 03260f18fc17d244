package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coop_renewal_service/internal/domain/member"
	"coop_renewal_service/internal/domain/notify"

	"github.com/sirupsen/logrus"
)

// CreateNotificationParams carries the optional fields of one in-app
// notification. Priority defaults to normal when empty.
type CreateNotificationParams struct {
	RecipientID       int64
	Title             string
	Message           string
	Category          notify.Category
	Priority          notify.Priority
	ActionURL         string
	ActionText        string
	CreatedByID       int64
	RelatedObjectType string
	RelatedObjectID   int64
	ExpiresInDays     int
}

// NotificationService manages in-app notification rows: creation, staff
// fan-out, unread counts, and retention cleanup.
type NotificationService struct {
	notifications notify.Repository
	members       member.Repository
	logger        *logrus.Logger
}

func NewNotificationService(nr notify.Repository, mr member.Repository, logger *logrus.Logger) *NotificationService {
	return &NotificationService{notifications: nr, members: mr, logger: logger}
}

// Create persists one notification for a recipient.
func (s *NotificationService) Create(ctx context.Context, p CreateNotificationParams, now time.Time) (*notify.Notification, error) {
	if p.Priority == "" {
		p.Priority = notify.PriorityNormal
	}

	n := &notify.Notification{
		RecipientID: p.RecipientID,
		Title:       p.Title,
		Message:     p.Message,
		Category:    p.Category,
		Priority:    p.Priority,
	}
	if p.ActionURL != "" {
		n.ActionURL = sql.NullString{String: p.ActionURL, Valid: true}
	}
	if p.ActionText != "" {
		n.ActionText = sql.NullString{String: p.ActionText, Valid: true}
	}
	if p.CreatedByID != 0 {
		n.CreatedByID = sql.NullInt64{Int64: p.CreatedByID, Valid: true}
	}
	if p.RelatedObjectType != "" {
		n.RelatedObjectType = sql.NullString{String: p.RelatedObjectType, Valid: true}
		n.RelatedObjectID = sql.NullInt64{Int64: p.RelatedObjectID, Valid: true}
	}
	if p.ExpiresInDays > 0 {
		n.ExpiresAt = sql.NullTime{Time: now.AddDate(0, 0, p.ExpiresInDays), Valid: true}
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// NotifyAllStaff fans one notification out to every active staff account.
// Per-recipient failures are logged and skipped so one bad row never blocks
// the rest of the staff.
func (s *NotificationService) NotifyAllStaff(ctx context.Context, p CreateNotificationParams, now time.Time) ([]*notify.Notification, error) {
	staff, err := s.members.ListActiveStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff for notification fan-out: %w", err)
	}

	created := make([]*notify.Notification, 0, len(staff))
	for _, u := range staff {
		p.RecipientID = u.ID
		n, err := s.Create(ctx, p, now)
		if err != nil {
			s.logger.Errorf("Failed to notify staff user %d: %v", u.ID, err)
			continue
		}
		created = append(created, n)
	}
	return created, nil
}

// UnreadCount returns a recipient's unread, unexpired notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID int64, now time.Time) (int, error) {
	n, err := s.notifications.UnreadCount(ctx, recipientID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for user %d: %w", recipientID, err)
	}
	return n, nil
}

// MarkAllRead marks every unread notification of a recipient as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID int64, now time.Time) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, recipientID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read for user %d: %w", recipientID, err)
	}
	return n, nil
}

// DeleteOld removes read notifications older than the retention window.
func (s *NotificationService) DeleteOld(ctx context.Context, retentionDays int, now time.Time) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	n, err := s.notifications.DeleteOldRead(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}
	if n > 0 {
		s.logger.Infof("Deleted %d read notifications older than %d days", n, retentionDays)
	}
	return n, nil
}

// Recent returns a recipient's latest notifications for the dashboard dropdown.
func (s *NotificationService) Recent(ctx context.Context, recipientID int64, limit int) ([]*notify.Notification, error) {
	if limit <= 0 {
		limit = 5
	}
	list, err := s.notifications.ListRecent(ctx, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent notifications for user %d: %w", recipientID, err)
	}
	return list, nil
}
