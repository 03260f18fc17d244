package notify

import (
	"context"
	"time"
)

// Repository defines persistence operations for in-app notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// UnreadCount counts a recipient's unread notifications, excluding rows
	// already expired at now.
	UnreadCount(ctx context.Context, recipientID int64, now time.Time) (int, error)
	// MarkAllRead marks every unread notification of a recipient as read at
	// now and returns how many rows changed.
	MarkAllRead(ctx context.Context, recipientID int64, now time.Time) (int64, error)
	// DeleteOldRead removes read notifications whose read time is before the
	// cutoff. Retention sweep utility.
	DeleteOldRead(ctx context.Context, cutoff time.Time) (int64, error)
	ListRecent(ctx context.Context, recipientID int64, limit int) ([]*Notification, error)
}

// Mailer sends one email. Implementations own their transport timeouts; any
// error they return is treated as a delivery failure by the dispatcher, never
// propagated out of a bulk loop.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}
