package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coop_renewal_service/internal/domain/notify"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notify.Notification) error {
	query := `INSERT INTO notifications
               (recipient_id, title, message, category, priority, action_url, action_text,
                created_by, related_object_type, related_object_id, expires_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		n.RecipientID, n.Title, n.Message, n.Category, n.Priority,
		n.ActionURL, n.ActionText, n.CreatedByID,
		n.RelatedObjectType, n.RelatedObjectID, n.ExpiresAt,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) UnreadCount(ctx context.Context, recipientID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM notifications
               WHERE recipient_id = $1 AND is_read = FALSE
                 AND (expires_at IS NULL OR expires_at >= $2)`
	var n int
	if err := r.db.QueryRowContext(ctx, query, recipientID, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return n, nil
}

func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, recipientID int64, now time.Time) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE, read_at = $2
               WHERE recipient_id = $1 AND is_read = FALSE`
	res, err := r.db.ExecContext(ctx, query, recipientID, now)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected, nil
}

func (r *PostgresNotificationRepository) DeleteOldRead(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE is_read = TRUE AND read_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error deleting old notifications: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected, nil
}

func (r *PostgresNotificationRepository) ListRecent(ctx context.Context, recipientID int64, limit int) ([]*notify.Notification, error) {
	query := `SELECT id, recipient_id, title, message, category, priority, action_url, action_text,
                      created_by, related_object_type, related_object_id, is_read, read_at, expires_at, created_at
               FROM notifications
               WHERE recipient_id = $1
               ORDER BY created_at DESC
               LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing recent notifications: %w", err)
	}
	defer rows.Close()

	list := make([]*notify.Notification, 0, limit)
	for rows.Next() {
		n := &notify.Notification{}
		err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Category, &n.Priority,
			&n.ActionURL, &n.ActionText, &n.CreatedByID, &n.RelatedObjectType, &n.RelatedObjectID,
			&n.IsRead, &n.ReadAt, &n.ExpiresAt, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		list = append(list, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return list, nil
}
