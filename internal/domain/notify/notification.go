package notify

import (
	"database/sql"
	"time"
)

// Priority of an in-app notification.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Category of an in-app notification.
type Category string

const (
	CategoryRenewal    Category = "renewal"
	CategoryCompliance Category = "compliance"
	CategoryPayment    Category = "payment"
	CategorySystem     Category = "system"
)

// Notification is one in-app notification row shown on a user's dashboard.
type Notification struct {
	ID                int64
	RecipientID       int64 // user account id
	Title             string
	Message           string
	Category          Category
	Priority          Priority
	ActionURL         sql.NullString
	ActionText        sql.NullString
	CreatedByID       sql.NullInt64
	RelatedObjectType sql.NullString // e.g. "member", "vehicle"
	RelatedObjectID   sql.NullInt64
	IsRead            bool
	ReadAt            sql.NullTime
	ExpiresAt         sql.NullTime
	CreatedAt         time.Time
}

// ReminderOutcome is the transient result of one reminder dispatch attempt.
// Not persisted by the engine; callers may log it or tally it into a report.
type ReminderOutcome struct {
	MemberID  int64
	VehicleID int64
	Success   bool
	Detail    string
}
