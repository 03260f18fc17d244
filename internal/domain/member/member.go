package member

import (
	"database/sql"
	"time"
)

// Batch groups members by the cooperative intake they joined with.
type Batch struct {
	ID        int64
	Number    string
	CreatedAt time.Time
}

// Member represents a cooperative member in the registry.
type Member struct {
	ID         int64
	Name       string
	Email      sql.NullString // contact address; absence is a failure reason for reminders, never an error
	BatchID    int64
	FileNumber string
	UserID     sql.NullInt64 // linked login account, if any; target for in-app notifications
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Vehicle is one unit registered under the cooperative, optionally owned by a member.
type Vehicle struct {
	ID            int64
	PlateNumber   string
	EngineNumber  sql.NullString
	ChassisNumber sql.NullString
	MakeBrand     sql.NullString
	BodyType      sql.NullString
	YearModel     sql.NullInt64
	Series        sql.NullString
	Color         sql.NullString
	MemberID      sql.NullInt64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StaffUser is an admin/manager login account, recipient of staff-wide notifications.
type StaffUser struct {
	ID       int64
	Username string
	Email    sql.NullString
	IsActive bool
}
