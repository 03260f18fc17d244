package renewal

import (
	"database/sql"
	"time"
)

// RecordStatus is the review state of a submitted renewal record.
type RecordStatus string

const (
	StatusPending  RecordStatus = "PENDING"
	StatusApproved RecordStatus = "APPROVED"
	StatusRejected RecordStatus = "REJECTED"
)

// OriginKind distinguishes staff-entered records from member uploads.
type OriginKind string

const (
	OriginManager    OriginKind = "MANAGER"
	OriginUserUpload OriginKind = "USER_UPLOAD"
)

// Origin is an explicit tag for where a record came from. UploaderID is only
// meaningful for OriginUserUpload.
type Origin struct {
	Kind       OriginKind
	UploaderID int64
}

func ManagerOrigin() Origin {
	return Origin{Kind: OriginManager}
}

func UserUploadOrigin(uploaderID int64) Origin {
	return Origin{Kind: OriginUserUpload, UploaderID: uploaderID}
}

// Record is one registration/OR-CR renewal entry for a vehicle.
type Record struct {
	ID          int64
	VehicleID   int64
	RenewalDate sql.NullTime // date-only; null dates are excluded from expiry resolution
	Status      RecordStatus
	Origin      Origin
	ApproverID  sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Authoritative reports whether this record may drive official expiry
// computation: staff-entered records always qualify, member uploads only once
// approved.
func (r Record) Authoritative() bool {
	return r.Origin.Kind == OriginManager || r.Status == StatusApproved
}
