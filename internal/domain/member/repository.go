package member

import (
	"context"
)

// Repository defines the read operations the engine needs from the member registry.
// Member and vehicle CRUD is owned by the wider admin system; this service only
// writes through the renewal record path.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Member, error)
	ListActive(ctx context.Context) ([]*Member, error)
	ListByBatch(ctx context.Context, batchID int64) ([]*Member, error)

	GetVehicleByID(ctx context.Context, id int64) (*Vehicle, error)
	ListVehiclesByMember(ctx context.Context, memberID int64) ([]*Vehicle, error)

	GetBatchByID(ctx context.Context, id int64) (*Batch, error)

	// ListActiveStaff returns admin/manager accounts for staff-wide notifications.
	ListActiveStaff(ctx context.Context) ([]*StaffUser, error)
}
