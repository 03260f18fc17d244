package renewal

import (
	"context"
)

// Repository defines persistence operations for renewal records.
type Repository interface {
	ListByVehicle(ctx context.Context, vehicleID int64) ([]Record, error)
	// ListByVehicles fetches record chains for many vehicles in one query,
	// keyed by vehicle id. Vehicles with no records are absent from the map.
	ListByVehicles(ctx context.Context, vehicleIDs []int64) (map[int64][]Record, error)
	// Create inserts one record atomically; a partially created record is
	// never visible to readers.
	Create(ctx context.Context, rec *Record) error
	// CountPending returns the number of member uploads awaiting review.
	CountPending(ctx context.Context) (int, error)
}
