package database

import (
	"context"
	"database/sql"
	"fmt"

	"coop_renewal_service/internal/domain/renewal"

	"github.com/lib/pq" // For pq.Array and driver registration
)

type PostgresRenewalRepository struct {
	db *sql.DB
}

func NewPostgresRenewalRepository(db *sql.DB) *PostgresRenewalRepository {
	return &PostgresRenewalRepository{db: db}
}

const recordColumns = `id, vehicle_id, renewal_date, status, uploaded_by, approved_by, created_at, updated_at`

// scanRecord maps a row onto a Record, translating a null uploaded_by into
// the manager origin tag.
func scanRecord(row interface{ Scan(...any) error }) (renewal.Record, error) {
	var (
		rec        renewal.Record
		uploadedBy sql.NullInt64
	)
	err := row.Scan(&rec.ID, &rec.VehicleID, &rec.RenewalDate, &rec.Status,
		&uploadedBy, &rec.ApproverID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return renewal.Record{}, err
	}
	if uploadedBy.Valid {
		rec.Origin = renewal.UserUploadOrigin(uploadedBy.Int64)
	} else {
		rec.Origin = renewal.ManagerOrigin()
	}
	return rec, nil
}

func (r *PostgresRenewalRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]renewal.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM renewal_records WHERE vehicle_id = $1 ORDER BY renewal_date DESC NULLS LAST, id`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error listing renewal records for vehicle: %w", err)
	}
	defer rows.Close()

	records := make([]renewal.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning renewal record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating renewal records: %w", err)
	}
	return records, nil
}

func (r *PostgresRenewalRepository) ListByVehicles(ctx context.Context, vehicleIDs []int64) (map[int64][]renewal.Record, error) {
	result := make(map[int64][]renewal.Record, len(vehicleIDs))
	if len(vehicleIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + recordColumns + ` FROM renewal_records WHERE vehicle_id = ANY($1) ORDER BY vehicle_id, renewal_date DESC NULLS LAST, id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(vehicleIDs))
	if err != nil {
		return nil, fmt.Errorf("error listing renewal records for vehicles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning renewal record: %w", err)
		}
		result[rec.VehicleID] = append(result[rec.VehicleID], rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating renewal records: %w", err)
	}
	return result, nil
}

// Create inserts one renewal record. The single INSERT is the whole write, so
// a partially created record is never visible to concurrent readers.
func (r *PostgresRenewalRepository) Create(ctx context.Context, rec *renewal.Record) error {
	query := `INSERT INTO renewal_records (vehicle_id, renewal_date, status, uploaded_by, approved_by)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at, updated_at`

	var uploadedBy sql.NullInt64
	if rec.Origin.Kind == renewal.OriginUserUpload {
		uploadedBy = sql.NullInt64{Int64: rec.Origin.UploaderID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, rec.VehicleID, rec.RenewalDate, rec.Status, uploadedBy, rec.ApproverID).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating renewal record: %w", err)
	}
	return nil
}

func (r *PostgresRenewalRepository) CountPending(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM renewal_records WHERE status = $1 AND uploaded_by IS NOT NULL`
	var n int
	if err := r.db.QueryRowContext(ctx, query, renewal.StatusPending).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting pending renewal records: %w", err)
	}
	return n, nil
}
