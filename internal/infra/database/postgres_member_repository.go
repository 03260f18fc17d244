package database

import (
	"context"
	"database/sql"
	"fmt"

	"coop_renewal_service/internal/domain/member"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type PostgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) *PostgresMemberRepository {
	return &PostgresMemberRepository{db: db}
}

const memberColumns = `id, name, email, batch_id, file_number, user_id, is_active, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*member.Member, error) {
	m := &member.Member{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.BatchID, &m.FileNumber, &m.UserID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresMemberRepository) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("error getting member by ID: %w", err)
	}
	return m, nil
}

func (r *PostgresMemberRepository) ListActive(ctx context.Context) ([]*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE is_active = TRUE ORDER BY name, id`
	return r.listMembers(ctx, query)
}

func (r *PostgresMemberRepository) ListByBatch(ctx context.Context, batchID int64) ([]*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE is_active = TRUE AND batch_id = $1 ORDER BY name, id`
	return r.listMembers(ctx, query, batchID)
}

func (r *PostgresMemberRepository) listMembers(ctx context.Context, query string, args ...any) ([]*member.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing members: %w", err)
	}
	defer rows.Close()

	members := make([]*member.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning member: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

const vehicleColumns = `id, plate_number, engine_number, chassis_number, make_brand, body_type, year_model, series, color, member_id, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (*member.Vehicle, error) {
	v := &member.Vehicle{}
	err := row.Scan(&v.ID, &v.PlateNumber, &v.EngineNumber, &v.ChassisNumber, &v.MakeBrand,
		&v.BodyType, &v.YearModel, &v.Series, &v.Color, &v.MemberID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *PostgresMemberRepository) GetVehicleByID(ctx context.Context, id int64) (*member.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error getting vehicle by ID: %w", err)
	}
	return v, nil
}

func (r *PostgresMemberRepository) ListVehiclesByMember(ctx context.Context, memberID int64) ([]*member.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE member_id = $1 ORDER BY plate_number`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles for member: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*member.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *PostgresMemberRepository) GetBatchByID(ctx context.Context, id int64) (*member.Batch, error) {
	query := `SELECT id, number, created_at FROM batches WHERE id = $1`
	b := &member.Batch{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Number, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("error getting batch by ID: %w", err)
	}
	return b, nil
}

func (r *PostgresMemberRepository) ListActiveStaff(ctx context.Context) ([]*member.StaffUser, error) {
	query := `SELECT id, username, email, is_active FROM users WHERE is_staff = TRUE AND is_active = TRUE ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing staff users: %w", err)
	}
	defer rows.Close()

	staff := make([]*member.StaffUser, 0)
	for rows.Next() {
		u := &member.StaffUser{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning staff user: %w", err)
		}
		staff = append(staff, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff users: %w", err)
	}
	return staff, nil
}
