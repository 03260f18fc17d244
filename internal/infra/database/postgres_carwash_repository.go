package database

import (
	"context"
	"database/sql"
	"fmt"

	"coop_renewal_service/internal/domain/carwash"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type PostgresCarwashRepository struct {
	db *sql.DB
}

func NewPostgresCarwashRepository(db *sql.DB) *PostgresCarwashRepository {
	return &PostgresCarwashRepository{db: db}
}

// MonthlyCounts counts a member's qualifying service events per month.
// Penalty rows and public/walk-in visits never count toward compliance.
func (r *PostgresCarwashRepository) MonthlyCounts(ctx context.Context, memberID int64, year int) ([12]int, error) {
	var counts [12]int
	query := `SELECT EXTRACT(MONTH FROM service_date)::int AS month, COUNT(*)
               FROM carwash_events
               WHERE member_id = $1
                 AND EXTRACT(YEAR FROM service_date) = $2
                 AND is_penalty = FALSE
                 AND is_public_customer = FALSE
               GROUP BY month`
	rows, err := r.db.QueryContext(ctx, query, memberID, year)
	if err != nil {
		return counts, fmt.Errorf("error counting car-wash events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month, n int
		if err := rows.Scan(&month, &n); err != nil {
			return counts, fmt.Errorf("error scanning car-wash count: %w", err)
		}
		if month >= 1 && month <= 12 {
			counts[month-1] = n
		}
	}
	if err = rows.Err(); err != nil {
		return counts, fmt.Errorf("error iterating car-wash counts: %w", err)
	}
	return counts, nil
}

func (r *PostgresCarwashRepository) YearPolicy(ctx context.Context, year int) (*carwash.YearPolicy, error) {
	query := `SELECT year, monthly_threshold, penalty_amount, created_at FROM carwash_policies WHERE year = $1`
	p := &carwash.YearPolicy{}
	err := r.db.QueryRowContext(ctx, query, year).Scan(&p.Year, &p.MonthlyThreshold, &p.PenaltyAmount, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("error getting car-wash policy: %w", err)
	}
	return p, nil
}

// ServiceTypeUsage splits a year's visits per named service into member and
// public customer counts. Penalty rows are excluded from both sides.
func (r *PostgresCarwashRepository) ServiceTypeUsage(ctx context.Context, year int) ([]carwash.ServiceTypeUsage, error) {
	query := `SELECT service_type,
                      COUNT(*) FILTER (WHERE is_public_customer = FALSE) AS member_count,
                      COUNT(*) FILTER (WHERE is_public_customer = TRUE) AS public_count
               FROM carwash_events
               WHERE EXTRACT(YEAR FROM service_date) = $1
                 AND is_penalty = FALSE
               GROUP BY service_type
               ORDER BY service_type`
	rows, err := r.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("error loading service usage breakdown: %w", err)
	}
	defer rows.Close()

	usage := make([]carwash.ServiceTypeUsage, 0)
	for rows.Next() {
		var u carwash.ServiceTypeUsage
		if err := rows.Scan(&u.ServiceType, &u.MemberCount, &u.PublicCount); err != nil {
			return nil, fmt.Errorf("error scanning service usage: %w", err)
		}
		usage = append(usage, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service usage: %w", err)
	}
	return usage, nil
}
