package carwash

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearPolicy is the configurable car-wash compliance policy for one year.
type YearPolicy struct {
	Year             int
	MonthlyThreshold int
	PenaltyAmount    decimal.Decimal
	CreatedAt        time.Time
}

// ServiceTypeUsage is one line of the year-wide breakdown: how often a named
// service was used by members versus public walk-in customers. This grouping
// is orthogonal to per-member compliance.
type ServiceTypeUsage struct {
	ServiceType string
	MemberCount int
	PublicCount int
}
