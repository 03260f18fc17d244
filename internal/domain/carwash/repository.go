package carwash

import "context"

// Repository defines the read operations over car-wash service events and
// yearly policies. Only qualifying events count toward compliance: attributed
// to a member, not a penalty entry, not a public customer visit.
type Repository interface {
	// MonthlyCounts returns a member's qualifying event counts for each month
	// of a year, index 0 = January.
	MonthlyCounts(ctx context.Context, memberID int64, year int) ([12]int, error)
	// YearPolicy returns the policy for a year, or ErrPolicyNotFound when the
	// year has no configured row (callers fall back to the default threshold).
	YearPolicy(ctx context.Context, year int) (*YearPolicy, error)
	// ServiceTypeUsage returns the member-vs-public usage breakdown per named
	// service across a whole year.
	ServiceTypeUsage(ctx context.Context, year int) ([]ServiceTypeUsage, error)
}
