package app

import (
	"context"
	"fmt"

	"coop_renewal_service/internal/domain/carwash"
	"coop_renewal_service/internal/domain/member"
	idb "coop_renewal_service/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// ComplianceService evaluates car-wash monthly compliance grids against the
// per-year policy threshold.
type ComplianceService struct {
	members member.Repository
	carwash carwash.Repository
	logger  *logrus.Logger
}

func NewComplianceService(mr member.Repository, cr carwash.Repository, logger *logrus.Logger) *ComplianceService {
	return &ComplianceService{members: mr, carwash: cr, logger: logger}
}

// threshold returns the monthly threshold in effect for a year, falling back
// to the default when no policy row is configured.
func (s *ComplianceService) threshold(ctx context.Context, year int) (int, error) {
	policy, err := s.carwash.YearPolicy(ctx, year)
	if err != nil {
		if err == idb.ErrPolicyNotFound {
			return carwash.DefaultMonthlyThreshold, nil
		}
		return 0, fmt.Errorf("failed to load car-wash policy for %d: %w", year, err)
	}
	if policy.MonthlyThreshold <= 0 {
		return carwash.DefaultMonthlyThreshold, nil
	}
	return policy.MonthlyThreshold, nil
}

// MemberCompliance builds one member's twelve-month compliance grid for a year.
func (s *ComplianceService) MemberCompliance(ctx context.Context, memberID int64, year int) (*carwash.MemberCompliance, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, fmt.Errorf("failed to load member %d: %w", memberID, err)
	}
	threshold, err := s.threshold(ctx, year)
	if err != nil {
		return nil, err
	}
	counts, err := s.carwash.MonthlyCounts(ctx, memberID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count car-wash events for member %d in %d: %w", memberID, year, err)
	}
	mc := carwash.BuildMemberCompliance(memberID, year, counts, threshold)
	return &mc, nil
}

// YearOverview evaluates every active member's compliance for a year. A
// failure fetching the member list aborts the call; a failure counting one
// member's events is logged and that member skipped, so one bad row never
// hides the rest of the report.
func (s *ComplianceService) YearOverview(ctx context.Context, year int) ([]carwash.MemberCompliance, error) {
	members, err := s.members.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for compliance overview: %w", err)
	}
	threshold, err := s.threshold(ctx, year)
	if err != nil {
		return nil, err
	}

	grids := make([]carwash.MemberCompliance, 0, len(members))
	for _, m := range members {
		counts, err := s.carwash.MonthlyCounts(ctx, m.ID, year)
		if err != nil {
			s.logger.Errorf("Failed to count car-wash events for member %d in %d: %v", m.ID, year, err)
			continue
		}
		grids = append(grids, carwash.BuildMemberCompliance(m.ID, year, counts, threshold))
	}
	return grids, nil
}

// ServiceTypeBreakdown reports member-vs-public usage per named service for a
// year. Orthogonal to per-member compliance.
func (s *ComplianceService) ServiceTypeBreakdown(ctx context.Context, year int) ([]carwash.ServiceTypeUsage, error) {
	usage, err := s.carwash.ServiceTypeUsage(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load service usage breakdown for %d: %w", year, err)
	}
	return usage, nil
}
