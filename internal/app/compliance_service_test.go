package app

import (
	"context"
	"fmt"
	"testing"

	"coop_renewal_service/internal/domain/carwash"
	"coop_renewal_service/internal/domain/member"
	idb "coop_renewal_service/internal/infra/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComplianceFixture() (*ComplianceService, *fakeMemberRepo, *fakeCarwashRepo) {
	memberRepo := &fakeMemberRepo{vehicles: map[int64][]*member.Vehicle{}}
	carwashRepo := &fakeCarwashRepo{
		counts:    map[int64][12]int{},
		countsErr: map[int64]error{},
	}
	svc := NewComplianceService(memberRepo, carwashRepo, testLogger())
	return svc, memberRepo, carwashRepo
}

func fullYear(n int) [12]int {
	var counts [12]int
	for i := range counts {
		counts[i] = n
	}
	return counts
}

func TestMemberCompliance_UsesPolicyThreshold(t *testing.T) {
	svc, memberRepo, carwashRepo := newComplianceFixture()
	memberRepo.members = []*member.Member{testMember(1, "Alice Cruz", "")}
	carwashRepo.policy = &carwash.YearPolicy{
		Year:             2025,
		MonthlyThreshold: 6,
		PenaltyAmount:    decimal.NewFromInt(500),
	}
	carwashRepo.counts[1] = fullYear(5)

	mc, err := svc.MemberCompliance(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.False(t, mc.Compliant)
	assert.Equal(t, 12, mc.NonCompliantMonths)
	assert.Equal(t, 6, mc.Cells[0].Threshold)
}

func TestMemberCompliance_DefaultThresholdWhenNoPolicy(t *testing.T) {
	svc, memberRepo, carwashRepo := newComplianceFixture()
	memberRepo.members = []*member.Member{testMember(1, "Alice Cruz", "")}
	carwashRepo.counts[1] = fullYear(4)

	mc, err := svc.MemberCompliance(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.True(t, mc.Compliant)
	assert.Equal(t, carwash.DefaultMonthlyThreshold, mc.Cells[0].Threshold)
}

func TestMemberCompliance_PolicyForOtherYearIgnored(t *testing.T) {
	svc, memberRepo, carwashRepo := newComplianceFixture()
	memberRepo.members = []*member.Member{testMember(1, "Alice Cruz", "")}
	carwashRepo.policy = &carwash.YearPolicy{Year: 2024, MonthlyThreshold: 8}
	carwashRepo.counts[1] = fullYear(4)

	mc, err := svc.MemberCompliance(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.True(t, mc.Compliant)
}

func TestMemberCompliance_ZeroThresholdPolicyFallsBack(t *testing.T) {
	svc, memberRepo, carwashRepo := newComplianceFixture()
	memberRepo.members = []*member.Member{testMember(1, "Alice Cruz", "")}
	carwashRepo.policy = &carwash.YearPolicy{Year: 2025, MonthlyThreshold: 0}
	carwashRepo.counts[1] = fullYear(4)

	mc, err := svc.MemberCompliance(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.True(t, mc.Compliant)
	assert.Equal(t, carwash.DefaultMonthlyThreshold, mc.Cells[0].Threshold)
}

func TestMemberCompliance_UnknownMember(t *testing.T) {
	svc, _, _ := newComplianceFixture()

	_, err := svc.MemberCompliance(context.Background(), 42, 2025)
	require.Error(t, err)
	assert.ErrorIs(t, err, idb.ErrMemberNotFound)
}

func TestYearOverview_SkipsMembersWithCountFailures(t *testing.T) {
	svc, memberRepo, carwashRepo := newComplianceFixture()
	memberRepo.members = []*member.Member{
		testMember(1, "Alice Cruz", ""),
		testMember(2, "Ben Reyes", ""),
		testMember(3, "Carla Diaz", ""),
	}
	carwashRepo.counts[1] = fullYear(4)
	carwashRepo.countsErr[2] = fmt.Errorf("query timeout")
	carwashRepo.counts[3] = fullYear(2)

	grids, err := svc.YearOverview(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, grids, 2)
	assert.Equal(t, int64(1), grids[0].MemberID)
	assert.True(t, grids[0].Compliant)
	assert.Equal(t, int64(3), grids[1].MemberID)
	assert.False(t, grids[1].Compliant)
}

func TestYearOverview_MemberListFailureAborts(t *testing.T) {
	svc, memberRepo, _ := newComplianceFixture()
	memberRepo.listErr = fmt.Errorf("connection reset")

	_, err := svc.YearOverview(context.Background(), 2025)
	assert.Error(t, err)
}

func TestServiceTypeBreakdown(t *testing.T) {
	svc, _, carwashRepo := newComplianceFixture()
	carwashRepo.usage = []carwash.ServiceTypeUsage{
		{ServiceType: "Full Wash", MemberCount: 40, PublicCount: 12},
		{ServiceType: "Vacuum Only", MemberCount: 8, PublicCount: 3},
	}

	usage, err := svc.ServiceTypeBreakdown(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "Full Wash", usage[0].ServiceType)
	assert.Equal(t, 40, usage[0].MemberCount)
}
