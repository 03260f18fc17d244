package carwash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allMonths(n int) [12]int {
	var counts [12]int
	for i := range counts {
		counts[i] = n
	}
	return counts
}

func TestBuildMemberCompliance_ExactlyAtThresholdIsCompliant(t *testing.T) {
	mc := BuildMemberCompliance(1, 2025, allMonths(4), 4)
	assert.True(t, mc.Compliant)
	assert.Equal(t, 0, mc.NonCompliantMonths)
	for _, c := range mc.Cells {
		assert.True(t, c.Compliant, "month %d", c.Month)
		assert.Equal(t, 4, c.Threshold)
	}
}

func TestBuildMemberCompliance_OneMonthOneShort(t *testing.T) {
	counts := allMonths(4)
	counts[5] = 3 // June one visit short
	mc := BuildMemberCompliance(1, 2025, counts, 4)
	assert.False(t, mc.Compliant)
	assert.Equal(t, 1, mc.NonCompliantMonths)
	assert.False(t, mc.Cells[5].Compliant)
	assert.True(t, mc.Cells[4].Compliant)
}

func TestBuildMemberCompliance_FutureMonthsCountAsNonCompliant(t *testing.T) {
	// The grid always covers the full year: months that have not happened yet
	// carry zero events and fail the threshold.
	var counts [12]int
	for i := 0; i < 8; i++ {
		counts[i] = 5
	}
	mc := BuildMemberCompliance(1, 2025, counts, 4)
	assert.False(t, mc.Compliant)
	assert.Equal(t, 4, mc.NonCompliantMonths)
}

func TestBuildMemberCompliance_DefaultThreshold(t *testing.T) {
	mc := BuildMemberCompliance(1, 2025, allMonths(4), 0)
	assert.True(t, mc.Compliant)
	assert.Equal(t, DefaultMonthlyThreshold, mc.Cells[0].Threshold)

	mc = BuildMemberCompliance(1, 2025, allMonths(3), 0)
	assert.False(t, mc.Compliant)
	assert.Equal(t, 12, mc.NonCompliantMonths)
}

func TestBuildMemberCompliance_CellShape(t *testing.T) {
	mc := BuildMemberCompliance(7, 2024, allMonths(2), 2)
	require.Len(t, mc.Cells, 12)
	for i, c := range mc.Cells {
		assert.Equal(t, int64(7), c.MemberID)
		assert.Equal(t, 2024, c.Year)
		assert.Equal(t, i+1, c.Month)
		assert.Equal(t, 2, c.EventCount)
	}
}

func TestBuildMemberCompliance_Deterministic(t *testing.T) {
	counts := allMonths(4)
	counts[2] = 1
	first := BuildMemberCompliance(1, 2025, counts, 4)
	second := BuildMemberCompliance(1, 2025, counts, 4)
	assert.Equal(t, first, second)
}
