package renewal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		daysLeft int
		want     Status
	}{
		{-100, StatusOverdue},
		{-1, StatusOverdue},
		{0, StatusUrgent},
		{15, StatusUrgent},
		{29, StatusUrgent},
		{30, StatusUpcoming},
		{60, StatusUpcoming},
		{61, StatusNormal},
		{365, StatusNormal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.daysLeft, DefaultUrgentDaysMax), "daysLeft=%d", tc.daysLeft)
	}
}

func TestClassify_BatchViewUrgentBound(t *testing.T) {
	// Batch-detail tables use the tighter 15-day urgent window.
	assert.Equal(t, StatusUrgent, Classify(15, 15))
	assert.Equal(t, StatusUpcoming, Classify(16, 15))
	assert.Equal(t, StatusUpcoming, Classify(29, 15))
	assert.Equal(t, StatusNormal, Classify(61, 15))
}

func TestClassify_ZeroBoundFallsBackToDefault(t *testing.T) {
	assert.Equal(t, StatusUrgent, Classify(29, 0))
	assert.Equal(t, StatusUpcoming, Classify(30, 0))
}

func TestClassify_BucketExclusivity(t *testing.T) {
	// Every integer lands in exactly one bucket: no gaps, no overlaps.
	for daysLeft := -70; daysLeft <= 120; daysLeft++ {
		s := Classify(daysLeft, DefaultUrgentDaysMax)
		switch {
		case daysLeft < 0:
			assert.Equal(t, StatusOverdue, s, "daysLeft=%d", daysLeft)
		case daysLeft <= 29:
			assert.Equal(t, StatusUrgent, s, "daysLeft=%d", daysLeft)
		case daysLeft <= 60:
			assert.Equal(t, StatusUpcoming, s, "daysLeft=%d", daysLeft)
		default:
			assert.Equal(t, StatusNormal, s, "daysLeft=%d", daysLeft)
		}
	}
}

func TestWorse(t *testing.T) {
	assert.Equal(t, StatusOverdue, Worse(StatusOverdue, StatusUrgent))
	assert.Equal(t, StatusOverdue, Worse(StatusUrgent, StatusOverdue))
	assert.Equal(t, StatusUrgent, Worse(StatusNormal, StatusUrgent))
	assert.Equal(t, StatusNormal, Worse(StatusNone, StatusNormal))
	assert.Equal(t, StatusNone, Worse(StatusNone, StatusNone))
}
