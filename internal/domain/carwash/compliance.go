package carwash

// DefaultMonthlyThreshold applies when no policy row exists for a year.
const DefaultMonthlyThreshold = 4

// ComplianceCell is the pass/fail evaluation of one member-month: how many
// qualifying car-wash visits they logged against the threshold in effect.
// Derived fresh per request, never stored.
type ComplianceCell struct {
	MemberID   int64
	Year       int
	Month      int // 1..12
	EventCount int
	Threshold  int
	Compliant  bool
}

// MemberCompliance is a member's full-year compliance grid. The member is
// compliant only when every one of the twelve months meets the threshold;
// months that have not happened yet count as non-compliant with zero events,
// matching how the cooperative has always evaluated the running year.
type MemberCompliance struct {
	MemberID           int64
	Year               int
	Cells              [12]ComplianceCell
	Compliant          bool
	NonCompliantMonths int
}

// BuildMemberCompliance evaluates twelve monthly counts against a threshold.
// Pure: the same counts and threshold always produce the same grid.
func BuildMemberCompliance(memberID int64, year int, counts [12]int, threshold int) MemberCompliance {
	if threshold <= 0 {
		threshold = DefaultMonthlyThreshold
	}
	mc := MemberCompliance{
		MemberID:  memberID,
		Year:      year,
		Compliant: true,
	}
	for i := 0; i < 12; i++ {
		ok := counts[i] >= threshold
		mc.Cells[i] = ComplianceCell{
			MemberID:   memberID,
			Year:       year,
			Month:      i + 1,
			EventCount: counts[i],
			Threshold:  threshold,
			Compliant:  ok,
		}
		if !ok {
			mc.Compliant = false
			mc.NonCompliantMonths++
		}
	}
	return mc
}
