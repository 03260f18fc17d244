package renewal

// Status is the urgency bucket of a vehicle's document expiry.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusUrgent   Status = "urgent"
	StatusUpcoming Status = "upcoming"
	StatusNormal   Status = "normal"
	StatusNone     Status = "none" // no authoritative renewal record
)

const (
	// DefaultUrgentDaysMax is the inclusive upper bound of the urgent bucket
	// used by most views. The batch-detail view historically used 15; the
	// bound is a parameter so both call sites keep their behavior until the
	// discrepancy is resolved with stakeholders.
	DefaultUrgentDaysMax = 29

	// UpcomingDaysMax is the inclusive upper bound of the upcoming bucket.
	UpcomingDaysMax = 60
)

// Classify maps a whole-day distance to expiry onto exactly one urgency
// bucket. It is total over all integers: every daysLeft lands in one bucket.
func Classify(daysLeft, urgentDaysMax int) Status {
	if urgentDaysMax <= 0 {
		urgentDaysMax = DefaultUrgentDaysMax
	}
	switch {
	case daysLeft < 0:
		return StatusOverdue
	case daysLeft <= urgentDaysMax:
		return StatusUrgent
	case daysLeft <= UpcomingDaysMax:
		return StatusUpcoming
	default:
		return StatusNormal
	}
}

var statusPriority = map[Status]int{
	StatusOverdue:  4,
	StatusUrgent:   3,
	StatusUpcoming: 2,
	StatusNormal:   1,
	StatusNone:     0,
}

// Worse returns the higher-priority of two statuses. A member with any overdue
// vehicle is bucketed overdue even if their other vehicle is fine.
func Worse(a, b Status) Status {
	if statusPriority[b] > statusPriority[a] {
		return b
	}
	return a
}

// Priority exposes the ordering used for worst-case bucketing and
// priority-first sorting.
func Priority(s Status) int {
	return statusPriority[s]
}
