package renewal

import "time"

// Classification is the derived expiry state of one vehicle. It is recomputed
// fresh per request from the underlying records and never persisted.
type Classification struct {
	VehicleID  int64
	ExpiryDate time.Time
	DaysLeft   int
	Status     Status
}

// ResolveExpiry selects the authoritative renewal record for a vehicle and
// projects its date forward to a current expiry. Returns nil when the vehicle
// has no authoritative record with a usable date (status none).
//
// Among qualifying records the latest renewal date wins; equal dates are
// broken by ascending record id so repeated calls are deterministic.
func ResolveExpiry(vehicleID int64, records []Record, today time.Time, urgentDaysMax int) *Classification {
	var best *Record
	for i := range records {
		r := &records[i]
		if !r.Authoritative() || !r.RenewalDate.Valid {
			continue
		}
		if best == nil {
			best = r
			continue
		}
		bd := DateOnly(best.RenewalDate.Time)
		rd := DateOnly(r.RenewalDate.Time)
		if rd.After(bd) || (rd.Equal(bd) && r.ID < best.ID) {
			best = r
		}
	}
	if best == nil {
		return nil
	}

	expiry := NormalizeForward(best.RenewalDate.Time, today, DefaultMaxYearsAhead)
	daysLeft := DaysBetween(today, expiry)
	return &Classification{
		VehicleID:  vehicleID,
		ExpiryDate: expiry,
		DaysLeft:   daysLeft,
		Status:     Classify(daysLeft, urgentDaysMax),
	}
}
