package renewal

import (
	"sort"
	"strings"
	"time"

	"coop_renewal_service/internal/domain/member"
)

// SortOrder selects how the flat renewal rows are ordered. Callers pick one
// explicitly; the two orderings are never mixed.
type SortOrder int

const (
	// SortByDaysLeft orders ascending by days left, most-overdue first.
	// Vehicles without a resolvable expiry sort last.
	SortByDaysLeft SortOrder = iota
	// SortByPriorityThenName orders by urgency bucket (overdue first), then
	// member name, then plate. Used by batch tables.
	SortByPriorityThenName
)

// VehicleRecords pairs a vehicle with its renewal record chain.
type VehicleRecords struct {
	Vehicle *member.Vehicle
	Records []Record
}

// MemberRenewals is one member's slice of the data snapshot an aggregation
// runs over.
type MemberRenewals struct {
	Member   *member.Member
	Vehicles []VehicleRecords
}

// Row is one per-vehicle line in a renewals table. Classification is nil for
// vehicles with no authoritative record; views render those as N/A.
type Row struct {
	MemberID       int64
	MemberName     string
	BatchID        int64
	VehicleID      int64
	PlateNumber    string
	Classification *Classification
}

// Status returns the row's bucket, StatusNone when unresolvable.
func (r Row) Status() Status {
	if r.Classification == nil {
		return StatusNone
	}
	return r.Classification.Status
}

// BucketCounts are per-bucket totals at whatever scope the snapshot covers.
type BucketCounts struct {
	Overdue  int
	Urgent   int
	Upcoming int
	Normal   int
	None     int
}

func (c *BucketCounts) add(s Status) {
	switch s {
	case StatusOverdue:
		c.Overdue++
	case StatusUrgent:
		c.Urgent++
	case StatusUpcoming:
		c.Upcoming++
	case StatusNormal:
		c.Normal++
	default:
		c.None++
	}
}

// MemberBucket is a member's worst-case status across their vehicles.
type MemberBucket struct {
	MemberID   int64
	MemberName string
	Status     Status
}

// Result is the output of one aggregation pass.
type Result struct {
	Rows          []Row
	VehicleCounts BucketCounts
	MemberCounts  BucketCounts
	Members       []MemberBucket
}

// Options tune one aggregation call. Zero values mean: default urgent bound,
// sort by days left, no search filter.
type Options struct {
	UrgentDaysMax int
	Sort          SortOrder
	// Search is a case-insensitive substring matched against member name and
	// plate number. Filtering composes with bucketing: it narrows the rows
	// first, then counts are taken over what remains.
	Search string
}

// Aggregate walks a members -> vehicles -> records snapshot and produces the
// flat row list, per-member worst-case buckets, and bucket counts. It is a
// pure function of the snapshot and today: no record is mutated and two calls
// with the same inputs yield identical results.
func Aggregate(snapshot []MemberRenewals, today time.Time, opts Options) Result {
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	var res Result
	for _, mr := range snapshot {
		if mr.Member == nil {
			continue
		}
		memberStatus := StatusNone
		matchedAny := false
		nameMatches := search == "" || strings.Contains(strings.ToLower(mr.Member.Name), search)

		for _, vr := range mr.Vehicles {
			if vr.Vehicle == nil {
				continue
			}
			if search != "" && !nameMatches &&
				!strings.Contains(strings.ToLower(vr.Vehicle.PlateNumber), search) {
				continue
			}
			matchedAny = true

			cls := ResolveExpiry(vr.Vehicle.ID, vr.Records, today, opts.UrgentDaysMax)
			row := Row{
				MemberID:       mr.Member.ID,
				MemberName:     mr.Member.Name,
				BatchID:        mr.Member.BatchID,
				VehicleID:      vr.Vehicle.ID,
				PlateNumber:    vr.Vehicle.PlateNumber,
				Classification: cls,
			}
			res.Rows = append(res.Rows, row)
			res.VehicleCounts.add(row.Status())
			memberStatus = Worse(memberStatus, row.Status())
		}

		// A member with no vehicles still appears in the member buckets when
		// the search matches their name (or there is no search).
		if !matchedAny && !nameMatches {
			continue
		}
		res.Members = append(res.Members, MemberBucket{
			MemberID:   mr.Member.ID,
			MemberName: mr.Member.Name,
			Status:     memberStatus,
		})
		res.MemberCounts.add(memberStatus)
	}

	sortRows(res.Rows, opts.Sort)
	return res
}

func sortRows(rows []Row, order SortOrder) {
	switch order {
	case SortByPriorityThenName:
		sort.SliceStable(rows, func(i, j int) bool {
			pi, pj := Priority(rows[i].Status()), Priority(rows[j].Status())
			if pi != pj {
				return pi > pj
			}
			if rows[i].MemberName != rows[j].MemberName {
				return rows[i].MemberName < rows[j].MemberName
			}
			return rows[i].PlateNumber < rows[j].PlateNumber
		})
	default: // SortByDaysLeft
		sort.SliceStable(rows, func(i, j int) bool {
			ci, cj := rows[i].Classification, rows[j].Classification
			if ci == nil && cj == nil {
				return rows[i].PlateNumber < rows[j].PlateNumber
			}
			if ci == nil {
				return false
			}
			if cj == nil {
				return true
			}
			if ci.DaysLeft != cj.DaysLeft {
				return ci.DaysLeft < cj.DaysLeft
			}
			return rows[i].PlateNumber < rows[j].PlateNumber
		})
	}
}
