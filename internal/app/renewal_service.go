package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coop_renewal_service/internal/domain/member"
	"coop_renewal_service/internal/domain/renewal"

	"github.com/sirupsen/logrus"
)

// Scope selects which members an aggregation runs over. A zero BatchID means
// cooperative-wide.
type Scope struct {
	BatchID int64
}

// RenewalService consolidates the expiry-resolution logic that used to be
// duplicated across the dashboard, batch-detail, renewals-hub and reminder
// views into one place.
type RenewalService struct {
	members  member.Repository
	renewals renewal.Repository
	logger   *logrus.Logger

	urgentDaysMax      int
	batchUrgentDaysMax int
}

func NewRenewalService(
	mr member.Repository,
	rr renewal.Repository,
	logger *logrus.Logger,
	urgentDaysMax int,
	batchUrgentDaysMax int,
) *RenewalService {
	if urgentDaysMax <= 0 {
		urgentDaysMax = renewal.DefaultUrgentDaysMax
	}
	if batchUrgentDaysMax <= 0 {
		batchUrgentDaysMax = urgentDaysMax
	}
	return &RenewalService{
		members:            mr,
		renewals:           rr,
		logger:             logger,
		urgentDaysMax:      urgentDaysMax,
		batchUrgentDaysMax: batchUrgentDaysMax,
	}
}

// Overview aggregates renewal classifications for the hub and dashboard
// views: cooperative-wide or per batch, with optional search and an explicit
// sort order. A failure to fetch the member list aborts the whole call; the
// per-vehicle resolution itself cannot fail.
func (s *RenewalService) Overview(ctx context.Context, scope Scope, today time.Time, search string, order renewal.SortOrder) (*renewal.Result, error) {
	snapshot, err := s.Snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}

	urgentMax := s.urgentDaysMax
	if scope.BatchID != 0 {
		// Batch tables keep their historical tighter urgent window until the
		// threshold discrepancy is settled with the cooperative.
		urgentMax = s.batchUrgentDaysMax
	}

	res := renewal.Aggregate(snapshot, today, renewal.Options{
		UrgentDaysMax: urgentMax,
		Sort:          order,
		Search:        search,
	})
	return &res, nil
}

// Snapshot fetches the members in scope together with their vehicles and
// renewal record chains. Read-only; safe to call from concurrent requests.
func (s *RenewalService) Snapshot(ctx context.Context, scope Scope) ([]renewal.MemberRenewals, error) {
	var (
		members []*member.Member
		err     error
	)
	if scope.BatchID != 0 {
		members, err = s.members.ListByBatch(ctx, scope.BatchID)
	} else {
		members, err = s.members.ListActive(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list members for renewal snapshot: %w", err)
	}

	snapshot := make([]renewal.MemberRenewals, 0, len(members))
	var vehicleIDs []int64
	vehiclesByMember := make(map[int64][]*member.Vehicle, len(members))
	for _, m := range members {
		vehicles, err := s.members.ListVehiclesByMember(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list vehicles for member %d: %w", m.ID, err)
		}
		vehiclesByMember[m.ID] = vehicles
		for _, v := range vehicles {
			vehicleIDs = append(vehicleIDs, v.ID)
		}
	}

	recordsByVehicle, err := s.renewals.ListByVehicles(ctx, vehicleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list renewal records: %w", err)
	}

	for _, m := range members {
		mr := renewal.MemberRenewals{Member: m}
		for _, v := range vehiclesByMember[m.ID] {
			mr.Vehicles = append(mr.Vehicles, renewal.VehicleRecords{
				Vehicle: v,
				Records: recordsByVehicle[v.ID],
			})
		}
		snapshot = append(snapshot, mr)
	}
	return snapshot, nil
}

// ResolveVehicle classifies a single vehicle's expiry. Returns nil (no error)
// when the vehicle has no authoritative record; views render that as N/A.
func (s *RenewalService) ResolveVehicle(ctx context.Context, vehicleID int64, today time.Time) (*renewal.Classification, error) {
	records, err := s.renewals.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list renewal records for vehicle %d: %w", vehicleID, err)
	}
	return renewal.ResolveExpiry(vehicleID, records, today, s.urgentDaysMax), nil
}

// MarkRenewed records a completed renewal for a vehicle: the latest
// authoritative date advanced one leap-safe year, entered as a staff record.
// A vehicle with no prior authoritative record starts its chain at today.
// The insert is a single atomic write; concurrent renewals of different
// vehicles never conflict.
func (s *RenewalService) MarkRenewed(ctx context.Context, vehicleID int64, today time.Time) (*renewal.Record, error) {
	if _, err := s.members.GetVehicleByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("failed to load vehicle %d: %w", vehicleID, err)
	}

	records, err := s.renewals.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list renewal records for vehicle %d: %w", vehicleID, err)
	}

	newDate := renewal.DateOnly(today)
	if cls := renewal.ResolveExpiry(vehicleID, records, today, s.urgentDaysMax); cls != nil {
		newDate = renewal.AddYearClamped(cls.ExpiryDate)
	}

	rec := &renewal.Record{
		VehicleID:   vehicleID,
		RenewalDate: sql.NullTime{Time: newDate, Valid: true},
		Status:      renewal.StatusApproved,
		Origin:      renewal.ManagerOrigin(),
	}
	if err := s.renewals.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create renewal record for vehicle %d: %w", vehicleID, err)
	}
	s.logger.Infof("Vehicle %d marked renewed through %s (record %d)", vehicleID, newDate.Format("2006-01-02"), rec.ID)
	return rec, nil
}

// PendingCount reports how many member-uploaded records await review. Feeds
// the pending-counts badge on the staff dashboard.
func (s *RenewalService) PendingCount(ctx context.Context) (int, error) {
	n, err := s.renewals.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending renewal records: %w", err)
	}
	return n, nil
}
