package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coop_renewal_service/internal/domain/member"
	"coop_renewal_service/internal/domain/notify"
	"coop_renewal_service/internal/domain/renewal"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FilterType narrows which classified renewals a bulk dispatch covers.
type FilterType string

const (
	FilterToday     FilterType = "today"
	FilterThisWeek  FilterType = "this_week"
	FilterThisMonth FilterType = "this_month"
	FilterNext60    FilterType = "next_60"
	FilterUrgent    FilterType = "urgent"
	FilterUpcoming  FilterType = "upcoming"
	FilterOverdue   FilterType = "overdue"
	FilterAll       FilterType = "all"
)

// ParseFilterType validates a filter_type request parameter.
func ParseFilterType(raw string) (FilterType, error) {
	switch ft := FilterType(raw); ft {
	case FilterToday, FilterThisWeek, FilterThisMonth, FilterNext60,
		FilterUrgent, FilterUpcoming, FilterOverdue, FilterAll:
		return ft, nil
	default:
		return "", fmt.Errorf("unknown filter_type: %q", raw)
	}
}

// BulkFilter selects the targets of one bulk dispatch.
type BulkFilter struct {
	Type    FilterType
	BatchID int64 // 0 = cooperative-wide
}

// DispatchReport tallies one bulk dispatch run. Sent and Failed are counted
// independently; a run always completes and reports both, even when zero
// vehicles matched.
type DispatchReport struct {
	RunID    string
	Sent     int
	Failed   int
	Outcomes []notify.ReminderOutcome
}

// ReminderService composes and sends renewal reminders: an email per
// member/vehicle plus an in-app notification row on successful delivery.
type ReminderService struct {
	members       member.Repository
	renewalSvc    *RenewalService
	notifications notify.Repository
	mailer        notify.Mailer
	logger        *logrus.Logger
	urgentDaysMax int
}

func NewReminderService(
	mr member.Repository,
	rs *RenewalService,
	nr notify.Repository,
	mailer notify.Mailer,
	logger *logrus.Logger,
	urgentDaysMax int,
) *ReminderService {
	if urgentDaysMax <= 0 {
		urgentDaysMax = renewal.DefaultUrgentDaysMax
	}
	return &ReminderService{
		members:       mr,
		renewalSvc:    rs,
		notifications: nr,
		mailer:        mailer,
		logger:        logger,
		urgentDaysMax: urgentDaysMax,
	}
}

// SendReminder dispatches one reminder. A missing contact address or a
// transport error becomes a failure outcome with a reason; this method never
// returns an error, so bulk loops cannot be aborted by one member.
func (s *ReminderService) SendReminder(ctx context.Context, m *member.Member, v *member.Vehicle, cls *renewal.Classification) notify.ReminderOutcome {
	outcome := notify.ReminderOutcome{MemberID: m.ID, VehicleID: v.ID}

	if !m.Email.Valid || m.Email.String == "" {
		outcome.Detail = "no contact address on file"
		s.logger.Warnf("Reminder skipped for member %d (vehicle %s): %s", m.ID, v.PlateNumber, outcome.Detail)
		return outcome
	}
	if cls == nil {
		outcome.Detail = "vehicle has no authoritative renewal record"
		return outcome
	}

	subject, textBody, htmlBody := composeReminder(m, v, cls)
	if err := s.mailer.Send(m.Email.String, subject, textBody, htmlBody); err != nil {
		outcome.Detail = fmt.Sprintf("email delivery failed: %v", err)
		s.logger.Errorf("Failed to send reminder to member %d (vehicle %s): %v", m.ID, v.PlateNumber, err)
		return outcome
	}

	outcome.Success = true
	outcome.Detail = "sent to " + m.Email.String

	// The in-app copy is a separate write; its failure does not undo the
	// email's success.
	if m.UserID.Valid {
		n := &notify.Notification{
			RecipientID:       m.UserID.Int64,
			Title:             subject,
			Message:           textBody,
			Category:          notify.CategoryRenewal,
			Priority:          notifyPriority(cls.Status),
			ActionURL:         sql.NullString{String: fmt.Sprintf("/vehicles/%d", v.ID), Valid: true},
			ActionText:        sql.NullString{String: "View vehicle", Valid: true},
			RelatedObjectType: sql.NullString{String: "vehicle", Valid: true},
			RelatedObjectID:   sql.NullInt64{Int64: v.ID, Valid: true},
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Errorf("Failed to create in-app notification for member %d: %v", m.ID, err)
		}
	}
	return outcome
}

// SendBulk dispatches reminders for every vehicle matching the filter. The
// loop is sequential and runs to completion: individual failures are tallied,
// never raised. Only a failure to build the base snapshot aborts the run.
func (s *ReminderService) SendBulk(ctx context.Context, filter BulkFilter, today time.Time) (*DispatchReport, error) {
	snapshot, err := s.renewalSvc.Snapshot(ctx, Scope{BatchID: filter.BatchID})
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot for bulk dispatch: %w", err)
	}

	report := &DispatchReport{RunID: uuid.New().String()}
	s.logger.Infof("Bulk reminder run %s started (filter=%s batch=%d)", report.RunID, filter.Type, filter.BatchID)

	for _, mr := range snapshot {
		for _, vr := range mr.Vehicles {
			cls := renewal.ResolveExpiry(vr.Vehicle.ID, vr.Records, today, s.urgentDaysMax)
			if !s.matches(cls, filter.Type, today) {
				continue
			}
			outcome := s.SendReminder(ctx, mr.Member, vr.Vehicle, cls)
			report.Outcomes = append(report.Outcomes, outcome)
			if outcome.Success {
				report.Sent++
			} else {
				report.Failed++
			}
		}
	}

	s.logger.Infof("Bulk reminder run %s finished: sent=%d failed=%d", report.RunID, report.Sent, report.Failed)
	return report, nil
}

// matches applies a dispatch filter to one classification. Vehicles without a
// resolvable expiry never match.
func (s *ReminderService) matches(cls *renewal.Classification, ft FilterType, today time.Time) bool {
	if cls == nil {
		return false
	}
	switch ft {
	case FilterToday:
		return cls.DaysLeft == 0
	case FilterThisWeek:
		return cls.DaysLeft >= 0 && cls.DaysLeft <= 7
	case FilterThisMonth:
		t := renewal.DateOnly(today)
		return cls.ExpiryDate.Year() == t.Year() && cls.ExpiryDate.Month() == t.Month()
	case FilterNext60:
		return cls.DaysLeft >= 0 && cls.DaysLeft <= 60
	case FilterUrgent:
		return cls.Status == renewal.StatusUrgent
	case FilterUpcoming:
		return cls.Status == renewal.StatusUpcoming
	case FilterOverdue:
		return cls.Status == renewal.StatusOverdue
	case FilterAll:
		return true
	default:
		return false
	}
}

func notifyPriority(status renewal.Status) notify.Priority {
	switch status {
	case renewal.StatusOverdue:
		return notify.PriorityUrgent
	case renewal.StatusUrgent:
		return notify.PriorityHigh
	case renewal.StatusUpcoming:
		return notify.PriorityNormal
	default:
		return notify.PriorityLow
	}
}

// composeReminder picks subject and tone from how close the expiry is.
func composeReminder(m *member.Member, v *member.Vehicle, cls *renewal.Classification) (subject, textBody, htmlBody string) {
	expiry := cls.ExpiryDate.Format("January 2, 2006")

	switch {
	case cls.DaysLeft < 0:
		subject = fmt.Sprintf("OVERDUE: Registration for %s expired %s", v.PlateNumber, expiry)
		textBody = fmt.Sprintf(
			"Dear %s,\n\nThe registration for your vehicle %s expired on %s (%d day(s) ago). "+
				"Please settle the renewal at the cooperative office as soon as possible to avoid penalties.\n\n"+
				"- Cooperative Office",
			m.Name, v.PlateNumber, expiry, -cls.DaysLeft)
	case cls.DaysLeft <= 7:
		subject = fmt.Sprintf("Action needed: %s registration expires in %d day(s)", v.PlateNumber, cls.DaysLeft)
		textBody = fmt.Sprintf(
			"Dear %s,\n\nThe registration for your vehicle %s expires on %s — only %d day(s) from now. "+
				"Please renew this week.\n\n- Cooperative Office",
			m.Name, v.PlateNumber, expiry, cls.DaysLeft)
	case cls.DaysLeft <= renewal.DefaultUrgentDaysMax:
		subject = fmt.Sprintf("Reminder: %s registration expires %s", v.PlateNumber, expiry)
		textBody = fmt.Sprintf(
			"Dear %s,\n\nThe registration for your vehicle %s expires on %s (%d day(s) left). "+
				"Please plan your renewal soon.\n\n- Cooperative Office",
			m.Name, v.PlateNumber, expiry, cls.DaysLeft)
	default:
		subject = fmt.Sprintf("Upcoming renewal for %s on %s", v.PlateNumber, expiry)
		textBody = fmt.Sprintf(
			"Dear %s,\n\nThis is an advance notice that the registration for your vehicle %s "+
				"expires on %s (%d day(s) left). No action is needed yet.\n\n- Cooperative Office",
			m.Name, v.PlateNumber, expiry, cls.DaysLeft)
	}

	htmlBody = fmt.Sprintf(
		"<p>Dear %s,</p><p>The registration for vehicle <strong>%s</strong> expires on <strong>%s</strong>.</p>"+
			"<p>Days left: %d</p><p>- Cooperative Office</p>",
		m.Name, v.PlateNumber, expiry, cls.DaysLeft)
	return subject, textBody, htmlBody
}
