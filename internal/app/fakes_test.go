package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"coop_renewal_service/internal/domain/carwash"
	"coop_renewal_service/internal/domain/member"
	"coop_renewal_service/internal/domain/notify"
	"coop_renewal_service/internal/domain/renewal"
	idb "coop_renewal_service/internal/infra/database"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeMemberRepo struct {
	members  []*member.Member
	vehicles map[int64][]*member.Vehicle // by member id
	staff    []*member.StaffUser

	listErr error
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id int64) (*member.Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, idb.ErrMemberNotFound
}

func (f *fakeMemberRepo) ListActive(_ context.Context) ([]*member.Member, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.members, nil
}

func (f *fakeMemberRepo) ListByBatch(_ context.Context, batchID int64) ([]*member.Member, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*member.Member, 0)
	for _, m := range f.members {
		if m.BatchID == batchID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) GetVehicleByID(_ context.Context, id int64) (*member.Vehicle, error) {
	for _, vehicles := range f.vehicles {
		for _, v := range vehicles {
			if v.ID == id {
				return v, nil
			}
		}
	}
	return nil, idb.ErrVehicleNotFound
}

func (f *fakeMemberRepo) ListVehiclesByMember(_ context.Context, memberID int64) ([]*member.Vehicle, error) {
	return f.vehicles[memberID], nil
}

func (f *fakeMemberRepo) GetBatchByID(_ context.Context, id int64) (*member.Batch, error) {
	return &member.Batch{ID: id, Number: fmt.Sprintf("B-%d", id)}, nil
}

func (f *fakeMemberRepo) ListActiveStaff(_ context.Context) ([]*member.StaffUser, error) {
	return f.staff, nil
}

type fakeRenewalRepo struct {
	records map[int64][]renewal.Record // by vehicle id
	pending int

	created   []*renewal.Record
	createErr error
}

func (f *fakeRenewalRepo) ListByVehicle(_ context.Context, vehicleID int64) ([]renewal.Record, error) {
	return f.records[vehicleID], nil
}

func (f *fakeRenewalRepo) ListByVehicles(_ context.Context, vehicleIDs []int64) (map[int64][]renewal.Record, error) {
	out := make(map[int64][]renewal.Record, len(vehicleIDs))
	for _, id := range vehicleIDs {
		if recs, ok := f.records[id]; ok {
			out[id] = recs
		}
	}
	return out, nil
}

func (f *fakeRenewalRepo) Create(_ context.Context, rec *renewal.Record) error {
	if f.createErr != nil {
		return f.createErr
	}
	rec.ID = int64(len(f.created) + 1000)
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeRenewalRepo) CountPending(_ context.Context) (int, error) {
	return f.pending, nil
}

type fakeCarwashRepo struct {
	counts    map[int64][12]int // by member id
	policy    *carwash.YearPolicy
	usage     []carwash.ServiceTypeUsage
	countsErr map[int64]error
}

func (f *fakeCarwashRepo) MonthlyCounts(_ context.Context, memberID int64, _ int) ([12]int, error) {
	if err := f.countsErr[memberID]; err != nil {
		return [12]int{}, err
	}
	return f.counts[memberID], nil
}

func (f *fakeCarwashRepo) YearPolicy(_ context.Context, year int) (*carwash.YearPolicy, error) {
	if f.policy == nil || f.policy.Year != year {
		return nil, idb.ErrPolicyNotFound
	}
	return f.policy, nil
}

func (f *fakeCarwashRepo) ServiceTypeUsage(_ context.Context, _ int) ([]carwash.ServiceTypeUsage, error) {
	return f.usage, nil
}

type fakeNotifyRepo struct {
	created   []*notify.Notification
	createErr error
	unread    int
}

func (f *fakeNotifyRepo) Create(_ context.Context, n *notify.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	n.ID = int64(len(f.created) + 1)
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotifyRepo) UnreadCount(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.unread, nil
}

func (f *fakeNotifyRepo) MarkAllRead(_ context.Context, _ int64, _ time.Time) (int64, error) {
	marked := int64(0)
	for _, n := range f.created {
		if !n.IsRead {
			n.IsRead = true
			marked++
		}
	}
	return marked, nil
}

func (f *fakeNotifyRepo) DeleteOldRead(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeNotifyRepo) ListRecent(_ context.Context, _ int64, limit int) ([]*notify.Notification, error) {
	if len(f.created) > limit {
		return f.created[:limit], nil
	}
	return f.created, nil
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]error // by recipient address
}

type sentMail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (f *fakeMailer) Send(to, subject, textBody, htmlBody string) error {
	if err := f.failFor[to]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Text: textBody, HTML: htmlBody})
	return nil
}
