package app

import (
	"context"
	"fmt"
	"testing"

	"coop_renewal_service/internal/domain/member"
	"coop_renewal_service/internal/domain/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationFixture() (*NotificationService, *fakeNotifyRepo, *fakeMemberRepo) {
	notifyRepo := &fakeNotifyRepo{}
	memberRepo := &fakeMemberRepo{vehicles: map[int64][]*member.Vehicle{}}
	svc := NewNotificationService(notifyRepo, memberRepo, testLogger())
	return svc, notifyRepo, memberRepo
}

func TestCreateNotification_Defaults(t *testing.T) {
	svc, notifyRepo, _ := newNotificationFixture()
	now := date(2025, 9, 1)

	n, err := svc.Create(context.Background(), CreateNotificationParams{
		RecipientID: 7,
		Title:       "Renewal approved",
		Message:     "Your franchise renewal for ABC-111 was approved.",
		Category:    notify.CategoryRenewal,
	}, now)
	require.NoError(t, err)
	require.Len(t, notifyRepo.created, 1)
	assert.Equal(t, notify.PriorityNormal, n.Priority)
	assert.False(t, n.ExpiresAt.Valid)
	assert.False(t, n.ActionURL.Valid)
}

func TestCreateNotification_OptionalFields(t *testing.T) {
	svc, _, _ := newNotificationFixture()
	now := date(2025, 9, 1)

	n, err := svc.Create(context.Background(), CreateNotificationParams{
		RecipientID:       7,
		Title:             "Franchise expiring soon",
		Message:           "ABC-111 expires in 9 days.",
		Category:          notify.CategoryRenewal,
		Priority:          notify.PriorityUrgent,
		ActionURL:         "/renewals/1",
		ActionText:        "View renewal",
		CreatedByID:       3,
		RelatedObjectType: "vehicle",
		RelatedObjectID:   1,
		ExpiresInDays:     14,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, notify.PriorityUrgent, n.Priority)
	assert.Equal(t, "/renewals/1", n.ActionURL.String)
	assert.Equal(t, int64(3), n.CreatedByID.Int64)
	assert.Equal(t, "vehicle", n.RelatedObjectType.String)
	assert.Equal(t, date(2025, 9, 15), n.ExpiresAt.Time)
}

func TestNotifyAllStaff_FanOut(t *testing.T) {
	svc, notifyRepo, memberRepo := newNotificationFixture()
	memberRepo.staff = []*member.StaffUser{{ID: 1}, {ID: 2}, {ID: 3}}

	created, err := svc.NotifyAllStaff(context.Background(), CreateNotificationParams{
		Title:    "Pending uploads",
		Message:  "4 member uploads await review.",
		Category: notify.CategorySystem,
	}, date(2025, 9, 1))
	require.NoError(t, err)
	require.Len(t, created, 3)
	require.Len(t, notifyRepo.created, 3)
	assert.Equal(t, int64(1), notifyRepo.created[0].RecipientID)
	assert.Equal(t, int64(3), notifyRepo.created[2].RecipientID)
}

func TestNotifyAllStaff_NoStaff(t *testing.T) {
	svc, notifyRepo, _ := newNotificationFixture()

	created, err := svc.NotifyAllStaff(context.Background(), CreateNotificationParams{
		Title:    "Pending uploads",
		Category: notify.CategorySystem,
	}, date(2025, 9, 1))
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, notifyRepo.created)
}

func TestNotifyAllStaff_CreateFailureSkipsRecipient(t *testing.T) {
	svc, notifyRepo, memberRepo := newNotificationFixture()
	memberRepo.staff = []*member.StaffUser{{ID: 1}, {ID: 2}}
	notifyRepo.createErr = fmt.Errorf("disk full")

	created, err := svc.NotifyAllStaff(context.Background(), CreateNotificationParams{
		Title:    "Pending uploads",
		Category: notify.CategorySystem,
	}, date(2025, 9, 1))
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestMarkAllRead(t *testing.T) {
	svc, notifyRepo, _ := newNotificationFixture()
	now := date(2025, 9, 1)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateNotificationParams{
			RecipientID: 7,
			Title:       fmt.Sprintf("n%d", i),
			Category:    notify.CategorySystem,
		}, now)
		require.NoError(t, err)
	}

	marked, err := svc.MarkAllRead(context.Background(), 7, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)
	for _, n := range notifyRepo.created {
		assert.True(t, n.IsRead)
	}
}

func TestDeleteOld_DefaultRetention(t *testing.T) {
	svc, _, _ := newNotificationFixture()

	_, err := svc.DeleteOld(context.Background(), 0, date(2025, 9, 1))
	require.NoError(t, err)
}

func TestRecent_DefaultLimit(t *testing.T) {
	svc, _, _ := newNotificationFixture()
	now := date(2025, 9, 1)
	for i := 0; i < 8; i++ {
		_, err := svc.Create(context.Background(), CreateNotificationParams{
			RecipientID: 7,
			Title:       fmt.Sprintf("n%d", i),
			Category:    notify.CategorySystem,
		}, now)
		require.NoError(t, err)
	}

	list, err := svc.Recent(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
