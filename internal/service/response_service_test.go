package service

import (
	"context"
	"testing"
	"time"

	"meetingbot/internal/model"
	"meetingbot/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func newResponseFixture(notifier Notifier) (ResponseService, *memory.InMemoryScheduledResponseRepository) {
	repo := memory.NewInMemoryScheduledResponseRepository()
	svc := NewResponseService(repo, time.Hour, notifier, "http://localhost:8080", testLogger)
	return svc, repo
}

func seedScheduled(t *testing.T, repo *memory.InMemoryScheduledResponseRepository, userID string) *model.ScheduledResponse {
	t.Helper()
	r := model.NewScheduledResponse(
		userID, "email-1", "thread-1",
		"prospect@example.com", "Pat Prospect",
		"Re: Demo", "Here are some times.", testSlots())
	assert.NoError(t, r.Schedule(time.Now().Add(time.Hour)))
	assert.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestCreateScheduledMovesStraightToScheduled(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	user := testUser()
	email := inboundDemoRequest(user, "msg-1")

	before := time.Now()
	response, err := svc.CreateScheduled(context.Background(), user, email, positiveClassification())

	assert.NoError(t, err)
	assert.Equal(t, model.ResponseStatusScheduled, response.Status)
	assert.Equal(t, "prospect@example.com", response.RecipientEmail)
	assert.Equal(t, email.ThreadID, response.ThreadID)
	// scheduledAt = now + delay, leaving the human edit window.
	assert.False(t, response.ScheduledAt.Before(before.Add(time.Hour)))

	stored, err := repo.FindByID(context.Background(), response.ID)
	assert.NoError(t, err)
	assert.Equal(t, response.ID, stored.ID)
}

func TestCreateScheduledFallsBackToSenderAddress(t *testing.T) {
	svc, _ := newResponseFixture(nil)
	user := testUser()
	email := inboundDemoRequest(user, "msg-1")

	c := positiveClassification()
	c.ContactEmail = ""
	c.ContactName = ""

	response, err := svc.CreateScheduled(context.Background(), user, email, c)

	assert.NoError(t, err)
	assert.Equal(t, "prospect@example.com", response.RecipientEmail)
	assert.Equal(t, "Pat Prospect", response.RecipientName)
}

func TestCreateScheduledNotifiesWebhook(t *testing.T) {
	notifier := &mockNotifier{}
	svc, _ := newResponseFixture(notifier)
	user := testUser()
	email := inboundDemoRequest(user, "msg-1")

	response, err := svc.CreateScheduled(context.Background(), user, email, positiveClassification())

	assert.NoError(t, err)
	assert.Len(t, notifier.notifications, 1)
	n := notifier.notifications[0]
	assert.Equal(t, response.ID, n.ResponseID)
	assert.Equal(t, "prospect@example.com", n.ContactEmail)
	assert.Contains(t, n.DashboardLink, response.ID)
}

func TestUpdateResponseAppliesEdit(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	seeded := seedScheduled(t, repo, "user-1")

	newTime := time.Now().Add(3 * time.Hour)
	updated, err := svc.UpdateResponse(
		context.Background(), seeded.ID, "user-1",
		"New subject", "New body", nil, newTime, "owner@example.com")

	assert.NoError(t, err)
	assert.Equal(t, model.ResponseStatusScheduled, updated.Status)
	assert.Equal(t, "New subject", updated.Subject)
	assert.Equal(t, newTime, updated.ScheduledAt)
	assert.Equal(t, "owner@example.com", updated.LastEditedBy)
}

func TestUpdateResponseRejectsTerminal(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	seeded := seedScheduled(t, repo, "user-1")
	assert.NoError(t, seeded.MarkSent("provider-id", time.Now()))
	assert.NoError(t, repo.Update(context.Background(), seeded))

	_, err := svc.UpdateResponse(
		context.Background(), seeded.ID, "user-1",
		"s", "b", nil, time.Time{}, "owner@example.com")

	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestUpdateResponseEnforcesOwnership(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	seeded := seedScheduled(t, repo, "user-1")

	_, err := svc.UpdateResponse(
		context.Background(), seeded.ID, "someone-else",
		"s", "b", nil, time.Time{}, "x@example.com")

	assert.Error(t, err)
}

func TestCancelResponse(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	seeded := seedScheduled(t, repo, "user-1")

	assert.NoError(t, svc.CancelResponse(context.Background(), seeded.ID, "user-1"))

	stored, _ := repo.FindByID(context.Background(), seeded.ID)
	assert.Equal(t, model.ResponseStatusCancelled, stored.Status)

	// Terminal now, a second cancel is rejected.
	assert.ErrorIs(t, svc.CancelResponse(context.Background(), seeded.ID, "user-1"), model.ErrInvalidTransition)
}

func TestRescheduleScheduledResponseMovesInPlace(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	seeded := seedScheduled(t, repo, "user-1")

	newTime := time.Now().Add(5 * time.Hour)
	moved, err := svc.RescheduleResponse(context.Background(), seeded.ID, "user-1", newTime)

	assert.NoError(t, err)
	assert.Equal(t, seeded.ID, moved.ID)
	assert.Equal(t, newTime, moved.ScheduledAt)
	assert.Equal(t, model.ResponseStatusScheduled, moved.Status)
}

func TestRescheduleFailedResponseCreatesFreshCopy(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	seeded := seedScheduled(t, repo, "user-1")
	assert.NoError(t, seeded.MarkFailed("dispatch failed"))
	assert.NoError(t, repo.Update(context.Background(), seeded))

	newTime := time.Now().Add(time.Hour)
	revived, err := svc.RescheduleResponse(context.Background(), seeded.ID, "user-1", newTime)

	assert.NoError(t, err)
	assert.NotEqual(t, seeded.ID, revived.ID)
	assert.Equal(t, model.ResponseStatusScheduled, revived.Status)
	assert.Equal(t, seeded.Body, revived.Body)
	assert.Equal(t, newTime, revived.ScheduledAt)

	// The failed row is untouched.
	original, _ := repo.FindByID(context.Background(), seeded.ID)
	assert.Equal(t, model.ResponseStatusFailed, original.Status)
}

func TestRescheduleRejectsSentResponse(t *testing.T) {
	svc, repo := newResponseFixture(nil)
	seeded := seedScheduled(t, repo, "user-1")
	assert.NoError(t, seeded.MarkSent("provider-id", time.Now()))
	assert.NoError(t, repo.Update(context.Background(), seeded))

	_, err := svc.RescheduleResponse(context.Background(), seeded.ID, "user-1", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}
