package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestResponse() *ScheduledResponse {
	return NewScheduledResponse(
		"user-1", "email-1", "thread-1",
		"prospect@example.com", "Pat Prospect",
		"Re: Demo", "Happy to show you around.",
		[]TimeSlot{{Start: time.Now().Add(24 * time.Hour), End: time.Now().Add(25 * time.Hour), Label: "tomorrow"}},
	)
}

func TestScheduleFromDraft(t *testing.T) {
	r := newTestResponse()
	at := time.Now().Add(time.Hour)

	err := r.Schedule(at)

	assert.NoError(t, err)
	assert.Equal(t, ResponseStatusScheduled, r.Status)
	assert.Equal(t, at, r.ScheduledAt)
}

func TestEditCycleReturnsToScheduled(t *testing.T) {
	r := newTestResponse()
	assert.NoError(t, r.Schedule(time.Now().Add(time.Hour)))

	assert.NoError(t, r.BeginEdit())
	assert.Equal(t, ResponseStatusEditing, r.Status)

	newTime := time.Now().Add(2 * time.Hour)
	assert.NoError(t, r.SaveEdit("New subject", "New body", nil, newTime, "owner@example.com"))
	assert.Equal(t, ResponseStatusScheduled, r.Status)
	assert.Equal(t, "New subject", r.Subject)
	assert.Equal(t, "New body", r.Body)
	assert.Equal(t, newTime, r.ScheduledAt)
	assert.Equal(t, "owner@example.com", r.LastEditedBy)
	// nil slots keeps the original proposal
	assert.Len(t, r.Slots, 1)
}

func TestSaveEditKeepsScheduledAtWhenZero(t *testing.T) {
	r := newTestResponse()
	at := time.Now().Add(time.Hour)
	assert.NoError(t, r.Schedule(at))
	assert.NoError(t, r.BeginEdit())

	assert.NoError(t, r.SaveEdit("s", "b", nil, time.Time{}, "owner@example.com"))
	assert.Equal(t, at, r.ScheduledAt)
}

func TestBeginEditRequiresScheduled(t *testing.T) {
	r := newTestResponse()
	assert.ErrorIs(t, r.BeginEdit(), ErrInvalidTransition)
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	draft := newTestResponse()
	assert.NoError(t, draft.Cancel())
	assert.Equal(t, ResponseStatusCancelled, draft.Status)

	scheduled := newTestResponse()
	assert.NoError(t, scheduled.Schedule(time.Now()))
	assert.NoError(t, scheduled.Cancel())

	editing := newTestResponse()
	assert.NoError(t, editing.Schedule(time.Now()))
	assert.NoError(t, editing.BeginEdit())
	assert.NoError(t, editing.Cancel())
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	for _, status := range []ResponseStatus{
		ResponseStatusSent, ResponseStatusCancelled, ResponseStatusFailed, ResponseStatusExpired,
	} {
		r := newTestResponse()
		r.Status = status

		assert.True(t, r.IsTerminal())
		assert.ErrorIs(t, r.Schedule(time.Now()), ErrInvalidTransition)
		assert.ErrorIs(t, r.BeginEdit(), ErrInvalidTransition)
		assert.ErrorIs(t, r.Cancel(), ErrInvalidTransition)
		assert.ErrorIs(t, r.MarkSent("id", time.Now()), ErrInvalidTransition)
		assert.ErrorIs(t, r.MarkFailed("reason"), ErrInvalidTransition)
		assert.ErrorIs(t, r.MarkExpired("reason"), ErrInvalidTransition)
		assert.Equal(t, status, r.Status)
	}
}

func TestMarkSentOnlyFromScheduled(t *testing.T) {
	r := newTestResponse()
	assert.ErrorIs(t, r.MarkSent("id", time.Now()), ErrInvalidTransition)

	assert.NoError(t, r.Schedule(time.Now()))
	at := time.Now()
	assert.NoError(t, r.MarkSent("provider-id", at))
	assert.Equal(t, ResponseStatusSent, r.Status)
	assert.Equal(t, "provider-id", r.SentMessageID)
	assert.Equal(t, at, r.SentAt)
}

func TestMarkExpiredRecordsReason(t *testing.T) {
	r := newTestResponse()
	assert.NoError(t, r.Schedule(time.Now()))

	assert.NoError(t, r.MarkExpired("too old"))
	assert.Equal(t, ResponseStatusExpired, r.Status)
	assert.Equal(t, "too old", r.FailureReason)
	assert.Empty(t, r.SentMessageID)
	assert.True(t, r.SentAt.IsZero())
}

func TestReplyDecisionChosenSlot(t *testing.T) {
	proposed := []TimeSlot{
		{Start: time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 3, 10, 30, 0, 0, time.UTC)},
		{Start: time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 4, 10, 30, 0, 0, time.UTC)},
	}

	byIndex := &ReplyDecision{CreateEvent: true, SlotIndex: 1}
	slot, ok := byIndex.ChosenSlot(proposed)
	assert.True(t, ok)
	assert.Equal(t, proposed[1], slot)

	freeform := &ReplyDecision{
		CreateEvent: true,
		SlotIndex:   -1,
		Start:       time.Date(2025, 6, 5, 14, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 6, 5, 14, 30, 0, 0, time.UTC),
	}
	slot, ok = freeform.ChosenSlot(proposed)
	assert.True(t, ok)
	assert.Equal(t, freeform.Start, slot.Start)

	unusable := &ReplyDecision{CreateEvent: true, SlotIndex: 5}
	_, ok = unusable.ChosenSlot(proposed)
	assert.False(t, ok)
}
