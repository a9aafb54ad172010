package service

import (
	"context"
	"io"
	"time"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/slots"
)

var testLogger = logger.NewWithWriter(io.Discard)

type mockClassifier struct {
	ClassifyInboundFunc func(ctx context.Context, user *model.User, email *model.EmailRecord, sendAt time.Time) (*model.Classification, error)
	ResolveReplyFunc    func(ctx context.Context, user *model.User, replyBody string, proposed []model.TimeSlot) (*model.ReplyDecision, error)
}

func (m *mockClassifier) ClassifyInbound(ctx context.Context, user *model.User, email *model.EmailRecord, sendAt time.Time) (*model.Classification, error) {
	if m.ClassifyInboundFunc != nil {
		return m.ClassifyInboundFunc(ctx, user, email, sendAt)
	}
	return &model.Classification{IsDemoRequest: false, Confidence: 0.9}, nil
}

func (m *mockClassifier) ResolveReply(ctx context.Context, user *model.User, replyBody string, proposed []model.TimeSlot) (*model.ReplyDecision, error) {
	if m.ResolveReplyFunc != nil {
		return m.ResolveReplyFunc(ctx, user, replyBody, proposed)
	}
	return &model.ReplyDecision{CreateEvent: false, SlotIndex: -1}, nil
}

type mockCalendarClient struct {
	ListBusyIntervalsFunc func(ctx context.Context, userEmail string, from, to time.Time) ([]slots.Interval, error)
	CreateEventFunc       func(ctx context.Context, userEmail string, event *model.CalendarEventRecord) (string, string, error)

	createdEvents int
}

func (m *mockCalendarClient) ListBusyIntervals(ctx context.Context, userEmail string, from, to time.Time) ([]slots.Interval, error) {
	if m.ListBusyIntervalsFunc != nil {
		return m.ListBusyIntervalsFunc(ctx, userEmail, from, to)
	}
	return nil, nil
}

func (m *mockCalendarClient) CreateEvent(ctx context.Context, userEmail string, event *model.CalendarEventRecord) (string, string, error) {
	m.createdEvents++
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, userEmail, event)
	}
	return "provider-event-1", "primary", nil
}

type mockNotifier struct {
	notifications []*ResponseNotification
	err           error
}

func (m *mockNotifier) NotifyResponseCreated(ctx context.Context, n *ResponseNotification) error {
	m.notifications = append(m.notifications, n)
	return m.err
}

func testUser() *model.User {
	return &model.User{
		ID:       "user-1",
		Email:    "owner@example.com",
		Name:     "Olive Owner",
		Timezone: "UTC",
	}
}

func testSlots() []model.TimeSlot {
	base := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	return []model.TimeSlot{
		{Start: base, End: base.Add(30 * time.Minute), Label: "Tuesday, Jun 3 at 10:00 AM - 10:30 AM"},
		{Start: base.AddDate(0, 0, 1), End: base.AddDate(0, 0, 1).Add(30 * time.Minute), Label: "Wednesday, Jun 4 at 10:00 AM - 10:30 AM"},
	}
}
