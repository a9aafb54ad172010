package calendar

import (
	"context"
	"fmt"
	"time"

	"meetingbot/internal/model"
	"meetingbot/internal/slots"
)

// MockCalendarClient is a mock implementation of CalendarClient for testing
type MockCalendarClient struct {
	ListBusyIntervalsFunc func(ctx context.Context, userEmail string, from, to time.Time) ([]slots.Interval, error)
	CreateEventFunc       func(ctx context.Context, userEmail string, event *model.CalendarEventRecord) (string, string, error)

	CreatedEvents []*model.CalendarEventRecord
}

func NewMockCalendarClient() *MockCalendarClient {
	return &MockCalendarClient{}
}

func (m *MockCalendarClient) ListBusyIntervals(ctx context.Context, userEmail string, from, to time.Time) ([]slots.Interval, error) {
	if m.ListBusyIntervalsFunc != nil {
		return m.ListBusyIntervalsFunc(ctx, userEmail, from, to)
	}

	// Default mock behavior: a completely free calendar
	return []slots.Interval{}, nil
}

func (m *MockCalendarClient) CreateEvent(ctx context.Context, userEmail string, event *model.CalendarEventRecord) (string, string, error) {
	m.CreatedEvents = append(m.CreatedEvents, event)
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, userEmail, event)
	}

	// Default mock behavior: success with a deterministic id
	return fmt.Sprintf("event-%d", len(m.CreatedEvents)), "primary", nil
}
