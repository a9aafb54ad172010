package model

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// CalendarEventRecord mirrors a meeting created on the external calendar.
// (ProviderEventID, CalendarID) is unique; the reply resolver additionally
// enforces at most one event per (user, thread, attendee email) so duplicate
// reply deliveries never create a second meeting.
type CalendarEventRecord struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	ProviderEventID string      `json:"provider_event_id"`
	CalendarID      string      `json:"calendar_id"`
	EmailRecordID   string      `json:"email_record_id"`
	ThreadID        string      `json:"thread_id"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
	Timezone        string      `json:"timezone"`
	AttendeeEmail   string      `json:"attendee_email"`
	AttendeeName    string      `json:"attendee_name"`
	Status          EventStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func NewCalendarEventRecord(userID, threadID, attendeeEmail, attendeeName string, start, end time.Time, timezone string) *CalendarEventRecord {
	now := time.Now()
	return &CalendarEventRecord{
		ID:            uuid.New().String(),
		UserID:        userID,
		ThreadID:      threadID,
		AttendeeEmail: attendeeEmail,
		AttendeeName:  attendeeName,
		StartTime:     start,
		EndTime:       end,
		Timezone:      timezone,
		Status:        EventStatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
