package repository

import (
	"context"
	"time"

	"meetingbot/internal/model"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// EmailRecordRepository defines the interface for email record operations.
// FindByMessageID is the deduplication gate for ingestion.
type EmailRecordRepository interface {
	Create(ctx context.Context, email *model.EmailRecord) error
	FindByID(ctx context.Context, id string) (*model.EmailRecord, error)
	FindByMessageID(ctx context.Context, userID, messageID string) (*model.EmailRecord, error)
	FindByThreadID(ctx context.Context, userID, threadID string) ([]*model.EmailRecord, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.EmailRecord, error)
	MostRecentReceivedAt(ctx context.Context, userID string) (time.Time, error)
	CountByStatusSince(ctx context.Context, userID string, since time.Time) (map[model.EmailStatus]int, error)
	Update(ctx context.Context, email *model.EmailRecord) error
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// ScheduledResponseRepository defines the interface for scheduled response
// operations. FindDueScheduled returns the single least-recently-scheduled
// due response, which gives the send scheduler FIFO-by-due-time fairness.
type ScheduledResponseRepository interface {
	Create(ctx context.Context, response *model.ScheduledResponse) error
	FindByID(ctx context.Context, id string) (*model.ScheduledResponse, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.ScheduledResponse, error)
	FindSentByThreadID(ctx context.Context, userID, threadID string) ([]*model.ScheduledResponse, error)
	FindDueScheduled(ctx context.Context, now time.Time) (*model.ScheduledResponse, error)
	CountByStatusSince(ctx context.Context, userID string, since time.Time) (map[model.ResponseStatus]int, error)
	Update(ctx context.Context, response *model.ScheduledResponse) error
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// CalendarEventRepository defines the interface for calendar event record
// operations. FindByThreadAttendee is the reply resolver's idempotency gate.
type CalendarEventRepository interface {
	Create(ctx context.Context, event *model.CalendarEventRecord) error
	FindByID(ctx context.Context, id string) (*model.CalendarEventRecord, error)
	FindByProviderID(ctx context.Context, providerEventID, calendarID string) (*model.CalendarEventRecord, error)
	FindByThreadAttendee(ctx context.Context, userID, threadID, attendeeEmail string) (*model.CalendarEventRecord, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.CalendarEventRecord, error)
	Update(ctx context.Context, event *model.CalendarEventRecord) error
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
