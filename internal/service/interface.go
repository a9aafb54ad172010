package service

import (
	"context"
	"time"

	"meetingbot/internal/model"
	"meetingbot/internal/slots"
)

type AuthService interface {
	GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry interface{}) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// IngestOutcome describes what intake did with a single message.
type IngestOutcome string

const (
	OutcomeDuplicate    IngestOutcome = "duplicate"
	OutcomeReplyHandled IngestOutcome = "reply_handled"
	OutcomeRejected     IngestOutcome = "rejected"
	OutcomeOutbound     IngestOutcome = "outbound"
	OutcomeSkipped      IngestOutcome = "skipped"
	OutcomeScheduled    IngestOutcome = "scheduled"
	OutcomeNoAction     IngestOutcome = "no_action"
	OutcomeEventCreated IngestOutcome = "event_created"
	OutcomeFailed       IngestOutcome = "failed"
)

type IntakeService interface {
	Ingest(ctx context.Context, user *model.User, msg *model.EmailRecord) (IngestOutcome, error)
}

type ResponseService interface {
	GetResponse(ctx context.Context, responseID, userID string) (*model.ScheduledResponse, error)
	GetResponsesByUser(ctx context.Context, userID string) ([]*model.ScheduledResponse, error)
	CreateScheduled(ctx context.Context, user *model.User, email *model.EmailRecord, c *model.Classification) (*model.ScheduledResponse, error)
	UpdateResponse(ctx context.Context, responseID, userID, subject, body string, slotList []model.TimeSlot, scheduledAt time.Time, editor string) (*model.ScheduledResponse, error)
	CancelResponse(ctx context.Context, responseID, userID string) error
	RescheduleResponse(ctx context.Context, responseID, userID string, at time.Time) (*model.ScheduledResponse, error)
}

type ReplyService interface {
	ResolveReply(ctx context.Context, user *model.User, reply *model.EmailRecord, sentResponses []*model.ScheduledResponse) (IngestOutcome, error)
}

type EventService interface {
	GetEventsByUser(ctx context.Context, userID string) ([]*model.CalendarEventRecord, error)
	ConfirmEvent(ctx context.Context, eventID, userID string) (*model.CalendarEventRecord, error)
	CancelEvent(ctx context.Context, eventID, userID string) (*model.CalendarEventRecord, error)
}

// OutgoingReply is a drafted reply handed to the mail collaborator. InReplyTo
// carries the original header message-id so the provider threads it.
type OutgoingReply struct {
	To        string
	Subject   string
	Body      string
	ThreadID  string
	InReplyTo string
}

// MailClient interface for interacting with the mail provider
type MailClient interface {
	ListMessagesAfter(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error)
	SendReply(ctx context.Context, userEmail string, reply *OutgoingReply) (string, error)
}

// CalendarClient interface for interacting with the calendar provider
type CalendarClient interface {
	ListBusyIntervals(ctx context.Context, userEmail string, from, to time.Time) ([]slots.Interval, error)
	CreateEvent(ctx context.Context, userEmail string, event *model.CalendarEventRecord) (eventID, calendarID string, err error)
}

// Classifier interface for the AI collaborator. ClassifyInbound resolves
// proposed time slots itself (via the calendar and slot finder it was built
// with); intake only consumes the result.
type Classifier interface {
	ClassifyInbound(ctx context.Context, user *model.User, email *model.EmailRecord, sendAt time.Time) (*model.Classification, error)
	ResolveReply(ctx context.Context, user *model.User, replyBody string, proposed []model.TimeSlot) (*model.ReplyDecision, error)
}

// ResponseNotification is the structured payload pushed to the optional
// webhook when a response is drafted.
type ResponseNotification struct {
	ResponseID    string           `json:"response_id"`
	ContactName   string           `json:"contact_name"`
	ContactEmail  string           `json:"contact_email"`
	Subject       string           `json:"subject"`
	ScheduledAt   time.Time        `json:"scheduled_at"`
	Slots         []model.TimeSlot `json:"slots"`
	BodyPreview   string           `json:"body_preview"`
	DashboardLink string           `json:"dashboard_link"`
}

// Notifier pushes response notifications to an external messaging webhook.
// A nil or unconfigured notifier is a skipped side effect, not an error.
type Notifier interface {
	NotifyResponseCreated(ctx context.Context, n *ResponseNotification) error
}
