package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "DRAFT"
	ResponseStatusEditing   ResponseStatus = "EDITING"
	ResponseStatusScheduled ResponseStatus = "SCHEDULED"
	ResponseStatusSent      ResponseStatus = "SENT"
	ResponseStatusCancelled ResponseStatus = "CANCELLED"
	ResponseStatusFailed    ResponseStatus = "FAILED"
	ResponseStatusExpired   ResponseStatus = "EXPIRED"
)

var ErrInvalidTransition = errors.New("invalid response status transition")

// TimeSlot is one proposed meeting interval. Start/End are half-open:
// a slot occupies [Start, End).
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// ScheduledResponse is a drafted reply tied to the EmailRecord that triggered
// it. It is the unit the send scheduler dequeues: ScheduledAt is only
// meaningful while the status is SCHEDULED.
type ScheduledResponse struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	EmailRecordID  string         `json:"email_record_id"`
	ThreadID       string         `json:"thread_id"`
	RecipientEmail string         `json:"recipient_email"`
	RecipientName  string         `json:"recipient_name"`
	Subject        string         `json:"subject"`
	Body           string         `json:"body"`
	Slots          []TimeSlot     `json:"slots"`
	ScheduledAt    time.Time      `json:"scheduled_at"`
	Status         ResponseStatus `json:"status"`
	SentAt         time.Time      `json:"sent_at"`
	SentMessageID  string         `json:"sent_message_id"`
	LastEditedAt   time.Time      `json:"last_edited_at"`
	LastEditedBy   string         `json:"last_edited_by"`
	FailureReason  string         `json:"failure_reason"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func NewScheduledResponse(userID, emailRecordID, threadID, recipientEmail, recipientName, subject, body string, slots []TimeSlot) *ScheduledResponse {
	now := time.Now()
	return &ScheduledResponse{
		ID:             uuid.New().String(),
		UserID:         userID,
		EmailRecordID:  emailRecordID,
		ThreadID:       threadID,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		Body:           body,
		Slots:          slots,
		Status:         ResponseStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (r *ScheduledResponse) IsTerminal() bool {
	switch r.Status {
	case ResponseStatusSent, ResponseStatusCancelled, ResponseStatusFailed, ResponseStatusExpired:
		return true
	}
	return false
}

// Schedule moves a DRAFT or EDITING response into the sendable state.
func (r *ScheduledResponse) Schedule(at time.Time) error {
	if r.Status != ResponseStatusDraft && r.Status != ResponseStatusEditing {
		return ErrInvalidTransition
	}
	r.Status = ResponseStatusScheduled
	r.ScheduledAt = at
	r.UpdatedAt = time.Now()
	return nil
}

// BeginEdit takes a SCHEDULED response out of the send queue while a human
// edits it.
func (r *ScheduledResponse) BeginEdit() error {
	if r.Status != ResponseStatusScheduled {
		return ErrInvalidTransition
	}
	r.Status = ResponseStatusEditing
	r.UpdatedAt = time.Now()
	return nil
}

// SaveEdit applies the edited fields and returns the response to SCHEDULED.
func (r *ScheduledResponse) SaveEdit(subject, body string, slots []TimeSlot, scheduledAt time.Time, editor string) error {
	if r.Status != ResponseStatusEditing {
		return ErrInvalidTransition
	}
	r.Subject = subject
	r.Body = body
	if slots != nil {
		r.Slots = slots
	}
	now := time.Now()
	r.LastEditedAt = now
	r.LastEditedBy = editor
	r.Status = ResponseStatusScheduled
	if !scheduledAt.IsZero() {
		r.ScheduledAt = scheduledAt
	}
	r.UpdatedAt = now
	return nil
}

// Cancel is allowed from any non-terminal state.
func (r *ScheduledResponse) Cancel() error {
	if r.IsTerminal() {
		return ErrInvalidTransition
	}
	r.Status = ResponseStatusCancelled
	r.UpdatedAt = time.Now()
	return nil
}

func (r *ScheduledResponse) MarkSent(sentMessageID string, at time.Time) error {
	if r.Status != ResponseStatusScheduled {
		return ErrInvalidTransition
	}
	r.Status = ResponseStatusSent
	r.SentAt = at
	r.SentMessageID = sentMessageID
	r.UpdatedAt = time.Now()
	return nil
}

func (r *ScheduledResponse) MarkFailed(reason string) error {
	if r.Status != ResponseStatusScheduled {
		return ErrInvalidTransition
	}
	r.Status = ResponseStatusFailed
	r.FailureReason = reason
	r.UpdatedAt = time.Now()
	return nil
}

func (r *ScheduledResponse) MarkExpired(reason string) error {
	if r.Status != ResponseStatusScheduled {
		return ErrInvalidTransition
	}
	r.Status = ResponseStatusExpired
	r.FailureReason = reason
	r.UpdatedAt = time.Now()
	return nil
}
