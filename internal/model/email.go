package model

import (
	"time"

	"github.com/google/uuid"
)

type EmailDirection string

const (
	DirectionInbound  EmailDirection = "INBOUND"
	DirectionOutbound EmailDirection = "OUTBOUND"
)

type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "PENDING"
	EmailStatusProcessing EmailStatus = "PROCESSING"
	EmailStatusSkipped    EmailStatus = "SKIPPED"
	EmailStatusCompleted  EmailStatus = "COMPLETED"
	EmailStatusFailed     EmailStatus = "FAILED"
)

// EmailRecord is one ingested inbound or outbound message. MessageID is the
// provider's message id and is unique per user, which makes re-ingestion of
// the same message a no-op.
type EmailRecord struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	MessageID         string         `json:"message_id"`
	ThreadID          string         `json:"thread_id"`
	HeaderMessageID   string         `json:"header_message_id"`
	From              string         `json:"from"`
	To                string         `json:"to"`
	Subject           string         `json:"subject"`
	Body              string         `json:"body"`
	ReceivedAt        time.Time      `json:"received_at"`
	Direction         EmailDirection `json:"direction"`
	Status            EmailStatus    `json:"status"`
	IsDemoRequest     bool           `json:"is_demo_request"`
	ResponseGenerated bool           `json:"response_generated"`
	ResponseSent      bool           `json:"response_sent"`
	ResponseID        string         `json:"response_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func NewEmailRecord(userID, messageID, threadID, from, to, subject, body string, receivedAt time.Time) *EmailRecord {
	now := time.Now()
	return &EmailRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		MessageID:  messageID,
		ThreadID:   threadID,
		From:       from,
		To:         to,
		Subject:    subject,
		Body:       body,
		ReceivedAt: receivedAt,
		Status:     EmailStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
