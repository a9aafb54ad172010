package gmail

import (
	"context"
	"time"

	"meetingbot/internal/model"
	"meetingbot/internal/service"
)

// MockMailClient is a mock implementation of MailClient for testing
type MockMailClient struct {
	ListMessagesAfterFunc func(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error)
	SendReplyFunc         func(ctx context.Context, userEmail string, reply *service.OutgoingReply) (string, error)

	SentReplies []*service.OutgoingReply
}

func NewMockMailClient() *MockMailClient {
	return &MockMailClient{}
}

func (m *MockMailClient) ListMessagesAfter(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error) {
	if m.ListMessagesAfterFunc != nil {
		return m.ListMessagesAfterFunc(ctx, userEmail, maxResults, after)
	}

	// Default mock behavior: no new mail
	return []*model.EmailRecord{}, nil
}

func (m *MockMailClient) SendReply(ctx context.Context, userEmail string, reply *service.OutgoingReply) (string, error) {
	m.SentReplies = append(m.SentReplies, reply)
	if m.SendReplyFunc != nil {
		return m.SendReplyFunc(ctx, userEmail, reply)
	}

	// Default mock behavior: success with a stable id
	return "sent-message-id", nil
}
