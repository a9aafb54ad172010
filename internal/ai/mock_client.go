package ai

import (
	"context"
	"time"

	"meetingbot/internal/model"
	"meetingbot/internal/service"
)

// MockClassifier is a classifier for testing with configurable behavior.
type MockClassifier struct {
	ClassifyInboundFunc func(ctx context.Context, user *model.User, email *model.EmailRecord, sendAt time.Time) (*model.Classification, error)
	ResolveReplyFunc    func(ctx context.Context, user *model.User, replyBody string, proposed []model.TimeSlot) (*model.ReplyDecision, error)
}

func NewMockClassifier() service.Classifier {
	return &MockClassifier{}
}

func (m *MockClassifier) ClassifyInbound(ctx context.Context, user *model.User, email *model.EmailRecord, sendAt time.Time) (*model.Classification, error) {
	if m.ClassifyInboundFunc != nil {
		return m.ClassifyInboundFunc(ctx, user, email, sendAt)
	}
	return &model.Classification{IsDemoRequest: false, Confidence: 0.9}, nil
}

func (m *MockClassifier) ResolveReply(ctx context.Context, user *model.User, replyBody string, proposed []model.TimeSlot) (*model.ReplyDecision, error) {
	if m.ResolveReplyFunc != nil {
		return m.ResolveReplyFunc(ctx, user, replyBody, proposed)
	}
	return &model.ReplyDecision{CreateEvent: false, SlotIndex: -1}, nil
}
