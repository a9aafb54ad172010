package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/repository"
)

type intakeService struct {
	emailRepo       repository.EmailRecordRepository
	responseRepo    repository.ScheduledResponseRepository
	responseService ResponseService
	replyService    ReplyService
	classifier      Classifier
	responseDelay   time.Duration
	logger          *logger.Logger
	now             func() time.Time
}

func NewIntakeService(
	emailRepo repository.EmailRecordRepository,
	responseRepo repository.ScheduledResponseRepository,
	responseService ResponseService,
	replyService ReplyService,
	classifier Classifier,
	responseDelay time.Duration,
	logger *logger.Logger,
) IntakeService {
	return &intakeService{
		emailRepo:       emailRepo,
		responseRepo:    responseRepo,
		responseService: responseService,
		replyService:    replyService,
		classifier:      classifier,
		responseDelay:   responseDelay,
		logger:          logger,
		now:             time.Now,
	}
}

// Ingest processes a single message exactly once. Duplicates are no-ops
// except when the message is a reply on a thread that already has a sent
// response, which is routed to the reply resolver even on re-delivery.
func (s *intakeService) Ingest(ctx context.Context, user *model.User, msg *model.EmailRecord) (IngestOutcome, error) {
	existing, err := s.emailRepo.FindByMessageID(ctx, user.ID, msg.MessageID)
	if err == nil && existing != nil {
		return s.handleDuplicate(ctx, user, existing)
	}

	fromOwner := addressMatches(msg.From, user.Email)
	toOwner := addressMatches(msg.To, user.Email)
	if !fromOwner && !toOwner {
		// Message belongs to neither side of the account. Reject without
		// storing so one account can never pollute another's records.
		s.logger.Warn("Rejected message not addressed to account:", msg.MessageID, "user:", user.Email)
		return OutcomeRejected, nil
	}

	msg.UserID = user.ID
	if fromOwner {
		msg.Direction = model.DirectionOutbound
	} else {
		msg.Direction = model.DirectionInbound
	}

	// Outbound mail is stored as an audit trail only.
	if msg.Direction == model.DirectionOutbound {
		msg.Status = model.EmailStatusCompleted
		if err := s.emailRepo.Create(ctx, msg); err != nil {
			return OutcomeFailed, fmt.Errorf("failed to store outbound message: %w", err)
		}
		return OutcomeOutbound, nil
	}

	if shouldSkipInbound(msg.From, msg.Subject, msg.Body) {
		msg.Status = model.EmailStatusSkipped
		if err := s.emailRepo.Create(ctx, msg); err != nil {
			return OutcomeFailed, fmt.Errorf("failed to store skipped message: %w", err)
		}
		s.logger.Info("Skipped non-actionable message:", msg.MessageID)
		return OutcomeSkipped, nil
	}

	if err := s.emailRepo.Create(ctx, msg); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to store message: %w", err)
	}
	msg.Status = model.EmailStatusProcessing
	if err := s.emailRepo.Update(ctx, msg); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to update message status: %w", err)
	}

	// A new inbound message on a thread we already replied to is a reply,
	// not a fresh demo request.
	sent, err := s.responseRepo.FindSentByThreadID(ctx, user.ID, msg.ThreadID)
	if err == nil && len(sent) > 0 {
		outcome, err := s.replyService.ResolveReply(ctx, user, msg, sent)
		if err != nil {
			s.logger.Error("Failed to resolve reply:", msg.MessageID, err)
			s.markStatus(ctx, msg, model.EmailStatusFailed)
			return OutcomeFailed, nil
		}
		s.markStatus(ctx, msg, model.EmailStatusCompleted)
		if outcome == OutcomeEventCreated {
			return OutcomeReplyHandled, nil
		}
		return outcome, nil
	}

	return s.classify(ctx, user, msg)
}

func (s *intakeService) handleDuplicate(ctx context.Context, user *model.User, existing *model.EmailRecord) (IngestOutcome, error) {
	if existing.Direction != model.DirectionInbound {
		return OutcomeDuplicate, nil
	}
	sent, err := s.responseRepo.FindSentByThreadID(ctx, user.ID, existing.ThreadID)
	if err != nil || len(sent) == 0 {
		s.logger.Debug("Message already ingested, skipping:", existing.MessageID)
		return OutcomeDuplicate, nil
	}
	if _, err := s.replyService.ResolveReply(ctx, user, existing, sent); err != nil {
		s.logger.Error("Failed to resolve reply on duplicate delivery:", existing.MessageID, err)
		return OutcomeFailed, nil
	}
	return OutcomeReplyHandled, nil
}

func (s *intakeService) classify(ctx context.Context, user *model.User, msg *model.EmailRecord) (IngestOutcome, error) {
	// The classifier will resolve proposed slots relative to the moment the
	// drafted response actually goes out, not the moment it is drafted.
	sendAt := s.now().Add(s.responseDelay)

	classification, err := s.classifier.ClassifyInbound(ctx, user, msg, sendAt)
	if err != nil {
		s.logger.Error("Classification failed for message:", msg.MessageID, err)
		s.markStatus(ctx, msg, model.EmailStatusFailed)
		return OutcomeFailed, nil
	}

	if !classification.IsDemoRequest {
		s.markStatus(ctx, msg, model.EmailStatusCompleted)
		return OutcomeNoAction, nil
	}

	msg.IsDemoRequest = true
	if len(classification.Slots) == 0 {
		// No availability in the search window. Normal outcome, nothing to
		// schedule.
		s.logger.Info("Demo request with no available slots, not scheduling:", msg.MessageID)
		s.markStatus(ctx, msg, model.EmailStatusCompleted)
		return OutcomeNoAction, nil
	}

	response, err := s.responseService.CreateScheduled(ctx, user, msg, classification)
	if err != nil {
		s.logger.Error("Failed to create scheduled response:", msg.MessageID, err)
		s.markStatus(ctx, msg, model.EmailStatusFailed)
		return OutcomeFailed, nil
	}

	msg.ResponseGenerated = true
	msg.ResponseID = response.ID
	s.markStatus(ctx, msg, model.EmailStatusCompleted)
	s.logger.Info("Scheduled response", response.ID, "for message:", msg.MessageID)
	return OutcomeScheduled, nil
}

func (s *intakeService) markStatus(ctx context.Context, msg *model.EmailRecord, status model.EmailStatus) {
	msg.Status = status
	if err := s.emailRepo.Update(ctx, msg); err != nil {
		s.logger.Error("Failed to update message status:", msg.ID, err)
	}
}

// addressMatches reports whether a raw From/To header value refers to the
// given address.
func addressMatches(header, address string) bool {
	if header == "" || address == "" {
		return false
	}
	if parsed, err := mail.ParseAddress(header); err == nil {
		return strings.EqualFold(parsed.Address, address)
	}
	return strings.Contains(strings.ToLower(header), strings.ToLower(address))
}
