package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/repository"
)

type responseService struct {
	responseRepo repository.ScheduledResponseRepository
	delay        time.Duration
	notifier     Notifier
	baseURL      string
	logger       *logger.Logger
	now          func() time.Time
}

func NewResponseService(
	responseRepo repository.ScheduledResponseRepository,
	delay time.Duration,
	notifier Notifier,
	baseURL string,
	logger *logger.Logger,
) ResponseService {
	return &responseService{
		responseRepo: responseRepo,
		delay:        delay,
		notifier:     notifier,
		baseURL:      baseURL,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateScheduled drafts a response from a positive classification and moves
// it straight to SCHEDULED with scheduledAt = now + the configured delay,
// leaving a human window to edit or cancel before the automated send.
func (s *responseService) CreateScheduled(ctx context.Context, user *model.User, email *model.EmailRecord, c *model.Classification) (*model.ScheduledResponse, error) {
	recipientEmail := c.ContactEmail
	recipientName := c.ContactName
	if recipientEmail == "" {
		if parsed, err := mail.ParseAddress(email.From); err == nil {
			recipientEmail = parsed.Address
			if recipientName == "" {
				recipientName = parsed.Name
			}
		} else {
			recipientEmail = email.From
		}
	}

	response := model.NewScheduledResponse(
		user.ID, email.ID, email.ThreadID,
		recipientEmail, recipientName,
		c.ResponseSubject, c.ResponseBody, c.Slots)
	if err := response.Schedule(s.now().Add(s.delay)); err != nil {
		return nil, err
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to create scheduled response: %w", err)
	}

	s.notify(ctx, response)
	return response, nil
}

// notify pushes the optional webhook notification. Failures are logged and
// never fail the creating request.
func (s *responseService) notify(ctx context.Context, response *model.ScheduledResponse) {
	if s.notifier == nil {
		return
	}
	preview := response.Body
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	n := &ResponseNotification{
		ResponseID:    response.ID,
		ContactName:   response.RecipientName,
		ContactEmail:  response.RecipientEmail,
		Subject:       response.Subject,
		ScheduledAt:   response.ScheduledAt,
		Slots:         response.Slots,
		BodyPreview:   preview,
		DashboardLink: s.baseURL + "/api/responses/" + response.ID,
	}
	if err := s.notifier.NotifyResponseCreated(ctx, n); err != nil {
		s.logger.Warn("Webhook notification failed:", err)
	}
}

func (s *responseService) GetResponse(ctx context.Context, responseID, userID string) (*model.ScheduledResponse, error) {
	response, err := s.responseRepo.FindByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if response.UserID != userID {
		return nil, errors.New("scheduled response not found")
	}
	return response, nil
}

func (s *responseService) GetResponsesByUser(ctx context.Context, userID string) ([]*model.ScheduledResponse, error) {
	return s.responseRepo.FindByUserID(ctx, userID)
}

// UpdateResponse applies a user edit: the response transiently leaves the
// send queue (EDITING) and returns to SCHEDULED with the new content.
func (s *responseService) UpdateResponse(ctx context.Context, responseID, userID, subject, body string, slotList []model.TimeSlot, scheduledAt time.Time, editor string) (*model.ScheduledResponse, error) {
	response, err := s.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if err := response.BeginEdit(); err != nil {
		return nil, err
	}
	if err := response.SaveEdit(subject, body, slotList, scheduledAt, editor); err != nil {
		return nil, err
	}
	if err := s.responseRepo.Update(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save edited response: %w", err)
	}
	s.logger.Info("Response edited:", response.ID, "by:", editor)
	return response, nil
}

func (s *responseService) CancelResponse(ctx context.Context, responseID, userID string) error {
	response, err := s.GetResponse(ctx, responseID, userID)
	if err != nil {
		return err
	}
	if err := response.Cancel(); err != nil {
		return err
	}
	if err := s.responseRepo.Update(ctx, response); err != nil {
		return fmt.Errorf("failed to cancel response: %w", err)
	}
	s.logger.Info("Response cancelled:", response.ID)
	return nil
}

// RescheduleResponse moves a SCHEDULED response to a new send time. For a
// FAILED or EXPIRED response the terminal row stays untouched and a fresh
// SCHEDULED copy is created instead, preserving terminal-state immutability.
func (s *responseService) RescheduleResponse(ctx context.Context, responseID, userID string, at time.Time) (*model.ScheduledResponse, error) {
	response, err := s.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}

	switch response.Status {
	case model.ResponseStatusScheduled:
		response.ScheduledAt = at
		response.UpdatedAt = s.now()
		if err := s.responseRepo.Update(ctx, response); err != nil {
			return nil, fmt.Errorf("failed to reschedule response: %w", err)
		}
		return response, nil
	case model.ResponseStatusFailed, model.ResponseStatusExpired:
		clone := model.NewScheduledResponse(
			response.UserID, response.EmailRecordID, response.ThreadID,
			response.RecipientEmail, response.RecipientName,
			response.Subject, response.Body, response.Slots)
		if err := clone.Schedule(at); err != nil {
			return nil, err
		}
		if err := s.responseRepo.Create(ctx, clone); err != nil {
			return nil, fmt.Errorf("failed to create rescheduled response: %w", err)
		}
		s.logger.Info("Rescheduled terminal response", response.ID, "as", clone.ID)
		return clone, nil
	default:
		return nil, model.ErrInvalidTransition
	}
}
