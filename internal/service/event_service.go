package service

import (
	"context"
	"errors"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/repository"
)

type eventService struct {
	eventRepo repository.CalendarEventRepository
	logger    *logger.Logger
}

func NewEventService(eventRepo repository.CalendarEventRepository, logger *logger.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (s *eventService) GetEventsByUser(ctx context.Context, userID string) ([]*model.CalendarEventRecord, error) {
	return s.eventRepo.FindByUserID(ctx, userID)
}

func (s *eventService) ConfirmEvent(ctx context.Context, eventID, userID string) (*model.CalendarEventRecord, error) {
	return s.setStatus(ctx, eventID, userID, model.EventStatusConfirmed)
}

func (s *eventService) CancelEvent(ctx context.Context, eventID, userID string) (*model.CalendarEventRecord, error) {
	return s.setStatus(ctx, eventID, userID, model.EventStatusCancelled)
}

func (s *eventService) setStatus(ctx context.Context, eventID, userID string, status model.EventStatus) (*model.CalendarEventRecord, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, errors.New("calendar event not found")
	}
	event.Status = status
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info("Event", eventID, "status set to", status)
	return event, nil
}
