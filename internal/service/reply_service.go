package service

import (
	"context"
	"fmt"
	"net/mail"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/repository"
)

type replyService struct {
	eventRepo      repository.CalendarEventRepository
	classifier     Classifier
	calendarClient CalendarClient
	logger         *logger.Logger
}

func NewReplyService(
	eventRepo repository.CalendarEventRepository,
	classifier Classifier,
	calendarClient CalendarClient,
	logger *logger.Logger,
) ReplyService {
	return &replyService{
		eventRepo:      eventRepo,
		classifier:     classifier,
		calendarClient: calendarClient,
		logger:         logger,
	}
}

// ResolveReply inspects a reply on a thread with previously sent responses
// and creates at most one calendar event per (user, thread, attendee).
// Duplicate deliveries and negative or ambiguous replies are normal no-ops.
func (s *replyService) ResolveReply(ctx context.Context, user *model.User, reply *model.EmailRecord, sentResponses []*model.ScheduledResponse) (IngestOutcome, error) {
	attendeeEmail, attendeeName := parseSender(reply.From)
	if attendeeEmail == "" {
		return OutcomeNoAction, fmt.Errorf("reply %s has no parseable sender", reply.MessageID)
	}

	// Idempotency gate: one event per thread and attendee, no matter how
	// many times the provider redelivers the reply.
	existing, err := s.eventRepo.FindByThreadAttendee(ctx, user.ID, reply.ThreadID, attendeeEmail)
	if err == nil && existing != nil {
		s.logger.Info("Event already exists for thread", reply.ThreadID, "attendee", attendeeEmail, "- skipping")
		return OutcomeDuplicate, nil
	}

	if len(sentResponses) == 0 {
		return OutcomeNoAction, fmt.Errorf("no sent responses on thread %s", reply.ThreadID)
	}
	// The most recent sent response carries the slots that were offered.
	latest := sentResponses[len(sentResponses)-1]

	decision, err := s.classifier.ResolveReply(ctx, user, reply.Body, latest.Slots)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to resolve reply: %w", err)
	}
	if !decision.CreateEvent {
		s.logger.Info("Reply on thread", reply.ThreadID, "does not confirm a meeting")
		return OutcomeNoAction, nil
	}
	slot, ok := decision.ChosenSlot(latest.Slots)
	if !ok {
		s.logger.Warn("Affirmative reply without a usable time on thread", reply.ThreadID)
		return OutcomeNoAction, nil
	}

	event := model.NewCalendarEventRecord(user.ID, reply.ThreadID, attendeeEmail, attendeeName, slot.Start, slot.End, user.Timezone)
	// Link to the reply's own record; the original outbound record is a
	// different row.
	event.EmailRecordID = reply.ID

	providerEventID, calendarID, err := s.calendarClient.CreateEvent(ctx, user.Email, event)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to create calendar event: %w", err)
	}
	event.ProviderEventID = providerEventID
	event.CalendarID = calendarID

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to persist calendar event: %w", err)
	}

	s.logger.Info("Created calendar event", event.ID, "for thread", reply.ThreadID, "attendee", attendeeEmail)
	return OutcomeEventCreated, nil
}

func parseSender(from string) (email, name string) {
	if parsed, err := mail.ParseAddress(from); err == nil {
		return parsed.Address, parsed.Name
	}
	return from, ""
}
