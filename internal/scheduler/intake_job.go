package scheduler

import (
	"context"

	"meetingbot/internal/logger"
	"meetingbot/internal/repository"
	"meetingbot/internal/service"
)

// IntakeJob is the slow periodic pass that pulls new mail for every account
// and feeds it through intake. Users are processed in the store's order;
// within one user, messages arrive in the provider's cursor order. One
// message's failure never blocks the rest of the batch.
type IntakeJob struct {
	intakeService service.IntakeService
	userRepo      repository.UserRepository
	emailRepo     repository.EmailRecordRepository
	mailClient    service.MailClient
	maxFetch      int64
	logger        *logger.Logger
}

func NewIntakeJob(
	intakeService service.IntakeService,
	userRepo repository.UserRepository,
	emailRepo repository.EmailRecordRepository,
	mailClient service.MailClient,
	maxFetch int64,
	logger *logger.Logger,
) *IntakeJob {
	return &IntakeJob{
		intakeService: intakeService,
		userRepo:      userRepo,
		emailRepo:     emailRepo,
		mailClient:    mailClient,
		maxFetch:      maxFetch,
		logger:        logger,
	}
}

func (j *IntakeJob) RunPass(ctx context.Context) {
	users, err := j.userRepo.FindAll(ctx)
	if err != nil {
		// Store unreachable: abort the whole pass, the next tick retries.
		j.logger.Error("Failed to list users for intake pass:", err)
		return
	}

	for _, user := range users {
		if user.AccessToken == "" {
			continue
		}

		cursor, err := j.emailRepo.MostRecentReceivedAt(ctx, user.ID)
		if err != nil {
			j.logger.Error("Failed to read ingest cursor for", user.Email, ":", err)
			continue
		}

		messages, err := j.mailClient.ListMessagesAfter(ctx, user.Email, j.maxFetch, cursor)
		if err != nil {
			j.logger.Error("Failed to fetch mail for", user.Email, ":", err)
			continue
		}

		for _, msg := range messages {
			outcome, err := j.intakeService.Ingest(ctx, user, msg)
			if err != nil {
				j.logger.Error("Ingest error for message", msg.MessageID, ":", err)
				continue
			}
			j.logger.Debug("Ingested message", msg.MessageID, "outcome:", string(outcome))
		}
	}
}
