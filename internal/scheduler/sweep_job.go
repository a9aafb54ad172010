package scheduler

import (
	"context"
	"time"

	"meetingbot/internal/logger"
	"meetingbot/internal/repository"
)

// SweepJob is the retention sweep: it removes records older than the
// configured retention window. Nothing else ever deletes records.
type SweepJob struct {
	emailRepo    repository.EmailRecordRepository
	responseRepo repository.ScheduledResponseRepository
	eventRepo    repository.CalendarEventRepository
	retention    time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

func NewSweepJob(
	emailRepo repository.EmailRecordRepository,
	responseRepo repository.ScheduledResponseRepository,
	eventRepo repository.CalendarEventRepository,
	retention time.Duration,
	logger *logger.Logger,
) *SweepJob {
	return &SweepJob{
		emailRepo:    emailRepo,
		responseRepo: responseRepo,
		eventRepo:    eventRepo,
		retention:    retention,
		logger:       logger,
		now:          time.Now,
	}
}

func (j *SweepJob) RunPass(ctx context.Context) {
	cutoff := j.now().Add(-j.retention)

	emails, err := j.emailRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Retention sweep failed for email records:", err)
	}
	responses, err := j.responseRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Retention sweep failed for scheduled responses:", err)
	}
	events, err := j.eventRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Retention sweep failed for calendar events:", err)
	}

	if emails+responses+events > 0 {
		j.logger.Info("Retention sweep removed", emails, "emails,", responses, "responses,", events, "events")
	}
}
