package scheduler

import (
	"context"
	"fmt"
	"time"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/repository"
	"meetingbot/internal/service"
)

// SendJob dispatches due scheduled responses, one per pass, under the global
// rate limit. It always picks the single most overdue SCHEDULED response,
// giving FIFO-by-due-time fairness.
type SendJob struct {
	responseRepo repository.ScheduledResponseRepository
	emailRepo    repository.EmailRecordRepository
	userRepo     repository.UserRepository
	mailClient   service.MailClient
	limiter      *RateLimiter
	staleness    time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

func NewSendJob(
	responseRepo repository.ScheduledResponseRepository,
	emailRepo repository.EmailRecordRepository,
	userRepo repository.UserRepository,
	mailClient service.MailClient,
	limiter *RateLimiter,
	staleness time.Duration,
	logger *logger.Logger,
) *SendJob {
	return &SendJob{
		responseRepo: responseRepo,
		emailRepo:    emailRepo,
		userRepo:     userRepo,
		mailClient:   mailClient,
		limiter:      limiter,
		staleness:    staleness,
		logger:       logger,
		now:          time.Now,
	}
}

// RunPass executes one scheduler pass. Expiring a stale response does not
// consume the rate-limit interval; a dispatch attempt does, whether the send
// succeeded or failed.
func (j *SendJob) RunPass(ctx context.Context) {
	now := j.now()

	if !j.limiter.Ready(now) {
		return
	}

	response, err := j.responseRepo.FindDueScheduled(ctx, now)
	if err != nil {
		j.logger.Error("Failed to query due responses:", err)
		return
	}
	if response == nil {
		return
	}

	if now.Sub(response.CreatedAt) > j.staleness {
		j.expire(ctx, response, now)
		return
	}

	j.dispatch(ctx, response, now)
}

func (j *SendJob) expire(ctx context.Context, response *model.ScheduledResponse, now time.Time) {
	reason := fmt.Sprintf("created %s ago, past staleness bound of %s; proposed slots are likely invalid",
		now.Sub(response.CreatedAt).Round(time.Minute), j.staleness)
	if err := response.MarkExpired(reason); err != nil {
		j.logger.Error("Failed to expire response:", response.ID, err)
		return
	}
	if err := j.responseRepo.Update(ctx, response); err != nil {
		j.logger.Error("Failed to persist expired response:", response.ID, err)
		return
	}
	j.logger.Warn("Expired stale response:", response.ID, reason)
}

func (j *SendJob) dispatch(ctx context.Context, response *model.ScheduledResponse, now time.Time) {
	// Success or failure, the attempt consumes the interval.
	defer j.limiter.RecordDispatch(now)

	reply := &service.OutgoingReply{
		To:       response.RecipientEmail,
		Subject:  response.Subject,
		Body:     response.Body,
		ThreadID: response.ThreadID,
	}

	user, err := j.userRepo.FindByID(ctx, response.UserID)
	if err != nil {
		j.fail(ctx, response, fmt.Sprintf("owning user not found: %v", err))
		return
	}

	// Thread the reply onto the original message when we still have it.
	var original *model.EmailRecord
	if response.EmailRecordID != "" {
		if rec, err := j.emailRepo.FindByID(ctx, response.EmailRecordID); err == nil {
			original = rec
			reply.InReplyTo = rec.HeaderMessageID
		}
	}

	sentMessageID, err := j.mailClient.SendReply(ctx, user.Email, reply)
	if err != nil {
		j.fail(ctx, response, fmt.Sprintf("dispatch failed: %v", err))
		return
	}

	if err := response.MarkSent(sentMessageID, now); err != nil {
		j.logger.Error("Failed to mark response sent:", response.ID, err)
		return
	}
	if err := j.responseRepo.Update(ctx, response); err != nil {
		j.logger.Error("Failed to persist sent response:", response.ID, err)
		return
	}

	if original != nil {
		original.ResponseSent = true
		if err := j.emailRepo.Update(ctx, original); err != nil {
			j.logger.Error("Failed to flag original email as responded:", original.ID, err)
		}
	}

	j.logger.Info("Sent response", response.ID, "as message", sentMessageID)
}

func (j *SendJob) fail(ctx context.Context, response *model.ScheduledResponse, reason string) {
	if err := response.MarkFailed(reason); err != nil {
		j.logger.Error("Failed to mark response failed:", response.ID, err)
		return
	}
	if err := j.responseRepo.Update(ctx, response); err != nil {
		j.logger.Error("Failed to persist failed response:", response.ID, err)
		return
	}
	j.logger.Error("Response dispatch failed:", response.ID, reason)
}
