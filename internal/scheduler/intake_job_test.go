package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetingbot/internal/ai"
	"meetingbot/internal/gmail"
	"meetingbot/internal/model"
	"meetingbot/internal/repository/memory"
	"meetingbot/internal/service"

	"github.com/stretchr/testify/assert"
)

type intakeJobFixture struct {
	userRepo     *memory.InMemoryUserRepository
	emailRepo    *memory.InMemoryEmailRecordRepository
	responseRepo *memory.InMemoryScheduledResponseRepository
	mail         *gmail.MockMailClient
	job          *IntakeJob
}

func newIntakeJobFixture() *intakeJobFixture {
	userRepo := memory.NewInMemoryUserRepository()
	emailRepo := memory.NewInMemoryEmailRecordRepository()
	responseRepo := memory.NewInMemoryScheduledResponseRepository()
	eventRepo := memory.NewInMemoryCalendarEventRepository()
	mail := gmail.NewMockMailClient()

	classifier := ai.NewMockClassifier()
	responseService := service.NewResponseService(responseRepo, time.Hour, nil, "http://localhost:8080", testLogger)
	replyService := service.NewReplyService(eventRepo, classifier, nil, testLogger)
	intakeService := service.NewIntakeService(
		emailRepo, responseRepo, responseService, replyService,
		classifier, time.Hour, testLogger)

	return &intakeJobFixture{
		userRepo:     userRepo,
		emailRepo:    emailRepo,
		responseRepo: responseRepo,
		mail:         mail,
		job:          NewIntakeJob(intakeService, userRepo, emailRepo, mail, 10, testLogger),
	}
}

func connectedUser(email string) *model.User {
	return model.NewUser("google-"+email, email, "Test User", "token", "refresh", time.Now().Add(time.Hour))
}

func TestIntakePassIngestsNewMail(t *testing.T) {
	f := newIntakeJobFixture()
	user := connectedUser("owner@example.com")
	assert.NoError(t, f.userRepo.Create(context.Background(), user))

	f.mail.ListMessagesAfterFunc = func(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error) {
		assert.Equal(t, "owner@example.com", userEmail)
		assert.Equal(t, int64(10), maxResults)
		return []*model.EmailRecord{
			model.NewEmailRecord("", "msg-1", "thread-1",
				"prospect@example.com", userEmail,
				"Question", "What does your product cost?", time.Now()),
		}, nil
	}

	f.job.RunPass(context.Background())

	stored, err := f.emailRepo.FindByMessageID(context.Background(), user.ID, "msg-1")
	assert.NoError(t, err)
	assert.Equal(t, model.EmailStatusCompleted, stored.Status)
}

func TestIntakePassUsesStoredCursor(t *testing.T) {
	f := newIntakeJobFixture()
	user := connectedUser("owner@example.com")
	assert.NoError(t, f.userRepo.Create(context.Background(), user))

	newest := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	older := model.NewEmailRecord(user.ID, "msg-old", "thread-0",
		"prospect@example.com", user.Email, "old", "old", newest.Add(-time.Hour))
	latest := model.NewEmailRecord(user.ID, "msg-new", "thread-0",
		"prospect@example.com", user.Email, "new", "new", newest)
	assert.NoError(t, f.emailRepo.Create(context.Background(), older))
	assert.NoError(t, f.emailRepo.Create(context.Background(), latest))

	var cursor time.Time
	f.mail.ListMessagesAfterFunc = func(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error) {
		cursor = after
		return nil, nil
	}

	f.job.RunPass(context.Background())

	assert.Equal(t, newest, cursor)
}

func TestIntakePassSkipsDisconnectedUsers(t *testing.T) {
	f := newIntakeJobFixture()
	disconnected := connectedUser("gone@example.com")
	disconnected.AccessToken = ""
	assert.NoError(t, f.userRepo.Create(context.Background(), disconnected))

	called := false
	f.mail.ListMessagesAfterFunc = func(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error) {
		called = true
		return nil, nil
	}

	f.job.RunPass(context.Background())

	assert.False(t, called)
}

func TestIntakePassOneUsersFetchFailureDoesNotBlockOthers(t *testing.T) {
	f := newIntakeJobFixture()
	broken := connectedUser("broken@example.com")
	healthy := connectedUser("healthy@example.com")
	assert.NoError(t, f.userRepo.Create(context.Background(), broken))
	assert.NoError(t, f.userRepo.Create(context.Background(), healthy))

	f.mail.ListMessagesAfterFunc = func(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error) {
		if userEmail == "broken@example.com" {
			return nil, errors.New("token revoked")
		}
		return []*model.EmailRecord{
			model.NewEmailRecord("", "msg-1", "thread-1",
				"prospect@example.com", userEmail,
				"Hello", "Just saying hi.", time.Now()),
		}, nil
	}

	f.job.RunPass(context.Background())

	stored, err := f.emailRepo.FindByMessageID(context.Background(), healthy.ID, "msg-1")
	assert.NoError(t, err)
	assert.NotNil(t, stored)
}
