package scheduler

import (
	"context"
	"testing"
	"time"

	"meetingbot/internal/model"
	"meetingbot/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func TestSweepRemovesOnlyRecordsPastRetention(t *testing.T) {
	emailRepo := memory.NewInMemoryEmailRecordRepository()
	responseRepo := memory.NewInMemoryScheduledResponseRepository()
	eventRepo := memory.NewInMemoryCalendarEventRepository()

	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	oldEmail := model.NewEmailRecord("user-1", "msg-old", "thread-1",
		"a@example.com", "b@example.com", "old", "old", now.AddDate(0, 0, -100))
	oldEmail.CreatedAt = now.AddDate(0, 0, -100)
	freshEmail := model.NewEmailRecord("user-1", "msg-new", "thread-2",
		"a@example.com", "b@example.com", "new", "new", now.AddDate(0, 0, -1))
	freshEmail.CreatedAt = now.AddDate(0, 0, -1)
	assert.NoError(t, emailRepo.Create(context.Background(), oldEmail))
	assert.NoError(t, emailRepo.Create(context.Background(), freshEmail))

	oldResponse := model.NewScheduledResponse("user-1", "", "thread-1",
		"a@example.com", "", "s", "b", nil)
	oldResponse.CreatedAt = now.AddDate(0, 0, -100)
	assert.NoError(t, responseRepo.Create(context.Background(), oldResponse))

	oldEvent := model.NewCalendarEventRecord("user-1", "thread-1",
		"a@example.com", "", now.AddDate(0, 0, -99), now.AddDate(0, 0, -99), "UTC")
	oldEvent.CreatedAt = now.AddDate(0, 0, -100)
	assert.NoError(t, eventRepo.Create(context.Background(), oldEvent))

	job := NewSweepJob(emailRepo, responseRepo, eventRepo, 90*24*time.Hour, testLogger)
	job.now = func() time.Time { return now }

	job.RunPass(context.Background())

	_, err := emailRepo.FindByID(context.Background(), oldEmail.ID)
	assert.Error(t, err)
	_, err = emailRepo.FindByID(context.Background(), freshEmail.ID)
	assert.NoError(t, err)
	_, err = responseRepo.FindByID(context.Background(), oldResponse.ID)
	assert.Error(t, err)
	_, err = eventRepo.FindByID(context.Background(), oldEvent.ID)
	assert.Error(t, err)
}
