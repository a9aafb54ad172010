package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"meetingbot/internal/model"
)

type InMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.GoogleID == googleID {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var users []*model.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.users[user.ID]
	if !exists {
		return errors.New("user not found")
	}
	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.users, id)
	return nil
}

// Email record repository implementation
type InMemoryEmailRecordRepository struct {
	emails map[string]*model.EmailRecord
	mutex  sync.RWMutex
}

func NewInMemoryEmailRecordRepository() *InMemoryEmailRecordRepository {
	return &InMemoryEmailRecordRepository{
		emails: make(map[string]*model.EmailRecord),
	}
}

func (r *InMemoryEmailRecordRepository) Create(ctx context.Context, email *model.EmailRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Provider message id is unique per user; creating an existing message
	// again is a no-op so re-ingestion stays idempotent.
	for _, existing := range r.emails {
		if existing.UserID == email.UserID && existing.MessageID == email.MessageID {
			return nil
		}
	}
	r.emails[email.ID] = email
	return nil
}

func (r *InMemoryEmailRecordRepository) FindByID(ctx context.Context, id string) (*model.EmailRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	email, exists := r.emails[id]
	if !exists {
		return nil, errors.New("email record not found")
	}
	return email, nil
}

func (r *InMemoryEmailRecordRepository) FindByMessageID(ctx context.Context, userID, messageID string) (*model.EmailRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, email := range r.emails {
		if email.UserID == userID && email.MessageID == messageID {
			return email, nil
		}
	}
	return nil, errors.New("email record not found")
}

func (r *InMemoryEmailRecordRepository) FindByThreadID(ctx context.Context, userID, threadID string) ([]*model.EmailRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.EmailRecord
	for _, email := range r.emails {
		if email.UserID == userID && email.ThreadID == threadID {
			result = append(result, email)
		}
	}
	return result, nil
}

func (r *InMemoryEmailRecordRepository) FindByUserID(ctx context.Context, userID string) ([]*model.EmailRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.EmailRecord
	for _, email := range r.emails {
		if email.UserID == userID {
			result = append(result, email)
		}
	}
	return result, nil
}

func (r *InMemoryEmailRecordRepository) MostRecentReceivedAt(ctx context.Context, userID string) (time.Time, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var latest time.Time
	for _, email := range r.emails {
		if email.UserID == userID && email.ReceivedAt.After(latest) {
			latest = email.ReceivedAt
		}
	}
	return latest, nil
}

func (r *InMemoryEmailRecordRepository) CountByStatusSince(ctx context.Context, userID string, since time.Time) (map[model.EmailStatus]int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	counts := make(map[model.EmailStatus]int)
	for _, email := range r.emails {
		if email.UserID == userID && !email.CreatedAt.Before(since) {
			counts[email.Status]++
		}
	}
	return counts, nil
}

func (r *InMemoryEmailRecordRepository) Update(ctx context.Context, email *model.EmailRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.emails[email.ID]
	if !exists {
		return errors.New("email record not found")
	}
	r.emails[email.ID] = email
	return nil
}

func (r *InMemoryEmailRecordRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.emails, id)
	return nil
}

func (r *InMemoryEmailRecordRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := 0
	for id, email := range r.emails {
		if email.CreatedAt.Before(cutoff) {
			delete(r.emails, id)
			removed++
		}
	}
	return removed, nil
}

// Scheduled response repository implementation
type InMemoryScheduledResponseRepository struct {
	responses map[string]*model.ScheduledResponse
	mutex     sync.RWMutex
}

func NewInMemoryScheduledResponseRepository() *InMemoryScheduledResponseRepository {
	return &InMemoryScheduledResponseRepository{
		responses: make(map[string]*model.ScheduledResponse),
	}
}

func (r *InMemoryScheduledResponseRepository) Create(ctx context.Context, response *model.ScheduledResponse) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.responses[response.ID] = response
	return nil
}

func (r *InMemoryScheduledResponseRepository) FindByID(ctx context.Context, id string) (*model.ScheduledResponse, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	response, exists := r.responses[id]
	if !exists {
		return nil, errors.New("scheduled response not found")
	}
	return response, nil
}

func (r *InMemoryScheduledResponseRepository) FindByUserID(ctx context.Context, userID string) ([]*model.ScheduledResponse, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.ScheduledResponse
	for _, response := range r.responses {
		if response.UserID == userID {
			result = append(result, response)
		}
	}
	return result, nil
}

func (r *InMemoryScheduledResponseRepository) FindSentByThreadID(ctx context.Context, userID, threadID string) ([]*model.ScheduledResponse, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.ScheduledResponse
	for _, response := range r.responses {
		if response.UserID == userID && response.ThreadID == threadID && response.Status == model.ResponseStatusSent {
			result = append(result, response)
		}
	}
	return result, nil
}

func (r *InMemoryScheduledResponseRepository) FindDueScheduled(ctx context.Context, now time.Time) (*model.ScheduledResponse, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var due *model.ScheduledResponse
	for _, response := range r.responses {
		if response.Status != model.ResponseStatusScheduled || response.ScheduledAt.After(now) {
			continue
		}
		if due == nil || response.ScheduledAt.Before(due.ScheduledAt) {
			due = response
		}
	}
	return due, nil
}

func (r *InMemoryScheduledResponseRepository) CountByStatusSince(ctx context.Context, userID string, since time.Time) (map[model.ResponseStatus]int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	counts := make(map[model.ResponseStatus]int)
	for _, response := range r.responses {
		if response.UserID == userID && !response.CreatedAt.Before(since) {
			counts[response.Status]++
		}
	}
	return counts, nil
}

func (r *InMemoryScheduledResponseRepository) Update(ctx context.Context, response *model.ScheduledResponse) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.responses[response.ID]
	if !exists {
		return errors.New("scheduled response not found")
	}
	r.responses[response.ID] = response
	return nil
}

func (r *InMemoryScheduledResponseRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.responses, id)
	return nil
}

func (r *InMemoryScheduledResponseRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := 0
	for id, response := range r.responses {
		if response.CreatedAt.Before(cutoff) {
			delete(r.responses, id)
			removed++
		}
	}
	return removed, nil
}

// Calendar event repository implementation
type InMemoryCalendarEventRepository struct {
	events map[string]*model.CalendarEventRecord
	mutex  sync.RWMutex
}

func NewInMemoryCalendarEventRepository() *InMemoryCalendarEventRepository {
	return &InMemoryCalendarEventRepository{
		events: make(map[string]*model.CalendarEventRecord),
	}
}

func (r *InMemoryCalendarEventRepository) Create(ctx context.Context, event *model.CalendarEventRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// (provider event id, calendar id) is unique.
	for _, existing := range r.events {
		if existing.ProviderEventID != "" &&
			existing.ProviderEventID == event.ProviderEventID &&
			existing.CalendarID == event.CalendarID {
			return nil
		}
	}
	r.events[event.ID] = event
	return nil
}

func (r *InMemoryCalendarEventRepository) FindByID(ctx context.Context, id string) (*model.CalendarEventRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, errors.New("calendar event not found")
	}
	return event, nil
}

func (r *InMemoryCalendarEventRepository) FindByProviderID(ctx context.Context, providerEventID, calendarID string) (*model.CalendarEventRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, event := range r.events {
		if event.ProviderEventID == providerEventID && event.CalendarID == calendarID {
			return event, nil
		}
	}
	return nil, errors.New("calendar event not found")
}

func (r *InMemoryCalendarEventRepository) FindByThreadAttendee(ctx context.Context, userID, threadID, attendeeEmail string) (*model.CalendarEventRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, event := range r.events {
		if event.UserID == userID && event.ThreadID == threadID && strings.EqualFold(event.AttendeeEmail, attendeeEmail) {
			return event, nil
		}
	}
	return nil, errors.New("calendar event not found")
}

func (r *InMemoryCalendarEventRepository) FindByUserID(ctx context.Context, userID string) ([]*model.CalendarEventRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.CalendarEventRecord
	for _, event := range r.events {
		if event.UserID == userID {
			result = append(result, event)
		}
	}
	return result, nil
}

func (r *InMemoryCalendarEventRepository) Update(ctx context.Context, event *model.CalendarEventRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.events[event.ID]
	if !exists {
		return errors.New("calendar event not found")
	}
	r.events[event.ID] = event
	return nil
}

func (r *InMemoryCalendarEventRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.events, id)
	return nil
}

func (r *InMemoryCalendarEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := 0
	for id, event := range r.events {
		if event.CreatedAt.Before(cutoff) {
			delete(r.events, id)
			removed++
		}
	}
	return removed, nil
}
