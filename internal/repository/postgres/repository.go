package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meetingbot/internal/model"

	_ "github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, google_id, email, name, timezone, access_token, refresh_token, token_expiry, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (google_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			timezone = EXCLUDED.timezone,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name, user.Timezone,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name, &user.Timezone,
		&user.AccessToken, &user.RefreshToken, &user.TokenExpiry,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		err := rows.Scan(
			&user.ID, &user.GoogleID, &user.Email, &user.Name, &user.Timezone,
			&user.AccessToken, &user.RefreshToken, &user.TokenExpiry,
			&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET google_id=$1, email=$2, name=$3, timezone=$4, access_token=$5,
		refresh_token=$6, token_expiry=$7, updated_at=NOW() WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		user.GoogleID, user.Email, user.Name, user.Timezone,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.ID)
	return err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres email record repository implementation
type PostgresEmailRecordRepository struct {
	db *sql.DB
}

func NewPostgresEmailRecordRepository(db *sql.DB) *PostgresEmailRecordRepository {
	return &PostgresEmailRecordRepository{db: db}
}

const emailColumns = `id, user_id, message_id, thread_id, header_message_id, from_email, to_email, subject, body, received_at, direction, status, is_demo_request, response_generated, response_sent, response_id, created_at, updated_at`

func (r *PostgresEmailRecordRepository) Create(ctx context.Context, email *model.EmailRecord) error {
	// ON CONFLICT DO NOTHING keeps re-ingestion of the same provider message
	// id an idempotent no-op.
	query := `
		INSERT INTO email_records (` + emailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (user_id, message_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query,
		email.ID, email.UserID, email.MessageID, email.ThreadID, email.HeaderMessageID,
		email.From, email.To, email.Subject, email.Body, email.ReceivedAt,
		email.Direction, email.Status, email.IsDemoRequest, email.ResponseGenerated,
		email.ResponseSent, email.ResponseID, email.CreatedAt, email.UpdatedAt)
	return err
}

func scanEmailRecord(s interface {
	Scan(dest ...interface{}) error
}) (*model.EmailRecord, error) {
	email := &model.EmailRecord{}
	err := s.Scan(
		&email.ID, &email.UserID, &email.MessageID, &email.ThreadID, &email.HeaderMessageID,
		&email.From, &email.To, &email.Subject, &email.Body, &email.ReceivedAt,
		&email.Direction, &email.Status, &email.IsDemoRequest, &email.ResponseGenerated,
		&email.ResponseSent, &email.ResponseID, &email.CreatedAt, &email.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("email record not found")
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRecordRepository) FindByID(ctx context.Context, id string) (*model.EmailRecord, error) {
	query := `SELECT ` + emailColumns + ` FROM email_records WHERE id = $1`
	return scanEmailRecord(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresEmailRecordRepository) FindByMessageID(ctx context.Context, userID, messageID string) (*model.EmailRecord, error) {
	query := `SELECT ` + emailColumns + ` FROM email_records WHERE user_id = $1 AND message_id = $2`
	return scanEmailRecord(r.db.QueryRowContext(ctx, query, userID, messageID))
}

func (r *PostgresEmailRecordRepository) queryEmails(ctx context.Context, query string, args ...interface{}) ([]*model.EmailRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*model.EmailRecord
	for rows.Next() {
		email, err := scanEmailRecord(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *PostgresEmailRecordRepository) FindByThreadID(ctx context.Context, userID, threadID string) ([]*model.EmailRecord, error) {
	query := `SELECT ` + emailColumns + ` FROM email_records WHERE user_id = $1 AND thread_id = $2 ORDER BY received_at`
	return r.queryEmails(ctx, query, userID, threadID)
}

func (r *PostgresEmailRecordRepository) FindByUserID(ctx context.Context, userID string) ([]*model.EmailRecord, error) {
	query := `SELECT ` + emailColumns + ` FROM email_records WHERE user_id = $1 ORDER BY received_at DESC`
	return r.queryEmails(ctx, query, userID)
}

func (r *PostgresEmailRecordRepository) MostRecentReceivedAt(ctx context.Context, userID string) (time.Time, error) {
	query := `SELECT COALESCE(MAX(received_at), to_timestamp(0)) FROM email_records WHERE user_id = $1`
	var latest time.Time
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	if latest.Unix() == 0 {
		return time.Time{}, nil
	}
	return latest, nil
}

func (r *PostgresEmailRecordRepository) CountByStatusSince(ctx context.Context, userID string, since time.Time) (map[model.EmailStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM email_records WHERE user_id = $1 AND created_at >= $2 GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.EmailStatus]int)
	for rows.Next() {
		var status model.EmailStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *PostgresEmailRecordRepository) Update(ctx context.Context, email *model.EmailRecord) error {
	query := `
		UPDATE email_records SET status=$1, is_demo_request=$2, response_generated=$3,
		response_sent=$4, response_id=$5, updated_at=NOW() WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		email.Status, email.IsDemoRequest, email.ResponseGenerated,
		email.ResponseSent, email.ResponseID, email.ID)
	return err
}

func (r *PostgresEmailRecordRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM email_records WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresEmailRecordRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM email_records WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Postgres scheduled response repository implementation
type PostgresScheduledResponseRepository struct {
	db *sql.DB
}

func NewPostgresScheduledResponseRepository(db *sql.DB) *PostgresScheduledResponseRepository {
	return &PostgresScheduledResponseRepository{db: db}
}

const responseColumns = `id, user_id, email_record_id, thread_id, recipient_email, recipient_name, subject, body, slots, scheduled_at, status, sent_at, sent_message_id, last_edited_at, last_edited_by, failure_reason, created_at, updated_at`

func (r *PostgresScheduledResponseRepository) Create(ctx context.Context, response *model.ScheduledResponse) error {
	slotsJSON, err := json.Marshal(response.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}
	query := `
		INSERT INTO scheduled_responses (` + responseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.db.ExecContext(ctx, query,
		response.ID, response.UserID, response.EmailRecordID, response.ThreadID,
		response.RecipientEmail, response.RecipientName, response.Subject, response.Body,
		slotsJSON, nullTime(response.ScheduledAt), response.Status, nullTime(response.SentAt),
		response.SentMessageID, nullTime(response.LastEditedAt), response.LastEditedBy,
		response.FailureReason, response.CreatedAt, response.UpdatedAt)
	return err
}

func scanScheduledResponse(s interface {
	Scan(dest ...interface{}) error
}) (*model.ScheduledResponse, error) {
	response := &model.ScheduledResponse{}
	var slotsJSON []byte
	var scheduledAt, sentAt, lastEditedAt sql.NullTime
	err := s.Scan(
		&response.ID, &response.UserID, &response.EmailRecordID, &response.ThreadID,
		&response.RecipientEmail, &response.RecipientName, &response.Subject, &response.Body,
		&slotsJSON, &scheduledAt, &response.Status, &sentAt,
		&response.SentMessageID, &lastEditedAt, &response.LastEditedBy,
		&response.FailureReason, &response.CreatedAt, &response.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("scheduled response not found")
		}
		return nil, err
	}
	if len(slotsJSON) > 0 {
		if err := json.Unmarshal(slotsJSON, &response.Slots); err != nil {
			return nil, fmt.Errorf("failed to unmarshal slots: %w", err)
		}
	}
	response.ScheduledAt = scheduledAt.Time
	response.SentAt = sentAt.Time
	response.LastEditedAt = lastEditedAt.Time
	return response, nil
}

func (r *PostgresScheduledResponseRepository) FindByID(ctx context.Context, id string) (*model.ScheduledResponse, error) {
	query := `SELECT ` + responseColumns + ` FROM scheduled_responses WHERE id = $1`
	return scanScheduledResponse(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresScheduledResponseRepository) queryResponses(ctx context.Context, query string, args ...interface{}) ([]*model.ScheduledResponse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*model.ScheduledResponse
	for rows.Next() {
		response, err := scanScheduledResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, rows.Err()
}

func (r *PostgresScheduledResponseRepository) FindByUserID(ctx context.Context, userID string) ([]*model.ScheduledResponse, error) {
	query := `SELECT ` + responseColumns + ` FROM scheduled_responses WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryResponses(ctx, query, userID)
}

func (r *PostgresScheduledResponseRepository) FindSentByThreadID(ctx context.Context, userID, threadID string) ([]*model.ScheduledResponse, error) {
	query := `SELECT ` + responseColumns + ` FROM scheduled_responses WHERE user_id = $1 AND thread_id = $2 AND status = 'SENT' ORDER BY sent_at`
	return r.queryResponses(ctx, query, userID, threadID)
}

func (r *PostgresScheduledResponseRepository) FindDueScheduled(ctx context.Context, now time.Time) (*model.ScheduledResponse, error) {
	query := `
		SELECT ` + responseColumns + ` FROM scheduled_responses
		WHERE status = 'SCHEDULED' AND scheduled_at <= $1
		ORDER BY scheduled_at ASC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, now)
	response, err := scanScheduledResponse(row)
	if err != nil {
		// No due response is a normal outcome for a scheduler pass.
		if err.Error() == "scheduled response not found" {
			return nil, nil
		}
		return nil, err
	}
	return response, nil
}

func (r *PostgresScheduledResponseRepository) CountByStatusSince(ctx context.Context, userID string, since time.Time) (map[model.ResponseStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM scheduled_responses WHERE user_id = $1 AND created_at >= $2 GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ResponseStatus]int)
	for rows.Next() {
		var status model.ResponseStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *PostgresScheduledResponseRepository) Update(ctx context.Context, response *model.ScheduledResponse) error {
	slotsJSON, err := json.Marshal(response.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}
	query := `
		UPDATE scheduled_responses SET subject=$1, body=$2, slots=$3, scheduled_at=$4,
		status=$5, sent_at=$6, sent_message_id=$7, last_edited_at=$8, last_edited_by=$9,
		failure_reason=$10, updated_at=NOW() WHERE id=$11`
	_, err = r.db.ExecContext(ctx, query,
		response.Subject, response.Body, slotsJSON, nullTime(response.ScheduledAt),
		response.Status, nullTime(response.SentAt), response.SentMessageID,
		nullTime(response.LastEditedAt), response.LastEditedBy,
		response.FailureReason, response.ID)
	return err
}

func (r *PostgresScheduledResponseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM scheduled_responses WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresScheduledResponseRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM scheduled_responses WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Postgres calendar event repository implementation
type PostgresCalendarEventRepository struct {
	db *sql.DB
}

func NewPostgresCalendarEventRepository(db *sql.DB) *PostgresCalendarEventRepository {
	return &PostgresCalendarEventRepository{db: db}
}

const eventColumns = `id, user_id, provider_event_id, calendar_id, email_record_id, thread_id, start_time, end_time, timezone, attendee_email, attendee_name, status, created_at, updated_at`

func (r *PostgresCalendarEventRepository) Create(ctx context.Context, event *model.CalendarEventRecord) error {
	query := `
		INSERT INTO calendar_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (provider_event_id, calendar_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.UserID, event.ProviderEventID, event.CalendarID,
		event.EmailRecordID, event.ThreadID, event.StartTime, event.EndTime,
		event.Timezone, event.AttendeeEmail, event.AttendeeName, event.Status,
		event.CreatedAt, event.UpdatedAt)
	return err
}

func scanCalendarEvent(s interface {
	Scan(dest ...interface{}) error
}) (*model.CalendarEventRecord, error) {
	event := &model.CalendarEventRecord{}
	err := s.Scan(
		&event.ID, &event.UserID, &event.ProviderEventID, &event.CalendarID,
		&event.EmailRecordID, &event.ThreadID, &event.StartTime, &event.EndTime,
		&event.Timezone, &event.AttendeeEmail, &event.AttendeeName, &event.Status,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("calendar event not found")
		}
		return nil, err
	}
	return event, nil
}

func (r *PostgresCalendarEventRepository) FindByID(ctx context.Context, id string) (*model.CalendarEventRecord, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1`
	return scanCalendarEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresCalendarEventRepository) FindByProviderID(ctx context.Context, providerEventID, calendarID string) (*model.CalendarEventRecord, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE provider_event_id = $1 AND calendar_id = $2`
	return scanCalendarEvent(r.db.QueryRowContext(ctx, query, providerEventID, calendarID))
}

func (r *PostgresCalendarEventRepository) FindByThreadAttendee(ctx context.Context, userID, threadID, attendeeEmail string) (*model.CalendarEventRecord, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE user_id = $1 AND thread_id = $2 AND lower(attendee_email) = lower($3)`
	return scanCalendarEvent(r.db.QueryRowContext(ctx, query, userID, threadID, attendeeEmail))
}

func (r *PostgresCalendarEventRepository) FindByUserID(ctx context.Context, userID string) ([]*model.CalendarEventRecord, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE user_id = $1 ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.CalendarEventRecord
	for rows.Next() {
		event, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *PostgresCalendarEventRepository) Update(ctx context.Context, event *model.CalendarEventRecord) error {
	query := `
		UPDATE calendar_events SET provider_event_id=$1, calendar_id=$2, status=$3,
		start_time=$4, end_time=$5, updated_at=NOW() WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		event.ProviderEventID, event.CalendarID, event.Status,
		event.StartTime, event.EndTime, event.ID)
	return err
}

func (r *PostgresCalendarEventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM calendar_events WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresCalendarEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM calendar_events WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// InitializeDatabase creates the necessary tables
func InitializeDatabase(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(255) PRIMARY KEY,
			google_id VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
			access_token TEXT,
			refresh_token TEXT,
			token_expiry TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS email_records (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			message_id VARCHAR(255) NOT NULL,
			thread_id VARCHAR(255),
			header_message_id TEXT,
			from_email TEXT,
			to_email TEXT,
			subject TEXT,
			body TEXT,
			received_at TIMESTAMP NOT NULL,
			direction VARCHAR(16) NOT NULL,
			status VARCHAR(16) NOT NULL,
			is_demo_request BOOLEAN DEFAULT FALSE,
			response_generated BOOLEAN DEFAULT FALSE,
			response_sent BOOLEAN DEFAULT FALSE,
			response_id VARCHAR(255),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, message_id)
		)`,
		`CREATE TABLE IF NOT EXISTS scheduled_responses (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			email_record_id VARCHAR(255),
			thread_id VARCHAR(255),
			recipient_email TEXT NOT NULL,
			recipient_name TEXT,
			subject TEXT,
			body TEXT,
			slots JSONB,
			scheduled_at TIMESTAMP,
			status VARCHAR(16) NOT NULL,
			sent_at TIMESTAMP,
			sent_message_id VARCHAR(255),
			last_edited_at TIMESTAMP,
			last_edited_by VARCHAR(255),
			failure_reason TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_responses_due
			ON scheduled_responses (scheduled_at) WHERE status = 'SCHEDULED'`,
		`CREATE TABLE IF NOT EXISTS calendar_events (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			provider_event_id VARCHAR(255) NOT NULL,
			calendar_id VARCHAR(255) NOT NULL,
			email_record_id VARCHAR(255),
			thread_id VARCHAR(255),
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			timezone VARCHAR(64),
			attendee_email TEXT NOT NULL,
			attendee_name TEXT,
			status VARCHAR(16) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (provider_event_id, calendar_id)
		)`,
	}

	for _, table := range tables {
		_, err := db.Exec(table)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}
