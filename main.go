package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"meetingbot/internal/ai"
	"meetingbot/internal/calendar"
	"meetingbot/internal/config"
	"meetingbot/internal/gmail"
	"meetingbot/internal/handler"
	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/notify"
	"meetingbot/internal/repository"
	"meetingbot/internal/repository/memory"
	"meetingbot/internal/repository/postgres"
	"meetingbot/internal/router"
	"meetingbot/internal/scheduler"
	"meetingbot/internal/service"
	"meetingbot/internal/slots"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New()

	// Initialize repositories (conditionally use postgres or in-memory based on DATABASE_URL)
	var userRepo repository.UserRepository
	var emailRepo repository.EmailRecordRepository
	var responseRepo repository.ScheduledResponseRepository
	var eventRepo repository.CalendarEventRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		userRepo = postgres.NewPostgresUserRepository(db)
		emailRepo = postgres.NewPostgresEmailRecordRepository(db)
		responseRepo = postgres.NewPostgresScheduledResponseRepository(db)
		eventRepo = postgres.NewPostgresCalendarEventRepository(db)

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		userRepo = memory.NewInMemoryUserRepository()
		emailRepo = memory.NewInMemoryEmailRecordRepository()
		responseRepo = memory.NewInMemoryScheduledResponseRepository()
		eventRepo = memory.NewInMemoryCalendarEventRepository()

		appLogger.Info("Using in-memory repositories")
	}

	// Collaborator clients that resolve per-user access tokens on each call
	mailClient := NewUserSpecificMailClient(userRepo, appLogger)
	calendarClient := NewUserSpecificCalendarClient(userRepo, appLogger)

	finder := slots.NewFinder(slots.Options{
		BusinessStartHour: cfg.BusinessStartHour,
		BusinessEndHour:   cfg.BusinessEndHour,
		SlotDuration:      cfg.SlotDuration,
		MaxResults:        cfg.MaxSlots,
		MinLead:           cfg.MinSlotLead,
	})

	classifier := ai.NewAIClient(
		cfg.AIKey,
		calendarClient,
		finder,
		time.Duration(cfg.SearchWindowDays)*24*time.Hour,
		appLogger,
	)

	notifier := notify.NewWebhookNotifier(cfg.WebhookURL, appLogger)

	// Initialize services
	authService := service.NewAuthService(userRepo, appLogger)
	responseService := service.NewResponseService(responseRepo, cfg.ResponseDelay, notifier, cfg.BaseURL, appLogger)
	replyService := service.NewReplyService(eventRepo, classifier, calendarClient, appLogger)
	intakeService := service.NewIntakeService(
		emailRepo, responseRepo, responseService, replyService,
		classifier, cfg.ResponseDelay, appLogger,
	)
	eventService := service.NewEventService(eventRepo, appLogger)

	// Background jobs
	limiter := scheduler.NewRateLimiter(cfg.SendInterval)
	sendJob := scheduler.NewSendJob(
		responseRepo, emailRepo, userRepo, mailClient,
		limiter, cfg.StalenessBound, logger.Named("send"),
	)
	intakeJob := scheduler.NewIntakeJob(
		intakeService, userRepo, emailRepo, mailClient,
		cfg.MaxFetch, logger.Named("intake"),
	)
	sweepJob := scheduler.NewSweepJob(
		emailRepo, responseRepo, eventRepo,
		cfg.RetentionAge, logger.Named("sweep"),
	)

	runners := []*scheduler.Runner{
		scheduler.NewRunner("intake", cfg.IngestTick, intakeJob.RunPass, logger.Named("intake")),
		scheduler.NewRunner("send", cfg.SendTick, sendJob.RunPass, logger.Named("send")),
		scheduler.NewRunner("sweep", 24*time.Hour, sweepJob.RunPass, logger.Named("sweep")),
	}
	for _, r := range runners {
		go r.Start()
	}

	// HTTP surface
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	authHandler := handler.NewAuthHandler(authService, cfg, e.Logger)
	responseHandler := handler.NewResponseHandler(responseService, authHandler, e.Logger)
	eventHandler := handler.NewEventHandler(eventService, authHandler, e.Logger)
	jobHandler := handler.NewJobHandler(runners, emailRepo, responseRepo, authHandler, e.Logger)

	router.SetupRoutes(e, authHandler, responseHandler, eventHandler, jobHandler)

	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
		for _, r := range runners {
			r.Stop()
		}
	}
}

// UserSpecificMailClient resolves a fresh Gmail client per call using the
// stored access token for the account.
type UserSpecificMailClient struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewUserSpecificMailClient(userRepo repository.UserRepository, logger *logger.Logger) service.MailClient {
	return &UserSpecificMailClient{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (u *UserSpecificMailClient) client(ctx context.Context, userEmail string) (service.MailClient, error) {
	user, err := u.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("user not found for email: %s", userEmail)
	}
	if user.AccessToken == "" {
		return nil, fmt.Errorf("access token not available for user: %s", userEmail)
	}
	return gmail.NewGmailClient(user.AccessToken, u.logger)
}

func (u *UserSpecificMailClient) ListMessagesAfter(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error) {
	client, err := u.client(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	return client.ListMessagesAfter(ctx, userEmail, maxResults, after)
}

func (u *UserSpecificMailClient) SendReply(ctx context.Context, userEmail string, reply *service.OutgoingReply) (string, error) {
	client, err := u.client(ctx, userEmail)
	if err != nil {
		return "", err
	}
	return client.SendReply(ctx, userEmail, reply)
}

// UserSpecificCalendarClient resolves a fresh Calendar client per call using
// the stored access token for the account.
type UserSpecificCalendarClient struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewUserSpecificCalendarClient(userRepo repository.UserRepository, logger *logger.Logger) service.CalendarClient {
	return &UserSpecificCalendarClient{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (u *UserSpecificCalendarClient) client(ctx context.Context, userEmail string) (service.CalendarClient, error) {
	user, err := u.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("user not found for email: %s", userEmail)
	}
	if user.AccessToken == "" {
		return nil, fmt.Errorf("access token not available for user: %s", userEmail)
	}
	return calendar.NewCalendarClient(user.AccessToken, u.logger)
}

func (u *UserSpecificCalendarClient) ListBusyIntervals(ctx context.Context, userEmail string, from, to time.Time) ([]slots.Interval, error) {
	client, err := u.client(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	return client.ListBusyIntervals(ctx, userEmail, from, to)
}

func (u *UserSpecificCalendarClient) CreateEvent(ctx context.Context, userEmail string, event *model.CalendarEventRecord) (string, string, error) {
	client, err := u.client(ctx, userEmail)
	if err != nil {
		return "", "", err
	}
	return client.CreateEvent(ctx, userEmail, event)
}
