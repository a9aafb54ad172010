package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
	SessionSecret      string
	DatabaseURL        string
	AIProvider         string
	AIKey              string
	WebhookURL         string
	Env                string

	// Scheduling constants. All externally configurable, none are user input.
	SendInterval   time.Duration // global rate limit between sends
	StalenessBound time.Duration // SCHEDULED older than this expires instead of sending
	ResponseDelay  time.Duration // delay between drafting and first sendable moment
	IngestTick     time.Duration
	SendTick       time.Duration
	RetentionAge   time.Duration
	MaxFetch       int64

	// Slot search defaults.
	SlotDuration      time.Duration
	MinSlotLead       time.Duration
	MaxSlots          int
	BusinessStartHour int
	BusinessEndHour   int
	SearchWindowDays  int
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:               GetEnv("PORT", "8080"),
		BaseURL:            GetEnv("BASE_URL", "http://localhost:8080"),
		GoogleClientID:     GetEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: GetEnv("GOOGLE_CLIENT_SECRET", ""),
		SessionSecret:      GetEnv("SESSION_SECRET", "0af1f0ef-5b8a-4a49-9f2f-f1f1f54c0d26"),
		DatabaseURL:        GetEnv("DATABASE_URL", ""),
		AIProvider:         GetEnv("AI_PROVIDER", "openai"),
		AIKey:              GetEnv("AI_API_KEY", ""),
		WebhookURL:         GetEnv("NOTIFY_WEBHOOK_URL", ""),
		Env:                GetEnv("ENV", "development"),

		SendInterval:   time.Duration(GetEnvInt("SEND_INTERVAL_MS", 600000)) * time.Millisecond,
		StalenessBound: time.Duration(GetEnvInt("RESPONSE_STALENESS_HOURS", 6)) * time.Hour,
		ResponseDelay:  time.Duration(GetEnvInt("RESPONSE_DELAY_MINUTES", 60)) * time.Minute,
		IngestTick:     time.Duration(GetEnvInt("INGEST_TICK_MINUTES", 5)) * time.Minute,
		SendTick:       time.Duration(GetEnvInt("SEND_TICK_SECONDS", 60)) * time.Second,
		RetentionAge:   time.Duration(GetEnvInt("RETENTION_DAYS", 90)) * 24 * time.Hour,
		MaxFetch:       int64(GetEnvInt("MAX_FETCH_MESSAGES", 10)),

		SlotDuration:      time.Duration(GetEnvInt("SLOT_DURATION_MINUTES", 30)) * time.Minute,
		MinSlotLead:       time.Duration(GetEnvInt("SLOT_MIN_LEAD_MINUTES", 150)) * time.Minute,
		MaxSlots:          GetEnvInt("SLOT_MAX_RESULTS", 3),
		BusinessStartHour: GetEnvInt("BUSINESS_START_HOUR", 9),
		BusinessEndHour:   GetEnvInt("BUSINESS_END_HOUR", 17),
		SearchWindowDays:  GetEnvInt("SLOT_SEARCH_WINDOW_DAYS", 7),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	if c.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.AIKey == "" {
		return fmt.Errorf("AI_API_KEY is required")
	}
	if c.SendInterval <= 0 {
		return fmt.Errorf("SEND_INTERVAL_MS must be positive")
	}
	if c.BusinessEndHour <= c.BusinessStartHour {
		return fmt.Errorf("business hours window is empty")
	}
	return nil
}
