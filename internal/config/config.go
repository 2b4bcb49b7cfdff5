package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	StorageCSV    = "csv"
	StorageSQLite = "sqlite"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	GeminiModel   string
	AITimeout     time.Duration
	AdminID       int64
	Port          string
	DataPath      string
	Location      *time.Location

	StorageDriver string
	UsersFile     string
	MessagesFile  string
	DatabaseURL   string

	ReloadInterval time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	cfg := Config{
		TelegramToken: get("TELEGRAM_TOKEN", ""),
		GeminiAPIKey:  get("GEMINI_API_KEY", ""),
		GeminiModel:   get("GEMINI_MODEL", "gemini-1.5-flash"),
		Port:          get("PORT", "5000"),
		DataPath:      get("DATA_PATH", "data.json"),
		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", StorageCSV)),
		UsersFile:     get("USERS_FILE", "users.csv"),
		MessagesFile:  get("MESSAGES_FILE", "messages.csv"),
		DatabaseURL:   get("DATABASE_URL", "uni_assistant.db"),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "json"),
	}

	var errs []error

	adminID, err := strconv.ParseInt(get("ADMIN_ID", "0"), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("ADMIN_ID must be a number: %w", err))
	}
	cfg.AdminID = adminID

	timeout, err := parseNonNegative(get("AI_TIMEOUT_SECONDS", "90"))
	if err != nil {
		errs = append(errs, fmt.Errorf("AI_TIMEOUT_SECONDS: %w", err))
	}
	cfg.AITimeout = time.Duration(timeout) * time.Second

	reload, err := parseNonNegative(get("CONTENT_RELOAD_MINUTES", "0"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CONTENT_RELOAD_MINUTES: %w", err))
	}
	cfg.ReloadInterval = time.Duration(reload) * time.Minute

	loc, err := time.LoadLocation(get("TIMEZONE", "Asia/Dhaka"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}

	return cfg, errors.Join(errs...)
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Port)
	}
	switch c.StorageDriver {
	case StorageCSV, StorageSQLite:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageCSV, StorageSQLite, c.StorageDriver)
	}
	return nil
}

func parseNonNegative(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	return n, nil
}
