package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/minicrushers/minitracker/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config stores runtime configuration for one tracker run.
type Config struct {
	AppEnv         string `validate:"oneof=dev prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string

	StoreBackend  string `validate:"oneof=mongo postgres memory"`
	MongoURI      string `validate:"required_if=StoreBackend mongo"`
	MongoDatabase string `validate:"required_if=StoreBackend mongo"`
	DBURL         string `validate:"required_if=StoreBackend postgres"`

	DiscordWebhookURL string `validate:"omitempty,url"`

	NYTBaseURL  string `validate:"omitempty,url"`
	NYTUsername string
	NYTPassword string

	// PuzzleTimezone is the puzzle provider's local zone; the puzzle-day
	// cutover rule is evaluated in it.
	PuzzleTimezone string `validate:"required"`

	HTTPTimeout   time.Duration
	ChartsEnabled bool

	UptraceEnabled bool
	UptraceDSN     string

	LogLevel logging.Level
}

var validate = validator.New()

func Load() (Config, error) {
	// Mirror the deployment behavior: a .env file feeds local runs, CI and
	// production provide real environment variables.
	if os.Getenv("GITHUB_ACTIONS") == "" {
		_ = godotenv.Load()
	}

	appEnv := strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", EnvDev)))

	logLevel, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	httpTimeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
	}
	if httpTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT must be > 0")
	}

	chartsEnabled, err := strconv.ParseBool(getEnv("CHARTS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHARTS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg := Config{
		AppEnv:            appEnv,
		ServiceName:       getEnv("SERVICE_NAME", "minitracker"),
		ServiceVersion:    getEnv("SERVICE_VERSION", "dev"),
		StoreBackend:      strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", BackendMongo))),
		MongoURI:          strings.TrimSpace(getEnv("MONGO_URI", "")),
		MongoDatabase:     strings.TrimSpace(getEnv("MONGO_DATABASE", "nyt-mini-times-cluster")),
		DBURL:             strings.TrimSpace(getEnv("DB_URL", "")),
		DiscordWebhookURL: strings.TrimSpace(getEnv("DISCORD_WEBHOOK", "")),
		NYTBaseURL:        strings.TrimSpace(getEnv("NYT_BASE_URL", "https://www.nytimes.com")),
		NYTUsername:       strings.TrimSpace(getEnv("NYT_USERNAME", "")),
		NYTPassword:       getEnv("NYT_PASSWORD", ""),
		PuzzleTimezone:    strings.TrimSpace(getEnv("PUZZLE_TIMEZONE", "America/New_York")),
		HTTPTimeout:       httpTimeout,
		ChartsEnabled:     chartsEnabled,
		UptraceEnabled:    uptraceEnabled,
		UptraceDSN:        uptraceDSN,
		LogLevel:          logLevel,
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
