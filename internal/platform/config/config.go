package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Commit strategies.
const (
	CommitAtomic   = "atomic"
	CommitParallel = "parallel"
)

// Event sinks.
const (
	EventSinkNone  = "none"
	EventSinkRedis = "redis"
	EventSinkKafka = "kafka"
)

// Config holds application configuration.
type Config struct {
	Port           string
	IsProduction   bool
	LogLevel       string
	DatabaseURL    string
	StorageDriver  string
	MigrationsPath string
	JWTSecret      string

	CommitStrategy    string
	TxMaxRetries      int
	TxRetryBaseDelay  time.Duration
	StrictStock       bool
	SessionScope      domain.SessionScope
	VoidRestoreSource accounting.RestoreSource

	WeatherEnabled   bool
	WeatherBaseURL   string
	WeatherLatitude  float64
	WeatherLongitude float64
	WeatherTimeout   time.Duration
	WeatherCacheTTL  time.Duration

	RedisURL          string
	EventSink         string
	KafkaBrokers      []string
	KafkaTopic        string
	RedisEventChannel string

	RateLimit          string
	CORSAllowedOrigins []string
	TracingEnabled     bool
	JaegerEndpoint     string
	PosthogAPIKey      string
	PosthogHost        string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("COMMIT_STRATEGY", CommitAtomic)
	viper.SetDefault("TX_MAX_RETRIES", 5)
	viper.SetDefault("TX_RETRY_BASE_DELAY", "20ms")
	viper.SetDefault("STRICT_STOCK", true)
	viper.SetDefault("SESSION_SCOPE", string(domain.SessionScopeGlobal))
	viper.SetDefault("VOID_RESTORE_SOURCE", string(accounting.RestoreFromLiveRecipe))
	viper.SetDefault("WEATHER_ENABLED", false)
	viper.SetDefault("WEATHER_BASE_URL", "https://api.open-meteo.com")
	viper.SetDefault("WEATHER_LATITUDE", 0.0)
	viper.SetDefault("WEATHER_LONGITUDE", 0.0)
	viper.SetDefault("WEATHER_TIMEOUT", "1500ms")
	viper.SetDefault("WEATHER_CACHE_TTL", "10m")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("EVENT_SINK", EventSinkNone)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "pos.ledger.events")
	viper.SetDefault("REDIS_EVENT_CHANNEL", "pos:ledger:events")
	viper.SetDefault("RATE_LIMIT", "600-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		StorageDriver:      strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		CommitStrategy:     strings.ToLower(viper.GetString("COMMIT_STRATEGY")),
		TxMaxRetries:       viper.GetInt("TX_MAX_RETRIES"),
		TxRetryBaseDelay:   viper.GetDuration("TX_RETRY_BASE_DELAY"),
		StrictStock:        viper.GetBool("STRICT_STOCK"),
		WeatherEnabled:     viper.GetBool("WEATHER_ENABLED"),
		WeatherBaseURL:     viper.GetString("WEATHER_BASE_URL"),
		WeatherLatitude:    viper.GetFloat64("WEATHER_LATITUDE"),
		WeatherLongitude:   viper.GetFloat64("WEATHER_LONGITUDE"),
		WeatherTimeout:     viper.GetDuration("WEATHER_TIMEOUT"),
		WeatherCacheTTL:    viper.GetDuration("WEATHER_CACHE_TTL"),
		RedisURL:           viper.GetString("REDIS_URL"),
		EventSink:          strings.ToLower(viper.GetString("EVENT_SINK")),
		KafkaBrokers:       splitList(viper.GetString("KAFKA_BROKERS")),
		KafkaTopic:         viper.GetString("KAFKA_TOPIC"),
		RedisEventChannel:  viper.GetString("REDIS_EVENT_CHANNEL"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		TracingEnabled:     viper.GetBool("TRACING_ENABLED"),
		JaegerEndpoint:     viper.GetString("JAEGER_ENDPOINT"),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		PosthogHost:        viper.GetString("POSTHOG_HOST"),
	}

	var err error
	if cfg.SessionScope, err = domain.ParseSessionScope(strings.ToLower(viper.GetString("SESSION_SCOPE"))); err != nil {
		return nil, err
	}
	if cfg.VoidRestoreSource, err = accounting.ParseRestoreSource(strings.ToLower(viper.GetString("VOID_RESTORE_SOURCE"))); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.CommitStrategy == CommitParallel {
		log.Println("Warning: COMMIT_STRATEGY=parallel writes without a transaction; concurrent sales can under-count stock deductions.")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.CommitStrategy {
	case CommitAtomic, CommitParallel:
	default:
		return fmt.Errorf("unknown COMMIT_STRATEGY %q", c.CommitStrategy)
	}
	switch c.EventSink {
	case EventSinkNone, EventSinkRedis, EventSinkKafka:
	default:
		return fmt.Errorf("unknown EVENT_SINK %q", c.EventSink)
	}
	if c.EventSink == EventSinkKafka && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("EVENT_SINK=kafka requires KAFKA_BROKERS")
	}
	if c.EventSink == EventSinkRedis && c.RedisURL == "" {
		return fmt.Errorf("EVENT_SINK=redis requires REDIS_URL")
	}
	if c.TxMaxRetries < 0 {
		return fmt.Errorf("TX_MAX_RETRIES must not be negative")
	}
	if c.WeatherTimeout <= 0 {
		return fmt.Errorf("WEATHER_TIMEOUT must be positive")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
