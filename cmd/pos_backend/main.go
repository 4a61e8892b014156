package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/pos_ledger/internal/adapters/events"
	"github.com/SscSPs/pos_ledger/internal/adapters/weather"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/handlers"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/internal/platform/metrics"
	"github.com/SscSPs/pos_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/pos_ledger/internal/repositories/memory"
	"github.com/SscSPs/pos_ledger/internal/utils"
	"github.com/SscSPs/pos_ledger/pkg/database"
	"github.com/SscSPs/pos_ledger/pkg/tracing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName    = "pos_ledger"
	serviceVersion = "1.0.0"
)

// @title POS Ledger API
// @version 1.0
// @description Transactional sale ledger for a point-of-sale back end.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(serviceName, serviceVersion, cfg.JaegerEndpoint)
		if err != nil {
			logger.Error("Failed to initialize tracer", slog.String("error", err.Error()))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
					logger.Error("Failed to shutdown tracer", slog.String("error", err.Error()))
				}
			}()
		}
	} else {
		tracing.InstallPropagator()
	}

	m := metrics.New()

	repos, closeStorage, err := setupStorage(ctx, cfg, m, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			if cfg.EventSink == config.EventSinkRedis {
				logger.Error("Redis is required by EVENT_SINK=redis", slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Warn("Redis unavailable, continuing without cache and shared rate limits", slog.String("error", err.Error()))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	publisher, err := setupEventSink(cfg, redisClient)
	if err != nil {
		logger.Error("Failed to initialize event sink", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event sink", slog.String("error", err.Error()))
		}
	}()

	container := services.NewServiceContainer(cfg, repos, services.Collaborators{
		Weather: setupWeather(cfg, redisClient),
		Events:  publisher,
		Metrics: m,
	})

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogHost, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.MetricsMiddleware(m))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, m,
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			slog.String("port", cfg.Port),
			slog.String("storage", cfg.StorageDriver),
			slog.String("commit_strategy", cfg.CommitStrategy),
			slog.String("session_scope", string(cfg.SessionScope)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupStorage returns the repositories for the configured driver and a cleanup func.
func setupStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewSeeded().Provider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	repos := pgsql.NewRepositoryProvider(dbPool,
		pgsql.WithRetries(cfg.TxMaxRetries, cfg.TxRetryBaseDelay),
		pgsql.WithRetryObserver(m.TxRetried),
	)
	return repos, func() { database.ClosePgxPool(dbPool) }, nil
}

func setupEventSink(cfg *config.Config, redisClient *redis.Client) (portssvc.EventPublisher, error) {
	switch cfg.EventSink {
	case config.EventSinkKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	case config.EventSinkRedis:
		return events.NewRedisPublisher(redisClient, cfg.RedisEventChannel), nil
	default:
		return events.NoopPublisher{}, nil
	}
}

// setupWeather returns nil when the annotation is disabled; sales then carry no weather context.
func setupWeather(cfg *config.Config, redisClient *redis.Client) portssvc.WeatherProvider {
	if !cfg.WeatherEnabled {
		return nil
	}
	client := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherLatitude, cfg.WeatherLongitude)
	if redisClient == nil || cfg.WeatherCacheTTL <= 0 {
		return client
	}
	return weather.NewCachedProvider(client, redisClient, cfg.WeatherCacheTTL)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
