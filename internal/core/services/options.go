package services

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/platform/metrics"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
)

// Commit write strategies.
const (
	StrategyAtomic   = "atomic"
	StrategyParallel = "parallel"
)

const defaultWeatherTimeout = 1500 * time.Millisecond

// settings collects what the ledger services can be configured with.
type settings struct {
	base           BaseService
	weather        portssvc.WeatherProvider
	weatherTimeout time.Duration
	strategy       string
	strictStock    bool
	scope          domain.SessionScope
	restoreSource  accounting.RestoreSource
}

// ServiceOption is a functional option for configuring the ledger services
type ServiceOption func(*settings)

// WithMetrics records ledger metrics
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *settings) {
		s.base.Metrics = m
	}
}

// WithEventPublisher publishes ledger events after each durable change
func WithEventPublisher(p portssvc.EventPublisher) ServiceOption {
	return func(s *settings) {
		s.base.Events = p
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) ServiceOption {
	return func(s *settings) {
		s.base.Clock = now
	}
}

// WithIDGenerator overrides how sale, session and event ids are minted
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *settings) {
		s.base.NewID = newID
	}
}

// WithWeatherProvider annotates sales with current conditions, waiting at most timeout
func WithWeatherProvider(p portssvc.WeatherProvider, timeout time.Duration) ServiceOption {
	return func(s *settings) {
		s.weather = p
		if timeout > 0 {
			s.weatherTimeout = timeout
		}
	}
}

// WithCommitStrategy selects StrategyAtomic or StrategyParallel
func WithCommitStrategy(name string) ServiceOption {
	return func(s *settings) {
		s.strategy = name
	}
}

// WithStrictStock rejects sales that would drive stock negative
func WithStrictStock(strict bool) ServiceOption {
	return func(s *settings) {
		s.strictStock = strict
	}
}

// WithSessionScope sets how widely the single-open-session rule applies
func WithSessionScope(scope domain.SessionScope) ServiceOption {
	return func(s *settings) {
		s.scope = scope
	}
}

// WithRestoreSource selects where void restoration quantities come from
func WithRestoreSource(src accounting.RestoreSource) ServiceOption {
	return func(s *settings) {
		s.restoreSource = src
	}
}

func newSettings(options []ServiceOption) settings {
	s := settings{
		weatherTimeout: defaultWeatherTimeout,
		strategy:       StrategyAtomic,
		strictStock:    true,
		scope:          domain.SessionScopeGlobal,
		restoreSource:  accounting.RestoreFromLiveRecipe,
	}
	for _, option := range options {
		option(&s)
	}
	return s
}
