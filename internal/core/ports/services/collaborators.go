package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// WeatherProvider returns current conditions for the sale annotation.
// Callers treat every error as "no annotation".
type WeatherProvider interface {
	CurrentConditions(ctx context.Context) (*domain.WeatherSnapshot, error)
}

// EventPublisher delivers ledger events after the state change is durable.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
	Close() error
}
