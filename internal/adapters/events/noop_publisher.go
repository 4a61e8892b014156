package events

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// NoopPublisher drops every event. Used when EVENT_SINK=none.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.LedgerEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
