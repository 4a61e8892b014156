package domain

import "time"

// LedgerEventType names a state change published after it is durable.
type LedgerEventType string

const (
	EventSaleCommitted     LedgerEventType = "sale.committed"
	EventVoidRequested     LedgerEventType = "sale.void_requested"
	EventVoidRejected      LedgerEventType = "sale.void_rejected"
	EventSaleVoided        LedgerEventType = "sale.voided"
	EventSessionOpened     LedgerEventType = "session.opened"
	EventSessionClosed     LedgerEventType = "session.closed"
	EventIngredientRestock LedgerEventType = "ingredient.restocked"
)

// LedgerEvent is the envelope sent to the configured event sink.
type LedgerEvent struct {
	EventID    string          `json:"eventID"`
	Type       LedgerEventType `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	OperatorID string          `json:"operatorID"`
	EntityID   string          `json:"entityID"` // sale, session or ingredient id depending on Type
	Payload    any             `json:"payload,omitempty"`
}
