package dto

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest is the body of POST /sessions.
type OpenSessionRequest struct {
	InitialBalance decimal.Decimal `json:"initialBalance" binding:"gte=0"`
	RegisterID     string          `json:"registerID,omitempty"`
}

// CloseSessionRequest is the body of POST /sessions/{sessionId}/close.
type CloseSessionRequest struct {
	ActualCash decimal.Decimal `json:"actualCash" binding:"gte=0"`
}

// SessionResponse defines the data returned for a cash session.
type SessionResponse struct {
	SessionID      string               `json:"sessionID"`
	ScopeKey       string               `json:"scopeKey"`
	OpenedBy       string               `json:"openedBy"`
	OpenTime       time.Time            `json:"openTime"`
	CloseTime      *time.Time           `json:"closeTime,omitempty"`
	ClosedBy       *string              `json:"closedBy,omitempty"`
	InitialBalance decimal.Decimal      `json:"initialBalance"`
	ExpectedCash   decimal.Decimal      `json:"expectedCash"`
	SalesCash      decimal.Decimal      `json:"salesCash"`
	SalesCard      decimal.Decimal      `json:"salesCard"`
	SalesOther     decimal.Decimal      `json:"salesOther"`
	ActualCash     *decimal.Decimal     `json:"actualCash,omitempty"`
	Difference     *decimal.Decimal     `json:"difference,omitempty"`
	Status         domain.SessionStatus `json:"status"`
}

// ToSessionResponse converts a domain.CashSession to SessionResponse DTO.
func ToSessionResponse(s *domain.CashSession) SessionResponse {
	return SessionResponse{
		SessionID:      s.SessionID,
		ScopeKey:       s.ScopeKey,
		OpenedBy:       s.OpenedBy,
		OpenTime:       s.OpenTime,
		CloseTime:      s.CloseTime,
		ClosedBy:       s.ClosedBy,
		InitialBalance: s.InitialBalance,
		ExpectedCash:   s.ExpectedCash,
		SalesCash:      s.SalesCash,
		SalesCard:      s.SalesCard,
		SalesOther:     s.SalesOther,
		ActualCash:     s.ActualCash,
		Difference:     s.Difference,
		Status:         s.Status,
	}
}
