package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is the lifecycle state of a cash session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// CashSession is one cash-drawer accounting period.
type CashSession struct {
	SessionID      string           `json:"sessionID"`
	ScopeKey       string           `json:"scopeKey"` // "global" or a register id
	OpenedBy       string           `json:"openedBy"`
	OpenTime       time.Time        `json:"openTime"`
	CloseTime      *time.Time       `json:"closeTime,omitempty"`
	ClosedBy       *string          `json:"closedBy,omitempty"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	ExpectedCash   decimal.Decimal  `json:"expectedCash"`
	SalesCash      decimal.Decimal  `json:"salesCash"`
	SalesCard      decimal.Decimal  `json:"salesCard"`
	SalesOther     decimal.Decimal  `json:"salesOther"`
	ActualCash     *decimal.Decimal `json:"actualCash,omitempty"`
	Difference     *decimal.Decimal `json:"difference,omitempty"`
	Status         SessionStatus    `json:"status"`
}

// IsOpen reports whether sales may still be recorded against the session.
func (s CashSession) IsOpen() bool {
	return s.Status == SessionOpen
}

// RecordPayment adds a completed sale's total to the bucket for its payment method.
// Cash also moves the expected drawer amount.
func (s *CashSession) RecordPayment(method PaymentMethod, amount decimal.Decimal) {
	switch method {
	case PaymentCash:
		s.SalesCash = s.SalesCash.Add(amount)
		s.ExpectedCash = s.ExpectedCash.Add(amount)
	case PaymentCard:
		s.SalesCard = s.SalesCard.Add(amount)
	default:
		s.SalesOther = s.SalesOther.Add(amount)
	}
}

// Close records the counted cash and freezes the session.
func (s *CashSession) Close(actualCash decimal.Decimal, closedBy string, at time.Time) {
	diff := actualCash.Sub(s.ExpectedCash)
	s.ActualCash = &actualCash
	s.Difference = &diff
	s.CloseTime = &at
	s.ClosedBy = &closedBy
	s.Status = SessionClosed
}

// SessionScope decides how widely the single-open-session rule applies.
type SessionScope string

const (
	SessionScopeGlobal   SessionScope = "global"
	SessionScopeRegister SessionScope = "register"
)

const globalScopeKey = "global"

// ParseSessionScope validates a configured scope value.
func ParseSessionScope(v string) (SessionScope, error) {
	switch SessionScope(v) {
	case SessionScopeGlobal, SessionScopeRegister:
		return SessionScope(v), nil
	}
	return "", fmt.Errorf("unknown session scope %q", v)
}

// KeyFor returns the key under which at most one session may be open.
// ok is false when the scope needs a register id and none was given.
func (s SessionScope) KeyFor(registerID string) (key string, ok bool) {
	if s == SessionScopeRegister {
		return registerID, registerID != ""
	}
	return globalScopeKey, true
}
