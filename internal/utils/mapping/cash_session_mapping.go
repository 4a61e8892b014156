package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelCashSession converts a domain CashSession to a model CashSession
func ToModelCashSession(d domain.CashSession) models.CashSession {
	return models.CashSession{
		SessionID:      d.SessionID,
		ScopeKey:       d.ScopeKey,
		OpenedBy:       d.OpenedBy,
		OpenTime:       d.OpenTime,
		CloseTime:      d.CloseTime,
		ClosedBy:       d.ClosedBy,
		InitialBalance: d.InitialBalance,
		ExpectedCash:   d.ExpectedCash,
		SalesCash:      d.SalesCash,
		SalesCard:      d.SalesCard,
		SalesOther:     d.SalesOther,
		ActualCash:     d.ActualCash,
		Difference:     d.Difference,
		Status:         string(d.Status),
	}
}

// ToDomainCashSession converts a model CashSession to a domain CashSession
func ToDomainCashSession(m models.CashSession) domain.CashSession {
	return domain.CashSession{
		SessionID:      m.SessionID,
		ScopeKey:       m.ScopeKey,
		OpenedBy:       m.OpenedBy,
		OpenTime:       m.OpenTime,
		CloseTime:      m.CloseTime,
		ClosedBy:       m.ClosedBy,
		InitialBalance: m.InitialBalance,
		ExpectedCash:   m.ExpectedCash,
		SalesCash:      m.SalesCash,
		SalesCard:      m.SalesCard,
		SalesOther:     m.SalesOther,
		ActualCash:     m.ActualCash,
		Difference:     m.Difference,
		Status:         domain.SessionStatus(m.Status),
	}
}
