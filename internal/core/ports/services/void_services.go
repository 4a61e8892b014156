package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// VoidSvcFacade is the void workflow over a sale's status.
type VoidSvcFacade interface {
	// RequestVoid flags a completed sale for review. Any operator may call it.
	RequestVoid(ctx context.Context, saleID, reason string, operator domain.Operator) (*domain.Sale, error)

	// RejectVoid returns a pending sale to completed. Managers only.
	RejectVoid(ctx context.Context, saleID string, operator domain.Operator) (*domain.Sale, error)

	// ApproveVoid reverses a pending or completed sale's inventory and loyalty effects. Managers only.
	ApproveVoid(ctx context.Context, saleID string, directReason *string, operator domain.Operator) (*domain.VoidOutcome, error)
}
