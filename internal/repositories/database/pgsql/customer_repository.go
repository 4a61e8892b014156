package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `customer_id, name, stamp_balance, total_purchases, total_spent, last_visit,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for loyalty accounts.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return selectCustomer(ctx, r.Pool, customerID, false)
}

func (r *PgxCustomerRepository) SaveCustomerTotals(ctx context.Context, customer domain.Customer) error {
	return updateCustomerTotals(ctx, r.Pool, customer)
}

func selectCustomer(ctx context.Context, q querier, customerID string, forUpdate bool) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var m models.Customer
	err := q.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID,
		&m.Name,
		&m.StampBalance,
		&m.TotalPurchases,
		&m.TotalSpent,
		&m.LastVisit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "customer "+customerID)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

func updateCustomerTotals(ctx context.Context, q querier, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	tag, err := q.Exec(ctx, `
		UPDATE customers
		SET stamp_balance = $2, total_purchases = $3, total_spent = $4, last_visit = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE customer_id = $1`,
		m.CustomerID,
		m.StampBalance,
		m.TotalPurchases,
		m.TotalSpent,
		m.LastVisit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", m.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", m.CustomerID, apperrors.ErrNotFound)
	}
	return nil
}
