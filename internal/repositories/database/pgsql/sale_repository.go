package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/SscSPs/pos_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const saleColumns = `sale_id, sale_timestamp, session_id, total, cost_of_goods, line_items,
	customer_id, stamps_earned, stamps_spent, payment_method, amount_received, change_given,
	weather_context, consumption, status, created_by,
	void_reason, void_requested_by, void_requested_at, void_processed_by, void_processed_at`

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale records.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return selectSale(ctx, r.Pool, saleID, false)
}

func (r *PgxSaleRepository) InsertSale(ctx context.Context, sale domain.Sale) error {
	return insertSale(ctx, r.Pool, sale)
}

// ListSales pages sales newest first using keyset pagination on (sale_timestamp, sale_id).
func (r *PgxSaleRepository) ListSales(ctx context.Context, filter domain.SaleFilter, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	var (
		conditions []string
		args       []any
	)
	addArg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = "+addArg(string(*filter.Status)))
	}
	if filter.SessionID != nil {
		conditions = append(conditions, "session_id = "+addArg(*filter.SessionID))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conditions = append(conditions, fmt.Sprintf("(sale_timestamp, sale_id) < (%s, %s)", addArg(cursor.Timestamp), addArg(cursor.ID)))
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY sale_timestamp DESC, sale_id DESC LIMIT ` + addArg(limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating sale rows: %w", err)
	}

	if len(sales) <= limit {
		return sales, nil, nil
	}
	sales = sales[:limit]
	last := sales[len(sales)-1]
	token := pagination.EncodeCursor(pagination.Cursor{Timestamp: last.Timestamp, ID: last.SaleID})
	return sales, &token, nil
}

func scanSale(row pgx.Row) (domain.Sale, error) {
	var m models.Sale
	if err := row.Scan(
		&m.SaleID,
		&m.Timestamp,
		&m.SessionID,
		&m.Total,
		&m.CostOfGoods,
		&m.LineItems,
		&m.CustomerID,
		&m.StampsEarned,
		&m.StampsSpent,
		&m.PaymentMethod,
		&m.AmountReceived,
		&m.Change,
		&m.WeatherContext,
		&m.Consumption,
		&m.Status,
		&m.CreatedBy,
		&m.VoidReason,
		&m.VoidRequestedBy,
		&m.VoidRequestedAt,
		&m.VoidProcessedBy,
		&m.VoidProcessedAt,
	); err != nil {
		return domain.Sale{}, err
	}
	return mapping.ToDomainSale(m), nil
}

func selectSale(ctx context.Context, q querier, saleID string, forUpdate bool) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	sale, err := scanSale(q.QueryRow(ctx, query, saleID))
	if err != nil {
		return nil, translateError(err, "sale "+saleID)
	}
	return &sale, nil
}

func insertSale(ctx context.Context, q querier, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	_, err := q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		m.SaleID,
		m.Timestamp,
		m.SessionID,
		m.Total,
		m.CostOfGoods,
		m.LineItems,
		m.CustomerID,
		m.StampsEarned,
		m.StampsSpent,
		m.PaymentMethod,
		m.AmountReceived,
		m.Change,
		m.WeatherContext,
		m.Consumption,
		m.Status,
		m.CreatedBy,
		m.VoidReason,
		m.VoidRequestedBy,
		m.VoidRequestedAt,
		m.VoidProcessedBy,
		m.VoidProcessedAt,
	)
	return translateError(err, "insert sale "+m.SaleID)
}

// updateSaleVoidState writes the only columns a sale may change after commit.
func updateSaleVoidState(ctx context.Context, q querier, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	tag, err := q.Exec(ctx, `
		UPDATE sales
		SET status = $2, void_reason = $3, void_requested_by = $4, void_requested_at = $5,
		    void_processed_by = $6, void_processed_at = $7
		WHERE sale_id = $1`,
		m.SaleID,
		m.Status,
		m.VoidReason,
		m.VoidRequestedBy,
		m.VoidRequestedAt,
		m.VoidProcessedBy,
		m.VoidProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", m.SaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale %s: %w", m.SaleID, apperrors.ErrNotFound)
	}
	return nil
}
