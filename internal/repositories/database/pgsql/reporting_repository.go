package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SummarizeSessionSales totals the sales recorded against a session by payment method and status
func (r *reportingRepository) SummarizeSessionSales(ctx context.Context, sessionID string) (*domain.SessionSalesSummary, error) {
	query := `
		SELECT payment_method, status, COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE session_id = $1
		GROUP BY payment_method, status
	`

	rows, err := r.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying session sales: %w", err)
	}
	defer rows.Close()

	summary := &domain.SessionSalesSummary{}
	for rows.Next() {
		var (
			method, status string
			count          int
			total          decimal.Decimal
		)
		if err := rows.Scan(&method, &status, &count, &total); err != nil {
			return nil, fmt.Errorf("error scanning session sales row: %w", err)
		}

		summary.SaleCount += count
		summary.Recorded.Add(domain.PaymentMethod(method), total)
		if domain.SaleStatus(status) == domain.SaleVoided {
			summary.VoidedCount += count
			summary.Voided.Add(domain.PaymentMethod(method), total)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session sales rows: %w", err)
	}

	return summary, nil
}
