package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// catalogRepository reads the product catalog. Catalog management owns these
// tables; the ledger never writes them.
type catalogRepository struct {
	BaseRepository
}

func newCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogReader {
	return &catalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *catalogRepository) FindCatalogItemsByNames(ctx context.Context, names []string) (map[string]domain.CatalogItem, error) {
	found := make(map[string]domain.CatalogItem, len(names))
	if len(names) == 0 {
		return found, nil
	}
	query := `
		SELECT c.product_id, c.name, c.price, c.purchase_cost, c.grants_loyalty_stamp,
		       COALESCE(
		           jsonb_agg(jsonb_build_object('ingredientID', r.ingredient_id, 'qtyRequired', r.qty_required)
		                     ORDER BY r.ingredient_id) FILTER (WHERE r.ingredient_id IS NOT NULL),
		           '[]'::jsonb)
		FROM catalog_items c
		LEFT JOIN recipe_lines r ON r.product_id = c.product_id
		WHERE c.name = ANY($1)
		GROUP BY c.product_id, c.name, c.price, c.purchase_cost, c.grants_loyalty_stamp
	`
	rows, err := r.Pool.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.CatalogItem
		if err := rows.Scan(&m.ProductID, &m.Name, &m.Price, &m.PurchaseCost, &m.GrantsLoyaltyStamp, &m.Recipe); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		found[m.Name] = mapping.ToDomainCatalogItem(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog rows: %w", err)
	}
	return found, nil
}
