package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const ingredientColumns = `ingredient_id, name, unit, stock, min_stock, unit_cost,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxIngredientRepository struct {
	BaseRepository
}

// newPgxIngredientRepository creates a new repository for inventory data.
func newPgxIngredientRepository(pool *pgxpool.Pool) portsrepo.IngredientRepositoryFacade {
	return &PgxIngredientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IngredientRepositoryFacade = (*PgxIngredientRepository)(nil)

func (r *PgxIngredientRepository) FindIngredientsByIDs(ctx context.Context, ingredientIDs []string) (map[string]domain.Ingredient, error) {
	return selectIngredients(ctx, r.Pool, ingredientIDs, false)
}

func (r *PgxIngredientRepository) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name, ingredient_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredient rows: %w", err)
	}
	return ingredients, nil
}

// SetIngredientStocks overwrites stock values. It is the unlocked write used by
// the parallel commit strategy.
func (r *PgxIngredientRepository) SetIngredientStocks(ctx context.Context, stocks map[string]decimal.Decimal, updatedBy string, at time.Time) error {
	return updateStocks(ctx, r.Pool,
		`UPDATE ingredients SET stock = $2, last_updated_at = $3, last_updated_by = $4 WHERE ingredient_id = $1`,
		stocks, updatedBy, at)
}

func scanIngredient(row pgx.Row) (domain.Ingredient, error) {
	var m models.Ingredient
	if err := row.Scan(
		&m.IngredientID,
		&m.Name,
		&m.Unit,
		&m.Stock,
		&m.MinStock,
		&m.UnitCost,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		return domain.Ingredient{}, fmt.Errorf("failed to scan ingredient row: %w", err)
	}
	return mapping.ToDomainIngredient(m), nil
}

// selectIngredients returns the ingredients that exist among ids. Locking reads
// take the rows in id order so concurrent units of work cannot deadlock on them.
func selectIngredients(ctx context.Context, q querier, ids []string, forUpdate bool) (map[string]domain.Ingredient, error) {
	found := make(map[string]domain.Ingredient, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE ingredient_id = ANY($1) ORDER BY ingredient_id`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		found[ing.IngredientID] = ing
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredient rows: %w", err)
	}
	return found, nil
}

// updateStocks runs query once per ingredient as a batch. query takes
// (ingredient_id, value, updated_at, updated_by).
func updateStocks(ctx context.Context, q querier, query string, values map[string]decimal.Decimal, updatedBy string, at time.Time) error {
	if len(values) == 0 {
		return nil
	}
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, id, values[id], at, updatedBy)
	}
	br := q.SendBatch(ctx, batch)
	for _, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return fmt.Errorf("failed to update stock for ingredient %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			br.Close()
			return fmt.Errorf("ingredient %s: %w", id, apperrors.ErrNotFound)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute stock update batch: %w", err)
	}
	return nil
}
