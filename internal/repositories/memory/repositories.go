package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

var (
	_ portsrepo.TxRunner                    = (*Store)(nil)
	_ portsrepo.IngredientRepositoryFacade  = (*Store)(nil)
	_ portsrepo.CustomerRepositoryFacade    = (*Store)(nil)
	_ portsrepo.CashSessionRepositoryFacade = (*Store)(nil)
	_ portsrepo.SaleRepositoryFacade        = (*Store)(nil)
	_ portsrepo.CatalogReader               = (*Store)(nil)
	_ portsrepo.ReportingRepository         = (*Store)(nil)
)

func (s *Store) FindIngredientsByIDs(_ context.Context, ingredientIDs []string) (map[string]domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[string]domain.Ingredient, len(ingredientIDs))
	for _, id := range ingredientIDs {
		if ing, ok := s.ingredients[id]; ok {
			found[id] = ing
		}
	}
	return found, nil
}

func (s *Store) ListIngredients(_ context.Context) ([]domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]domain.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		list = append(list, ing)
	}
	slices.SortFunc(list, func(a, b domain.Ingredient) int {
		return strings.Compare(a.Name, b.Name)
	})
	return list, nil
}

func (s *Store) SetIngredientStocks(_ context.Context, stocks map[string]decimal.Decimal, updatedBy string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stock := range stocks {
		ing, ok := s.ingredients[id]
		if !ok {
			return fmt.Errorf("ingredient %s: %w", id, apperrors.ErrNotFound)
		}
		ing.Stock = stock
		ing.LastUpdatedAt = at
		ing.LastUpdatedBy = updatedBy
		s.ingredients[id] = ing
	}
	return nil
}

func (s *Store) FindCustomerByID(_ context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
	}
	return &c, nil
}

func (s *Store) SaveCustomerTotals(_ context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.CustomerID]; !ok {
		return fmt.Errorf("customer %s: %w", customer.CustomerID, apperrors.ErrNotFound)
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) FindSessionByID(_ context.Context, sessionID string) (*domain.CashSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	return &sess, nil
}

func (s *Store) FindOpenSession(_ context.Context, scopeKey string) (*domain.CashSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.openByScope[scopeKey]
	if !ok {
		return nil, fmt.Errorf("open session for %q: %w", scopeKey, apperrors.ErrNotFound)
	}
	sess := s.sessions[id]
	return &sess, nil
}

func (s *Store) SaveSession(_ context.Context, session domain.CashSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.SessionID]; !ok {
		return fmt.Errorf("session %s: %w", session.SessionID, apperrors.ErrNotFound)
	}
	s.putSession(session)
	return nil
}

func (s *Store) FindSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
	}
	sale = cloneSale(sale)
	return &sale, nil
}

func (s *Store) ListSales(_ context.Context, filter domain.SaleFilter, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	matched := make([]domain.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		if filter.Status != nil && sale.Status != *filter.Status {
			continue
		}
		if filter.SessionID != nil && sale.SessionID != *filter.SessionID {
			continue
		}
		if cursor != nil && !cursor.After(sale.Timestamp, sale.SaleID) {
			continue
		}
		matched = append(matched, cloneSale(sale))
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Sale) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.SaleID, a.SaleID)
	})

	if len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(pagination.Cursor{Timestamp: last.Timestamp, ID: last.SaleID})
	return page, &token, nil
}

func (s *Store) InsertSale(_ context.Context, sale domain.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sales[sale.SaleID]; exists {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrDuplicate)
	}
	s.sales[sale.SaleID] = cloneSale(sale)
	return nil
}

func (s *Store) FindCatalogItemsByNames(_ context.Context, names []string) (map[string]domain.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[string]domain.CatalogItem, len(names))
	for _, name := range names {
		if item, ok := s.catalog[name]; ok {
			found[name] = item
		}
	}
	return found, nil
}

func (s *Store) SummarizeSessionSales(_ context.Context, sessionID string) (*domain.SessionSalesSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := &domain.SessionSalesSummary{}
	for _, sale := range s.sales {
		if sale.SessionID != sessionID {
			continue
		}
		summary.SaleCount++
		summary.Recorded.Add(sale.PaymentMethod, sale.Total)
		if sale.Status == domain.SaleVoided {
			summary.VoidedCount++
			summary.Voided.Add(sale.PaymentMethod, sale.Total)
		}
	}
	return summary, nil
}
