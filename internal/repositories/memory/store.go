package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store keeps every ledger record in process memory. Units of work run one at
// a time under the store's write lock and their writes are staged until the
// function returns without error.
type Store struct {
	mu          sync.RWMutex
	ingredients map[string]domain.Ingredient
	customers   map[string]domain.Customer
	sessions    map[string]domain.CashSession
	openByScope map[string]string
	sales       map[string]domain.Sale
	catalog     map[string]domain.CatalogItem
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		ingredients: make(map[string]domain.Ingredient),
		customers:   make(map[string]domain.Customer),
		sessions:    make(map[string]domain.CashSession),
		openByScope: make(map[string]string),
		sales:       make(map[string]domain.Sale),
		catalog:     make(map[string]domain.CatalogItem),
	}
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Ledger:         s,
		IngredientRepo: s,
		CustomerRepo:   s,
		SessionRepo:    s,
		SaleRepo:       s,
		CatalogRepo:    s,
		ReportingRepo:  s,
	}
}

// PutIngredient inserts or replaces an ingredient.
func (s *Store) PutIngredient(ing domain.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients[ing.IngredientID] = ing
}

// PutCustomer inserts or replaces a loyalty account.
func (s *Store) PutCustomer(c domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.CustomerID] = c
}

// PutCatalogItem inserts or replaces a product, keyed by name.
func (s *Store) PutCatalogItem(item domain.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[item.Name] = item
}

// RemoveCatalogItem drops a product from the catalog.
func (s *Store) RemoveCatalogItem(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.catalog, name)
}

// RemoveIngredient drops an ingredient.
func (s *Store) RemoveIngredient(ingredientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ingredients, ingredientID)
}

// NewSeeded returns a store holding a small cafe menu for local runs.
func NewSeeded() *Store {
	s := NewStore()
	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"}

	for _, ing := range []domain.Ingredient{
		{IngredientID: "milk", Name: "Milk", Unit: "ml", Stock: decimal.NewFromInt(10000), MinStock: decimal.NewFromInt(1000), UnitCost: decimal.RequireFromString("0.002")},
		{IngredientID: "coffee", Name: "Coffee beans", Unit: "g", Stock: decimal.NewFromInt(2000), MinStock: decimal.NewFromInt(200), UnitCost: decimal.RequireFromString("0.03")},
		{IngredientID: "cocoa", Name: "Cocoa powder", Unit: "g", Stock: decimal.NewFromInt(1000), MinStock: decimal.NewFromInt(100), UnitCost: decimal.RequireFromString("0.02")},
	} {
		ing.AuditFields = audit
		s.ingredients[ing.IngredientID] = ing
	}

	for _, item := range []domain.CatalogItem{
		{ProductID: "latte", Name: "Latte", Price: decimal.NewFromInt(5), GrantsLoyaltyStamp: true, Recipe: []domain.RecipeLine{
			{IngredientID: "milk", QtyRequired: decimal.NewFromInt(200)},
			{IngredientID: "coffee", QtyRequired: decimal.NewFromInt(18)},
		}},
		{ProductID: "espresso", Name: "Espresso", Price: decimal.RequireFromString("2.5"), GrantsLoyaltyStamp: true, Recipe: []domain.RecipeLine{
			{IngredientID: "coffee", QtyRequired: decimal.NewFromInt(18)},
		}},
		{ProductID: "mocha", Name: "Mocha", Price: decimal.RequireFromString("5.5"), GrantsLoyaltyStamp: true, Recipe: []domain.RecipeLine{
			{IngredientID: "milk", QtyRequired: decimal.NewFromInt(180)},
			{IngredientID: "coffee", QtyRequired: decimal.NewFromInt(18)},
			{IngredientID: "cocoa", QtyRequired: decimal.NewFromInt(15)},
		}},
		{ProductID: "water", Name: "Bottled water", Price: decimal.NewFromInt(2), PurchaseCost: decimal.RequireFromString("0.6")},
	} {
		s.catalog[item.Name] = item
	}

	s.customers["demo-customer"] = domain.Customer{
		CustomerID:  "demo-customer",
		Name:        "Demo Customer",
		TotalSpent:  decimal.Zero,
		AuditFields: audit,
	}
	return s
}

// WithinTx runs fn while holding the store's write lock and applies the staged
// writes only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &ledgerTx{
		store:       s,
		ingredients: make(map[string]domain.Ingredient),
		customers:   make(map[string]domain.Customer),
		sessions:    make(map[string]domain.CashSession),
		sales:       make(map[string]domain.Sale),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

// ledgerTx overlays staged writes on the store. It is only used while the
// store's write lock is held.
type ledgerTx struct {
	store       *Store
	ingredients map[string]domain.Ingredient
	customers   map[string]domain.Customer
	sessions    map[string]domain.CashSession
	sales       map[string]domain.Sale
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) session(id string) (domain.CashSession, bool) {
	if sess, ok := t.sessions[id]; ok {
		return sess, true
	}
	sess, ok := t.store.sessions[id]
	return sess, ok
}

func (t *ledgerTx) sale(id string) (domain.Sale, bool) {
	if sale, ok := t.sales[id]; ok {
		return sale, true
	}
	sale, ok := t.store.sales[id]
	return sale, ok
}

func (t *ledgerTx) openSessionFor(scopeKey string) (domain.CashSession, bool) {
	for _, sess := range t.sessions {
		if sess.ScopeKey == scopeKey && sess.IsOpen() {
			return sess, true
		}
	}
	if id, ok := t.store.openByScope[scopeKey]; ok {
		if sess, ok := t.session(id); ok && sess.IsOpen() {
			return sess, true
		}
	}
	return domain.CashSession{}, false
}

func (t *ledgerTx) LockOpenSession(_ context.Context, scopeKey string) (*domain.CashSession, error) {
	sess, ok := t.openSessionFor(scopeKey)
	if !ok {
		return nil, fmt.Errorf("open session for %q: %w", scopeKey, apperrors.ErrNotFound)
	}
	return &sess, nil
}

func (t *ledgerTx) LockSession(_ context.Context, sessionID string) (*domain.CashSession, error) {
	sess, ok := t.session(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	return &sess, nil
}

func (t *ledgerTx) LockIngredients(_ context.Context, ingredientIDs []string) (map[string]domain.Ingredient, error) {
	found := make(map[string]domain.Ingredient, len(ingredientIDs))
	for _, id := range ingredientIDs {
		if ing, ok := t.ingredients[id]; ok {
			found[id] = ing
		} else if ing, ok := t.store.ingredients[id]; ok {
			found[id] = ing
		}
	}
	return found, nil
}

func (t *ledgerTx) LockCustomer(_ context.Context, customerID string) (*domain.Customer, error) {
	if c, ok := t.customers[customerID]; ok {
		return &c, nil
	}
	c, ok := t.store.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
	}
	return &c, nil
}

func (t *ledgerTx) LockSale(_ context.Context, saleID string) (*domain.Sale, error) {
	sale, ok := t.sale(saleID)
	if !ok {
		return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
	}
	sale = cloneSale(sale)
	return &sale, nil
}

func (t *ledgerTx) AdjustIngredientStocks(ctx context.Context, deltas map[string]decimal.Decimal, updatedBy string, at time.Time) error {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	current, err := t.LockIngredients(ctx, ids)
	if err != nil {
		return err
	}
	for id, delta := range deltas {
		ing, ok := current[id]
		if !ok {
			return fmt.Errorf("ingredient %s: %w", id, apperrors.ErrNotFound)
		}
		ing.Stock = ing.Stock.Add(delta)
		ing.LastUpdatedAt = at
		ing.LastUpdatedBy = updatedBy
		t.ingredients[id] = ing
	}
	return nil
}

func (t *ledgerTx) SaveCustomerTotals(ctx context.Context, customer domain.Customer) error {
	if _, err := t.LockCustomer(ctx, customer.CustomerID); err != nil {
		return err
	}
	t.customers[customer.CustomerID] = customer
	return nil
}

func (t *ledgerTx) InsertSession(_ context.Context, session domain.CashSession) error {
	if _, exists := t.session(session.SessionID); exists {
		return fmt.Errorf("session %s: %w", session.SessionID, apperrors.ErrDuplicate)
	}
	if session.IsOpen() {
		if _, open := t.openSessionFor(session.ScopeKey); open {
			return fmt.Errorf("open session for %q: %w", session.ScopeKey, apperrors.ErrDuplicate)
		}
	}
	t.sessions[session.SessionID] = session
	return nil
}

func (t *ledgerTx) SaveSession(_ context.Context, session domain.CashSession) error {
	if _, ok := t.session(session.SessionID); !ok {
		return fmt.Errorf("session %s: %w", session.SessionID, apperrors.ErrNotFound)
	}
	t.sessions[session.SessionID] = session
	return nil
}

func (t *ledgerTx) InsertSale(_ context.Context, sale domain.Sale) error {
	if _, exists := t.sale(sale.SaleID); exists {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrDuplicate)
	}
	t.sales[sale.SaleID] = cloneSale(sale)
	return nil
}

func (t *ledgerTx) UpdateSaleVoidState(_ context.Context, sale domain.Sale) error {
	if _, ok := t.sale(sale.SaleID); !ok {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrNotFound)
	}
	t.sales[sale.SaleID] = cloneSale(sale)
	return nil
}

func (t *ledgerTx) apply() {
	s := t.store
	for id, ing := range t.ingredients {
		s.ingredients[id] = ing
	}
	for id, c := range t.customers {
		s.customers[id] = c
	}
	for _, sess := range t.sessions {
		s.putSession(sess)
	}
	for id, sale := range t.sales {
		s.sales[id] = sale
	}
}

// putSession stores a session and keeps the open-session index current.
// Callers hold the write lock.
func (s *Store) putSession(sess domain.CashSession) {
	s.sessions[sess.SessionID] = sess
	if sess.IsOpen() {
		s.openByScope[sess.ScopeKey] = sess.SessionID
		return
	}
	if s.openByScope[sess.ScopeKey] == sess.SessionID {
		delete(s.openByScope, sess.ScopeKey)
	}
}

func cloneSale(sale domain.Sale) domain.Sale {
	sale.LineItems = slices.Clone(sale.LineItems)
	sale.Consumption = slices.Clone(sale.Consumption)
	return sale
}
