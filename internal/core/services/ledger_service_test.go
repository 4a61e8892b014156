package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}

type stubWeather struct {
	snap  *domain.WeatherSnapshot
	err   error
	delay time.Duration
}

func (w stubWeather) CurrentConditions(ctx context.Context) (*domain.WeatherSnapshot, error) {
	if w.delay > 0 {
		select {
		case <-time.After(w.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return w.snap, w.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.LedgerEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []domain.LedgerEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.LedgerEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// failingSessions lets every session write fail while reads still work.
type failingSessions struct {
	*memory.Store
}

func (failingSessions) SaveSession(context.Context, domain.CashSession) error {
	return errors.New("connection reset")
}

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	events    *recordingPublisher
	sales     portssvc.SaleSvcFacade
	voids     portssvc.VoidSvcFacade
	sessions  portssvc.CashSessionSvcFacade
	inventory portssvc.InventorySvcFacade
	reporting portssvc.ReportingService
	cashier   domain.Operator
	manager   domain.Operator
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.events = &recordingPublisher{}
	suite.cashier = domain.Operator{ID: "op-cashier", Role: domain.RoleCashier}
	suite.manager = domain.Operator{ID: "op-manager", Role: domain.RoleManager}

	suite.store.PutIngredient(domain.Ingredient{IngredientID: "milk", Name: "Milk", Unit: "ml", Stock: dec("1000"), MinStock: dec("200"), UnitCost: dec("2")})
	suite.store.PutIngredient(domain.Ingredient{IngredientID: "coffee", Name: "Coffee", Unit: "g", Stock: dec("500"), MinStock: dec("50"), UnitCost: dec("10")})
	suite.store.PutCatalogItem(domain.CatalogItem{
		ProductID:          "p-latte",
		Name:               "Latte",
		Price:              dec("3500"),
		GrantsLoyaltyStamp: true,
		Recipe: []domain.RecipeLine{
			{IngredientID: "milk", QtyRequired: dec("200")},
			{IngredientID: "coffee", QtyRequired: dec("18")},
		},
	})
	suite.store.PutCatalogItem(domain.CatalogItem{ProductID: "p-cookie", Name: "Cookie", Price: dec("1200"), PurchaseCost: dec("400")})
	suite.store.PutCustomer(domain.Customer{CustomerID: "c-1", Name: "Ana", StampBalance: 4, TotalSpent: decimal.Zero})

	suite.build()
}

func (suite *LedgerServiceTestSuite) build(options ...services.ServiceOption) {
	suite.buildWith(suite.store.Provider(), options...)
}

func (suite *LedgerServiceTestSuite) buildWith(repos portsrepo.RepositoryProvider, options ...services.ServiceOption) {
	options = append([]services.ServiceOption{services.WithEventPublisher(suite.events)}, options...)
	suite.sales = services.NewSaleService(repos, options...)
	suite.voids = services.NewVoidService(repos, options...)
	suite.sessions = services.NewCashSessionService(repos, options...)
	suite.inventory = services.NewInventoryService(repos, options...)
	suite.reporting = services.NewReportingService(repos, options...)
}

func (suite *LedgerServiceTestSuite) openSession(initial string) *domain.CashSession {
	session, err := suite.sessions.OpenSession(suite.ctx, dto.OpenSessionRequest{InitialBalance: dec(initial)}, suite.cashier)
	suite.Require().NoError(err)
	return session
}

func latteRequest() dto.CommitSaleRequest {
	return dto.CommitSaleRequest{
		Items:          []dto.CartItemRequest{{Name: "Latte", Quantity: 1}},
		Total:          dec("3500"),
		CustomerID:     strPtr("c-1"),
		PaymentMethod:  domain.PaymentCash,
		AmountReceived: decPtr("4000"),
	}
}

func (suite *LedgerServiceTestSuite) stock(id string) string {
	found, err := suite.store.FindIngredientsByIDs(suite.ctx, []string{id})
	suite.Require().NoError(err)
	return found[id].Stock.String()
}

func (suite *LedgerServiceTestSuite) customer() *domain.Customer {
	c, err := suite.store.FindCustomerByID(suite.ctx, "c-1")
	suite.Require().NoError(err)
	return c
}

func (suite *LedgerServiceTestSuite) session(id string) *domain.CashSession {
	s, err := suite.sessions.GetSession(suite.ctx, id)
	suite.Require().NoError(err)
	return s
}

func (suite *LedgerServiceTestSuite) TestCommitSale_LatteScenario() {
	session := suite.openSession("10000")

	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	suite.Equal("800", suite.stock("milk"))
	suite.Equal("482", suite.stock("coffee"))
	c := suite.customer()
	suite.Equal(int64(5), c.StampBalance)
	suite.Equal(int64(1), c.TotalPurchases)
	suite.Equal("3500", c.TotalSpent.String())

	updated := suite.session(session.SessionID)
	suite.Equal("13500", updated.ExpectedCash.String())
	suite.Equal("3500", updated.SalesCash.String())

	sale := receipt.Sale
	suite.Equal(domain.SaleCompleted, sale.Status)
	suite.Equal(session.SessionID, sale.SessionID)
	suite.Equal(int64(1), sale.StampsEarned)
	suite.Require().NotNil(sale.Change)
	suite.Equal("500", sale.Change.String())
	suite.Equal("580", sale.CostOfGoods.String())
	suite.False(receipt.PriceMismatch)

	stored, err := suite.sales.GetSale(suite.ctx, sale.SaleID)
	suite.Require().NoError(err)
	suite.Equal(sale.SaleID, stored.SaleID)
	suite.Contains(suite.events.types(), domain.EventSaleCommitted)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_EmptyCartBeforeSessionCheck() {
	req := latteRequest()
	req.Items = nil

	_, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrEmptyCart)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_HugeRedemptionDoesNotWrapBalance() {
	suite.openSession("0")
	suite.store.PutCustomer(domain.Customer{CustomerID: "c-1", Name: "Ana", StampBalance: 0, TotalSpent: decimal.Zero})
	req := latteRequest()
	req.Total = decimal.Zero
	req.AmountReceived = nil
	req.PaymentMethod = domain.PaymentCard

	req.Items = []dto.CartItemRequest{{Name: "Cookie", Quantity: 922337203685477581, IsRedeemed: true}}
	_, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)

	req.Items = []dto.CartItemRequest{
		{Name: "Cookie", Quantity: domain.MaxLineQuantity, IsRedeemed: true},
		{Name: "Cookie", Quantity: domain.MaxLineQuantity, IsRedeemed: true},
	}
	_, err = suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrInsufficientStamps)
	suite.Equal(int64(0), suite.customer().StampBalance)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_NoOpenSession() {
	_, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.ErrorIs(err, apperrors.ErrNoOpenSession)
	suite.Equal("1000", suite.stock("milk"))
	suite.Equal(int64(4), suite.customer().StampBalance)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_InsufficientStampsWritesNothing() {
	session := suite.openSession("10000")
	req := latteRequest()
	req.Items = []dto.CartItemRequest{{Name: "Latte", Quantity: 1, IsRedeemed: true}}
	req.Total = decimal.Zero
	req.AmountReceived = nil

	_, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrInsufficientStamps)

	suite.Equal("1000", suite.stock("milk"))
	suite.Equal(int64(4), suite.customer().StampBalance)
	suite.Equal("10000", suite.session(session.SessionID).ExpectedCash.String())
	page, err := suite.sales.ListSales(suite.ctx, dto.ListSalesParams{})
	suite.Require().NoError(err)
	suite.Empty(page.Sales)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_UnknownProduct() {
	suite.openSession("0")
	req := latteRequest()
	req.Items = []dto.CartItemRequest{{Name: "Croissant", Quantity: 1}}

	_, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrUnknownProduct)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_StrictStockRejects() {
	suite.openSession("0")
	req := latteRequest()
	req.Items = []dto.CartItemRequest{{Name: "Latte", Quantity: 6}}
	req.Total = dec("21000")
	req.AmountReceived = nil

	_, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.Equal("1000", suite.stock("milk"))
}

func (suite *LedgerServiceTestSuite) TestCommitSale_LenientStockWarns() {
	suite.build(services.WithStrictStock(false))
	suite.openSession("0")
	req := latteRequest()
	req.Items = []dto.CartItemRequest{{Name: "Latte", Quantity: 6}}
	req.Total = dec("21000")
	req.AmountReceived = nil

	receipt, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.Require().NoError(err)
	suite.Equal("-200", suite.stock("milk"))
	suite.Contains(receipt.StockWarnings, "Milk")
	suite.Contains(receipt.LowStock, "Milk")
}

func (suite *LedgerServiceTestSuite) TestCommitSale_PriceMismatchKeepsCallerTotal() {
	suite.openSession("0")
	req := latteRequest()
	req.Total = dec("3000")

	receipt, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.Require().NoError(err)
	suite.True(receipt.PriceMismatch)
	suite.Equal("3000", receipt.Sale.Total.String())
}

func (suite *LedgerServiceTestSuite) TestCommitSale_RegisterScopeNeedsRegister() {
	suite.build(services.WithSessionScope(domain.SessionScopeRegister))

	_, err := suite.sessions.OpenSession(suite.ctx, dto.OpenSessionRequest{InitialBalance: dec("0")}, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrRegisterRequired)

	_, err = suite.sessions.OpenSession(suite.ctx, dto.OpenSessionRequest{InitialBalance: dec("0"), RegisterID: "r-1"}, suite.cashier)
	suite.Require().NoError(err)
	_, err = suite.sessions.OpenSession(suite.ctx, dto.OpenSessionRequest{InitialBalance: dec("0"), RegisterID: "r-2"}, suite.cashier)
	suite.Require().NoError(err)

	req := latteRequest()
	_, err = suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrRegisterRequired)

	req.RegisterID = "r-3"
	_, err = suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrNoOpenSession)

	req.RegisterID = "r-2"
	receipt, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
	suite.Require().NoError(err)
	open, err := suite.sessions.GetOpenSession(suite.ctx, "r-2")
	suite.Require().NoError(err)
	suite.Equal(open.SessionID, receipt.Sale.SessionID)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_WeatherAnnotation() {
	snap := &domain.WeatherSnapshot{Condition: "rain", WeatherCode: 61, TemperatureC: 14.5}
	suite.build(services.WithWeatherProvider(stubWeather{snap: snap}, time.Second))
	suite.openSession("0")

	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)
	suite.Require().NotNil(receipt.Sale.WeatherContext)
	suite.Equal("rain", receipt.Sale.WeatherContext.Condition)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_WeatherFailureIsSwallowed() {
	suite.build(services.WithWeatherProvider(stubWeather{err: errors.New("upstream 503")}, time.Second))
	suite.openSession("0")

	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)
	suite.Nil(receipt.Sale.WeatherContext)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_WeatherTimeoutDoesNotBlock() {
	slow := stubWeather{snap: &domain.WeatherSnapshot{Condition: "clear"}, delay: 5 * time.Second}
	suite.build(services.WithWeatherProvider(slow, 20*time.Millisecond))
	suite.openSession("0")

	start := time.Now()
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)
	suite.Nil(receipt.Sale.WeatherContext)
	suite.Less(time.Since(start), 2*time.Second)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_PublishFailureIsSwallowed() {
	suite.events.err = errors.New("broker down")
	suite.openSession("0")

	_, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.NoError(err)
}

func (suite *LedgerServiceTestSuite) TestCommitSale_ConcurrentCommitsConserveStock() {
	suite.store.PutIngredient(domain.Ingredient{IngredientID: "milk", Name: "Milk", Unit: "ml", Stock: dec("10000"), MinStock: dec("0")})
	suite.openSession("0")

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := latteRequest()
			req.CustomerID = nil
			_, err := suite.sales.CommitSale(suite.ctx, req, suite.cashier)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		suite.NoError(err)
	}

	suite.Equal("6000", suite.stock("milk"))
	suite.Equal("140", suite.stock("coffee"))
}

func (suite *LedgerServiceTestSuite) TestParallelStrategy_Commits() {
	suite.build(services.WithCommitStrategy(services.StrategyParallel))
	session := suite.openSession("10000")

	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)
	suite.Equal("800", suite.stock("milk"))
	suite.Equal(int64(5), suite.customer().StampBalance)
	suite.Equal("13500", suite.session(session.SessionID).ExpectedCash.String())
	suite.Equal(session.SessionID, receipt.Sale.SessionID)
}

func (suite *LedgerServiceTestSuite) TestParallelStrategy_PartialFailure() {
	repos := suite.store.Provider()
	repos.SessionRepo = failingSessions{suite.store}
	suite.buildWith(repos, services.WithCommitStrategy(services.StrategyParallel))
	suite.openSession("0")

	_, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.ErrorIs(err, apperrors.ErrPartialCommit)
	suite.Contains(err.Error(), "reconcile inventory manually")

	// The other writes were not rolled back.
	suite.Equal("800", suite.stock("milk"))
	page, err := suite.sales.ListSales(suite.ctx, dto.ListSalesParams{})
	suite.Require().NoError(err)
	suite.Len(page.Sales, 1)
}

func (suite *LedgerServiceTestSuite) TestApproveVoid_RoundTrip() {
	session := suite.openSession("10000")
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	outcome, err := suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, strPtr("wrong order"), suite.manager)
	suite.Require().NoError(err)

	suite.Equal(domain.SaleVoided, outcome.Sale.Status)
	suite.Require().NotNil(outcome.Sale.VoidReason)
	suite.Equal("wrong order", *outcome.Sale.VoidReason)
	suite.Equal("1000", suite.stock("milk"))
	suite.Equal("500", suite.stock("coffee"))
	c := suite.customer()
	suite.Equal(int64(4), c.StampBalance)
	suite.Equal(int64(0), c.TotalPurchases)
	suite.True(c.TotalSpent.IsZero())
	suite.Equal("13500", suite.session(session.SessionID).ExpectedCash.String())
	suite.Contains(suite.events.types(), domain.EventSaleVoided)
}

func (suite *LedgerServiceTestSuite) TestApproveVoid_DirectWithoutReason() {
	suite.openSession("0")
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	outcome, err := suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, nil, suite.manager)
	suite.Require().NoError(err)
	suite.Equal(domain.SaleVoided, outcome.Sale.Status)
	suite.Nil(outcome.Sale.VoidReason)
	suite.Equal("1000", suite.stock("milk"))
}

func (suite *LedgerServiceTestSuite) TestApproveVoid_SecondCallIsRejected() {
	suite.openSession("0")
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	_, err = suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, nil, suite.manager)
	suite.Require().NoError(err)
	_, err = suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, nil, suite.manager)
	suite.ErrorIs(err, apperrors.ErrInvalidVoidTransition)
	suite.Equal("1000", suite.stock("milk"))
}

func (suite *LedgerServiceTestSuite) TestApproveVoid_RequiresManager() {
	suite.openSession("0")
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	_, err = suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, nil, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	_, err = suite.voids.RejectVoid(suite.ctx, receipt.Sale.SaleID, suite.cashier)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal("800", suite.stock("milk"))
}

func (suite *LedgerServiceTestSuite) TestApproveVoid_UnknownSale() {
	_, err := suite.voids.ApproveVoid(suite.ctx, "missing", nil, suite.manager)
	suite.ErrorIs(err, apperrors.ErrSaleNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestApproveVoid_SkipsRemovedIngredient() {
	suite.openSession("0")
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)
	suite.store.RemoveIngredient("coffee")

	outcome, err := suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, nil, suite.manager)
	suite.Require().NoError(err)
	suite.Equal([]string{"coffee"}, outcome.SkippedIngredients)
	suite.Equal("1000", suite.stock("milk"))
}

func (suite *LedgerServiceTestSuite) TestApproveVoid_RestoreSources() {
	suite.openSession("0")
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	// Recipe edited after the sale.
	suite.store.PutCatalogItem(domain.CatalogItem{
		ProductID: "p-latte",
		Name:      "Latte",
		Price:     dec("3500"),
		Recipe: []domain.RecipeLine{
			{IngredientID: "milk", QtyRequired: dec("250")},
			{IngredientID: "coffee", QtyRequired: dec("18")},
		},
	})

	suite.build(services.WithRestoreSource("snapshot"))
	_, err = suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, nil, suite.manager)
	suite.Require().NoError(err)
	suite.Equal("1000", suite.stock("milk"))

	receipt, err = suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)
	suite.Equal("750", suite.stock("milk"))

	suite.store.PutCatalogItem(domain.CatalogItem{
		ProductID: "p-latte",
		Name:      "Latte",
		Price:     dec("3500"),
		Recipe: []domain.RecipeLine{
			{IngredientID: "milk", QtyRequired: dec("200")},
			{IngredientID: "coffee", QtyRequired: dec("18")},
		},
	})
	suite.build()
	_, err = suite.voids.ApproveVoid(suite.ctx, receipt.Sale.SaleID, nil, suite.manager)
	suite.Require().NoError(err)
	suite.Equal("950", suite.stock("milk"))
}

func (suite *LedgerServiceTestSuite) TestVoidRequestThenReject() {
	suite.openSession("0")
	receipt, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	_, err = suite.voids.RequestVoid(suite.ctx, receipt.Sale.SaleID, "  ", suite.cashier)
	suite.ErrorIs(err, apperrors.ErrVoidReasonRequired)

	pending, err := suite.voids.RequestVoid(suite.ctx, receipt.Sale.SaleID, "customer changed mind", suite.cashier)
	suite.Require().NoError(err)
	suite.Equal(domain.SalePendingVoid, pending.Status)
	suite.Equal("800", suite.stock("milk"))

	_, err = suite.voids.RequestVoid(suite.ctx, receipt.Sale.SaleID, "again", suite.cashier)
	suite.ErrorIs(err, apperrors.ErrInvalidVoidTransition)

	restored, err := suite.voids.RejectVoid(suite.ctx, receipt.Sale.SaleID, suite.manager)
	suite.Require().NoError(err)
	suite.Equal(domain.SaleCompleted, restored.Status)
	suite.Nil(restored.VoidReason)
	suite.Require().NotNil(restored.VoidProcessedBy)
	suite.Equal(suite.manager.ID, *restored.VoidProcessedBy)
	suite.Equal("800", suite.stock("milk"))

	_, err = suite.voids.RejectVoid(suite.ctx, receipt.Sale.SaleID, suite.manager)
	suite.ErrorIs(err, apperrors.ErrInvalidVoidTransition)
}

func (suite *LedgerServiceTestSuite) TestOpenSession_ConcurrentOpensLeaveOne() {
	const n = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		opened   int
		rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.sessions.OpenSession(suite.ctx, dto.OpenSessionRequest{InitialBalance: dec("100")}, suite.cashier)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				opened++
			} else if errors.Is(err, apperrors.ErrSessionAlreadyOpen) {
				rejected++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, opened)
	suite.Equal(n-1, rejected)
}

func (suite *LedgerServiceTestSuite) TestCloseSession() {
	session := suite.openSession("10000")
	_, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)

	closed, err := suite.sessions.CloseSession(suite.ctx, session.SessionID, dec("13400"), suite.manager)
	suite.Require().NoError(err)
	suite.Equal(domain.SessionClosed, closed.Status)
	suite.Require().NotNil(closed.Difference)
	suite.Equal("-100", closed.Difference.String())

	_, err = suite.sessions.CloseSession(suite.ctx, session.SessionID, dec("0"), suite.manager)
	suite.ErrorIs(err, apperrors.ErrSessionClosed)

	_, err = suite.sessions.CloseSession(suite.ctx, "missing", dec("0"), suite.manager)
	suite.ErrorIs(err, apperrors.ErrSessionNotFound)

	_, err = suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.ErrorIs(err, apperrors.ErrNoOpenSession)

	suite.openSession("0")
}

func (suite *LedgerServiceTestSuite) TestSessionReconciliation() {
	session := suite.openSession("10000")
	first, err := suite.sales.CommitSale(suite.ctx, latteRequest(), suite.cashier)
	suite.Require().NoError(err)
	card := latteRequest()
	card.PaymentMethod = domain.PaymentCard
	card.AmountReceived = nil
	_, err = suite.sales.CommitSale(suite.ctx, card, suite.cashier)
	suite.Require().NoError(err)
	_, err = suite.voids.ApproveVoid(suite.ctx, first.Sale.SaleID, nil, suite.manager)
	suite.Require().NoError(err)

	report, err := suite.reporting.GetSessionReconciliation(suite.ctx, session.SessionID)
	suite.Require().NoError(err)
	suite.True(report.IsBalanced)
	suite.Equal(2, report.Sales.SaleCount)
	suite.Equal(1, report.Sales.VoidedCount)
	suite.Equal("3500", report.VoidedCash.String())
	suite.Equal("3500", report.Sales.Recorded.Card.String())

	_, err = suite.reporting.GetSessionReconciliation(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrSessionNotFound)
}

func (suite *LedgerServiceTestSuite) TestRestockIngredient() {
	ing, err := suite.inventory.RestockIngredient(suite.ctx, "milk", dec("250"), suite.cashier)
	suite.Require().NoError(err)
	suite.Equal("1250", ing.Stock.String())
	suite.Equal("1250", suite.stock("milk"))

	_, err = suite.inventory.RestockIngredient(suite.ctx, "milk", dec("0"), suite.cashier)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	_, err = suite.inventory.RestockIngredient(suite.ctx, "sugar", dec("1"), suite.cashier)
	suite.ErrorIs(err, apperrors.ErrIngredientNotFound)

	list, err := suite.inventory.ListIngredients(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(list, 2)
	suite.Equal("Coffee", list[0].Name)
}
