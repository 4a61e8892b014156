package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
	"github.com/SscSPs/pos_ledger/internal/utils/pagination"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// saleService is the sale transaction processor.
type saleService struct {
	BaseService
	sessions       portsrepo.CashSessionReader
	catalog        portsrepo.CatalogReader
	sales          portsrepo.SaleReader
	writer         saleWriter
	weather        portssvc.WeatherProvider
	weatherTimeout time.Duration
	scope          domain.SessionScope
	strictStock    bool
}

// NewSaleService creates the sale service. The atomic write strategy is used
// unless WithCommitStrategy(StrategyParallel) is given.
func NewSaleService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.SaleSvcFacade {
	cfg := newSettings(options)

	var writer saleWriter = &atomicSaleWriter{ledger: repos.Ledger}
	if cfg.strategy == StrategyParallel {
		writer = &parallelSaleWriter{
			sessions:    repos.SessionRepo,
			ingredients: repos.IngredientRepo,
			customers:   repos.CustomerRepo,
			sales:       repos.SaleRepo,
		}
	}

	return &saleService{
		BaseService:    cfg.base,
		sessions:       repos.SessionRepo,
		catalog:        repos.CatalogRepo,
		sales:          repos.SaleRepo,
		writer:         writer,
		weather:        cfg.weather,
		weatherTimeout: cfg.weatherTimeout,
		scope:          cfg.scope,
		strictStock:    cfg.strictStock,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CommitSale validates the cart, checks for an open session before reading
// anything else, then hands the checkout to the configured write strategy.
// Once the write phase starts it is not cancelled by the caller going away.
func (s *saleService) CommitSale(ctx context.Context, req dto.CommitSaleRequest, operator domain.Operator) (receipt *domain.SaleReceipt, err error) {
	ctx, span := startSpan(ctx, "SaleService.CommitSale", trace.WithAttributes(
		attribute.String("payment_method", string(req.PaymentMethod)),
		attribute.String("strategy", s.writer.Name()),
		attribute.Int("cart_lines", len(req.Items)),
	))
	defer func() { endSpan(span, err) }()
	start := time.Now()

	input := accounting.SaleInput{
		Cart:           req.ToCartItems(),
		Total:          req.Total,
		CustomerID:     req.CustomerID,
		PaymentMethod:  req.PaymentMethod,
		AmountReceived: req.AmountReceived,
		ChangeGiven:    req.ChangeGiven,
	}
	defer func() {
		if err != nil {
			s.Metrics.CommitFailed(failureReason(err))
			s.logFailure(ctx, err, "Sale commit rejected",
				slog.String("operator_id", operator.ID),
				slog.String("strategy", s.writer.Name()))
		}
	}()

	if len(input.Cart) == 0 {
		return nil, apperrors.ErrEmptyCart
	}
	scopeKey, ok := s.scope.KeyFor(req.RegisterID)
	if !ok {
		return nil, apperrors.ErrRegisterRequired
	}
	if _, err := s.sessions.FindOpenSession(ctx, scopeKey); err != nil {
		return nil, mapNotFound(err, apperrors.ErrNoOpenSession)
	}
	if err := accounting.ValidateSaleInput(input); err != nil {
		return nil, err
	}

	weather := s.fetchWeather(ctx)

	catalog, err := s.catalog.FindCatalogItemsByNames(ctx, accounting.CartProductNames(input.Cart))
	if err != nil {
		return nil, fmt.Errorf("failed to look up catalog: %w", err)
	}
	required, err := accounting.RequiredIngredients(input.Cart, catalog)
	if err != nil {
		return nil, err
	}

	plan, err := s.writer.Commit(context.WithoutCancel(ctx), commitRequest{
		scopeKey:      scopeKey,
		input:         input,
		catalog:       catalog,
		ingredientIDs: accounting.IngredientIDs(required),
		opts: accounting.PlanOptions{
			SaleID:      s.newID(),
			OperatorID:  operator.ID,
			Now:         s.now(),
			StrictStock: s.strictStock,
			Weather:     s.awaitWeather(ctx, weather),
		},
	})
	if err != nil {
		return nil, err
	}

	receipt = &domain.SaleReceipt{
		Sale:          plan.Sale,
		LowStock:      plan.LowStock,
		StockWarnings: plan.NegativeStock,
		PriceMismatch: !accounting.CatalogTotal(input.Cart, catalog).Equal(input.Total),
	}

	s.Metrics.SaleCommitted(string(plan.Sale.PaymentMethod), s.writer.Name(), time.Since(start))
	s.Metrics.StockFlagged("low", len(plan.LowStock))
	s.Metrics.StockFlagged("negative", len(plan.NegativeStock))
	if receipt.PriceMismatch {
		s.LogWarn(ctx, "Sale total differs from catalog prices",
			slog.String("sale_id", plan.Sale.SaleID),
			slog.String("total", input.Total.String()))
	}
	if len(plan.NegativeStock) > 0 {
		s.LogWarn(ctx, "Sale drove ingredient stock negative",
			slog.String("sale_id", plan.Sale.SaleID),
			slog.Any("ingredients", plan.NegativeStock))
	}
	s.LogInfo(ctx, "Sale committed",
		slog.String("sale_id", plan.Sale.SaleID),
		slog.String("session_id", plan.Sale.SessionID),
		slog.String("total", plan.Sale.Total.String()),
		slog.String("payment_method", string(plan.Sale.PaymentMethod)))
	s.publish(ctx, domain.EventSaleCommitted, plan.Sale.SaleID, operator.ID, plan.Sale)

	return receipt, nil
}

// fetchWeather starts the best-effort weather lookup in the background.
func (s *saleService) fetchWeather(ctx context.Context) <-chan *domain.WeatherSnapshot {
	ch := make(chan *domain.WeatherSnapshot, 1)
	if s.weather == nil {
		ch <- nil
		return ch
	}
	go func() {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.weatherTimeout)
		defer cancel()
		snap, err := s.weather.CurrentConditions(wctx)
		if err != nil {
			s.Metrics.WeatherLookup("error")
			s.LogWarn(ctx, "Weather annotation unavailable", slog.String("error", err.Error()))
			ch <- nil
			return
		}
		s.Metrics.WeatherLookup("ok")
		ch <- snap
	}()
	return ch
}

// awaitWeather waits for the lookup no longer than the configured timeout.
func (s *saleService) awaitWeather(ctx context.Context, ch <-chan *domain.WeatherSnapshot) *domain.WeatherSnapshot {
	timer := time.NewTimer(s.weatherTimeout)
	defer timer.Stop()
	select {
	case snap := <-ch:
		return snap
	case <-timer.C:
		s.Metrics.WeatherLookup("timeout")
		s.LogWarn(ctx, "Weather annotation timed out", slog.Duration("timeout", s.weatherTimeout))
		return nil
	}
}

func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.sales.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrSaleNotFound)
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	filter := domain.SaleFilter{SessionID: params.SessionID}
	if params.Status != nil {
		status := domain.SaleStatus(*params.Status)
		filter.Status = &status
	}
	sales, next, err := s.sales.ListSales(ctx, filter, pagination.NormalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list sales")
		return nil, err
	}
	return &dto.ListSalesResponse{Sales: dto.ToSaleResponses(sales), NextToken: next}, nil
}

// failureReason is the metric label for a rejected commit.
func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, apperrors.ErrNoOpenSession):
		return "no_open_session"
	case errors.Is(err, apperrors.ErrInsufficientStamps):
		return "insufficient_stamps"
	case errors.Is(err, apperrors.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, apperrors.ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, apperrors.ErrPartialCommit):
		return "partial_commit"
	case errors.Is(err, apperrors.ErrCommitConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	}
	return "storage"
}
