package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/handlers"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---

type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CommitSale(ctx context.Context, req dto.CommitSaleRequest, operator domain.Operator) (*domain.SaleReceipt, error) {
	args := m.Called(ctx, req, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleReceipt), args.Error(1)
}

func (m *MockSaleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalesResponse), args.Error(1)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

type MockVoidService struct {
	mock.Mock
}

func (m *MockVoidService) RequestVoid(ctx context.Context, saleID, reason string, operator domain.Operator) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, reason, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockVoidService) RejectVoid(ctx context.Context, saleID string, operator domain.Operator) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockVoidService) ApproveVoid(ctx context.Context, saleID string, directReason *string, operator domain.Operator) (*domain.VoidOutcome, error) {
	args := m.Called(ctx, saleID, directReason, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoidOutcome), args.Error(1)
}

var _ portssvc.VoidSvcFacade = (*MockVoidService)(nil)

type MockCashSessionService struct {
	mock.Mock
}

func (m *MockCashSessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, operator domain.Operator) (*domain.CashSession, error) {
	args := m.Called(ctx, req, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) CloseSession(ctx context.Context, sessionID string, actualCash decimal.Decimal, operator domain.Operator) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, actualCash, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) GetSession(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) GetOpenSession(ctx context.Context, registerID string) (*domain.CashSession, error) {
	args := m.Called(ctx, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

var _ portssvc.CashSessionSvcFacade = (*MockCashSessionService)(nil)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

func (m *MockInventoryService) RestockIngredient(ctx context.Context, ingredientID string, quantity decimal.Decimal, operator domain.Operator) (*domain.Ingredient, error) {
	args := m.Called(ctx, ingredientID, quantity, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ingredient), args.Error(1)
}

var _ portssvc.InventorySvcFacade = (*MockInventoryService)(nil)

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetSessionReconciliation(ctx context.Context, sessionID string) (*domain.SessionReconciliation, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionReconciliation), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Test Suite ---

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string
	sales     *MockSaleService
	voids     *MockVoidService
	sessions  *MockCashSessionService
	inventory *MockInventoryService
	reporting *MockReportingService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.sales = new(MockSaleService)
	s.voids = new(MockVoidService)
	s.sessions = new(MockCashSessionService)
	s.inventory = new(MockInventoryService)
	s.reporting = new(MockReportingService)

	s.router = gin.New()
	cfg := &config.Config{JWTSecret: s.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(s.router, cfg, &portssvc.ServiceContainer{
		Sale:        s.sales,
		Void:        s.voids,
		CashSession: s.sessions,
		Inventory:   s.inventory,
		Reporting:   s.reporting,
	}, nil)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.sales.AssertExpectations(s.T())
	s.voids.AssertExpectations(s.T())
	s.sessions.AssertExpectations(s.T())
	s.inventory.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
}

func signToken(secret, subject, role string) (string, error) {
	claims := jwt.MapClaims{
		"iss":  "pos-test",
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (s *HandlerTestSuite) do(method, path, role string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := signToken(s.jwtSecret, "op-"+role, role)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body["error"]
}

var (
	cashier = domain.Operator{ID: "op-cashier", Role: domain.RoleCashier}
	manager = domain.Operator{ID: "op-manager", Role: domain.RoleManager}
)

func sampleSale(status domain.SaleStatus) domain.Sale {
	return domain.Sale{
		SaleID:        "sale-1",
		Timestamp:     time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		SessionID:     "sess-1",
		Total:         decimal.NewFromInt(10),
		CostOfGoods:   decimal.RequireFromString("1.74"),
		LineItems:     []domain.SaleLine{{Name: "Latte", UnitPrice: decimal.NewFromInt(5), Quantity: 2}},
		PaymentMethod: domain.PaymentCash,
		Status:        status,
	}
}

// --- Test Cases ---

func (s *HandlerTestSuite) TestHealth_NoAuth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestAPI_RequiresToken() {
	w := s.do(http.MethodGet, "/api/v1/sales", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestAPI_RejectsUnknownRole() {
	w := s.do(http.MethodGet, "/api/v1/ingredients", "owner", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestCommitSale_Created() {
	sale := sampleSale(domain.SaleCompleted)
	s.sales.On("CommitSale", mock.Anything, mock.MatchedBy(func(req dto.CommitSaleRequest) bool {
		return len(req.Items) == 2 && req.Total.Equal(decimal.NewFromInt(10)) && req.PaymentMethod == domain.PaymentCash
	}), cashier).Return(&domain.SaleReceipt{Sale: sale, LowStock: []string{"Milk"}}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sales", "cashier", map[string]any{
		"items": []map[string]any{
			{"name": "Latte", "quantity": 1},
			{"name": "Latte", "quantity": 1},
		},
		"total":         "10",
		"paymentMethod": "cash",
	})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.CommitSaleResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("sale-1", resp.Sale.SaleID)
	s.Equal([]string{"Milk"}, resp.LowStock)
}

func (s *HandlerTestSuite) TestCommitSale_NegativeTotalRejectedByBinding() {
	w := s.do(http.MethodPost, "/api/v1/sales", "cashier", map[string]any{
		"items":         []map[string]any{{"name": "Latte", "quantity": 1}},
		"total":         "-1",
		"paymentMethod": "cash",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCommitSale_QuantityAboveLimitRejectedByBinding() {
	w := s.do(http.MethodPost, "/api/v1/sales", "cashier", map[string]any{
		"items":         []map[string]any{{"name": "Cookie", "quantity": 922337203685477581, "isRedeemed": true}},
		"total":         "0",
		"customerID":    "c-1",
		"paymentMethod": "card",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.sales.AssertNotCalled(s.T(), "CommitSale", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCommitSale_ErrorMapping() {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "empty cart", err: apperrors.ErrEmptyCart, status: http.StatusBadRequest, message: apperrors.ErrEmptyCart.Error()},
		{name: "no open session", err: apperrors.ErrNoOpenSession, status: http.StatusBadRequest, message: apperrors.ErrNoOpenSession.Error()},
		{name: "stamps", err: fmt.Errorf("%w: balance 3, needs 10", apperrors.ErrInsufficientStamps), status: http.StatusBadRequest},
		{name: "retries exhausted", err: apperrors.ErrCommitConflict, status: http.StatusConflict},
		{name: "partial commit keeps message", err: apperrors.ErrPartialCommit, status: http.StatusInternalServerError, message: apperrors.ErrPartialCommit.Error()},
		{name: "storage failure hidden", err: fmt.Errorf("dial tcp: refused"), status: http.StatusInternalServerError, message: "Failed to commit sale"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.sales.On("CommitSale", mock.Anything, mock.Anything, cashier).Return(nil, tt.err).Once()
			w := s.do(http.MethodPost, "/api/v1/sales", "cashier", map[string]any{
				"items":         []map[string]any{{"name": "Latte", "quantity": 1}},
				"total":         "5",
				"paymentMethod": "cash",
			})
			s.Equal(tt.status, w.Code)
			if tt.message != "" {
				s.Equal(tt.message, errorBody(w))
			}
		})
	}
}

func (s *HandlerTestSuite) TestGetSale_NotFound() {
	s.sales.On("GetSale", mock.Anything, "missing").Return(nil, apperrors.ErrSaleNotFound).Once()
	w := s.do(http.MethodGet, "/api/v1/sales/missing", "cashier", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestListSales_BindsFilters() {
	s.sales.On("ListSales", mock.Anything, mock.MatchedBy(func(p dto.ListSalesParams) bool {
		return p.Limit == 5 && p.Status != nil && *p.Status == "voided"
	})).Return(&dto.ListSalesResponse{Sales: []dto.SaleResponse{}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/sales?limit=5&status=voided", "cashier", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestListSales_InvalidStatus() {
	w := s.do(http.MethodGet, "/api/v1/sales?status=refunded", "cashier", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestRequestVoid() {
	pending := sampleSale(domain.SalePendingVoid)
	s.voids.On("RequestVoid", mock.Anything, "sale-1", "wrong drink", cashier).Return(&pending, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-1/void-request", "cashier", map[string]string{"reason": "wrong drink"})
	s.Equal(http.StatusOK, w.Code)
	var resp dto.SaleResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.SalePendingVoid, resp.Status)
}

func (s *HandlerTestSuite) TestRejectVoid_Forbidden() {
	s.voids.On("RejectVoid", mock.Anything, "sale-1", cashier).
		Return(nil, fmt.Errorf("%w: only managers can approve or reject voids", apperrors.ErrForbidden)).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-1/void-reject", "cashier", nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestApproveVoid_EmptyBody() {
	voided := sampleSale(domain.SaleVoided)
	s.voids.On("ApproveVoid", mock.Anything, "sale-1", (*string)(nil), manager).
		Return(&domain.VoidOutcome{Sale: voided, SkippedIngredients: []string{"cocoa"}}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-1/void", "manager", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.VoidResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.SaleVoided, resp.Sale.Status)
	s.Equal([]string{"cocoa"}, resp.SkippedIngredients)
}

func (s *HandlerTestSuite) TestApproveVoid_AlreadyVoided() {
	s.voids.On("ApproveVoid", mock.Anything, "sale-1", mock.Anything, manager).
		Return(nil, apperrors.ErrInvalidVoidTransition).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-1/void", "manager", map[string]string{"reason": "double tap"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestOpenSession_AlreadyOpen() {
	s.sessions.On("OpenSession", mock.Anything, mock.Anything, cashier).Return(nil, apperrors.ErrSessionAlreadyOpen).Once()

	w := s.do(http.MethodPost, "/api/v1/sessions", "cashier", map[string]string{"initialBalance": "100"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(apperrors.ErrSessionAlreadyOpen.Error(), errorBody(w))
}

func (s *HandlerTestSuite) TestCloseSession() {
	closed := &domain.CashSession{SessionID: "sess-1", Status: domain.SessionClosed}
	s.sessions.On("CloseSession", mock.Anything, "sess-1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("135.5"))
	}), cashier).Return(closed, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sessions/sess-1/close", "cashier", map[string]string{"actualCash": "135.5"})
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestGetOpenSession_PassesRegister() {
	s.sessions.On("GetOpenSession", mock.Anything, "front").Return(nil, apperrors.ErrNoOpenSession).Once()

	w := s.do(http.MethodGet, "/api/v1/sessions/open?registerID=front", "cashier", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestReconciliation() {
	report := &domain.SessionReconciliation{
		Session:    domain.CashSession{SessionID: "sess-1"},
		IsBalanced: true,
	}
	s.reporting.On("GetSessionReconciliation", mock.Anything, "sess-1").Return(report, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/sessions/sess-1/reconciliation", "manager", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.SessionReconciliationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.IsBalanced)
}

func (s *HandlerTestSuite) TestRestock_ZeroQuantityRejected() {
	w := s.do(http.MethodPost, "/api/v1/ingredients/milk/restock", "cashier", map[string]string{"quantity": "0"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestRestock_UnknownIngredient() {
	s.inventory.On("RestockIngredient", mock.Anything, "ghost", mock.Anything, cashier).Return(nil, apperrors.ErrIngredientNotFound).Once()

	w := s.do(http.MethodPost, "/api/v1/ingredients/ghost/restock", "cashier", map[string]string{"quantity": "500"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestListIngredients() {
	s.inventory.On("ListIngredients", mock.Anything).Return([]domain.Ingredient{
		{IngredientID: "milk", Name: "Milk", Stock: decimal.NewFromInt(500), MinStock: decimal.NewFromInt(1000)},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/ingredients", "cashier", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp []dto.IngredientResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.True(resp[0].IsLow)
}
