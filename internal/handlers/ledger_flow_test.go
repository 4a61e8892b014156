package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/handlers"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/internal/platform/metrics"
	"github.com/SscSPs/pos_ledger/internal/repositories/memory"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLedgerFlow drives the real services over the seeded in-memory store:
// open, sell, void, reconcile and close.
func TestLedgerFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "flow-secret-key-that-is-long-enough"

	cfg := &config.Config{
		JWTSecret:         secret,
		IsProduction:      true,
		CommitStrategy:    config.CommitAtomic,
		StrictStock:       true,
		SessionScope:      domain.SessionScopeGlobal,
		VoidRestoreSource: accounting.RestoreFromSnapshot,
	}
	m := metrics.New()
	container := services.NewServiceContainer(cfg, memory.NewSeeded().Provider(), services.Collaborators{Metrics: m})

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, container, m)

	call := func(method, path, role string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		token, err := signToken(secret, "op-"+role, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	sale := map[string]any{
		"items": []map[string]any{
			{"name": "Latte", "quantity": 2},
			{"name": "Espresso", "quantity": 1},
		},
		"total":          "12.5",
		"paymentMethod":  "cash",
		"customerID":     "demo-customer",
		"amountReceived": "20",
	}

	// No register open yet.
	w := call(http.MethodPost, "/api/v1/sales", "cashier", sale)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = call(http.MethodPost, "/api/v1/sessions", "cashier", map[string]string{"initialBalance": "100"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))

	w = call(http.MethodPost, "/api/v1/sessions", "cashier", map[string]string{"initialBalance": "50"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = call(http.MethodPost, "/api/v1/sales", "cashier", sale)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var committed dto.CommitSaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &committed))
	assert.Equal(t, int64(3), committed.Sale.StampsEarned)
	assert.True(t, committed.Sale.Change.Equal(decimal.RequireFromString("7.5")))
	saleID := committed.Sale.SaleID

	w = call(http.MethodGet, "/api/v1/sessions/open", "cashier", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.True(t, session.ExpectedCash.Equal(decimal.RequireFromString("112.5")))

	w = call(http.MethodPost, "/api/v1/sales/"+saleID+"/void-request", "cashier", map[string]string{"reason": "wrong order"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(http.MethodPost, "/api/v1/sales/"+saleID+"/void", "cashier", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = call(http.MethodPost, "/api/v1/sales/"+saleID+"/void", "manager", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(http.MethodPost, "/api/v1/sales/"+saleID+"/void", "manager", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = call(http.MethodGet, "/api/v1/ingredients", "cashier", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ingredients []dto.IngredientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredients))
	for _, ing := range ingredients {
		switch ing.IngredientID {
		case "milk":
			assert.True(t, ing.Stock.Equal(decimal.NewFromInt(10000)), "milk restored")
		case "coffee":
			assert.True(t, ing.Stock.Equal(decimal.NewFromInt(2000)), "coffee restored")
		}
	}

	w = call(http.MethodGet, "/api/v1/sessions/"+session.SessionID+"/reconciliation", "manager", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report dto.SessionReconciliationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.VoidedCount)
	assert.True(t, report.VoidedCash.Equal(decimal.RequireFromString("12.5")))

	w = call(http.MethodPost, "/api/v1/sessions/"+session.SessionID+"/close", "cashier", map[string]string{"actualCash": "112.5"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, domain.SessionClosed, session.Status)
	assert.True(t, session.Difference.IsZero())
}
