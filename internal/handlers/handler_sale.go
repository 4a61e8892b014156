package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests for checkouts and sale records.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers checkout and sale read routes.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.commitSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleId", h.getSale)
	}
}

// commitSale godoc
// @Summary Commit a sale
// @Description Records a checkout against the open cash session. Inventory, the customer's stamp balance, the session totals and the sale record are written as one unit.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CommitSaleRequest true "Cart, payment and customer"
// @Success 201 {object} dto.CommitSaleResponse
// @Failure 400 {object} map[string]string "Empty cart, no open session, insufficient stamps or stock, invalid payment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Concurrent updates exhausted retries"
// @Failure 500 {object} map[string]string "Failed to commit sale"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) commitSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommitSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CommitSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := operatorOrAbort(c)
	if !ok {
		return
	}

	logger.Info("Received request to commit sale",
		slog.Int("lines", len(req.Items)),
		slog.String("payment_method", string(req.PaymentMethod)),
		slog.String("total", req.Total.String()))

	receipt, err := h.saleService.CommitSale(c.Request.Context(), req, operator)
	if err != nil {
		respondError(c, err, "Failed to commit sale")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommitSaleResponse(receipt))
}

// getSale godoc
// @Summary Get a sale by ID
// @Tags sales
// @Produce  json
// @Param   saleId path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 500 {object} map[string]string "Failed to retrieve sale"
// @Security BearerAuth
// @Router /sales/{saleId} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	saleID := c.Param("saleId")

	sale, err := h.saleService.GetSale(c.Request.Context(), saleID)
	if err != nil {
		respondError(c, err, "Failed to retrieve sale")
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Lists sales newest first, optionally filtered by status and session. Pages are linked with an opaque nextToken.
// @Tags sales
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query string false "completed, pending_void or voided"
// @Param   sessionID query string false "Cash session ID"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListSales", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list sales")
		return
	}

	c.JSON(http.StatusOK, resp)
}
