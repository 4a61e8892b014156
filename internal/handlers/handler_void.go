package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type voidHandler struct {
	voidService portssvc.VoidSvcFacade
}

func newVoidHandler(vs portssvc.VoidSvcFacade) *voidHandler {
	return &voidHandler{voidService: vs}
}

// registerVoidRoutes registers the void workflow under /sales/{saleId}.
func registerVoidRoutes(rg *gin.RouterGroup, voidService portssvc.VoidSvcFacade) {
	h := newVoidHandler(voidService)

	sale := rg.Group("/sales/:saleId")
	{
		sale.POST("/void-request", h.requestVoid)
		sale.POST("/void-reject", h.rejectVoid)
		sale.POST("/void", h.approveVoid)
	}
}

// requestVoid godoc
// @Summary Request a void
// @Description Flags a completed sale for manager review.
// @Tags voids
// @Accept  json
// @Produce  json
// @Param   saleId path string true "Sale ID"
// @Param   request body dto.RequestVoidRequest true "Reason"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale is not completed"
// @Security BearerAuth
// @Router /sales/{saleId}/void-request [post]
func (h *voidHandler) requestVoid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleId")

	var req dto.RequestVoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestVoid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := operatorOrAbort(c)
	if !ok {
		return
	}

	sale, err := h.voidService.RequestVoid(c.Request.Context(), saleID, req.Reason, operator)
	if err != nil {
		respondError(c, err, "Failed to request void")
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// rejectVoid godoc
// @Summary Reject a void request
// @Description Returns a pending sale to completed. Managers only.
// @Tags voids
// @Produce  json
// @Param   saleId path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 403 {object} map[string]string "Manager role required"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale has no pending void"
// @Security BearerAuth
// @Router /sales/{saleId}/void-reject [post]
func (h *voidHandler) rejectVoid(c *gin.Context) {
	operator, ok := operatorOrAbort(c)
	if !ok {
		return
	}

	sale, err := h.voidService.RejectVoid(c.Request.Context(), c.Param("saleId"), operator)
	if err != nil {
		respondError(c, err, "Failed to reject void")
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// approveVoid godoc
// @Summary Approve a void
// @Description Voids a pending sale, or a completed sale directly with an optional reason, and restores its inventory and loyalty effects. Managers only.
// @Tags voids
// @Accept  json
// @Produce  json
// @Param   saleId path string true "Sale ID"
// @Param   request body dto.ApproveVoidRequest false "Reason for a direct void"
// @Success 200 {object} dto.VoidResponse
// @Failure 403 {object} map[string]string "Manager role required"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale already voided"
// @Security BearerAuth
// @Router /sales/{saleId}/void [post]
func (h *voidHandler) approveVoid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApproveVoidRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for ApproveVoid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := operatorOrAbort(c)
	if !ok {
		return
	}

	outcome, err := h.voidService.ApproveVoid(c.Request.Context(), c.Param("saleId"), req.Reason, operator)
	if err != nil {
		respondError(c, err, "Failed to approve void")
		return
	}

	if len(outcome.SkippedIngredients) > 0 || len(outcome.SkippedProducts) > 0 {
		logger.Warn("Void restored partially",
			slog.String("sale_id", outcome.Sale.SaleID),
			slog.Any("skipped_ingredients", outcome.SkippedIngredients),
			slog.Any("skipped_products", outcome.SkippedProducts))
	}
	c.JSON(http.StatusOK, dto.ToVoidResponse(outcome))
}
