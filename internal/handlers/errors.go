package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error onto an HTTP status. The specific
// categories are checked before ErrValidation because ledger errors such as
// ErrSaleNotFound carry both.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Unexpected failures hide the cause
// behind fallback, except ErrPartialCommit whose message the operator must see.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		if !errors.Is(err, apperrors.ErrPartialCommit) {
			msg = fallback
		}
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, gin.H{"error": msg})
}

// operatorOrAbort reads the authenticated operator; AuthMiddleware guarantees one on /api/v1.
func operatorOrAbort(c *gin.Context) (domain.Operator, bool) {
	op, exists := middleware.GetOperatorFromContext(c)
	if !exists {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Operator not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Operator{}, false
	}
	return op, true
}
