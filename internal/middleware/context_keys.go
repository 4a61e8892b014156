package middleware

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// operatorKey is the key used to store the authenticated operator in the request context.
const operatorKey = contextKey("operator")

// WithOperator returns a copy of ctx carrying the operator.
func WithOperator(ctx context.Context, op domain.Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// OperatorFromCtx retrieves the authenticated operator from a request context.
func OperatorFromCtx(ctx context.Context) (domain.Operator, bool) {
	op, ok := ctx.Value(operatorKey).(domain.Operator)
	return op, ok && op.ID != ""
}

// GetOperatorFromContext retrieves the authenticated operator from the Gin context.
// It returns the operator and a boolean indicating if it was found.
func GetOperatorFromContext(c *gin.Context) (domain.Operator, bool) {
	return OperatorFromCtx(c.Request.Context())
}
