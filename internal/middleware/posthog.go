package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog,
// keyed by operator id.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		op, exists := GetOperatorFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/sales/:saleId/void" -> "api_v1_sales_:saleId_void"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":        c.Request.Method,
			"status_code":   c.Writer.Status(),
			"operator_role": string(op.Role),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(op.ID, eventName, props)
	}
}
