package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashSessionHandler handles register session lifecycle and reconciliation requests.
type cashSessionHandler struct {
	sessionService   portssvc.CashSessionSvcFacade
	reportingService portssvc.ReportingService
}

func newCashSessionHandler(ss portssvc.CashSessionSvcFacade, rs portssvc.ReportingService) *cashSessionHandler {
	return &cashSessionHandler{sessionService: ss, reportingService: rs}
}

func registerCashSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.CashSessionSvcFacade, reportingService portssvc.ReportingService) {
	h := newCashSessionHandler(sessionService, reportingService)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.openSession)
		sessions.GET("/open", h.getOpenSession)
		sessions.GET("/:sessionId", h.getSession)
		sessions.POST("/:sessionId/close", h.closeSession)
		sessions.GET("/:sessionId/reconciliation", h.getReconciliation)
	}
}

// openSession godoc
// @Summary Open a cash session
// @Description Opens the register with a starting float. Only one session may be open per scope.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.OpenSessionRequest true "Initial balance and register"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Invalid input or missing register id"
// @Failure 409 {object} map[string]string "A session is already open"
// @Security BearerAuth
// @Router /sessions [post]
func (h *cashSessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := operatorOrAbort(c)
	if !ok {
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), req, operator)
	if err != nil {
		respondError(c, err, "Failed to open session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// getOpenSession godoc
// @Summary Get the open cash session
// @Tags sessions
// @Produce  json
// @Param   registerID query string false "Register ID (register-scoped sessions only)"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "No open session"
// @Security BearerAuth
// @Router /sessions/open [get]
func (h *cashSessionHandler) getOpenSession(c *gin.Context) {
	session, err := h.sessionService.GetOpenSession(c.Request.Context(), c.Query("registerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve open session")
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// getSession godoc
// @Summary Get a cash session by ID
// @Tags sessions
// @Produce  json
// @Param   sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /sessions/{sessionId} [get]
func (h *cashSessionHandler) getSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, "Failed to retrieve session")
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// closeSession godoc
// @Summary Close a cash session
// @Description Records the counted cash and the difference against expected cash. Closed sessions are immutable.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   sessionId path string true "Session ID"
// @Param   request body dto.CloseSessionRequest true "Counted cash"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already closed"
// @Security BearerAuth
// @Router /sessions/{sessionId}/close [post]
func (h *cashSessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := operatorOrAbort(c)
	if !ok {
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), c.Param("sessionId"), req.ActualCash, operator)
	if err != nil {
		respondError(c, err, "Failed to close session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// getReconciliation godoc
// @Summary Reconcile a cash session
// @Description Compares the session's running totals with the sales recorded against it.
// @Tags sessions
// @Produce  json
// @Param   sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionReconciliationResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /sessions/{sessionId}/reconciliation [get]
func (h *cashSessionHandler) getReconciliation(c *gin.Context) {
	report, err := h.reportingService.GetSessionReconciliation(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, "Failed to reconcile session")
		return
	}
	if !report.IsBalanced {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Session totals drifted from recorded sales",
			slog.String("session_id", report.Session.SessionID))
	}
	c.JSON(http.StatusOK, dto.ToSessionReconciliationResponse(report))
}
