package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuditHistoryParams bounds the rows returned for one entity.
type AuditHistoryParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

// AuthEventRequest is reported by the identity service after a login attempt or logout.
type AuthEventRequest struct {
	Action domain.AuditAction `json:"action" binding:"required,oneof=login logout login_failed"`
	UserID *string            `json:"userID"` // empty for failed logins of unknown users
}

type auditHandler struct {
	auditService portssvc.AuditSvc
}

// registerAuditRoutes registers the audit trail routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := &auditHandler{auditService: auditService}

	audit := rg.Group("/audit")
	{
		audit.GET("/verify", h.verifyChain)
		audit.POST("/auth-events", h.recordAuthEvent)
		audit.GET("/:modelType/:id", h.getHistory)
	}
}

// verifyChain godoc
// @Summary Verify the audit chain
// @Description Walks every audit row and reports broken links and tampered rows
// @Tags audit
// @Produce json
// @Success 200 {object} domain.ChainReport "Chain is intact"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} domain.ChainReport "Chain is broken"
// @Security BearerAuth
// @Router /audit/verify [get]
func (h *auditHandler) verifyChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report := h.auditService.Verify(c.Request.Context())
	if !report.Intact {
		logger.Warn("Audit chain verification found problems",
			slog.Int("checked", report.Checked),
			slog.Int("breaks", len(report.Breaks)))
		c.JSON(http.StatusConflict, report)
		return
	}

	c.JSON(http.StatusOK, report)
}

// getHistory godoc
// @Summary Audit history of an entity
// @Tags audit
// @Produce json
// @Param modelType path string true "Model type" Enums(account, journal_entry, expense, payment, sale, exchange_rate, user)
// @Param id path string true "Model ID"
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {array} domain.ActivityLog
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve audit history"
// @Security BearerAuth
// @Router /audit/{modelType}/{id} [get]
func (h *auditHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	modelType := domain.ModelType(c.Param("modelType"))
	modelID := c.Param("id")
	if !modelType.IsValid() {
		logger.Warn("Unknown model type for audit history", slog.String("model_type", string(modelType)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown model type: " + string(modelType)})
		return
	}

	var params AuditHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for audit history", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logs, err := h.auditService.History(c.Request.Context(), modelType, modelID, params.Limit)
	if err != nil {
		respondError(c, logger.With(slog.String("model_id", modelID)), err, "Failed to retrieve audit history")
		return
	}
	if logs == nil {
		logs = []domain.ActivityLog{}
	}

	c.JSON(http.StatusOK, logs)
}

// recordAuthEvent godoc
// @Summary Record an authentication event
// @Description Appends a login, logout or failed login to the audit chain
// @Tags audit
// @Accept json
// @Param event body AuthEventRequest true "Authentication event"
// @Success 204 "Recorded"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record authentication event"
// @Security BearerAuth
// @Router /audit/auth-events [post]
func (h *auditHandler) recordAuthEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req AuthEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AuthEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.UserID != nil && *req.UserID == "" {
		req.UserID = nil
	}

	if err := h.auditService.RecordAuthEvent(c.Request.Context(), req.Action, req.UserID); err != nil {
		respondError(c, logger.With(slog.String("action", string(req.Action))), err, "Failed to record authentication event")
		return
	}

	c.Status(http.StatusNoContent)
}
