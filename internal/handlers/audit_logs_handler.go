package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader audit.Reader
	loc    *time.Location
	log    *zap.Logger
}

func NewAuditLogsHandler(reader audit.Reader, loc *time.Location, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, loc: loc, log: log}
}

// List answers GET /api/audit-logs with optional action, entity, from, to
// (dates, to inclusive), page and limit.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := audit.Query{
		Action: strings.TrimSpace(c.Query("action")),
		Entity: strings.TrimSpace(c.Query("entity")),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional period
	// --------------------------------------------------
	if raw := c.Query("from"); raw != "" {
		if from, err := timezone.ParseDate(raw, h.loc); err == nil {
			q.From = from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := timezone.ParseDate(raw, h.loc); err == nil {
			q.To = to.AddDate(0, 0, 1)
		}
	}

	logs, total, err := h.reader.List(c.Request.Context(), q)
	if err != nil {
		h.log.Error("list audit logs failed", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
