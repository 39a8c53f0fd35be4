package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
	"github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
)

type MetricsHandler struct {
	metrics *appointment.GetMetrics
	loc     *time.Location
	clock   timezone.Clock
	log     *zap.Logger
}

func NewMetricsHandler(metrics *appointment.GetMetrics, loc *time.Location, clock timezone.Clock, log *zap.Logger) *MetricsHandler {
	if clock == nil {
		clock = timezone.SystemClock()
	}
	return &MetricsHandler{metrics: metrics, loc: loc, clock: clock, log: log}
}

// Get answers GET /api/metrics?date=YYYY-MM-DD, defaulting to today.
func (h *MetricsHandler) Get(c *gin.Context) {
	day := h.clock().In(h.loc)
	if strings.TrimSpace(c.Query("date")) != "" {
		d, ok := dateQuery(c, "date", h.loc)
		if !ok {
			return
		}
		day = d
	}

	m, err := h.metrics.Execute(c.Request.Context(), day)
	if err != nil {
		h.log.Error("metrics failed", zap.Error(err))
		httperr.FromError(c, err, "failed_to_get_metrics")
		return
	}
	httpresp.OK(c, m)
}
