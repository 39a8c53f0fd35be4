package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
)

type WorkingHoursHandler struct {
	list   *appointment.ListWorkingHours
	update *appointment.UpdateWorkingHours
	log    *zap.Logger
}

func NewWorkingHoursHandler(
	list *appointment.ListWorkingHours,
	update *appointment.UpdateWorkingHours,
	log *zap.Logger,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{list: list, update: update, log: log}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.list.Execute(c.Request.Context())
	if err != nil {
		h.log.Error("list working hours failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_working_hours", "Internal error.")
		return
	}
	httpresp.List(c, hours)
}

// Update replaces the whole week. Days left out become days off.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "days", "is required")
		return
	}

	hours := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		hours = append(hours, models.WorkingHours{
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	if err := h.update.Execute(c.Request.Context(), hours); err != nil {
		if _, biz := httperr.AsBusiness(err); !biz {
			h.log.Error("update working hours failed", zap.Error(err))
		}
		httperr.FromError(c, err, "failed_to_save_working_hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
