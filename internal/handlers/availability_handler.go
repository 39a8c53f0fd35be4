package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
	"github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *appointment.GetAvailability
	loc          *time.Location
	log          *zap.Logger
}

func NewAvailabilityHandler(
	availability *appointment.GetAvailability,
	loc *time.Location,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		loc:          loc,
		log:          log,
	}
}

type AvailabilityResponse struct {
	Date      string            `json:"date"`
	ServiceID uint              `json:"service_id"`
	Slots     []domain.TimeSlot `json:"slots"`
}

// Get answers GET /api/availability?date=YYYY-MM-DD&service_id=N.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date, ok := dateQuery(c, "date", h.loc)
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ServiceID: serviceID,
			Date:      date,
		},
	)
	if err != nil {
		if _, biz := httperr.AsBusiness(err); !biz {
			h.log.Error("availability failed", zap.Error(err))
		}
		httperr.FromError(c, err, "failed_to_get_availability")
		return
	}

	httpresp.OK(c, AvailabilityResponse{
		Date:      date.Format(timezone.DateLayout),
		ServiceID: serviceID,
		Slots:     slots,
	})
}
