package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
	"github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *appointment.CreateAppointment
	cancel     *appointment.CancelAppointment
	confirm    *appointment.ConfirmAppointment
	reschedule *appointment.RescheduleAppointment
	list       *appointment.ListAppointments

	loc   *time.Location
	clock timezone.Clock
	log   *zap.Logger
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	cancel *appointment.CancelAppointment,
	confirm *appointment.ConfirmAppointment,
	reschedule *appointment.RescheduleAppointment,
	list *appointment.ListAppointments,
	loc *time.Location,
	clock timezone.Clock,
	log *zap.Logger,
) *AppointmentHandler {
	if clock == nil {
		clock = timezone.SystemClock()
	}
	return &AppointmentHandler{
		create:     create,
		cancel:     cancel,
		confirm:    confirm,
		reschedule: reschedule,
		list:       list,
		loc:        loc,
		clock:      clock,
		log:        log,
	}
}

// fail writes err and logs it when it is not a business error.
func (h *AppointmentHandler) fail(c *gin.Context, err error, fallback string) {
	if _, ok := httperr.AsBusiness(err); !ok {
		h.log.Error(fallback, zap.Error(err))
	}
	httperr.FromError(c, err, fallback)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req domain.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "request", "must be a valid JSON booking")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed_to_cancel_appointment")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ap, err := h.confirm.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed_to_confirm_appointment")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req domain.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "request", "must be a valid JSON body with date and time")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "failed_to_reschedule_appointment")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

// List answers ?date=YYYY-MM-DD or ?from=YYYY-MM-DD&to=YYYY-MM-DD, where to
// is exclusive. With no parameters it lists today.
func (h *AppointmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if strings.TrimSpace(c.Query("from")) != "" || strings.TrimSpace(c.Query("to")) != "" {
		from, ok := dateQuery(c, "from", h.loc)
		if !ok {
			return
		}
		to, ok := dateQuery(c, "to", h.loc)
		if !ok {
			return
		}

		items, err := h.list.Execute(ctx, from, to)
		if err != nil {
			h.fail(c, err, "failed_to_list_appointments")
			return
		}
		httpresp.List(c, items)
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = h.clock().In(h.loc).Format(timezone.DateLayout)
	}

	items, err := h.list.ByDate(ctx, date)
	if err != nil {
		h.fail(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, ok := intQuery(c, "year")
	if !ok {
		return
	}
	month, ok := intQuery(c, "month")
	if !ok {
		return
	}

	items, err := h.list.ByMonth(c.Request.Context(), year, month)
	if err != nil {
		h.fail(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, items)
}
