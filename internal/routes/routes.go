package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/handlers"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide singletons the API is built from.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	Repo        domain.Repository
	SlotCache   cache.SlotCache
	Audit       *audit.Dispatcher
	AuditReader audit.Reader

	// Clock defaults to the system clock.
	Clock timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.AllowedOrigins))

	loc := timezone.Location(d.Config.Timezone)
	clock := d.Clock
	if clock == nil {
		clock = timezone.SystemClock()
	}
	settings := ucAppointment.Settings{
		Location:    loc,
		Granularity: d.Config.SlotGranularity,
		MinAdvance:  d.Config.MinAdvance,
		AutoConfirm: d.Config.AutoConfirm,
		Clock:       clock,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(d.Repo, d.SlotCache, settings)
	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Repo, d.SlotCache, d.Audit, d.Log, settings)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(d.Repo, d.SlotCache, d.Audit, settings)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(d.Repo, d.Audit, settings)
	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(d.Repo, d.SlotCache, d.Audit, settings)
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Repo, settings)
	metricsUC := ucAppointment.NewGetMetrics(d.Repo, settings)

	listServicesUC := ucAppointment.NewListServices(d.Repo)
	listWorkingHoursUC := ucAppointment.NewListWorkingHours(d.Repo)
	updateWorkingHoursUC := ucAppointment.NewUpdateWorkingHours(d.Repo, d.SlotCache, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	log := d.Log.Named("http")

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, loc, log)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		confirmAppointmentUC,
		rescheduleAppointmentUC,
		listAppointmentsUC,
		loc,
		clock,
		log,
	)
	metricsHandler := handlers.NewMetricsHandler(metricsUC, loc, clock, log)
	serviceHandler := handlers.NewServiceHandler(listServicesUC, log)
	workingHoursHandler := handlers.NewWorkingHoursHandler(listWorkingHoursUC, updateWorkingHoursUC, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditReader, loc, log)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   clock().In(loc).Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/services", serviceHandler.List)
		api.GET("/working-hours", workingHoursHandler.Get)
		api.PUT("/working-hours", workingHoursHandler.Update)

		api.GET("/availability", availabilityHandler.Get)

		booking := middleware.RateLimit(d.Config.BookingRateLimit, log)

		api.POST("/appointments", booking, appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/month", appointmentHandler.ListByMonth)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		api.PATCH("/appointments/:id/reschedule", booking, appointmentHandler.Reschedule)

		api.GET("/metrics", metricsHandler.Get)
		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
