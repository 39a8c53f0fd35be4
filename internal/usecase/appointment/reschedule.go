package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type RescheduleAppointment struct {
	repo     domain.Repository
	cache    cache.SlotCache
	audit    *audit.Dispatcher
	settings Settings
}

func NewRescheduleAppointment(
	repo domain.Repository,
	slotCache cache.SlotCache,
	audit *audit.Dispatcher,
	settings Settings,
) *RescheduleAppointment {
	if slotCache == nil {
		slotCache = cache.Noop{}
	}
	return &RescheduleAppointment{
		repo:     repo,
		cache:    slotCache,
		audit:    audit,
		settings: settings.withDefaults(),
	}
}

// Execute cancels the appointment and books the same client and service at
// the new date and time in one step. On any failure the original stays as is.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	req domain.RescheduleRequest,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Current appointment
	// --------------------------------------------------
	old, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, appointmentError("get appointment", err)
	}
	if err := domain.CanCancel(domain.Status(old.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// New interval
	// --------------------------------------------------
	req.Normalize()
	fields := domain.FieldErrors(&req)

	service, err := activeService(ctx, uc.repo, old.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		fields["service_id"] = "does not match an active service"
	}

	start, end, err := resolveInterval(ctx, uc.repo, uc.settings, service, req.Date, req.Time, fields)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, httperr.ErrValidation(fields)
	}

	// --------------------------------------------------
	// Cancel old + create new, atomically
	// --------------------------------------------------
	now := uc.settings.now()
	oldID := old.ID
	next := &models.Appointment{
		ID:              uuid.NewString(),
		ClientName:      old.ClientName,
		ClientPhone:     old.ClientPhone,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		StartTime:       start,
		EndTime:         end,
		Status:          string(domain.InitialStatus(uc.settings.AutoConfirm)),
		Notes:           old.Notes,
		RescheduledFrom: &oldID,
	}
	if next.Status == string(domain.StatusConfirmed) {
		next.ConfirmedAt = &now
	}

	err = uc.repo.RescheduleAppointment(ctx, appointmentID, func(ap *models.Appointment) error {
		return domain.Cancel(ap, now)
	}, next)
	if err != nil {
		return nil, appointmentError("reschedule appointment", err)
	}

	uc.cache.Invalidate(ctx, uc.settings.dateOf(old.StartTime))
	if d := uc.settings.dateOf(next.StartTime); d != uc.settings.dateOf(old.StartTime) {
		uc.cache.Invalidate(ctx, d)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: next.ID,
		Metadata: map[string]any{
			"rescheduled_from": oldID,
			"start_time":       next.StartTime,
		},
	})

	return next, nil
}
