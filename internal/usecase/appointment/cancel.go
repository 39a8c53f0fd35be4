package appointment

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type CancelAppointment struct {
	repo     domain.Repository
	cache    cache.SlotCache
	audit    *audit.Dispatcher
	settings Settings
}

func NewCancelAppointment(
	repo domain.Repository,
	slotCache cache.SlotCache,
	audit *audit.Dispatcher,
	settings Settings,
) *CancelAppointment {
	if slotCache == nil {
		slotCache = cache.Noop{}
	}
	return &CancelAppointment{
		repo:     repo,
		cache:    slotCache,
		audit:    audit,
		settings: settings.withDefaults(),
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	now := uc.settings.now()
	ap, err := uc.repo.UpdateAppointment(ctx, appointmentID, func(ap *models.Appointment) error {
		return domain.Cancel(ap, now)
	})
	if err != nil {
		return nil, appointmentError("cancel appointment", err)
	}

	// The freed interval must show up on the next availability read.
	uc.cache.Invalidate(ctx, uc.settings.dateOf(ap.StartTime))

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}
