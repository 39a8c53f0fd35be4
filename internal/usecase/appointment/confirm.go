package appointment

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type ConfirmAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		audit:    audit,
		settings: settings.withDefaults(),
	}
}

// Execute moves a pending appointment to confirmed. Availability is not
// affected, so the slot cache is left alone.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	now := uc.settings.now()
	ap, err := uc.repo.UpdateAppointment(ctx, appointmentID, func(ap *models.Appointment) error {
		return domain.Confirm(ap, now)
	})
	if err != nil {
		return nil, appointmentError("confirm appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}
