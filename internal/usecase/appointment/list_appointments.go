package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

type ListAppointments struct {
	repo     domain.Repository
	settings Settings
}

func NewListAppointments(
	repo domain.Repository,
	settings Settings,
) *ListAppointments {
	return &ListAppointments{
		repo:     repo,
		settings: settings.withDefaults(),
	}
}

// Execute lists every appointment, cancelled ones included, starting in
// [from, to) ordered by start.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentListDTO, error) {

	if !to.After(from) {
		return nil, httperr.ErrValidation(map[string]string{
			"to": "must be after from",
		})
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.NewAppointmentListDTO(ap, uc.settings.Location))
	}
	return out, nil
}

// ByDate lists the appointments of one calendar day.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := timezone.ParseDate(date, uc.settings.Location)
	if err != nil {
		return nil, httperr.ErrValidation(map[string]string{
			"date": "must be a date in YYYY-MM-DD format",
		})
	}
	return uc.Execute(ctx, day, day.AddDate(0, 0, 1))
}

// ByMonth lists the appointments of one calendar month.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	fields := map[string]string{}
	if year < 1970 || year > 9999 {
		fields["year"] = "is invalid"
	}
	if month < 1 || month > 12 {
		fields["month"] = "must be between 1 and 12"
	}
	if len(fields) > 0 {
		return nil, httperr.ErrValidation(fields)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.settings.Location)
	return uc.Execute(ctx, start, start.AddDate(0, 1, 0))
}
