package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// ErrNotFound is returned by repositories for missing rows.
var ErrNotFound = errors.New("not found")

// Mutation changes an appointment in place. Returning an error aborts the
// surrounding write and leaves the stored appointment untouched.
type Mutation func(ap *models.Appointment) error

// Repository owns the appointment set of one professional together with its
// catalog. Implementations must make the conflict check and the insert of
// CreateAppointment and RescheduleAppointment a single atomic step.
type Repository interface {
	// -------- Catalog --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	SaveServices(ctx context.Context, services []models.Service) error

	GetWorkingHours(ctx context.Context, weekday int) (*models.WorkingHours, error)
	ListWorkingHours(ctx context.Context) ([]models.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, hours []models.WorkingHours) error

	// -------- Appointment (create / conflict) --------

	// CreateAppointment inserts ap unless a blocking appointment overlaps it,
	// in which case it fails with slot_unavailable.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, id string, mutate Mutation) (*models.Appointment, error)

	// RescheduleAppointment applies mutate to the appointment id and inserts
	// next in the same atomic step. The old appointment's interval does not
	// count as a conflict for next.
	RescheduleAppointment(ctx context.Context, id string, mutate Mutation, next *models.Appointment) error

	// -------- Availability --------

	// ListBlockingForPeriod returns non-cancelled appointments overlapping
	// [start, end), ordered by start.
	ListBlockingForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error)

	// ListAppointmentsForPeriod returns every appointment starting in
	// [start, end), ordered by start.
	ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
}
