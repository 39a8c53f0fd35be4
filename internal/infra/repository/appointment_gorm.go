package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *AppointmentGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) SaveServices(
	ctx context.Context,
	services []models.Service,
) error {
	if len(services) == 0 {
		return nil
	}
	return upsertServices(r.db.WithContext(ctx), services).Error
}

func upsertServices(tx *gorm.DB, services []models.Service) *gorm.DB {
	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "duration_min", "price", "active", "updated_at"}),
		}).
		Create(&services)
}

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&wh).Error; err != nil {
		return nil, notFound(err)
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListWorkingHours(ctx context.Context) ([]models.WorkingHours, error) {
	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *AppointmentGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	hours []models.WorkingHours,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.WorkingHours{}).Error; err != nil {
			return fmt.Errorf("clear working hours: %w", err)
		}
		if len(hours) == 0 {
			return nil
		}

		rows := make([]models.WorkingHours, len(hours))
		for i, wh := range hours {
			wh.ID = 0
			rows[i] = wh
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("save working hours: %w", err)
		}
		return nil
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// bookingLockKey is the advisory lock serialising every booking write. There
// is a single professional, so one key covers the whole schedule.
const bookingLockKey int64 = 0x736c6f74

// lockBookings holds the booking lock until tx ends. Row locks alone cannot
// guard an empty interval: with nothing to lock, two transactions would both
// pass the overlap check.
func lockBookings(tx *gorm.DB) *gorm.DB {
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", bookingLockKey)
}

// assertNoTimeConflict locks every blocking row overlapping [start, end).
func assertNoTimeConflict(
	tx *gorm.DB,
	start time.Time,
	end time.Time,
	ignoreID string,
) error {

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"status <> ? AND start_time < ? AND end_time > ?",
			string(domain.StatusCancelled),
			end,
			start,
		)
	if ignoreID != "" {
		q = q.Where("id <> ?", ignoreID)
	}

	var conflicts []models.Appointment
	if err := q.Select("id").Find(&conflicts).Error; err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return nil
}

func conflictOr(err error) error {
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return err
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBookings(tx).Error; err != nil {
			return fmt.Errorf("booking lock: %w", err)
		}
		if err := assertNoTimeConflict(tx, ap.StartTime, ap.EndTime, ""); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
	return conflictOr(err)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	id string,
	mutate domain.Mutation,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&ap).Error; err != nil {
			return notFound(err)
		}

		start, end := ap.StartTime, ap.EndTime
		if err := mutate(&ap); err != nil {
			return err
		}
		ap.ID = id
		ap.StartTime, ap.EndTime = start, end

		return tx.Save(&ap).Error
	})
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	id string,
	mutate domain.Mutation,
	next *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBookings(tx).Error; err != nil {
			return fmt.Errorf("booking lock: %w", err)
		}

		var old models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&old).Error; err != nil {
			return notFound(err)
		}

		start, end := old.StartTime, old.EndTime
		if err := mutate(&old); err != nil {
			return err
		}
		old.ID = id
		old.StartTime, old.EndTime = start, end

		if err := tx.Save(&old).Error; err != nil {
			return err
		}
		if err := assertNoTimeConflict(tx, next.StartTime, next.EndTime, id); err != nil {
			return err
		}
		return tx.Create(next).Error
	})
	return conflictOr(err)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBlockingForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"status <> ? AND start_time < ? AND end_time > ?",
			string(domain.StatusCancelled), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Where(
			"start_time >= ? AND start_time < ?",
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
