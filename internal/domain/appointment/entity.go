package appointment

import (
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.UpdatedAt = now
	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	ap.UpdatedAt = now
	return nil
}

// Blocking reports whether ap occupies its interval.
func Blocking(ap models.Appointment) bool {
	return Status(ap.Status).Blocks()
}
