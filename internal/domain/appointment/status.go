package appointment

import "github.com/BruksfildServices01/slot-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Blocks reports whether an appointment in this status occupies its interval.
func (s Status) Blocks() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanCancel allows pending and confirmed appointments to be cancelled.
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCancelled:
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled)
	default:
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
}

// CanConfirm only accepts pending appointments.
func CanConfirm(current Status) error {
	switch current {
	case StatusPending:
		return nil
	case StatusCancelled:
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled)
	default:
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
}

// InitialStatus is the status a freshly accepted booking gets.
func InitialStatus(autoConfirm bool) Status {
	if autoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}
