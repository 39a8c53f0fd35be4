package appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/slot-scheduler/internal/validators"
)

// BookingRequest is what the booking form submits.
type BookingRequest struct {
	ClientName string `json:"client_name" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"required,min=10,max=20,phone"`
	ServiceID  uint   `json:"service_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	Notes      string `json:"notes" validate:"max=255"`
}

// RescheduleRequest moves an appointment to a new start.
type RescheduleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

var validate = validators.New()

func (r *BookingRequest) Normalize() {
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r *RescheduleRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
}

// FieldErrors validates a request struct and returns one message per
// invalid field, keyed by json name. It is empty when the input is valid.
func FieldErrors(req any) map[string]string {
	fields := map[string]string{}

	err := validate.Struct(req)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["request"] = "is malformed"
		return fields
	}

	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s characters", fe.Param())
	case "phone":
		return "must be a valid phone number"
	case "datetime":
		if fe.Param() == "15:04" {
			return "must be a time in HH:MM format"
		}
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
