package dto

import (
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ServiceID   uint      `json:"service_id"`
	ServiceName string    `json:"service_name"`
}

func NewAppointmentListDTO(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	start := ap.StartTime.In(loc)
	return AppointmentListDTO{
		ID:          ap.ID,
		Date:        start.Format(timezone.DateLayout),
		Time:        start.Format(timezone.ClockLayout),
		StartTime:   start,
		EndTime:     ap.EndTime.In(loc),
		Status:      ap.Status,
		ClientName:  ap.ClientName,
		ClientPhone: ap.ClientPhone,
		ServiceID:   ap.ServiceID,
		ServiceName: ap.ServiceName,
	}
}
