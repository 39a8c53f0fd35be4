package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`

	ServiceID   uint   `gorm:"index" json:"service_id"`
	ServiceName string `gorm:"size:100" json:"service_name"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// RescheduledFrom links a rescheduled appointment to the one it replaced.
	RescheduledFrom *string `gorm:"type:uuid" json:"rescheduled_from,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}
