package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id" yaml:"id"`

	Name        string  `gorm:"size:100;not null" json:"name" yaml:"name"`
	Description string  `gorm:"size:255" json:"description" yaml:"description"`
	DurationMin int     `json:"duration_min" yaml:"duration_min"`
	Price       float64 `json:"price" yaml:"price"`
	Active      bool    `gorm:"not null" json:"active" yaml:"active"`

	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
