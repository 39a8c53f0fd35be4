package models

import "time"

// WorkingHours holds one weekday of the professional's schedule.
// Times are HH:MM in the business timezone; the break is optional.
type WorkingHours struct {
	ID uint `gorm:"primaryKey" json:"id" yaml:"-"`

	Weekday int `gorm:"uniqueIndex" json:"weekday" yaml:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time" yaml:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time" yaml:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start" yaml:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end" yaml:"break_end"`
	Active     bool   `json:"active" yaml:"active"`

	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (wh WorkingHours) HasBreak() bool {
	return wh.BreakStart != "" && wh.BreakEnd != ""
}
