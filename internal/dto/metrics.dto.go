package dto

type MetricsDTO struct {
	Date  string `json:"date"`
	Month string `json:"month"`

	MonthAppointments int `json:"month_appointments"`
	TodayAppointments int `json:"today_appointments"`
	TodayPending      int `json:"today_pending"`

	// OccupancyRate is booked minutes over working minutes in the month, in percent.
	OccupancyRate float64 `json:"occupancy_rate"`
	BookedMinutes int     `json:"booked_minutes"`
	WorkMinutes   int     `json:"work_minutes"`

	// PopularTime is empty when the month has no bookings.
	PopularTime string `json:"popular_time"`

	// Weekly counts month bookings per weekday, Sunday first.
	Weekly [7]int `json:"weekly"`
}
