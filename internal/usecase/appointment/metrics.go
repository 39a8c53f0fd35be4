package appointment

import (
	"context"
	"fmt"
	"math"
	"time"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

type GetMetrics struct {
	repo     domain.Repository
	settings Settings
}

func NewGetMetrics(
	repo domain.Repository,
	settings Settings,
) *GetMetrics {
	return &GetMetrics{
		repo:     repo,
		settings: settings.withDefaults(),
	}
}

// Execute aggregates the month containing day. Cancelled appointments are
// ignored everywhere.
func (uc *GetMetrics) Execute(
	ctx context.Context,
	day time.Time,
) (*dto.MetricsDTO, error) {

	loc := uc.settings.Location
	day = timezone.StartOfDay(day.In(loc))
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	hours, err := uc.repo.ListWorkingHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}

	out := &dto.MetricsDTO{
		Date:  day.Format(timezone.DateLayout),
		Month: monthStart.Format("2006-01"),
	}

	// --------------------------------------------------
	// Counts
	// --------------------------------------------------
	today := out.Date
	var booked time.Duration
	starts := map[string]int{}

	for _, ap := range appointments {
		if !domain.Blocking(ap) {
			continue
		}
		start := ap.StartTime.In(loc)

		out.MonthAppointments++
		out.Weekly[start.Weekday()]++
		starts[start.Format(timezone.ClockLayout)]++
		booked += ap.Duration()

		if start.Format(timezone.DateLayout) == today {
			out.TodayAppointments++
			if ap.Status == string(domain.StatusPending) {
				out.TodayPending++
			}
		}
	}
	out.PopularTime = mostFrequent(starts)

	// --------------------------------------------------
	// Occupancy
	// --------------------------------------------------
	work, err := workingTime(hours, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	out.BookedMinutes = int(booked.Minutes())
	out.WorkMinutes = int(work.Minutes())
	if work > 0 {
		rate := float64(booked) / float64(work) * 100
		out.OccupancyRate = math.Round(rate*10) / 10
	}

	return out, nil
}

// workingTime sums the bookable time of every day in [from, to).
func workingTime(hours []models.WorkingHours, from, to time.Time) (time.Duration, error) {
	byWeekday := make(map[time.Weekday]*models.WorkingHours, len(hours))
	for i := range hours {
		byWeekday[time.Weekday(hours[i].Weekday)] = &hours[i]
	}

	var total time.Duration
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		w, ok, err := domain.WindowFor(byWeekday[d.Weekday()], d)
		if err != nil {
			return 0, err
		}
		if ok {
			total += w.WorkingDuration()
		}
	}
	return total, nil
}

// mostFrequent picks the start time with the highest count, the earliest on ties.
func mostFrequent(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}
