package appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// Window is a weekday's working hours placed on a concrete date.
type Window struct {
	Start time.Time
	End   time.Time

	// Break is zero when the day has no pause.
	Break Interval
}

func (w Window) HasBreak() bool {
	return w.Break.End.After(w.Break.Start)
}

// Contains reports whether [start, end) fits in the window without touching the break.
func (w Window) Contains(start, end time.Time) bool {
	if !end.After(start) {
		return false
	}
	if start.Before(w.Start) || end.After(w.End) {
		return false
	}
	if w.HasBreak() && Overlaps(Interval{Start: start, End: end}, w.Break) {
		return false
	}
	return true
}

// WorkingDuration is the bookable time in the window, break excluded.
func (w Window) WorkingDuration() time.Duration {
	d := w.End.Sub(w.Start)
	if w.HasBreak() {
		d -= w.Break.End.Sub(w.Break.Start)
	}
	if d < 0 {
		return 0
	}
	return d
}

// WindowFor places wh on day. ok is false when the day is not worked.
func WindowFor(wh *models.WorkingHours, day time.Time) (w Window, ok bool, err error) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return Window{}, false, nil
	}

	if w.Start, err = timezone.At(day, wh.StartTime); err != nil {
		return Window{}, false, fmt.Errorf("working hours start: %w", err)
	}
	if w.End, err = timezone.At(day, wh.EndTime); err != nil {
		return Window{}, false, fmt.Errorf("working hours end: %w", err)
	}

	if wh.HasBreak() {
		if w.Break.Start, err = timezone.At(day, wh.BreakStart); err != nil {
			return Window{}, false, fmt.Errorf("break start: %w", err)
		}
		if w.Break.End, err = timezone.At(day, wh.BreakEnd); err != nil {
			return Window{}, false, fmt.Errorf("break end: %w", err)
		}
	}

	return w, w.End.After(w.Start), nil
}

var (
	errWeekday     = errors.New("weekday must be between 0 and 6")
	errClock       = errors.New("times must use HH:MM")
	errWindow      = errors.New("start_time must be before end_time")
	errBreakWindow = errors.New("break must lie inside working hours")
)

// ValidateWorkingHours checks a single weekday configuration.
// Inactive days are only checked for a valid weekday.
func ValidateWorkingHours(wh models.WorkingHours) error {
	if wh.Weekday < 0 || wh.Weekday > 6 {
		return errWeekday
	}
	if !wh.Active {
		return nil
	}

	ref := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	clocks := []string{wh.StartTime, wh.EndTime}
	if wh.BreakStart != "" || wh.BreakEnd != "" {
		clocks = append(clocks, wh.BreakStart, wh.BreakEnd)
	}
	for _, c := range clocks {
		if _, err := timezone.At(ref, c); err != nil {
			return errClock
		}
	}

	w, ok, err := WindowFor(&wh, ref)
	if err != nil {
		return err
	}
	if !ok {
		return errWindow
	}
	if w.HasBreak() {
		if w.Break.Start.Before(w.Start) || w.Break.End.After(w.End) {
			return errBreakWindow
		}
	} else if wh.HasBreak() {
		return errBreakWindow
	}
	return nil
}

// ValidateWeek checks every day and rejects a weekday configured twice.
func ValidateWeek(hours []models.WorkingHours) error {
	seen := map[int]bool{}
	for _, wh := range hours {
		if err := ValidateWorkingHours(wh); err != nil {
			return fmt.Errorf("weekday %d: %w", wh.Weekday, err)
		}
		if seen[wh.Weekday] {
			return fmt.Errorf("weekday %d configured twice", wh.Weekday)
		}
		seen[wh.Weekday] = true
	}
	return nil
}
