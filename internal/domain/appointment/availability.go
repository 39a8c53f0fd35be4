package appointment

import (
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Interval is half-open: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether a and b share any instant.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func overlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(iv, b) {
			return true
		}
	}
	return false
}

// BusyIntervals keeps the intervals of appointments that still block time.
func BusyIntervals(aps []models.Appointment) []Interval {
	busy := make([]Interval, 0, len(aps))
	for _, ap := range aps {
		if !Blocking(ap) {
			continue
		}
		busy = append(busy, Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return busy
}

// AvailableSlots walks the window on a grid of step, offering [t, t+duration)
// for every t that fits in the window, avoids the break and busy intervals,
// and does not start before earliest.
func AvailableSlots(w Window, duration, step time.Duration, busy []Interval, earliest time.Time) []Interval {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !w.End.After(w.Start) {
		return nil
	}

	var slots []Interval
	for t := w.Start; !t.Add(duration).After(w.End); t = t.Add(step) {
		if t.Before(earliest) {
			continue
		}

		iv := Interval{Start: t, End: t.Add(duration)}
		if w.HasBreak() && Overlaps(iv, w.Break) {
			continue
		}
		if overlapsAny(iv, busy) {
			continue
		}
		slots = append(slots, iv)
	}
	return slots
}

func ToTimeSlots(ivs []Interval) []TimeSlot {
	out := make([]TimeSlot, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, TimeSlot{
			Start: iv.Start.Format(timezone.ClockLayout),
			End:   iv.End.Format(timezone.ClockLayout),
		})
	}
	return out
}
