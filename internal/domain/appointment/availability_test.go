package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func day() time.Time {
	return time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
}

func at(h, m int) time.Time {
	return day().Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func nineToSix() Window {
	return Window{Start: at(9, 0), End: at(18, 0)}
}

func starts(slots []Interval) map[string]bool {
	out := map[string]bool{}
	for _, s := range slots {
		out[s.Start.Format("15:04")] = true
	}
	return out
}

func TestOverlaps_HalfOpen(t *testing.T) {
	a := Interval{Start: at(10, 0), End: at(10, 30)}

	cases := []struct {
		name string
		b    Interval
		want bool
	}{
		{"identical", Interval{at(10, 0), at(10, 30)}, true},
		{"touching before", Interval{at(9, 30), at(10, 0)}, false},
		{"touching after", Interval{at(10, 30), at(11, 0)}, false},
		{"inside", Interval{at(10, 10), at(10, 20)}, true},
		{"covering", Interval{at(9, 0), at(11, 0)}, true},
		{"partial", Interval{at(10, 15), at(10, 45)}, true},
	}

	for _, tc := range cases {
		if got := Overlaps(a, tc.b); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		if got := Overlaps(tc.b, a); got != tc.want {
			t.Fatalf("%s (swapped): expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAvailableSlots_ExcludesBookedInterval(t *testing.T) {
	busy := []Interval{{Start: at(10, 0), End: at(10, 30)}}

	slots := AvailableSlots(nineToSix(), 30*time.Minute, 30*time.Minute, busy, time.Time{})
	got := starts(slots)

	if got["10:00"] {
		t.Fatal("expected 10:00 to be excluded")
	}
	for _, want := range []string{"09:00", "09:30", "10:30", "11:00", "17:30"} {
		if !got[want] {
			t.Fatalf("expected %s to be available, got %v", want, got)
		}
	}
	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}
}

func TestAvailableSlots_FitInsideWindow(t *testing.T) {
	w := nineToSix()

	for _, d := range []time.Duration{15, 30, 45, 60, 90, 120} {
		duration := d * time.Minute
		for _, step := range []time.Duration{15 * time.Minute, 30 * time.Minute} {
			for _, s := range AvailableSlots(w, duration, step, nil, time.Time{}) {
				if s.Start.Before(w.Start) || s.End.After(w.End) {
					t.Fatalf("slot %s-%s escapes window", s.Start.Format("15:04"), s.End.Format("15:04"))
				}
				if s.End.Sub(s.Start) != duration {
					t.Fatalf("slot length %s, want %s", s.End.Sub(s.Start), duration)
				}
			}
		}
	}
}

func TestAvailableSlots_LongServiceOnShortGrid(t *testing.T) {
	busy := []Interval{{Start: at(10, 0), End: at(10, 30)}}

	got := starts(AvailableSlots(nineToSix(), 60*time.Minute, 30*time.Minute, busy, time.Time{}))

	// 09:30-10:30 and 10:00-11:00 both hit the booking.
	if got["09:30"] || got["10:00"] {
		t.Fatalf("expected 09:30 and 10:00 to be excluded, got %v", got)
	}
	if !got["09:00"] || !got["10:30"] || !got["17:00"] {
		t.Fatalf("expected 09:00, 10:30 and 17:00, got %v", got)
	}
	if got["17:30"] {
		t.Fatal("17:30 would end after closing")
	}
}

func TestAvailableSlots_SkipsBreak(t *testing.T) {
	w := nineToSix()
	w.Break = Interval{Start: at(12, 0), End: at(14, 0)}

	got := starts(AvailableSlots(w, 30*time.Minute, 30*time.Minute, nil, time.Time{}))

	for _, blocked := range []string{"12:00", "12:30", "13:00", "13:30"} {
		if got[blocked] {
			t.Fatalf("expected %s to fall in the break", blocked)
		}
	}
	if !got["11:30"] || !got["14:00"] {
		t.Fatalf("expected slots around the break, got %v", got)
	}
}

func TestAvailableSlots_SkipsBeforeEarliest(t *testing.T) {
	got := AvailableSlots(nineToSix(), 30*time.Minute, 30*time.Minute, nil, at(16, 10))

	if len(got) != 3 {
		t.Fatalf("expected 16:30, 17:00 and 17:30, got %d slots", len(got))
	}
	if !got[0].Start.Equal(at(16, 30)) {
		t.Fatalf("expected first slot 16:30, got %s", got[0].Start.Format("15:04"))
	}
}

func TestAvailableSlots_Degenerate(t *testing.T) {
	if s := AvailableSlots(nineToSix(), 0, 30*time.Minute, nil, time.Time{}); s != nil {
		t.Fatal("expected nil for zero duration")
	}
	if s := AvailableSlots(nineToSix(), 10*time.Hour, 30*time.Minute, nil, time.Time{}); len(s) != 0 {
		t.Fatal("expected no slots for a service longer than the day")
	}
	if s := AvailableSlots(Window{}, 30*time.Minute, 30*time.Minute, nil, time.Time{}); s != nil {
		t.Fatal("expected nil for empty window")
	}
}

func TestBusyIntervals_IgnoresCancelled(t *testing.T) {
	aps := []models.Appointment{
		{StartTime: at(9, 0), EndTime: at(9, 30), Status: string(StatusConfirmed)},
		{StartTime: at(10, 0), EndTime: at(10, 30), Status: string(StatusCancelled)},
		{StartTime: at(11, 0), EndTime: at(11, 30), Status: string(StatusPending)},
	}

	busy := BusyIntervals(aps)
	if len(busy) != 2 {
		t.Fatalf("expected 2 busy intervals, got %d", len(busy))
	}
}

func TestToTimeSlots(t *testing.T) {
	slots := ToTimeSlots([]Interval{{Start: at(9, 0), End: at(9, 45)}})
	if len(slots) != 1 || slots[0].Start != "09:00" || slots[0].End != "09:45" {
		t.Fatalf("unexpected slots %+v", slots)
	}
}
