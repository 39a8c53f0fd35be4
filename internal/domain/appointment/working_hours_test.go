package appointment

import (
	"testing"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func TestWindowFor(t *testing.T) {
	wh := &models.WorkingHours{
		Weekday:    3,
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		BreakStart: "12:00",
		BreakEnd:   "14:00",
	}

	w, ok, err := WindowFor(wh, day())
	if err != nil || !ok {
		t.Fatalf("expected window, got ok=%v err=%v", ok, err)
	}
	if !w.Start.Equal(at(9, 0)) || !w.End.Equal(at(18, 0)) {
		t.Fatalf("unexpected window %s-%s", w.Start, w.End)
	}
	if got := w.WorkingDuration().Hours(); got != 7 {
		t.Fatalf("expected 7 working hours, got %v", got)
	}

	if !w.Contains(at(9, 0), at(9, 30)) {
		t.Fatal("expected 09:00-09:30 inside")
	}
	if w.Contains(at(11, 30), at(12, 30)) {
		t.Fatal("expected interval touching the break to be rejected")
	}
	if w.Contains(at(17, 30), at(18, 30)) {
		t.Fatal("expected interval past closing to be rejected")
	}
	if w.Contains(at(8, 30), at(9, 0)) {
		t.Fatal("expected interval before opening to be rejected")
	}
}

func TestWindowFor_ClosedDay(t *testing.T) {
	for _, wh := range []*models.WorkingHours{
		nil,
		{Weekday: 0, Active: false, StartTime: "09:00", EndTime: "18:00"},
		{Weekday: 0, Active: true},
	} {
		_, ok, err := WindowFor(wh, day())
		if err != nil || ok {
			t.Fatalf("expected closed day for %+v, got ok=%v err=%v", wh, ok, err)
		}
	}
}

func TestValidateWorkingHours(t *testing.T) {
	cases := []struct {
		name  string
		wh    models.WorkingHours
		valid bool
	}{
		{"plain", models.WorkingHours{Weekday: 1, Active: true, StartTime: "09:00", EndTime: "18:00"}, true},
		{"with break", models.WorkingHours{Weekday: 1, Active: true, StartTime: "09:00", EndTime: "18:00", BreakStart: "12:00", BreakEnd: "13:00"}, true},
		{"inactive", models.WorkingHours{Weekday: 0}, true},
		{"bad weekday", models.WorkingHours{Weekday: 7}, false},
		{"bad clock", models.WorkingHours{Weekday: 1, Active: true, StartTime: "9h", EndTime: "18:00"}, false},
		{"reversed", models.WorkingHours{Weekday: 1, Active: true, StartTime: "18:00", EndTime: "09:00"}, false},
		{"break outside", models.WorkingHours{Weekday: 1, Active: true, StartTime: "09:00", EndTime: "18:00", BreakStart: "18:00", BreakEnd: "19:00"}, false},
		{"break reversed", models.WorkingHours{Weekday: 1, Active: true, StartTime: "09:00", EndTime: "18:00", BreakStart: "13:00", BreakEnd: "12:00"}, false},
		{"half break", models.WorkingHours{Weekday: 1, Active: true, StartTime: "09:00", EndTime: "18:00", BreakStart: "12:00"}, false},
	}

	for _, tc := range cases {
		err := ValidateWorkingHours(tc.wh)
		if (err == nil) != tc.valid {
			t.Fatalf("%s: expected valid=%v, got err=%v", tc.name, tc.valid, err)
		}
	}
}
