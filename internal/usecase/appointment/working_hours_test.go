package appointment

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func TestUpdateWorkingHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewUpdateWorkingHours(f.repo, f.cache, f.audit)

	err := uc.Execute(ctx, []models.WorkingHours{
		{Weekday: 3, Active: true, StartTime: "18:00", EndTime: "09:00"},
	})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected validation_error, got %v", err)
	}
	if f.cache.flushed != 0 {
		t.Fatal("rejected update must not flush the cache")
	}

	if err := uc.Execute(ctx, []models.WorkingHours{
		{Weekday: 3, Active: true, StartTime: "13:00", EndTime: "15:00"},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if f.cache.flushed != 1 {
		t.Fatalf("expected cache flushed once, got %d", f.cache.flushed)
	}

	slots, err := f.availability().Execute(ctx, domain.AvailabilityInput{ServiceID: 1, Date: day(t, testDate)})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if got := starts(slots); len(got) != 4 || got[0] != "13:00" {
		t.Fatalf("expected the new hours to drive availability, got %v", got)
	}

	// Thursday is no longer configured.
	slots, _ = f.availability().Execute(ctx, domain.AvailabilityInput{ServiceID: 1, Date: day(t, "2026-01-29")})
	if len(slots) != 0 {
		t.Fatalf("expected no slots on an unconfigured day, got %v", starts(slots))
	}

	hours, _ := NewListWorkingHours(f.repo).Execute(ctx)
	if len(hours) != 1 {
		t.Fatalf("expected one configured day, got %d", len(hours))
	}
}

func TestListServices_OnlyActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.repo.SaveServices(ctx, []models.Service{{ID: 9, Name: "Old", DurationMin: 30, Active: false}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	services, err := NewListServices(f.repo).Execute(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(services) != 5 {
		t.Fatalf("expected the 5 active services, got %d", len(services))
	}

	_, err = f.availability().Execute(ctx, domain.AvailabilityInput{ServiceID: 9, Date: day(t, testDate)})
	if !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("inactive service must not be bookable, got %v", err)
	}
}
