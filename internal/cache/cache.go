package cache

import (
	"context"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
)

// Version identifies the cache state a slot computation started from.
// Invalidate and InvalidateAll move it forward, so a list computed before an
// invalidation can no longer be stored.
type Version string

// SlotCache stores computed slot lists per date and service. A miss or a
// backend failure is never an error for callers: they recompute.
//
// Get reports the current Version even on a miss; callers pass it back to Set
// after computing, and Set drops the write when the version has moved.
type SlotCache interface {
	Get(ctx context.Context, date string, serviceID uint) ([]domain.TimeSlot, Version, bool)
	Set(ctx context.Context, date string, serviceID uint, v Version, slots []domain.TimeSlot)
	Invalidate(ctx context.Context, date string)
	InvalidateAll(ctx context.Context)
}

type Noop struct{}

func (Noop) Get(context.Context, string, uint) ([]domain.TimeSlot, Version, bool) {
	return nil, "", false
}
func (Noop) Set(context.Context, string, uint, Version, []domain.TimeSlot) {}
func (Noop) Invalidate(context.Context, string) {}
func (Noop) InvalidateAll(context.Context) {}
