package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	cache    cache.SlotCache
	settings Settings
}

func NewGetAvailability(
	repo domain.Repository,
	slotCache cache.SlotCache,
	settings Settings,
) *GetAvailability {
	if slotCache == nil {
		slotCache = cache.Noop{}
	}
	return &GetAvailability{
		repo:     repo,
		cache:    slotCache,
		settings: settings.withDefaults(),
	}
}

// Execute lists the bookable slots of a service on a date, in chronological
// order. Days off and days entirely in the past give an empty list.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	service, err := activeService(ctx, uc.repo, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	day := timezone.StartOfDay(in.Date.In(uc.settings.Location))
	date := day.Format(timezone.DateLayout)

	// --------------------------------------------------
	// Whole-day grid, cached without the "now" cut
	// --------------------------------------------------
	// The version is read before the repository so an invalidation racing
	// with compute makes Set a no-op.
	slots, version, hit := uc.cache.Get(ctx, date, service.ID)
	if !hit {
		slots, err = uc.compute(ctx, day, service.Duration())
		if err != nil {
			return nil, err
		}
		uc.cache.Set(ctx, date, service.ID, version, slots)
	}

	// --------------------------------------------------
	// Minimum advance
	// --------------------------------------------------
	return uc.notBefore(day, slots, uc.settings.earliestStart()), nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	day time.Time,
	duration time.Duration,
) ([]domain.TimeSlot, error) {

	window, ok, err := workingWindow(ctx, uc.repo, day)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	aps, err := uc.repo.ListBlockingForPeriod(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("list blocking appointments: %w", err)
	}

	ivs := domain.AvailableSlots(
		window,
		duration,
		uc.settings.Granularity,
		domain.BusyIntervals(aps),
		time.Time{},
	)
	return domain.ToTimeSlots(ivs), nil
}

func (uc *GetAvailability) notBefore(day time.Time, slots []domain.TimeSlot, earliest time.Time) []domain.TimeSlot {
	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		start, err := timezone.At(day, s.Start)
		if err != nil || start.Before(earliest) {
			continue
		}
		out = append(out, s)
	}
	return out
}
