package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// UpdateWorkingHours replaces the whole weekly schedule. Existing
// appointments are kept even when they fall outside the new hours.
type UpdateWorkingHours struct {
	repo  domain.Repository
	cache cache.SlotCache
	audit *audit.Dispatcher
}

func NewUpdateWorkingHours(
	repo domain.Repository,
	slotCache cache.SlotCache,
	audit *audit.Dispatcher,
) *UpdateWorkingHours {
	if slotCache == nil {
		slotCache = cache.Noop{}
	}
	return &UpdateWorkingHours{
		repo:  repo,
		cache: slotCache,
		audit: audit,
	}
}

func (uc *UpdateWorkingHours) Execute(
	ctx context.Context,
	hours []models.WorkingHours,
) error {

	if err := domain.ValidateWeek(hours); err != nil {
		return httperr.ErrValidation(map[string]string{
			"working_hours": err.Error(),
		})
	}

	if err := uc.repo.ReplaceWorkingHours(ctx, hours); err != nil {
		return fmt.Errorf("replace working hours: %w", err)
	}

	// Every cached day may have changed shape.
	uc.cache.InvalidateAll(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "working_hours_updated",
		Entity:   "working_hours",
		Metadata: map[string]any{"days": len(hours)},
	})

	return nil
}
