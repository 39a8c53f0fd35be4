package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

// Execute returns the active services ordered by id.
func (uc *ListServices) Execute(ctx context.Context) ([]models.Service, error) {
	services, err := uc.repo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

type ListWorkingHours struct {
	repo domain.Repository
}

func NewListWorkingHours(repo domain.Repository) *ListWorkingHours {
	return &ListWorkingHours{repo: repo}
}

func (uc *ListWorkingHours) Execute(ctx context.Context) ([]models.WorkingHours, error) {
	hours, err := uc.repo.ListWorkingHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	return hours, nil
}
