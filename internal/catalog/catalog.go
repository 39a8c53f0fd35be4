package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// Catalog is the professional's offer: what can be booked and when.
type Catalog struct {
	Services     []models.Service      `yaml:"services"`
	WorkingHours []models.WorkingHours `yaml:"working_hours"`
}

// Default mirrors the shop the booking page was designed around.
func Default() Catalog {
	c := Catalog{
		Services: []models.Service{
			{ID: 1, Name: "Corte de Cabelo", DurationMin: 30, Price: 50, Active: true},
			{ID: 2, Name: "Barba", DurationMin: 30, Price: 35, Active: true},
			{ID: 3, Name: "Coloração", DurationMin: 90, Price: 120, Active: true},
			{ID: 4, Name: "Manicure", DurationMin: 45, Price: 40, Active: true},
			{ID: 5, Name: "Pedicure", DurationMin: 45, Price: 45, Active: true},
		},
	}

	c.WorkingHours = append(c.WorkingHours, models.WorkingHours{Weekday: 0, Active: false})
	for wd := 1; wd <= 6; wd++ {
		c.WorkingHours = append(c.WorkingHours, models.WorkingHours{
			Weekday:    wd,
			Active:     true,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: "12:00",
			BreakEnd:   "14:00",
		})
	}
	return c
}

// Load reads a YAML catalog. An empty path yields Default.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.applyActiveDefaults(data); err != nil {
		return Catalog{}, err
	}

	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// activeKeys records, per entry, whether the file set "active".
type activeKeys struct {
	Services []struct {
		Active *bool `yaml:"active"`
	} `yaml:"services"`
	WorkingHours []struct {
		Active    *bool  `yaml:"active"`
		StartTime string `yaml:"start_time"`
	} `yaml:"working_hours"`
}

// applyActiveDefaults makes a service without an "active" key bookable, and
// likewise a working day that has hours but no "active" key.
func (c *Catalog) applyActiveDefaults(data []byte) error {
	var keys activeKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	for i, k := range keys.Services {
		if k.Active == nil && i < len(c.Services) {
			c.Services[i].Active = true
		}
	}
	for i, k := range keys.WorkingHours {
		if k.Active == nil && k.StartTime != "" && i < len(c.WorkingHours) {
			c.WorkingHours[i].Active = true
		}
	}
	return nil
}

func (c Catalog) Validate() error {
	if len(c.Services) == 0 {
		return errors.New("catalog: at least one service is required")
	}

	ids := map[uint]bool{}
	for _, s := range c.Services {
		if s.ID == 0 {
			return fmt.Errorf("catalog: service %q has no id", s.Name)
		}
		if ids[s.ID] {
			return fmt.Errorf("catalog: duplicate service id %d", s.ID)
		}
		ids[s.ID] = true
		if s.DurationMin <= 0 {
			return fmt.Errorf("catalog: service %d must have a positive duration", s.ID)
		}
	}

	return domain.ValidateWeek(c.WorkingHours)
}

// Seed upserts the services into repo. Working hours are only written when
// repo has none, so a schedule edited through the API survives restarts.
func (c Catalog) Seed(ctx context.Context, repo domain.Repository) error {
	if err := repo.SaveServices(ctx, c.Services); err != nil {
		return fmt.Errorf("seed services: %w", err)
	}

	existing, err := repo.ListWorkingHours(ctx)
	if err != nil {
		return fmt.Errorf("seed working hours: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	if err := repo.ReplaceWorkingHours(ctx, c.WorkingHours); err != nil {
		return fmt.Errorf("seed working hours: %w", err)
	}
	return nil
}
