package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// AppointmentMemoryRepository keeps everything in process. One RWMutex
// guards the whole state, so check-then-insert is atomic.
type AppointmentMemoryRepository struct {
	mu sync.RWMutex

	loc *time.Location

	services     map[uint]models.Service
	workingHours map[int]models.WorkingHours

	appointments map[string]*models.Appointment
	// byDay indexes appointment ids by their start date in loc.
	byDay map[string][]string
}

func NewAppointmentMemoryRepository(loc *time.Location) *AppointmentMemoryRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentMemoryRepository{
		loc:          loc,
		services:     map[uint]models.Service{},
		workingHours: map[int]models.WorkingHours{},
		appointments: map[string]*models.Appointment{},
		byDay:        map[string][]string{},
	}
}

func (r *AppointmentMemoryRepository) dayKey(t time.Time) string {
	return t.In(r.loc).Format(timezone.DateLayout)
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *AppointmentMemoryRepository) ListServices(_ context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AppointmentMemoryRepository) SaveServices(_ context.Context, services []models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, s := range services {
		if existing, ok := r.services[s.ID]; ok {
			s.CreatedAt = existing.CreatedAt
		} else {
			s.CreatedAt = now
		}
		s.UpdatedAt = now
		r.services[s.ID] = s
	}
	return nil
}

func (r *AppointmentMemoryRepository) GetWorkingHours(_ context.Context, weekday int) (*models.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wh, ok := r.workingHours[weekday]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &wh, nil
}

func (r *AppointmentMemoryRepository) ListWorkingHours(_ context.Context) ([]models.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.WorkingHours, 0, len(r.workingHours))
	for _, wh := range r.workingHours {
		out = append(out, wh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (r *AppointmentMemoryRepository) ReplaceWorkingHours(_ context.Context, hours []models.WorkingHours) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.workingHours = make(map[int]models.WorkingHours, len(hours))
	for i, wh := range hours {
		wh.ID = uint(i + 1)
		wh.CreatedAt = now
		wh.UpdatedAt = now
		r.workingHours[wh.Weekday] = wh
	}
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// conflicts must be called with the lock held.
func (r *AppointmentMemoryRepository) conflicts(ap *models.Appointment, ignoreID string) bool {
	iv := domain.Interval{Start: ap.StartTime, End: ap.EndTime}

	for _, id := range r.byDay[r.dayKey(ap.StartTime)] {
		if id == ignoreID {
			continue
		}
		other := r.appointments[id]
		if !domain.Blocking(*other) {
			continue
		}
		if domain.Overlaps(iv, domain.Interval{Start: other.StartTime, End: other.EndTime}) {
			return true
		}
	}
	return false
}

// insert must be called with the write lock held.
func (r *AppointmentMemoryRepository) insert(ap *models.Appointment) {
	now := time.Now()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	ap.UpdatedAt = now

	stored := *ap
	r.appointments[stored.ID] = &stored

	key := r.dayKey(stored.StartTime)
	r.byDay[key] = append(r.byDay[key], stored.ID)
}

func (r *AppointmentMemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.appointments[ap.ID]; exists {
		return fmt.Errorf("appointment %s already exists", ap.ID)
	}
	if r.conflicts(ap, "") {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	r.insert(ap)
	return nil
}

func (r *AppointmentMemoryRepository) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *AppointmentMemoryRepository) UpdateAppointment(
	_ context.Context,
	id string,
	mutate domain.Mutation,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := *stored
	if err := mutate(&next); err != nil {
		return nil, err
	}
	// Identity and interval are immutable here; reschedule goes through
	// RescheduleAppointment.
	next.ID = stored.ID
	next.StartTime = stored.StartTime
	next.EndTime = stored.EndTime

	*stored = next
	cp := next
	return &cp, nil
}

func (r *AppointmentMemoryRepository) RescheduleAppointment(
	_ context.Context,
	id string,
	mutate domain.Mutation,
	next *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[id]
	if !ok {
		return domain.ErrNotFound
	}

	old := *stored
	if err := mutate(&old); err != nil {
		return err
	}
	if r.conflicts(next, id) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	old.ID = stored.ID
	old.StartTime = stored.StartTime
	old.EndTime = stored.EndTime
	*stored = old

	r.insert(next)
	return nil
}

func (r *AppointmentMemoryRepository) ListBlockingForPeriod(
	_ context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	window := domain.Interval{Start: start, End: end}
	var out []models.Appointment
	for _, key := range r.daysBetween(start.Add(-24*time.Hour), end) {
		for _, id := range r.byDay[key] {
			ap := r.appointments[id]
			if !domain.Blocking(*ap) {
				continue
			}
			if domain.Overlaps(window, domain.Interval{Start: ap.StartTime, End: ap.EndTime}) {
				out = append(out, *ap)
			}
		}
	}

	sortByStart(out)
	return out, nil
}

func (r *AppointmentMemoryRepository) ListAppointmentsForPeriod(
	_ context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Appointment
	for _, key := range r.daysBetween(start, end) {
		for _, id := range r.byDay[key] {
			ap := r.appointments[id]
			if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
				out = append(out, *ap)
			}
		}
	}

	sortByStart(out)
	return out, nil
}

// daysBetween lists the day keys touched by [start, end). For very wide
// ranges it falls back to every indexed day.
func (r *AppointmentMemoryRepository) daysBetween(start, end time.Time) []string {
	if !end.After(start) {
		return nil
	}
	if end.Sub(start) > 366*24*time.Hour {
		keys := make([]string, 0, len(r.byDay))
		for k := range r.byDay {
			keys = append(keys, k)
		}
		return keys
	}

	var keys []string
	last := r.dayKey(end.Add(-time.Nanosecond))
	for d := timezone.StartOfDay(start.In(r.loc)); ; d = d.AddDate(0, 0, 1) {
		k := d.Format(timezone.DateLayout)
		keys = append(keys, k)
		if k >= last {
			break
		}
	}
	return keys
}

func sortByStart(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		return aps[i].StartTime.Before(aps[j].StartTime)
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
