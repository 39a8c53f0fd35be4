package appointment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/catalog"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// 2026-01-28 is a Wednesday.
const testDate = "2026-01-28"

var testNow = time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)

// recordingCache is a SlotCache that remembers what it was asked to drop.
// It versions entries the same way the Redis cache does.
type recordingCache struct {
	mu          sync.Mutex
	slots       map[string][]domain.TimeSlot
	gen         map[string]int
	epoch       int
	invalidated []string
	flushed     int
	skipped     int

	// beforeSet runs at the start of Set, outside the lock.
	beforeSet func()
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		slots: map[string][]domain.TimeSlot{},
		gen:   map[string]int{},
	}
}

func cacheKey(date string, serviceID uint) string {
	return fmt.Sprintf("%s/%d", date, serviceID)
}

// version must be called with the lock held.
func (c *recordingCache) version(date string) cache.Version {
	return cache.Version(fmt.Sprintf("%d.%d", c.epoch, c.gen[date]))
}

func (c *recordingCache) Get(_ context.Context, date string, serviceID uint) ([]domain.TimeSlot, cache.Version, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[cacheKey(date, serviceID)]
	return s, c.version(date), ok
}

func (c *recordingCache) Set(_ context.Context, date string, serviceID uint, v cache.Version, slots []domain.TimeSlot) {
	if c.beforeSet != nil {
		c.beforeSet()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v != c.version(date) {
		c.skipped++
		return
	}
	c.slots[cacheKey(date, serviceID)] = slots
}

func (c *recordingCache) Invalidate(_ context.Context, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, date)
	c.gen[date]++
	for k := range c.slots {
		if strings.HasPrefix(k, date+"/") {
			delete(c.slots, k)
		}
	}
}

func (c *recordingCache) InvalidateAll(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushed++
	c.epoch++
	c.slots = map[string][]domain.TimeSlot{}
}

type fixture struct {
	repo     *repository.AppointmentMemoryRepository
	cache    *recordingCache
	audit    *audit.Dispatcher
	settings Settings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.NewAppointmentMemoryRepository(time.UTC)
	if err := catalog.Default().Seed(context.Background(), repo); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	d := audit.NewDispatcher(audit.NewMemorySink(zap.NewNop(), 0), zap.NewNop(), 64)
	t.Cleanup(d.Close)

	return &fixture{
		repo:  repo,
		cache: newRecordingCache(),
		audit: d,
		settings: Settings{
			Location:    time.UTC,
			Granularity: 30 * time.Minute,
			Clock:       timezone.FixedClock(testNow),
		},
	}
}

func (f *fixture) create() *CreateAppointment {
	return NewCreateAppointment(f.repo, f.cache, f.audit, zap.NewNop(), f.settings)
}

func (f *fixture) availability() *GetAvailability {
	return NewGetAvailability(f.repo, f.cache, f.settings)
}

func request(date, clock string, serviceID uint) domain.BookingRequest {
	return domain.BookingRequest{
		ClientName: "Maria Silva",
		Phone:      "(11) 98765-4321",
		ServiceID:  serviceID,
		Date:       date,
		Time:       clock,
	}
}

func (f *fixture) book(t *testing.T, date, clock string, serviceID uint) *models.Appointment {
	t.Helper()
	ap, err := f.create().Execute(context.Background(), request(date, clock, serviceID))
	if err != nil {
		t.Fatalf("book %s %s: %v", date, clock, err)
	}
	return ap
}

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := timezone.ParseDate(date, time.UTC)
	if err != nil {
		t.Fatalf("parse %s: %v", date, err)
	}
	return d
}

func starts(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func containsStart(slots []domain.TimeSlot, start string) bool {
	for _, s := range slots {
		if s.Start == start {
			return true
		}
	}
	return false
}
