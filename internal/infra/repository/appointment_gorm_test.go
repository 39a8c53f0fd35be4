package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	"github.com/BruksfildServices01/slot-scheduler/internal/db"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// newGormRepository connects to TEST_DATABASE_URL and skips when it is unset.
func newGormRepository(t *testing.T) *AppointmentGormRepository {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := db.NewDB(&config.Config{Env: "test", DBUrl: url}, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := gdb.Exec("TRUNCATE appointments").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return NewAppointmentGormRepository(gdb)
}

func gormAppointment(start time.Time, minutes int) *models.Appointment {
	ap := newAppointment(uuid.NewString(), start, minutes)
	ap.ClientPhone = "11987654321"
	return ap
}

func TestGorm_CreateAndConflict(t *testing.T) {
	repo := newGormRepository(t)
	ctx := context.Background()

	first := gormAppointment(at(10, 0), 30)
	if err := repo.CreateAppointment(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.CreateAppointment(ctx, gormAppointment(at(10, 15), 30))
	if !httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}

	if err := repo.CreateAppointment(ctx, gormAppointment(at(10, 30), 30)); err != nil {
		t.Fatalf("adjacent interval should be accepted: %v", err)
	}

	cancelled, err := repo.UpdateAppointment(ctx, first.ID, func(ap *models.Appointment) error {
		return domain.Cancel(ap, time.Now())
	})
	if err != nil || cancelled.Status != string(domain.StatusCancelled) {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.CreateAppointment(ctx, gormAppointment(at(10, 0), 30)); err != nil {
		t.Fatalf("cancelled interval should be free: %v", err)
	}
}

// raceSameSlot books the same interval from several goroutines and returns
// how many succeeded.
func raceSameSlot(t *testing.T, repo *AppointmentGormRepository, start time.Time) int {
	t.Helper()
	ctx := context.Background()

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ap := gormAppointment(start, 30)
			ap.ClientName = fmt.Sprintf("Client %d", i)
			err := repo.CreateAppointment(ctx, ap)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case httperr.IsBusiness(err, httperr.CodeSlotUnavailable):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()
	return wins
}

func TestGorm_ConcurrentSameSlot(t *testing.T) {
	repo := newGormRepository(t)

	if wins := raceSameSlot(t, repo, at(15, 0)); wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

// Without the exclusion constraint the booking lock alone must keep an
// empty interval from being taken twice.
func TestGorm_ConcurrentSameSlotWithoutConstraint(t *testing.T) {
	repo := newGormRepository(t)

	if err := repo.db.Exec("ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap").Error; err != nil {
		t.Fatalf("drop constraint: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.db.Exec("TRUNCATE appointments").Error
		if err := db.InstallOverlapConstraint(repo.db); err != nil {
			t.Errorf("restore constraint: %v", err)
		}
	})

	if wins := raceSameSlot(t, repo, at(16, 0)); wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestGorm_SaveServicesKeepsInactive(t *testing.T) {
	repo := newGormRepository(t)
	ctx := context.Background()

	retired := models.Service{ID: 900, Name: "Retired", DurationMin: 30, Active: true}
	if err := repo.SaveServices(ctx, []models.Service{retired}); err != nil {
		t.Fatalf("save active: %v", err)
	}

	retired.Active = false
	if err := repo.SaveServices(ctx, []models.Service{retired}); err != nil {
		t.Fatalf("save inactive: %v", err)
	}

	got, err := repo.GetService(ctx, 900)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active {
		t.Fatal("a service saved as inactive must stay inactive")
	}
}
