package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

const defaultGranularity = 30 * time.Minute

// Settings is the booking policy shared by every use case.
type Settings struct {
	Location    *time.Location
	Granularity time.Duration
	MinAdvance  time.Duration
	// AutoConfirm makes new bookings confirmed instead of pending.
	AutoConfirm bool
	Clock       timezone.Clock
}

func (s Settings) withDefaults() Settings {
	if s.Location == nil {
		s.Location = time.UTC
	}
	if s.Granularity <= 0 {
		s.Granularity = defaultGranularity
	}
	if s.MinAdvance < 0 {
		s.MinAdvance = 0
	}
	if s.Clock == nil {
		s.Clock = timezone.SystemClock()
	}
	return s
}

func (s Settings) now() time.Time {
	return s.Clock().In(s.Location)
}

// earliestStart is the first instant a new booking may begin.
func (s Settings) earliestStart() time.Time {
	return s.now().Add(s.MinAdvance)
}

func (s Settings) dateOf(t time.Time) string {
	return t.In(s.Location).Format(timezone.DateLayout)
}

// appointmentError turns repository misses into the business error callers
// expect and wraps everything else.
func appointmentError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if _, ok := httperr.AsBusiness(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// activeService returns nil, nil when id does not name a bookable service.
func activeService(ctx context.Context, repo domain.Repository, id uint) (*models.Service, error) {
	s, err := repo.GetService(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if !s.Active || s.DurationMin <= 0 {
		return nil, nil
	}
	return s, nil
}

// workingWindow loads the working hours for day. ok is false on days off.
func workingWindow(ctx context.Context, repo domain.Repository, day time.Time) (domain.Window, bool, error) {
	wh, err := repo.GetWorkingHours(ctx, int(day.Weekday()))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Window{}, false, nil
	}
	if err != nil {
		return domain.Window{}, false, fmt.Errorf("get working hours: %w", err)
	}
	return domain.WindowFor(wh, day)
}

// resolveInterval validates a requested date and time for service and
// records a message in fields for every rule it breaks.
func resolveInterval(
	ctx context.Context,
	repo domain.Repository,
	settings Settings,
	service *models.Service,
	date string,
	clock string,
	fields map[string]string,
) (start time.Time, end time.Time, err error) {

	if fields["date"] != "" || fields["time"] != "" {
		return start, end, nil
	}

	start, perr := timezone.ParseDateTime(date, clock, settings.Location)
	if perr != nil {
		fields["date"] = "must be a date in YYYY-MM-DD format"
		return start, end, nil
	}

	if start.Before(settings.earliestStart()) {
		if settings.MinAdvance > 0 {
			fields["time"] = fmt.Sprintf("must be at least %d minutes from now", int(settings.MinAdvance.Minutes()))
		} else {
			fields["time"] = "must not be in the past"
		}
		return start, end, nil
	}

	if service == nil {
		return start, end, nil
	}
	end = start.Add(service.Duration())

	window, ok, err := workingWindow(ctx, repo, timezone.StartOfDay(start))
	if err != nil {
		return start, end, err
	}
	if !ok {
		fields["date"] = "is not a working day"
		return start, end, nil
	}
	if !window.Contains(start, end) {
		fields["time"] = "is outside working hours"
	}
	return start, end, nil
}
