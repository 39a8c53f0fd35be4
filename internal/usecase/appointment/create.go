package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/validators"
)

type CreateAppointment struct {
	repo     domain.Repository
	cache    cache.SlotCache
	audit    *audit.Dispatcher
	log      *zap.Logger
	settings Settings
}

func NewCreateAppointment(
	repo domain.Repository,
	slotCache cache.SlotCache,
	audit *audit.Dispatcher,
	log *zap.Logger,
	settings Settings,
) *CreateAppointment {
	if slotCache == nil {
		slotCache = cache.Noop{}
	}
	return &CreateAppointment{
		repo:     repo,
		cache:    slotCache,
		audit:    audit,
		log:      log,
		settings: settings.withDefaults(),
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	req domain.BookingRequest,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Shape
	// --------------------------------------------------
	req.Normalize()
	fields := domain.FieldErrors(&req)

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	var service *models.Service
	if _, bad := fields["service_id"]; !bad {
		s, err := activeService(ctx, uc.repo, req.ServiceID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			fields["service_id"] = "does not match an active service"
		}
		service = s
	}

	// --------------------------------------------------
	// Date / time, minimum advance, working hours
	// --------------------------------------------------
	start, end, err := resolveInterval(ctx, uc.repo, uc.settings, service, req.Date, req.Time, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		return nil, httperr.ErrValidation(fields)
	}

	// --------------------------------------------------
	// Atomic conflict check + insert
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:          uuid.NewString(),
		ClientName:  req.ClientName,
		ClientPhone: validators.NormalizePhone(req.Phone),
		ServiceID:   service.ID,
		ServiceName: service.Name,
		StartTime:   start,
		EndTime:     end,
		Status:      string(domain.InitialStatus(uc.settings.AutoConfirm)),
		Notes:       req.Notes,
	}
	if ap.Status == string(domain.StatusConfirmed) {
		now := uc.settings.now()
		ap.ConfirmedAt = &now
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			uc.log.Info("booking conflict",
				zap.String("date", req.Date),
				zap.String("time", req.Time),
				zap.Uint("service_id", service.ID),
			)
			uc.audit.Dispatch(audit.Event{
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"date":       req.Date,
					"time":       req.Time,
					"service_id": service.ID,
				},
			})
			return nil, err
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	uc.cache.Invalidate(ctx, uc.settings.dateOf(ap.StartTime))

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"service_id": ap.ServiceID,
			"start_time": ap.StartTime,
			"status":     ap.Status,
		},
	})

	return ap, nil
}
