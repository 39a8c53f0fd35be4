package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// Query filters stored audit logs. Zero values match everything.
type Query struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time

	Limit  int
	Offset int
}

// Reader lists stored audit logs, newest first, with the total before paging.
type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func toRow(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}
	return models.AuditLog{
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: ev.At,
	}
}

// --------------------------------------------------
// Postgres
// --------------------------------------------------

// GormSink stores events in the audit_logs table.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Write(ctx context.Context, ev Event) error {
	row := toRow(ev)
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *GormSink) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// --------------------------------------------------
// In memory
// --------------------------------------------------

// MemorySink writes events to the application log and keeps the most
// recent ones for listing. Used with in-memory storage.
type MemorySink struct {
	log *zap.Logger

	mu     sync.RWMutex
	rows   []models.AuditLog
	max    int
	nextID uint
}

func NewMemorySink(log *zap.Logger, max int) *MemorySink {
	if max <= 0 {
		max = 1000
	}
	return &MemorySink{log: log.Named("audit"), max: max}
}

func (s *MemorySink) Write(_ context.Context, ev Event) error {
	s.log.Info(ev.Action,
		zap.String("entity", ev.Entity),
		zap.String("entity_id", ev.EntityID),
		zap.Any("metadata", ev.Metadata),
		zap.Time("at", ev.At),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	row := toRow(ev)
	row.ID = s.nextID
	s.rows = append(s.rows, row)
	if len(s.rows) > s.max {
		s.rows = s.rows[len(s.rows)-s.max:]
	}
	return nil
}

func (s *MemorySink) List(_ context.Context, q Query) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.AuditLog
	for i := len(s.rows) - 1; i >= 0; i-- {
		row := s.rows[i]
		if q.Action != "" && row.Action != q.Action {
			continue
		}
		if q.Entity != "" && row.Entity != q.Entity {
			continue
		}
		if !q.From.IsZero() && row.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !row.CreatedAt.Before(q.To) {
			continue
		}
		matched = append(matched, row)
	}

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

var (
	_ Sink   = (*GormSink)(nil)
	_ Sink   = (*MemorySink)(nil)
	_ Reader = (*GormSink)(nil)
	_ Reader = (*MemorySink)(nil)
)
