package persistence

import (
	"context"

	"github.com/realtyadmin/backend/internal/domain/audit"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const (
	defaultActivityPageSize = 50
	maxActivityPageSize     = 200
)

// GormActivityLogRepository implements audit.Repository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Append stores a log entry. Entries are never updated.
func (r *GormActivityLogRepository) Append(ctx context.Context, log *audit.ActivityLog) error {
	return r.db.WithContext(ctx).Create(models.ActivityLogModelFromDomain(log)).Error
}

// Find returns a page of logs newest first plus the total match count
func (r *GormActivityLogRepository) Find(ctx context.Context, q audit.Query) ([]audit.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLogModel{})
	if q.ActorID != nil {
		query = query.Where("actor_id = ?", *q.ActorID)
	}
	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}
	if q.EntityType != "" {
		query = query.Where("entity_type = ?", q.EntityType)
	}
	if q.From != nil {
		query = query.Where("timestamp >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("timestamp <= ?", *q.To)
	}
	query = applySearch(query, q.Search, "description", "actor_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultActivityPageSize
	}
	size = min(size, maxActivityPageSize)

	var ms []models.ActivityLogModel
	if err := query.Order("timestamp DESC").Order("id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	out := make([]audit.ActivityLog, len(ms))
	for i := range ms {
		out[i] = ms[i].ToDomain()
	}
	return out, total, nil
}

var _ audit.Repository = (*GormActivityLogRepository)(nil)
