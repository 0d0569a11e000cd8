package persistent

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter entity.AuditFilter) ([]*entity.AuditLog, error)
}

type auditRepository struct {
	gormRepository[entity.AuditLog, model.AuditLogModel]
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{
		gormRepository: newGormRepository(db, ToAuditLogEntity, ToAuditLogModel, gorm.ErrRecordNotFound),
	}
}

func (r *auditRepository) List(ctx context.Context, filter entity.AuditFilter) ([]*entity.AuditLog, error) {
	filter.Normalize()

	query := r.conn(ctx)
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return r.find(query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset))
}
