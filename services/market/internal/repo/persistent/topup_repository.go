package persistent

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/gorm"
)

const indexTopupsUserPending = "idx_topups_user_pending"

type TopupRepository interface {
	Repository[entity.Topup]
	HasPending(ctx context.Context, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Topup, error)
	List(ctx context.Context, filter entity.ListFilter) ([]*entity.Topup, int64, error)
}

type topupRepository struct {
	gormRepository[entity.Topup, model.TopupModel]
}

func NewTopupRepository(db *gorm.DB) TopupRepository {
	return &topupRepository{
		gormRepository: newGormRepository(db, ToTopupEntity, ToTopupModel, entity.ErrTopupNotFound),
	}
}

func (r *topupRepository) Create(ctx context.Context, topup *entity.Topup) error {
	err := r.gormRepository.Create(ctx, topup)
	if violates(err, indexTopupsUserPending, "balance_topups.user_id") {
		return entity.ErrDuplicatePendingRequest
	}
	return err
}

func (r *topupRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&model.TopupModel{}).
		Where("user_id = ? AND status = ?", userID, string(entity.TopupStatusPending)).
		Count(&count).Error
	return count > 0, err
}

func (r *topupRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Topup, error) {
	query := r.conn(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	return r.find(query)
}

func (r *topupRepository) List(ctx context.Context, filter entity.ListFilter) ([]*entity.Topup, int64, error) {
	filter.Normalize()

	query := applyListFilter(r.conn(ctx).Model(&model.TopupModel{}), filter)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	topups, err := r.find(query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset))
	if err != nil {
		return nil, 0, err
	}
	return topups, total, nil
}
