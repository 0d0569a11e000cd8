package persistent

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/gorm"
)

const indexPayoutsUserPending = "idx_payouts_user_pending"

type PayoutRepository interface {
	Repository[entity.Payout]
	HasPending(ctx context.Context, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Payout, error)
	List(ctx context.Context, filter entity.ListFilter) ([]*entity.Payout, int64, error)
}

type payoutRepository struct {
	gormRepository[entity.Payout, model.PayoutModel]
}

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{
		gormRepository: newGormRepository(db, ToPayoutEntity, ToPayoutModel, entity.ErrPayoutNotFound),
	}
}

func (r *payoutRepository) Create(ctx context.Context, payout *entity.Payout) error {
	err := r.gormRepository.Create(ctx, payout)
	if violates(err, indexPayoutsUserPending, "payouts.user_id") {
		return entity.ErrDuplicatePendingRequest
	}
	return err
}

func (r *payoutRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&model.PayoutModel{}).
		Where("user_id = ? AND status = ?", userID, string(entity.PayoutStatusPending)).
		Count(&count).Error
	return count > 0, err
}

func (r *payoutRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Payout, error) {
	query := r.conn(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	return r.find(query)
}

func (r *payoutRepository) List(ctx context.Context, filter entity.ListFilter) ([]*entity.Payout, int64, error) {
	filter.Normalize()

	query := applyListFilter(r.conn(ctx).Model(&model.PayoutModel{}), filter)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	payouts, err := r.find(query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset))
	if err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}

func applyListFilter(q *gorm.DB, filter entity.ListFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	return q.Session(&gorm.Session{})
}
