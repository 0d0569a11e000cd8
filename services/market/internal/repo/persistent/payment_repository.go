package persistent

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	Repository[entity.Payment]
	GetByExternalID(ctx context.Context, externalID string) (*entity.Payment, error)
	GetByExternalIDForUpdate(ctx context.Context, externalID string) (*entity.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error)
}

type paymentRepository struct {
	gormRepository[entity.Payment, model.PaymentModel]
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		gormRepository: newGormRepository(db, ToPaymentEntity, ToPaymentModel, entity.ErrPaymentNotFound),
	}
}

func (r *paymentRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.Payment, error) {
	return r.first(r.conn(ctx), "external_id = ?", externalID)
}

func (r *paymentRepository) GetByExternalIDForUpdate(ctx context.Context, externalID string) (*entity.Payment, error) {
	return r.first(r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "external_id = ?", externalID)
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	return r.find(r.conn(ctx).Where("order_id = ?", orderID).Order("created_at ASC"))
}
