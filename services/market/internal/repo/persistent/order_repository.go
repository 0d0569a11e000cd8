package persistent

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/gorm"
)

const (
	indexOrdersLeadManager = "idx_orders_lead_manager"
	indexOrdersLeadSuccess = "idx_orders_lead_success"
)

type OrderRepository interface {
	Repository[entity.Order]
	ExistsSuccessForLead(ctx context.Context, leadID string) (bool, error)
	ExistsForLeadAndManager(ctx context.Context, leadID, managerID string) (bool, error)
	ListByManager(ctx context.Context, managerID string) ([]*entity.Order, error)
	GetForManager(ctx context.Context, id, managerID string) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id string) (*entity.Order, error)
	HasSuccessfulOrder(ctx context.Context, leadID, managerID string) (bool, error)
}

type orderRepository struct {
	gormRepository[entity.Order, model.OrderModel]
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{
		gormRepository: newGormRepository(db, ToOrderEntity, ToOrderModel, entity.ErrOrderNotFound),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return mapOrderViolation(r.gormRepository.Create(ctx, order))
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return mapOrderViolation(r.gormRepository.Update(ctx, order))
}

func (r *orderRepository) ExistsSuccessForLead(ctx context.Context, leadID string) (bool, error) {
	return r.exists(r.conn(ctx).Where("lead_id = ? AND status = ?", leadID, string(entity.OrderStatusSuccess)))
}

func (r *orderRepository) ExistsForLeadAndManager(ctx context.Context, leadID, managerID string) (bool, error) {
	return r.exists(r.conn(ctx).Where("lead_id = ? AND manager_id = ?", leadID, managerID))
}

func (r *orderRepository) HasSuccessfulOrder(ctx context.Context, leadID, managerID string) (bool, error) {
	return r.exists(r.conn(ctx).Where("lead_id = ? AND manager_id = ? AND status = ?",
		leadID, managerID, string(entity.OrderStatusSuccess)))
}

func (r *orderRepository) ListByManager(ctx context.Context, managerID string) ([]*entity.Order, error) {
	return r.find(r.withDetails(r.conn(ctx)).
		Where("manager_id = ?", managerID).
		Order("created_at DESC"))
}

func (r *orderRepository) GetForManager(ctx context.Context, id, managerID string) (*entity.Order, error) {
	return r.first(r.withDetails(r.conn(ctx)), "id = ? AND manager_id = ?", id, managerID)
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id string) (*entity.Order, error) {
	return r.first(r.withDetails(r.conn(ctx)), "id = ?", id)
}

func (r *orderRepository) withDetails(q *gorm.DB) *gorm.DB {
	return q.Preload("Lead.LeadType").
		Preload("Lead.Private").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

func (r *orderRepository) exists(q *gorm.DB) (bool, error) {
	var count int64
	if err := q.Model(&model.OrderModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// mapOrderViolation turns the exclusivity indexes into business errors. The
// (lead, manager) pair is checked first since its SQLite message also names
// lead_id.
func mapOrderViolation(err error) error {
	switch {
	case err == nil:
		return nil
	case violates(err, indexOrdersLeadManager, "manager_id"):
		return entity.ErrDuplicateRequest
	case violates(err, indexOrdersLeadSuccess, "orders.lead_id"):
		return entity.ErrAlreadyPurchased
	}
	return err
}
