package persistent

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/gorm"
)

// TransactionRepository is the balance ledger. Rows are append-only.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error)
	ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.Transaction, error)
}

type transactionRepository struct {
	gormRepository[entity.Transaction, model.TransactionModel]
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{
		gormRepository: newGormRepository(db, ToTransactionEntity, ToTransactionModel, gorm.ErrRecordNotFound),
	}
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	query := r.conn(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	return r.find(query)
}

func (r *transactionRepository) ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.Transaction, error) {
	return r.find(r.conn(ctx).
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceID).
		Order("created_at ASC"))
}
