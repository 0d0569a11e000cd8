package persistent

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository interface {
	Repository[entity.User]
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error
}

type userRepository struct {
	gormRepository[entity.User, model.UserModel]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		gormRepository: newGormRepository(db, ToUserEntity, ToUserModel, entity.ErrUserNotFound),
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(r.conn(ctx), "email = ?", email)
}

func (r *userRepository) UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	result := r.conn(ctx).Model(&model.UserModel{}).Where("id = ?", userID).Update("balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}
