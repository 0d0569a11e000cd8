package persistent

import (
	"context"
	"strings"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/gorm"
)

type LeadRepository interface {
	Repository[entity.Lead]
	CreatePrivate(ctx context.Context, private *entity.LeadPrivate) error
	GetWithDetails(ctx context.Context, id string) (*entity.Lead, error)
	ListPublished(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, int64, error)
	ListByMarketer(ctx context.Context, marketerID string) ([]*entity.Lead, error)
	UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error
}

type leadRepository struct {
	gormRepository[entity.Lead, model.LeadModel]
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{
		gormRepository: newGormRepository(db, ToLeadEntity, ToLeadModel, entity.ErrLeadNotFound),
	}
}

func (r *leadRepository) CreatePrivate(ctx context.Context, private *entity.LeadPrivate) error {
	return r.conn(ctx).Create(ToLeadPrivateModel(private)).Error
}

func (r *leadRepository) GetWithDetails(ctx context.Context, id string) (*entity.Lead, error) {
	return r.first(r.conn(ctx).Preload("LeadType").Preload("Private"), "id = ?", id)
}

func (r *leadRepository) ListPublished(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, int64, error) {
	filter.Normalize()

	query := r.conn(ctx).Model(&model.LeadModel{}).Where("status = ?", string(entity.LeadStatusPublished))
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	leads, err := r.find(query.Preload("LeadType").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()))
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *leadRepository) ListByMarketer(ctx context.Context, marketerID string) ([]*entity.Lead, error) {
	return r.find(r.conn(ctx).Preload("LeadType").Where("marketer_id = ?", marketerID).Order("created_at DESC"))
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	result := r.conn(ctx).Model(&model.LeadModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

type LeadTypeRepository interface {
	Repository[entity.LeadType]
}

type leadTypeRepository struct {
	gormRepository[entity.LeadType, model.LeadTypeModel]
}

func NewLeadTypeRepository(db *gorm.DB) LeadTypeRepository {
	return &leadTypeRepository{
		gormRepository: newGormRepository(db, ToLeadTypeEntity, ToLeadTypeModel, entity.ErrLeadTypeNotFound),
	}
}

type ConsentRepository interface {
	Create(ctx context.Context, consent *entity.Consent) error
}

type consentRepository struct {
	gormRepository[entity.Consent, model.ConsentModel]
}

func NewConsentRepository(db *gorm.DB) ConsentRepository {
	return &consentRepository{
		gormRepository: newGormRepository(db, ToConsentEntity, ToConsentModel, entity.ErrInvalidInput),
	}
}
