package persistent

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the typed CRUD contract shared by every aggregate.
type Repository[E any] interface {
	Create(ctx context.Context, e *E) error
	GetByID(ctx context.Context, id string) (*E, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*E, error)
	Update(ctx context.Context, e *E) error
}

type gormRepository[E any, M any] struct {
	db       *gorm.DB
	toEntity func(*M) *E
	toModel  func(*E) *M
	notFound error
}

func newGormRepository[E any, M any](db *gorm.DB, toEntity func(*M) *E, toModel func(*E) *M, notFound error) gormRepository[E, M] {
	return gormRepository[E, M]{
		db:       db,
		toEntity: toEntity,
		toModel:  toModel,
		notFound: notFound,
	}
}

func (r *gormRepository[E, M]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func (r *gormRepository[E, M]) Create(ctx context.Context, e *E) error {
	m := r.toModel(e)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	*e = *r.toEntity(m)
	return nil
}

func (r *gormRepository[E, M]) GetByID(ctx context.Context, id string) (*E, error) {
	return r.first(r.conn(ctx), "id = ?", id)
}

func (r *gormRepository[E, M]) GetByIDForUpdate(ctx context.Context, id string) (*E, error) {
	return r.first(r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *gormRepository[E, M]) Update(ctx context.Context, e *E) error {
	m := r.toModel(e)
	if err := r.conn(ctx).Save(m).Error; err != nil {
		return err
	}
	*e = *r.toEntity(m)
	return nil
}

func (r *gormRepository[E, M]) first(q *gorm.DB, query string, args ...interface{}) (*E, error) {
	var m M
	if err := q.Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *gormRepository[E, M]) find(q *gorm.DB) ([]*E, error) {
	var models []M
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*E, len(models))
	for i := range models {
		result[i] = r.toEntity(&models[i])
	}
	return result, nil
}
