package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scope = func(*gorm.DB) *gorm.DB

// Repository is the create/read/update/delete capability shared by cats,
// missions and targets. It is a value type: WithTx returns a copy bound to a
// transaction.
type Repository[T any] struct {
	db       *gorm.DB
	name     string
	notFound error
	scopes   []scope
}

func newRepository[T any](db *gorm.DB, name string, notFound error, scopes ...scope) Repository[T] {
	return Repository[T]{
		db:       db,
		name:     name,
		notFound: notFound,
		scopes:   scopes,
	}
}

func (r Repository[T]) WithTx(tx *gorm.DB) Repository[T] {
	r.db = tx
	return r
}

func (r Repository[T]) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Scopes(r.scopes...)
}

// Create inserts item without touching its associations.
func (r Repository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to add %s: %w", r.name, err)
	}
	return nil
}

func (r Repository[T]) GetById(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.query(ctx).Where("id = ?", id).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, r.notFound
		}
		return item, fmt.Errorf("failed to get %s by id: %w", r.name, err)
	}
	return item, nil
}

func (r Repository[T]) Find(ctx context.Context, where string, args ...any) ([]T, error) {
	items := []T{}
	tx := r.query(ctx)
	if where != "" {
		tx = tx.Where(where, args...)
	}
	if err := tx.Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get %s list: %w", r.name, err)
	}
	return items, nil
}

func (r Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.Find(ctx, "")
}

func (r Repository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%s existence check failed: %w", r.name, err)
	}
	return count > 0, nil
}

// UpdateColumns writes columns of the row with the given id. Zero values are
// written too. Rows matched with unchanged values still count as updated;
// MySQL connections need clientFoundRows for that.
func (r Repository[T]) UpdateColumns(ctx context.Context, id int64, columns map[string]any) error {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}

func (r Repository[T]) DeleteById(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}
