package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/4oBuko/spycats/internal/models"
	"github.com/4oBuko/spycats/internal/myerrors"
)

var ErrCatNotFound = myerrors.NotFound("Cat not found.")

type CatRepository interface {
	GetById(ctx context.Context, id int64) (models.Cat, error)
	GetAll(ctx context.Context) ([]models.Cat, error)
	DeleteById(ctx context.Context, id int64) error
	Update(ctx context.Context, cat models.Cat) error
	Add(ctx context.Context, cat models.Cat) (models.Cat, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

var _ CatRepository = (*GormCatRepository)(nil)

type GormCatRepository struct {
	Repository[models.Cat]
}

func NewGormCatRepository(db *gorm.DB) *GormCatRepository {
	return &GormCatRepository{
		Repository: newRepository[models.Cat](db, "cat", ErrCatNotFound),
	}
}

func (g *GormCatRepository) Add(ctx context.Context, cat models.Cat) (models.Cat, error) {
	if err := g.Create(ctx, &cat); err != nil {
		return models.Cat{}, err
	}
	return cat, nil
}

func (g *GormCatRepository) Update(ctx context.Context, cat models.Cat) error {
	return g.UpdateColumns(ctx, cat.Id, map[string]any{
		"name":                cat.Name,
		"years_of_experience": cat.YearsOfExperience,
		"breed":               cat.Breed,
		"salary":              cat.Salary,
	})
}

// DeleteById removes the cat and unassigns it from every mission that
// referenced it.
func (g *GormCatRepository) DeleteById(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Mission{}).Where("cat_id = ?", id).Update("cat_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to unassign cat from missions: %w", err)
		}
		return g.WithTx(tx).DeleteById(ctx, id)
	})
}
