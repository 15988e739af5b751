package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/4oBuko/spycats/internal/models"
	"github.com/4oBuko/spycats/internal/myerrors"
)

var ErrMissionNotFound = myerrors.NotFound("Mission not found.")

type MissionRepository interface {
	Add(ctx context.Context, mission models.Mission) (models.Mission, error)
	GetById(ctx context.Context, id int64) (models.Mission, error)
	GetAll(ctx context.Context) ([]models.Mission, error)
	Update(ctx context.Context, id int64, catId *int64, state bool) error
	Assign(ctx context.Context, missionId, catId int64) error
	Complete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type TxMissionRepository interface {
	MissionRepository
	AddWithTx(ctx context.Context, tx *gorm.DB, mission models.Mission) (models.Mission, error)
	WithTransaction(ctx context.Context, fn func(*gorm.DB) (models.Mission, error)) (models.Mission, error)
}

var _ TxMissionRepository = (*GormMissionRepository)(nil)

type GormMissionRepository struct {
	Repository[models.Mission]
}

func NewGormMissionRepository(db *gorm.DB) *GormMissionRepository {
	return &GormMissionRepository{
		Repository: newRepository[models.Mission](db, "mission", ErrMissionNotFound, withTargets),
	}
}

func withTargets(db *gorm.DB) *gorm.DB {
	return db.Preload("Targets", func(db *gorm.DB) *gorm.DB {
		return db.Order("targets.id")
	})
}

// Add inserts the mission row only; targets are written by the target
// repository.
func (g *GormMissionRepository) Add(ctx context.Context, mission models.Mission) (models.Mission, error) {
	return g.add(ctx, g.Repository, mission)
}

func (g *GormMissionRepository) AddWithTx(ctx context.Context, tx *gorm.DB, mission models.Mission) (models.Mission, error) {
	return g.add(ctx, g.WithTx(tx), mission)
}

func (g *GormMissionRepository) add(ctx context.Context, repo Repository[models.Mission], mission models.Mission) (models.Mission, error) {
	if err := repo.Create(ctx, &mission); err != nil {
		return models.Mission{}, err
	}
	return mission, nil
}

func (g *GormMissionRepository) WithTransaction(ctx context.Context, fn func(*gorm.DB) (models.Mission, error)) (models.Mission, error) {
	var mission models.Mission
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		mission, err = fn(tx)
		return err
	})
	if err != nil {
		return models.Mission{}, err
	}
	return mission, nil
}

func (g *GormMissionRepository) Update(ctx context.Context, id int64, catId *int64, state bool) error {
	return g.UpdateColumns(ctx, id, map[string]any{
		"cat_id": catId,
		"state":  state,
	})
}

func (g *GormMissionRepository) Assign(ctx context.Context, missionId, catId int64) error {
	return g.UpdateColumns(ctx, missionId, map[string]any{"cat_id": catId})
}

func (g *GormMissionRepository) Complete(ctx context.Context, id int64) error {
	return g.UpdateColumns(ctx, id, map[string]any{"state": true})
}

// Delete removes the mission together with its targets.
func (g *GormMissionRepository) Delete(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mission_id = ?", id).Delete(&models.Target{}).Error; err != nil {
			return fmt.Errorf("failed to delete mission targets: %w", err)
		}
		return g.WithTx(tx).DeleteById(ctx, id)
	})
}
