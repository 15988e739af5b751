package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/4oBuko/spycats/internal/models"
	"github.com/4oBuko/spycats/internal/myerrors"
)

var ErrTargetNotFound = myerrors.NotFound("Target not found.")

type TargetRepository interface {
	Add(ctx context.Context, target models.Target) (models.Target, error)
	GetById(ctx context.Context, id int64) (models.Target, error)
	GetByMissionAndId(ctx context.Context, missionId, id int64) (models.Target, error)
	Complete(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, update models.TargetUpdate) error
}

type TxTargetRepository interface {
	TargetRepository
	AddWithTx(ctx context.Context, tx *gorm.DB, target models.Target) (models.Target, error)
}

var _ TxTargetRepository = (*GormTargetRepository)(nil)

type GormTargetRepository struct {
	Repository[models.Target]
}

func NewGormTargetRepository(db *gorm.DB) *GormTargetRepository {
	return &GormTargetRepository{
		Repository: newRepository[models.Target](db, "target", ErrTargetNotFound),
	}
}

func (g *GormTargetRepository) Add(ctx context.Context, target models.Target) (models.Target, error) {
	return g.add(ctx, g.Repository, target)
}

func (g *GormTargetRepository) AddWithTx(ctx context.Context, tx *gorm.DB, target models.Target) (models.Target, error) {
	return g.add(ctx, g.WithTx(tx), target)
}

func (g *GormTargetRepository) add(ctx context.Context, repo Repository[models.Target], target models.Target) (models.Target, error) {
	if target.MissionId == 0 {
		return models.Target{}, errors.New("target must belong to a mission")
	}
	if err := repo.Create(ctx, &target); err != nil {
		return models.Target{}, err
	}
	return target, nil
}

// GetByMissionAndId finds a target only if it belongs to the given mission.
func (g *GormTargetRepository) GetByMissionAndId(ctx context.Context, missionId, id int64) (models.Target, error) {
	targets, err := g.Find(ctx, "id = ? AND mission_id = ?", id, missionId)
	if err != nil {
		return models.Target{}, fmt.Errorf("failed to get mission target: %w", err)
	}
	if len(targets) == 0 {
		return models.Target{}, ErrTargetNotFound
	}
	return targets[0], nil
}

func (g *GormTargetRepository) Complete(ctx context.Context, id int64) error {
	return g.UpdateColumns(ctx, id, map[string]any{"state": true})
}

func (g *GormTargetRepository) Update(ctx context.Context, id int64, update models.TargetUpdate) error {
	if update.Notes == nil {
		return nil
	}
	return g.UpdateColumns(ctx, id, map[string]any{"notes": *update.Notes})
}
