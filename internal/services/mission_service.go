package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/4oBuko/spycats/internal/metrics"
	"github.com/4oBuko/spycats/internal/models"
	"github.com/4oBuko/spycats/internal/myerrors"
	"github.com/4oBuko/spycats/internal/repositories"
)

type MissionService interface {
	Add(ctx context.Context, mission models.MissionCreate) (models.Mission, error)
	GetById(ctx context.Context, id int64) (models.Mission, error)
	GetAll(ctx context.Context) ([]models.Mission, error)
	Update(ctx context.Context, id int64, update models.MissionUpdate) (models.Mission, error)
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, missionId int64, catId *int64) (models.Mission, error)
	Complete(ctx context.Context, id int64) (models.Mission, error)
	GetTarget(ctx context.Context, missionId, targetId int64) (models.Target, error)
	UpdateTarget(ctx context.Context, missionId, targetId int64, update models.TargetUpdate) (models.Target, error)
	CompleteTarget(ctx context.Context, missionId, targetId int64) (models.Target, error)
}

var (
	ErrCatIdRequired          = myerrors.BadRequest("cat_id is required.")
	ErrMissionHasCat          = myerrors.Forbidden("Cannot delete a mission with an assigned cat.")
	ErrMissionCompleted       = myerrors.PermissionDenied("Cannot update notes on a completed mission.")
	ErrTargetCompleted        = myerrors.PermissionDenied("Cannot update notes on a completed target.")
	ErrAssignCompletedMission = myerrors.PermissionDenied("Cannot assign a cat to a completed mission.")
	ErrReopenMission          = myerrors.PermissionDenied("Cannot reopen a completed mission.")
	ErrCompleteTargetOfDone   = myerrors.PermissionDenied("Cannot complete a target of a completed mission.")
)

type DefaultMissionService struct {
	missionReposity  repositories.TxMissionRepository
	targetRepository repositories.TxTargetRepository
	catRepository    repositories.CatRepository
}

func NewDefaultMissionService(missionRepo repositories.TxMissionRepository, targetRepository repositories.TxTargetRepository, catRepository repositories.CatRepository) *DefaultMissionService {
	return &DefaultMissionService{
		missionReposity:  missionRepo,
		targetRepository: targetRepository,
		catRepository:    catRepository,
	}
}

// Add stores the mission and its targets in one transaction.
func (d *DefaultMissionService) Add(ctx context.Context, mission models.MissionCreate) (models.Mission, error) {
	if mission.Cat != nil {
		if err := d.checkCat(ctx, *mission.Cat); err != nil {
			return models.Mission{}, err
		}
	}
	newMission := mission.ToMission()
	return d.missionReposity.WithTransaction(ctx,
		func(tx *gorm.DB) (models.Mission, error) {
			sm, err := d.missionReposity.AddWithTx(ctx, tx, newMission)
			if err != nil {
				return models.Mission{}, err
			}
			sm.Targets = make([]models.Target, 0, len(newMission.Targets))
			for _, t := range newMission.Targets {
				t.MissionId = sm.Id
				nt, err := d.targetRepository.AddWithTx(ctx, tx, t)
				if err != nil {
					return models.Mission{}, err
				}
				sm.Targets = append(sm.Targets, nt)
			}
			return sm, nil
		})
}

func (d *DefaultMissionService) GetById(ctx context.Context, id int64) (models.Mission, error) {
	return d.missionReposity.GetById(ctx, id)
}

func (d *DefaultMissionService) GetAll(ctx context.Context) ([]models.Mission, error) {
	return d.missionReposity.GetAll(ctx)
}

// Update changes the assigned cat and the completion flag. A completed
// mission keeps its cat and never goes back to open.
func (d *DefaultMissionService) Update(ctx context.Context, id int64, update models.MissionUpdate) (models.Mission, error) {
	mission, err := d.missionReposity.GetById(ctx, id)
	if err != nil {
		return models.Mission{}, err
	}

	catId, state := mission.CatId, mission.State
	if update.Cat.Set {
		if mission.State && !sameId(mission.CatId, update.Cat.Value) {
			return models.Mission{}, ErrAssignCompletedMission
		}
		if update.Cat.Value != nil {
			if err := d.checkCat(ctx, *update.Cat.Value); err != nil {
				return models.Mission{}, err
			}
		}
		catId = update.Cat.Value
	}
	if update.State != nil {
		if mission.State && !*update.State {
			return models.Mission{}, ErrReopenMission
		}
		state = *update.State
	}

	if err := d.missionReposity.Update(ctx, id, catId, state); err != nil {
		return models.Mission{}, err
	}
	if state && !mission.State {
		metrics.ObserveCompletion("mission")
	}
	return d.missionReposity.GetById(ctx, id)
}

// Delete refuses to remove a mission that still has a cat assigned.
func (d *DefaultMissionService) Delete(ctx context.Context, id int64) error {
	mission, err := d.missionReposity.GetById(ctx, id)
	if err != nil {
		return err
	}
	if mission.HasCat() {
		return ErrMissionHasCat
	}
	return d.missionReposity.Delete(ctx, id)
}

func (d *DefaultMissionService) Assign(ctx context.Context, missionId int64, catId *int64) (models.Mission, error) {
	mission, err := d.missionReposity.GetById(ctx, missionId)
	if err != nil {
		return models.Mission{}, err
	}
	if catId == nil || *catId == 0 {
		return models.Mission{}, ErrCatIdRequired
	}
	cat, err := d.catRepository.GetById(ctx, *catId)
	if err != nil {
		return models.Mission{}, err
	}
	if mission.State {
		return models.Mission{}, ErrAssignCompletedMission
	}

	if err := d.missionReposity.Assign(ctx, missionId, cat.Id); err != nil {
		return models.Mission{}, err
	}
	mission.SetCatId(cat.Id)
	return mission, nil
}

// Complete marks the mission as done. Completing twice is not an error.
func (d *DefaultMissionService) Complete(ctx context.Context, id int64) (models.Mission, error) {
	mission, err := d.missionReposity.GetById(ctx, id)
	if err != nil {
		return models.Mission{}, err
	}
	if err := d.missionReposity.Complete(ctx, id); err != nil {
		return models.Mission{}, err
	}
	if !mission.State {
		metrics.ObserveCompletion("mission")
	}
	mission.State = true
	return mission, nil
}

func (d *DefaultMissionService) GetTarget(ctx context.Context, missionId, targetId int64) (models.Target, error) {
	if _, err := d.missionReposity.GetById(ctx, missionId); err != nil {
		return models.Target{}, err
	}
	return d.targetRepository.GetByMissionAndId(ctx, missionId, targetId)
}

// UpdateTarget overwrites the notes of an open target of an open mission.
func (d *DefaultMissionService) UpdateTarget(ctx context.Context, missionId, targetId int64, update models.TargetUpdate) (models.Target, error) {
	mission, err := d.missionReposity.GetById(ctx, missionId)
	if err != nil {
		return models.Target{}, err
	}
	if mission.State {
		return models.Target{}, ErrMissionCompleted
	}
	target, err := d.targetRepository.GetByMissionAndId(ctx, missionId, targetId)
	if err != nil {
		return models.Target{}, err
	}
	if target.State {
		return models.Target{}, ErrTargetCompleted
	}

	if update.Notes != nil {
		if err := d.targetRepository.Update(ctx, target.Id, update); err != nil {
			return models.Target{}, err
		}
		target.Notes = *update.Notes
	}
	return target, nil
}

func (d *DefaultMissionService) CompleteTarget(ctx context.Context, missionId, targetId int64) (models.Target, error) {
	mission, err := d.missionReposity.GetById(ctx, missionId)
	if err != nil {
		return models.Target{}, err
	}
	if mission.State {
		return models.Target{}, ErrCompleteTargetOfDone
	}
	target, err := d.targetRepository.GetByMissionAndId(ctx, missionId, targetId)
	if err != nil {
		return models.Target{}, err
	}
	if !target.State {
		if err := d.targetRepository.Complete(ctx, target.Id); err != nil {
			return models.Target{}, err
		}
		metrics.ObserveCompletion("target")
	}
	target.State = true
	return target, nil
}

func (d *DefaultMissionService) checkCat(ctx context.Context, id int64) error {
	exists, err := d.catRepository.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return myerrors.Validation(fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
	return nil
}

func sameId(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
