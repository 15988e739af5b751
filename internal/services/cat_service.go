package services

import (
	"context"
	"errors"

	"github.com/4oBuko/spycats/internal/metrics"
	"github.com/4oBuko/spycats/internal/models"
	"github.com/4oBuko/spycats/internal/myerrors"
	"github.com/4oBuko/spycats/internal/repositories"
	"github.com/4oBuko/spycats/pkg/catapi"
)

type CatService interface {
	Add(ctx context.Context, cat models.CatCreate) (models.Cat, error)
	GetById(ctx context.Context, id int64) (models.Cat, error)
	Update(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error)
	DeleteById(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]models.Cat, error)
}

type DefaultCatService struct {
	catRepo repositories.CatRepository
	catAPI  catapi.CatAPI
}

func NewDefaultCatService(catRepo repositories.CatRepository, catAPI catapi.CatAPI) *DefaultCatService {
	return &DefaultCatService{
		catRepo: catRepo,
		catAPI:  catAPI,
	}
}

func (d *DefaultCatService) Add(ctx context.Context, cat models.CatCreate) (models.Cat, error) {
	if err := d.validateBreed(ctx, cat.Breed); err != nil {
		return models.Cat{}, err
	}
	newCat, err := d.catRepo.Add(ctx, cat.ToCat())
	if err != nil {
		return models.Cat{}, err
	}
	return newCat, nil
}

func (d *DefaultCatService) GetById(ctx context.Context, id int64) (models.Cat, error) {
	return d.catRepo.GetById(ctx, id)
}

func (d *DefaultCatService) Update(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error) {
	cat, err := d.catRepo.GetById(ctx, id)
	if err != nil {
		return models.Cat{}, err
	}
	if update.Breed != nil {
		if err := d.validateBreed(ctx, *update.Breed); err != nil {
			return models.Cat{}, err
		}
	}
	update.Apply(&cat)
	if err := d.catRepo.Update(ctx, cat); err != nil {
		return models.Cat{}, err
	}
	return cat, nil
}

// DeleteById removes the cat. Missions it was assigned to stay, without a cat.
func (d *DefaultCatService) DeleteById(ctx context.Context, id int64) error {
	return d.catRepo.DeleteById(ctx, id)
}

func (d *DefaultCatService) GetAll(ctx context.Context) ([]models.Cat, error) {
	return d.catRepo.GetAll(ctx)
}

// validateBreed checks breed against the breed service. Unknown breeds and an
// unreachable service are both validation errors.
func (d *DefaultCatService) validateBreed(ctx context.Context, breed string) error {
	_, err := d.catAPI.GetBreedByName(ctx, breed)
	if err == nil {
		metrics.ObserveBreedCheck(metrics.BreedValid)
		return nil
	}

	var unexisted *catapi.UnexistedBreedError
	if errors.As(err, &unexisted) {
		metrics.ObserveBreedCheck(metrics.BreedInvalid)
		return myerrors.Wrap(myerrors.KindValidation, unexisted.Error(), err)
	}
	metrics.ObserveBreedCheck(metrics.BreedUnavailable)
	return myerrors.Wrap(myerrors.KindValidation, "Could not connect to the cat breed API: "+err.Error(), err)
}
