package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/4oBuko/spycats/internal/config"
	"github.com/4oBuko/spycats/internal/database"
	"github.com/4oBuko/spycats/internal/repositories"
	"github.com/4oBuko/spycats/pkg/catapi"
)

func prepare(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Database{Driver: "sqlite", DSN: ":memory:"}, zap.NewNop().Sugar(), false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type testServices struct {
	db       *gorm.DB
	catAPI   *FakeCatAPI
	cats     *DefaultCatService
	missions *DefaultMissionService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	db := prepare(t)
	catAPI := NewFakeCatAPI()
	catRepo := repositories.NewGormCatRepository(db)
	return testServices{
		db:       db,
		catAPI:   catAPI,
		cats:     NewDefaultCatService(catRepo, catAPI),
		missions: NewDefaultMissionService(repositories.NewGormMissionRepository(db), repositories.NewGormTargetRepository(db), catRepo),
	}
}

type FakeCatAPI struct {
	breeds []catapi.Breed
	err    error
}

func NewFakeCatAPI() *FakeCatAPI {
	return &FakeCatAPI{
		breeds: []catapi.Breed{
			{Id: "abys", Name: "Abyssinian"},
			{Id: "aege", Name: "Aegean"},
			{Id: "abob", Name: "American Bobtail"},
			{Id: "acur", Name: "American Curl"},
			{Id: "asho", Name: "American Shorthair"},
		},
	}
}

func (f *FakeCatAPI) GetBreedByName(_ context.Context, name string) (catapi.Breed, error) {
	if f.err != nil {
		return catapi.Breed{}, f.err
	}
	for _, breed := range f.breeds {
		if breed.Name == name {
			return breed, nil
		}
	}
	return catapi.Breed{}, &catapi.UnexistedBreedError{Breed: name}
}

var errBreedServiceDown = errors.New("dial tcp 127.0.0.1:443: connect: connection refused")
