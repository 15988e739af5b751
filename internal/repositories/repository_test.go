package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/4oBuko/spycats/internal/config"
	"github.com/4oBuko/spycats/internal/database"
	"github.com/4oBuko/spycats/internal/models"
)

func prepare(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Database{Driver: "sqlite", DSN: ":memory:"}, zap.NewNop().Sugar(), false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestUpdateColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCatRepository(prepare(t))
	cat, err := repo.Add(ctx, models.Cat{Name: "Tom", Breed: "Aegean", YearsOfExperience: 1, Salary: 100})
	require.NoError(t, err)

	t.Run("changes the row", func(t *testing.T) {
		cat.Salary = 250
		require.NoError(t, repo.Update(ctx, cat))

		stored, err := repo.GetById(ctx, cat.Id)
		require.NoError(t, err)
		assert.Equal(t, cat, stored)
	})

	t.Run("unchanged values are not a miss", func(t *testing.T) {
		assert.NoError(t, repo.Update(ctx, cat))
	})

	t.Run("missing row", func(t *testing.T) {
		missing := cat
		missing.Id = cat.Id + 100
		assert.ErrorIs(t, repo.Update(ctx, missing), ErrCatNotFound)

		assert.ErrorIs(t, repo.UpdateColumns(ctx, cat.Id+100, map[string]any{"salary": 1}), ErrCatNotFound)
	})
}
