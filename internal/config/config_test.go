package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "https://api.thecatapi.com/v1/breeds", cfg.Breeds.URL)
	assert.Equal(t, 5*time.Second, cfg.Breeds.Timeout)
	assert.Equal(t, 0, cfg.Breeds.MaxRetries)
	assert.Zero(t, cfg.Breeds.CacheTTL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "spycats.yml")
	content := `
http:
  addr: ":9090"
  cors_origins:
    - http://localhost:3000
database:
  driver: mysql
  dsn: user:password@tcp(localhost:3306)/spycatagency
breeds:
  cache_ttl: 10m
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	t.Setenv("SPYCAT_HTTP_ADDR", ":7070")
	t.Setenv("SPYCAT_BREEDS_MAX_RETRIES", "2")

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CorsOrigins)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Breeds.CacheTTL)
	assert.Equal(t, 2, cfg.Breeds.MaxRetries)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SPYCAT_DATABASE_DRIVER", "postgres")

	_, err := Load(viper.New(), "")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
