package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SPYCAT"

type Config struct {
	Debug    bool     `mapstructure:"debug"`
	HTTP     HTTP     `mapstructure:"http"`
	Database Database `mapstructure:"database"`
	Breeds   Breeds   `mapstructure:"breeds"`
	Redis    Redis    `mapstructure:"redis"`
	Metrics  Metrics  `mapstructure:"metrics"`
}

type HTTP struct {
	Addr        string   `mapstructure:"addr"`
	CorsOrigins []string `mapstructure:"cors_origins"`
}

type Database struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type Breeds struct {
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// CacheTTL of zero disables caching: every write asks the breed service.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Redis struct {
	URL string `mapstructure:"url"`
}

type Metrics struct {
	Enabled bool `mapstructure:"enabled"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:spycats.db?_pragma=foreign_keys(1)")
	v.SetDefault("breeds.url", "https://api.thecatapi.com/v1/breeds")
	v.SetDefault("breeds.timeout", 5*time.Second)
	v.SetDefault("breeds.max_retries", 0)
	v.SetDefault("breeds.retry_delay", time.Second)
	v.SetDefault("breeds.cache_ttl", time.Duration(0))
	v.SetDefault("redis.url", "")
	v.SetDefault("metrics.enabled", true)
}

// Load reads defaults, the optional config file and SPYCAT_* environment
// variables, in increasing order of precedence.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Breeds.URL == "" {
		return fmt.Errorf("breeds.url is required")
	}
	if c.Breeds.MaxRetries < 0 {
		return fmt.Errorf("breeds.max_retries must not be negative")
	}
	return nil
}
