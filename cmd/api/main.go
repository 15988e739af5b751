package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/4oBuko/spycats/internal/config"
)

var (
	configFile string
	v          = viper.New()
	cfg        config.Config
	logger     *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "Spy Cat Agency REST API",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(v, configFile); err != nil {
			return err
		}
		logger, err = newLogger(cfg.Debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging and SQL tracing")
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var zc zap.Config
	if debug {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l.Sugar(), nil
}
