package fitlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/app"
	"github.com/saadjs/fitlog/internal/config"
	"github.com/saadjs/fitlog/internal/logging"
	"github.com/saadjs/fitlog/internal/store"
)

var (
	configPath string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "fitlog serves a personal diet and fitness log over HTTP",
	Long:  "fitlog keeps meals, weight, workouts and a Fitbit link in a local JSON file and exposes them through a REST API.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding data.json (overrides DATA_DIR)")
}

// loadConfig applies the persistent flags on top of config.Load.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if d := strings.TrimSpace(dataDir); d != "" {
		cfg.Data.Dir = d
	}
	return cfg, nil
}

func withStore(run func(cfg *config.Config, st *store.Store, logger *zap.Logger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := app.EnsureDataDir(cfg.Data.Dir); err != nil {
		return err
	}
	st, err := store.Open(cfg.Paths().DataFile(), store.WithLogger(logger))
	if err != nil {
		return err
	}
	return run(cfg, st, logger)
}
