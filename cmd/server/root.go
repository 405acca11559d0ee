package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/cograph/internal/config"
	"github.com/agenthands/cograph/internal/errors"
	"github.com/agenthands/cograph/internal/logger"
)

const defaultConfigPath = "config/config.toml"

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "cograph",
	Short:         "Code co-occurrence graphs from publication records",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default $CONFIG_PATH or "+defaultConfigPath+")")
	rootCmd.AddCommand(serveCmd, buildCmd)
}

func setup() error {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}

	var err error
	cfg, err = config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && configPath == "":
		cfg = config.Default()
	default:
		return err
	}
	cfg.ApplyEnv()

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	return cfg.Validate()
}
