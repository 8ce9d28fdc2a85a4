package commands

import (
	"fmt"
	"os"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/config"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "houserent",
	Short: "House rental marketplace backend",
	Long: `houserent serves the rental marketplace API and carries the
maintenance commands that go with it.

Configuration is read from the environment, optionally seeded from a .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(importCategoriesCmd)
}

// loadConfig reads the environment and starts the process logger.
func loadConfig() (*config.Config, error) {
	envMissing := godotenv.Load(envFile) != nil

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	if envMissing {
		logger.Info("No .env file found, using system environment", "path", envFile)
	}

	if cfg.IsProduction() {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}
	return cfg, nil
}
