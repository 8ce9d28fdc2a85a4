package commands

import (
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/database"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCategories bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the PostgreSQL schema for every marketplace table.

Examples:
  houserent migrate            # Apply the schema
  houserent migrate --seed     # Also insert the starter categories into an empty table`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		if seedCategories {
			if err := database.SeedCategories(db); err != nil {
				return err
			}
		}
		logger.Info("Migrate finished", "seeded", seedCategories)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedCategories, "seed", false, "Insert starter categories when none exist")
}
