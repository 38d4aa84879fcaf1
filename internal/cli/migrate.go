package cli

import (
	"os"

	"github.com/pankajredekar/storefront/internal/database"
	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long:  "Creates or updates the customers, products, orders and orders_products tables",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := mustLoadConfig()
		db := mustConnect(cfg, logger)
		defer database.Close(db)

		run, _, err := database.NewRunner(db, cfg.MigrationTable, logger)
		if err != nil {
			utils.PrintError("Failed to initialize version table: %v", err)
			os.Exit(1)
		}

		pending, err := run.GetPendingMigrations()
		if err != nil {
			utils.PrintError("Failed to get pending migrations: %v", err)
			os.Exit(1)
		}

		if len(pending) == 0 {
			utils.PrintSuccess("No pending migrations")
			return
		}

		utils.PrintInfo("Applying %d migration(s)...", len(pending))

		n, err := run.Migrate()
		if err != nil {
			utils.PrintError("Failed to apply migrations: %v", err)
			os.Exit(1)
		}

		utils.PrintSuccess("Applied %d migration(s)", n)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
