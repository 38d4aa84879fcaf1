package cli

import (
	"os"
	"strconv"

	"github.com/pankajredekar/storefront/internal/database"
	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback [n]",
	Short: "Rollback migrations",
	Long:  "Rolls back the last N migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				utils.PrintError("Invalid number: %s", args[0])
				os.Exit(1)
			}
		}

		cfg, logger := mustLoadConfig()
		db := mustConnect(cfg, logger)
		defer database.Close(db)

		run, ver, err := database.NewRunner(db, cfg.MigrationTable, logger)
		if err != nil {
			utils.PrintError("Failed to initialize version table: %v", err)
			os.Exit(1)
		}

		appliedCount, err := ver.AppliedCount()
		if err != nil {
			utils.PrintError("Failed to get applied count: %v", err)
			os.Exit(1)
		}

		if appliedCount == 0 {
			utils.PrintWarning("No migrations to rollback")
			return
		}

		if int64(n) > appliedCount {
			n = int(appliedCount)
		}

		utils.PrintInfo("Rolling back %d migration(s)...", n)

		if err := run.Rollback(n); err != nil {
			utils.PrintError("Failed to rollback: %v", err)
			os.Exit(1)
		}

		utils.PrintSuccess("Rolled back %d migration(s)", n)
	},
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}
