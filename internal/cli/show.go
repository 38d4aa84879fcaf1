package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pankajredekar/storefront/internal/database"
	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show migration status",
	Long:  "Shows applied and pending migrations. With --schema, prints the schema the migrations produce.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := mustLoadConfig()
		db := mustConnect(cfg, logger)
		defer database.Close(db)

		run, ver, err := database.NewRunner(db, cfg.MigrationTable, logger)
		if err != nil {
			utils.PrintError("Failed to initialize version table: %v", err)
			os.Exit(1)
		}

		applied, err := ver.Applied()
		if err != nil {
			utils.PrintError("Failed to get applied migrations: %v", err)
			os.Exit(1)
		}

		latest, err := ver.LatestVersion()
		if err != nil {
			utils.PrintError("Failed to get schema version: %v", err)
			os.Exit(1)
		}

		pending, err := run.GetPendingMigrations()
		if err != nil {
			utils.PrintError("Failed to get pending migrations: %v", err)
			os.Exit(1)
		}

		out := utils.Output
		fmt.Fprintln(out, "\n"+strings.Repeat("=", 60))
		fmt.Fprintln(out, "Migration Status")
		fmt.Fprintln(out, strings.Repeat("=", 60))
		if latest == "" {
			latest = "(none)"
		}
		fmt.Fprintf(out, "Schema version: %s\n", latest)

		if len(applied) > 0 {
			fmt.Fprintln(out, "\n✓ Applied Migrations:")
			for _, r := range applied {
				fmt.Fprintf(out, "  %s - %s (%s)\n", r.Version, r.Name, r.AppliedAt.Format("2006-01-02 15:04:05"))
			}
		} else {
			fmt.Fprintln(out, "\n✓ Applied Migrations: (none)")
		}

		if len(pending) > 0 {
			fmt.Fprintln(out, "\n○ Pending Migrations:")
			for _, m := range pending {
				fmt.Fprintf(out, "  %s - %s\n", m.Version(), m.Name())
			}
		} else {
			fmt.Fprintln(out, "\n○ Pending Migrations: (none)")
		}

		if withSchema, _ := cmd.Flags().GetBool("schema"); withSchema {
			fmt.Fprintln(out, "\nSchema:")
			fmt.Fprint(out, run.SimulateSchema().Schema.String())
		}

		fmt.Fprintln(out)
	},
}

func init() {
	showCmd.Flags().Bool("schema", false, "Print the schema produced by all migrations")
	rootCmd.AddCommand(showCmd)
}
