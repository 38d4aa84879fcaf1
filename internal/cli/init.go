package cli

import (
	"os"

	"github.com/pankajredekar/storefront/internal/config"
	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a storefront configuration",
	Long:  "Writes a default configuration file (see --config) using a local sqlite database",
	Run: func(cmd *cobra.Command, args []string) {
		if utils.FileExists(configPath) {
			utils.PrintWarning("%s already exists", configPath)
			return
		}

		data, err := yaml.Marshal(config.Default())
		if err != nil {
			utils.PrintError("Failed to generate config: %v", err)
			os.Exit(1)
		}

		if err := os.WriteFile(configPath, data, 0644); err != nil {
			utils.PrintError("Failed to write config file: %v", err)
			os.Exit(1)
		}

		utils.PrintSuccess("Initialized storefront project")
		utils.PrintInfo("Created %s", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
