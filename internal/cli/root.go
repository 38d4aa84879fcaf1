package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Customers, products, orders and revenue rankings",
	Long:  "storefront records customers, products and orders in a relational store and ranks products by the revenue they generate",
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "storefront.yml", "path to the configuration file")
}
