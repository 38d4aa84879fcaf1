package cli

import (
	"os"

	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var customerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		_, s, closeStore := mustOpenStore()
		defer closeStore()

		customer, err := s.CreateCustomer(cmd.Context(), name, email)
		if err != nil {
			utils.PrintError("Failed to create customer: %v", err)
			os.Exit(1)
		}

		utils.PrintSuccess("Created customer %d (%s)", customer.ID, customer.Name)
	},
}

func init() {
	customerCreateCmd.Flags().String("name", "", "Customer name")
	customerCreateCmd.Flags().String("email", "", "Customer email")
	customerCmd.AddCommand(customerCreateCmd)
	rootCmd.AddCommand(customerCmd)
}
