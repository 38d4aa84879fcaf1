package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage orders",
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Place an order",
	Long:  "Places an order for one or more products. --product may be repeated; repeats are kept.",
	Run: func(cmd *cobra.Command, args []string) {
		productIDs, _ := cmd.Flags().GetUintSlice("product")

		var customerID *uint
		if cmd.Flags().Changed("customer") {
			id, _ := cmd.Flags().GetUint("customer")
			customerID = &id
		}

		var priceCents *int64
		if cmd.Flags().Changed("price") {
			price, _ := cmd.Flags().GetString("price")
			cents, err := parseCents(price)
			if err != nil {
				utils.PrintError("Invalid price: %v", err)
				os.Exit(1)
			}
			priceCents = &cents
		}

		_, s, closeStore := mustOpenStore()
		defer closeStore()

		order, err := s.CreateOrder(cmd.Context(), customerID, productIDs, priceCents)
		if err != nil {
			utils.PrintError("Failed to create order: %v", err)
			os.Exit(1)
		}

		utils.PrintSuccess("Created order %d with %d product(s)", order.ID, len(order.Products))
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			utils.PrintError("Invalid order id: %s", args[0])
			os.Exit(1)
		}

		_, s, closeStore := mustOpenStore()
		defer closeStore()

		order, err := s.FindOrder(cmd.Context(), uint(id))
		if err != nil {
			utils.PrintError("Failed to find order: %v", err)
			os.Exit(1)
		}

		out := utils.Output
		fmt.Fprintf(out, "Order %d\n", order.ID)
		if order.Customer != nil {
			fmt.Fprintf(out, "  Customer: %s <%s>\n", order.Customer.Name, order.Customer.Email)
		}
		if order.PriceCents != nil {
			fmt.Fprintf(out, "  Price:    %s\n", formatCents(*order.PriceCents))
		}
		for _, p := range order.Products {
			fmt.Fprintf(out, "  - %s (%s)\n", p.Name, formatCents(p.PriceCents))
		}
	},
}

func init() {
	orderCreateCmd.Flags().Uint("customer", 0, "Customer id")
	orderCreateCmd.Flags().UintSlice("product", nil, "Product id (repeatable)")
	orderCreateCmd.Flags().String("price", "", "Price paid, e.g. 199.99")
	orderCmd.AddCommand(orderCreateCmd, orderShowCmd)
	rootCmd.AddCommand(orderCmd)
}
