package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

var topCmd = &cobra.Command{
	Use:   "top [n]",
	Short: "Rank products by revenue",
	Long:  "Lists the n products that generated the most revenue (default: top_products from the config)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, s, closeStore := mustOpenStore()
		defer closeStore()

		n := cfg.TopProducts
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil {
				utils.PrintError("Invalid number: %s", args[0])
				os.Exit(1)
			}
		}

		ranked, err := s.ProductRevenues(cmd.Context(), n)
		if err != nil {
			utils.PrintError("Failed to rank products: %v", err)
			os.Exit(1)
		}

		if len(ranked) == 0 {
			utils.PrintInfo("No products have been ordered yet")
			return
		}

		out := utils.Output
		fmt.Fprintf(out, "%-4s %-24s %8s %12s\n", "#", "Product", "Lines", "Revenue")
		for i, r := range ranked {
			fmt.Fprintf(out, "%-4d %-24s %8d %12s\n", i+1, r.Product.Name, r.LineCount, formatCents(r.RevenueCents))
		}
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
}
