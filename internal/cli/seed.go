package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pankajredekar/storefront/internal/store"
	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

type seedProduct struct {
	name       string
	path       string
	priceCents int64
	orders     int
}

var demoCatalog = []seedProduct{
	{"MacOs", "path-to-macos", 199_99, 2},
	{"Linux", "path-to-linux", 0, 2},
	{"Windows", "path-to-windows", 299_99, 2},
	{"GloBright", "path-to-globright", 99_99, 2},
	{"LumniShare", "path-to-lumnishare", 0, 0},
	{"RadianceX", "path-to-radiance", 12_00, 0},
	{"ProSeries", "path-to-pro-series", 127_80, 0},
	{"TopRated", "path-to-top-rated", 11_99, 2},
	{"IntuitiveSystems", "path-to-intuitive", 87_88, 0},
	{"LowBudget", "path-to-low-budget", 0, 0},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demo catalogue",
	Long:  "Creates ten products and ten single-product orders, each placed by its own demo customer",
	Run: func(cmd *cobra.Command, args []string) {
		_, s, closeStore := mustOpenStore()
		defer closeStore()

		orders, err := seedDemo(cmd.Context(), s)
		if err != nil {
			utils.PrintError("Failed to seed: %v", err)
			os.Exit(1)
		}
		utils.PrintSuccess("Seeded %d products and %d orders", len(demoCatalog), orders)
	},
}

// seedDemo gives every order its own customer so that the catalogue loads
// with or without a purchase guard.
func seedDemo(ctx context.Context, s *store.Store) (int, error) {
	orders := 0
	for _, entry := range demoCatalog {
		product, err := s.CreateProduct(ctx, entry.name, entry.path, entry.priceCents)
		if err != nil {
			return orders, fmt.Errorf("product %s: %w", entry.name, err)
		}
		for range entry.orders {
			n := orders + 1
			customer, err := s.CreateCustomer(ctx, fmt.Sprintf("Fake Customer %d", n), fmt.Sprintf("fake%d@example.com", n))
			if err != nil {
				return orders, fmt.Errorf("customer for %s: %w", entry.name, err)
			}
			price := product.PriceCents
			if _, err := s.CreateOrder(ctx, &customer.ID, []uint{product.ID}, &price); err != nil {
				return orders, fmt.Errorf("order for %s: %w", entry.name, err)
			}
			orders++
		}
	}
	return orders, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
