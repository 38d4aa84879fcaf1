package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pankajredekar/storefront/internal/models"
	"github.com/pankajredekar/storefront/internal/utils"
	"github.com/spf13/cobra"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products",
}

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		path, _ := cmd.Flags().GetString("path")
		price, _ := cmd.Flags().GetString("price")

		cents, err := parseCents(price)
		if err != nil {
			utils.PrintError("Invalid price: %v", err)
			os.Exit(1)
		}

		_, s, closeStore := mustOpenStore()
		defer closeStore()

		product, err := s.CreateProduct(cmd.Context(), name, path, cents)
		if err != nil {
			var validationErr *models.ValidationError
			if errors.As(err, &validationErr) {
				printValidationErrors(validationErr.Errors)
			} else {
				utils.PrintError("Failed to create product: %v", err)
			}
			os.Exit(1)
		}

		utils.PrintSuccess("Created product %d (%s, %s)", product.ID, product.Path, formatCents(product.PriceCents))
	},
}

var productValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a product without saving it",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		path, _ := cmd.Flags().GetString("path")

		errs := models.Product{Name: name, Path: path}.Validate()
		if !errs.Valid() {
			printValidationErrors(errs)
			os.Exit(1)
		}
		utils.PrintSuccess("Product is valid")
	},
}

var productPriceCmd = &cobra.Command{
	Use:   "price <id> <amount>",
	Short: "Change a product's current price",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			utils.PrintError("Invalid product id: %s", args[0])
			os.Exit(1)
		}
		cents, err := parseCents(args[1])
		if err != nil {
			utils.PrintError("Invalid price: %v", err)
			os.Exit(1)
		}

		_, s, closeStore := mustOpenStore()
		defer closeStore()

		product, err := s.UpdateProductPrice(cmd.Context(), uint(id), cents)
		if err != nil {
			utils.PrintError("Failed to update product: %v", err)
			os.Exit(1)
		}
		utils.PrintSuccess("Product %d now costs %s", product.ID, formatCents(product.PriceCents))
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run: func(cmd *cobra.Command, args []string) {
		_, s, closeStore := mustOpenStore()
		defer closeStore()

		products, err := s.ListProducts(cmd.Context())
		if err != nil {
			utils.PrintError("Failed to list products: %v", err)
			os.Exit(1)
		}
		if len(products) == 0 {
			utils.PrintInfo("No products")
			return
		}
		for _, p := range products {
			fmt.Fprintf(utils.Output, "%4d  %-24s %-24s %10s\n", p.ID, p.Name, p.Path, formatCents(p.PriceCents))
		}
	},
}

func printValidationErrors(errs models.Errors) {
	for _, msg := range errs.FullMessages() {
		utils.PrintError("%s", msg)
	}
}

func init() {
	for _, c := range []*cobra.Command{productCreateCmd, productValidateCmd} {
		c.Flags().String("name", "", "Product name")
		c.Flags().String("path", "", "URL path (letters, apostrophes and dashes)")
	}
	productCreateCmd.Flags().String("price", "0", "Price, e.g. 199.99")

	productCmd.AddCommand(productCreateCmd, productValidateCmd, productPriceCmd, productListCmd)
	rootCmd.AddCommand(productCmd)
}
