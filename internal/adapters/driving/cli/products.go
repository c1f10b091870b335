package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

var (
	productsCategory string
	productsLimit    int
	productsSkip     int
	productsJSON     bool
	productShowJSON  bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	Long: `Lists a page of catalog products.

Examples:
  stylist products list
  stylist products list --category hoodie --limit 10
  stylist products list --skip 20 --json`,
	Args: cobra.NoArgs,
	RunE: runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a catalog product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

func init() {
	productsListCmd.Flags().StringVar(&productsCategory, "category", "", "only list products in this category")
	productsListCmd.Flags().IntVarP(&productsLimit, "limit", "n", 20, "maximum number of products (1-100)")
	productsListCmd.Flags().IntVar(&productsSkip, "skip", 0, "number of products to skip")
	productsListCmd.Flags().BoolVar(&productsJSON, "json", false, "output products as JSON")
	productsShowCmd.Flags().BoolVar(&productShowJSON, "json", false, "output the product as JSON")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsShowCmd)
	rootCmd.AddCommand(productsCmd)
}

// catalogItemJSON is the JSON form of a catalog entry.
type catalogItemJSON struct {
	ID            int64               `json:"id"`
	ExternalID    string              `json:"external_id,omitempty"`
	Title         string              `json:"title"`
	Brand         string              `json:"brand,omitempty"`
	Price         decimal.NullDecimal `json:"price"`
	Currency      string              `json:"currency,omitempty"`
	Category      string              `json:"category,omitempty"`
	Description   string              `json:"description,omitempty"`
	URL           string              `json:"url,omitempty"`
	ImageURL      string              `json:"image_url,omitempty"`
	Features      []string            `json:"features,omitempty"`
	FeatureGroups map[string][]string `json:"feature_groups,omitempty"`
}

func newCatalogItemJSON(item *domain.CatalogItem) catalogItemJSON {
	out := catalogItemJSON{
		ID:          item.ID,
		ExternalID:  item.ExternalID,
		Title:       item.Title,
		Brand:       item.Brand,
		Price:       item.Price,
		Currency:    item.Currency,
		Category:    item.Category,
		Description: item.Description,
		URL:         item.URL,
		ImageURL:    item.ImageURL,
		Features:    item.Features.List,
	}
	for _, g := range item.Features.Groups {
		if len(g.Items) == 0 {
			continue
		}
		if out.FeatureGroups == nil {
			out.FeatureGroups = make(map[string][]string)
		}
		out.FeatureGroups[g.Label] = g.Items
	}
	return out
}

func runProductsList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	items, err := catalogService.List(cmd.Context(), domain.ListOptions{
		Skip:     productsSkip,
		Limit:    productsLimit,
		Category: productsCategory,
	})
	if err != nil {
		return fmt.Errorf("list products failed: %w", err)
	}

	if productsJSON {
		out := make([]catalogItemJSON, len(items))
		for i := range items {
			out[i] = newCatalogItemJSON(&items[i])
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal products: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		cmd.Println("No products found.")
		return nil
	}

	for i := range items {
		item := &items[i]
		cmd.Printf("  [%d] %s", item.ID, item.Title)
		if item.Brand != "" {
			cmd.Printf(" - %s", item.Brand)
		}
		cmd.Printf(" (%s)\n", formatPrice(item.Price, item.Currency))
	}
	cmd.Printf("\nShowing %d-%d\n", productsSkip+1, productsSkip+len(items))
	return nil
}

func runProductsShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid product id: %s", args[0])
	}

	item, err := catalogService.Get(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("product %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("get product failed: %w", err)
	}

	if productShowJSON {
		data, err := json.MarshalIndent(newCatalogItemJSON(item), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal product: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(item.Title)
	if item.Brand != "" {
		cmd.Printf("Brand:    %s\n", item.Brand)
	}
	cmd.Printf("Price:    %s\n", formatPrice(item.Price, item.Currency))
	if item.Category != "" {
		cmd.Printf("Category: %s\n", item.Category)
	}
	if item.URL != "" {
		cmd.Printf("URL:      %s\n", item.URL)
	}
	if item.ImageURL != "" {
		cmd.Printf("Image:    %s\n", item.ImageURL)
	}

	if !item.Features.IsEmpty() {
		cmd.Println()
		if item.Features.IsGrouped() {
			for _, g := range item.Features.Groups {
				if len(g.Items) == 0 {
					continue
				}
				cmd.Printf("%s:\n", g.Label)
				for _, f := range g.Items {
					cmd.Printf("  - %s\n", f)
				}
			}
		} else {
			cmd.Println("Features:")
			for _, f := range item.Features.List {
				cmd.Printf("  - %s\n", f)
			}
		}
	}

	if item.Description != "" {
		cmd.Println()
		cmd.Println(item.Description)
	}
	return nil
}
