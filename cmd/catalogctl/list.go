package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/sorting"
	"github.com/matst80/slask-catalog/pkg/types"
)

type listOptions struct {
	categories []string
	sort       string
	search     string
	minPrice   float64
	maxPrice   float64
	minRating  float64
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products filtered by category and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := root.loadProducts()
			if err != nil {
				return err
			}
			sel := opts.selection(cmd)
			view := catalog.NewCatalog(products...).View(sel)
			return writeProducts(cmd.OutOrStdout(), root.output, view)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.categories, "category", "c", nil, "Only show these categories (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", string(types.DefaultSort), "Sort: name-asc, name-desc, price-asc, price-desc, rating, reviews")
	cmd.Flags().StringVarP(&opts.search, "search", "q", "", "Case-insensitive name search")
	cmd.Flags().Float64Var(&opts.minPrice, "min-price", 0, "Lowest price, inclusive")
	cmd.Flags().Float64Var(&opts.maxPrice, "max-price", 0, "Highest price, inclusive")
	cmd.Flags().Float64Var(&opts.minRating, "min-rating", 0, "Lowest rating, inclusive")
	return cmd
}

// selection only applies the numeric flags that were given explicitly.
func (o *listOptions) selection(cmd *cobra.Command) *catalog.Selection {
	sel := catalog.NewSelection()
	for _, c := range o.categories {
		if !sel.IsSelected(c) {
			sel.ToggleCategory(c)
		}
	}
	// unknown sort keys keep the file order, matching the API
	if option, ok := sorting.ParseSortOption(o.sort); ok {
		sel.SetSort(option)
	} else {
		sel.Sort = types.SortOption(o.sort)
	}

	extra := &types.FilterCriteria{SearchTerm: o.search}
	flags := cmd.Flags()
	if flags.Changed("min-price") || flags.Changed("max-price") {
		rng := types.PriceRange{Min: math.Inf(-1), Max: math.Inf(1)}
		if flags.Changed("min-price") {
			rng.Min = o.minPrice
		}
		if flags.Changed("max-price") {
			rng.Max = o.maxPrice
		}
		extra.PriceRange = &rng
	}
	if flags.Changed("min-rating") {
		extra.MinRating = types.FloatPtr(o.minRating)
	}
	sel.Extra = extra
	return sel
}

func formatPrice(p types.Product) string {
	price := strconv.FormatFloat(p.Price, 'f', 2, 64)
	if p.IsDiscounted() {
		return fmt.Sprintf("%s (-%d%%)", price, p.DiscountPercent())
	}
	return price
}

func writeProducts(w io.Writer, output string, products []types.Product) error {
	if output == "json" {
		return jsoncompat.NewEncoder(w).Encode(products)
	}
	t := newTable("ID", "NAME", "CATEGORY", "PRICE", "RATING", "REVIEWS")
	for _, p := range products {
		t.addRow(
			p.Id,
			p.Name,
			p.Category,
			formatPrice(p),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strconv.Itoa(p.GetReviewCount()),
		)
	}
	if err := t.render(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d products\n", len(products))
	return err
}
