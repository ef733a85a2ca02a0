package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/filter"
)

func newCategoriesCmd(root *rootOptions) *cobra.Command {
	var byCount bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show every category with its product count",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := root.loadProducts()
			if err != nil {
				return err
			}
			categories := filter.GetCategories(products)
			counts := filter.CountProductsByCategory(products)
			if byCount {
				// stable, so equal counts stay alphabetical
				slices.SortStableFunc(categories, func(a, b string) int {
					return cmp.Compare(counts[b], counts[a])
				})
			}

			w := cmd.OutOrStdout()
			if root.output == "json" {
				// keep the chosen order in the encoded object
				ordered := orderedmap.New()
				for _, c := range categories {
					ordered.Set(c, counts[c])
				}
				data, err := ordered.MarshalJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			}
			t := newTable("CATEGORY", "PRODUCTS")
			for _, c := range categories {
				t.addRow(c, strconv.Itoa(counts[c]))
			}
			return t.render(w)
		},
	}
	cmd.Flags().BoolVar(&byCount, "by-count", false, "Order by product count, highest first")
	return cmd
}

func newPriceRangeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "price-range",
		Short: "Show the lowest and highest price in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := root.loadProducts()
			if err != nil {
				return err
			}
			rng := filter.GetPriceRange(products)
			w := cmd.OutOrStdout()
			if root.output == "json" {
				return jsoncompat.NewEncoder(w).Encode(rng)
			}
			_, err = fmt.Fprintf(w, "min: %.2f\nmax: %.2f\n", rng.Min, rng.Max)
			return err
		},
	}
}
