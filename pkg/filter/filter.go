package filter

import (
	"slices"
	"strings"

	"github.com/matst80/slask-catalog/pkg/types"
	"golang.org/x/text/cases"
)

type predicate func(p *types.Product) bool

// FilterProducts returns the products passing every supplied criterion, in
// input order. Criteria left at their zero value are not applied.
func FilterProducts(products []types.Product, criteria types.FilterCriteria) []types.Product {
	predicates := buildPredicates(criteria)
	result := make([]types.Product, 0, len(products))
	for i := range products {
		if matchesAll(&products[i], predicates) {
			result = append(result, products[i])
		}
	}
	return result
}

// FilterByCategories filters on the selected categories merged with any
// extra criteria. An empty selection applies no category constraint.
func FilterByCategories(products []types.Product, selected []string, extra ...*types.FilterCriteria) []types.Product {
	criteria := types.FilterCriteria{}
	for _, e := range extra {
		criteria = criteria.Merge(e)
	}
	criteria.Categories = selected
	return FilterProducts(products, criteria)
}

func buildPredicates(criteria types.FilterCriteria) []predicate {
	predicates := make([]predicate, 0, 4)
	if len(criteria.Categories) > 0 {
		selected := make(map[string]struct{}, len(criteria.Categories))
		for _, c := range criteria.Categories {
			selected[c] = struct{}{}
		}
		predicates = append(predicates, func(p *types.Product) bool {
			_, ok := selected[p.Category]
			return ok
		})
	}
	if criteria.PriceRange != nil {
		rng := *criteria.PriceRange
		predicates = append(predicates, func(p *types.Product) bool {
			return rng.Contains(p.Price)
		})
	}
	if criteria.MinRating != nil {
		minRating := *criteria.MinRating
		predicates = append(predicates, func(p *types.Product) bool {
			return p.Rating >= minRating
		})
	}
	if term := strings.TrimSpace(criteria.SearchTerm); term != "" {
		// a Caser keeps state and must not be shared between calls
		folder := cases.Fold()
		needle := folder.String(term)
		predicates = append(predicates, func(p *types.Product) bool {
			return strings.Contains(folder.String(p.Name), needle)
		})
	}
	return predicates
}

func matchesAll(p *types.Product, predicates []predicate) bool {
	for _, fn := range predicates {
		if !fn(p) {
			return false
		}
	}
	return true
}

// GetCategories returns the distinct categories in ascending order.
func GetCategories(products []types.Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for i := range products {
		c := products[i].Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	slices.Sort(categories)
	return categories
}

// CountProductsByCategory counts products per category. Only categories
// present in the input get an entry.
func CountProductsByCategory(products []types.Product) map[string]int {
	counts := make(map[string]int)
	for i := range products {
		counts[products[i].Category]++
	}
	return counts
}

// GetPriceRange returns the lowest and highest price, {0, 0} when empty.
func GetPriceRange(products []types.Product) types.PriceRange {
	if len(products) == 0 {
		return types.PriceRange{}
	}
	rng := types.PriceRange{Min: products[0].Price, Max: products[0].Price}
	for i := range products[1:] {
		price := products[i+1].Price
		rng.Min = min(rng.Min, price)
		rng.Max = max(rng.Max, price)
	}
	return rng
}
