package sorting

import (
	"slices"

	"github.com/matst80/slask-catalog/pkg/types"
)

// comparators maps each sort option to its primary key and tie-break. The
// name comparators get a fresh collator per call since a collator keeps
// internal buffers.
var comparators = map[types.SortOption]func() compareFunc{
	types.SortNameAsc: func() compareFunc {
		return byName(newNameCollator())
	},
	types.SortNameDesc: func() compareFunc {
		return descending(byName(newNameCollator()))
	},
	types.SortPriceAsc: func() compareFunc {
		return byPrice
	},
	types.SortPriceDesc: func() compareFunc {
		return descending(byPrice)
	},
	types.SortRating: func() compareFunc {
		return thenBy(descending(byRating), descending(byReviewCount))
	},
	types.SortReviews: func() compareFunc {
		return thenBy(descending(byReviewCount), descending(byRating))
	},
}

// SortProducts returns a sorted copy of products. Equal keys keep their
// input order. An unknown option returns the copy in input order.
func SortProducts(products []types.Product, option types.SortOption) []types.Product {
	result := slices.Clone(products)
	if result == nil {
		result = []types.Product{}
	}
	factory, ok := comparators[option]
	if !ok {
		return result
	}
	fn := factory()
	slices.SortStableFunc(result, func(a, b types.Product) int {
		return fn(&a, &b)
	})
	return result
}

// ParseSortOption maps untrusted input onto the sort vocabulary.
func ParseSortOption(value string) (types.SortOption, bool) {
	option := types.SortOption(value)
	if _, ok := comparators[option]; !ok {
		return types.DefaultSort, false
	}
	return option, true
}
