package types

import "slices"

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterCriteria bundles the optional product predicates. Zero values mean
// "not applied": no categories, nil range, nil rating and a blank search term.
type FilterCriteria struct {
	Categories []string    `json:"categories,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	MinRating  *float64    `json:"minRating,omitempty"`
	SearchTerm string      `json:"searchTerm,omitempty"`
}

func (f *FilterCriteria) HasCategory(category string) bool {
	return slices.Contains(f.Categories, category)
}

// Merge returns a copy of f where every criterion set in extra overrides
// the one in f. Categories are only replaced by a non-empty list.
func (f FilterCriteria) Merge(extra *FilterCriteria) FilterCriteria {
	if extra == nil {
		return f
	}
	if len(extra.Categories) > 0 {
		f.Categories = extra.Categories
	}
	if extra.PriceRange != nil {
		f.PriceRange = extra.PriceRange
	}
	if extra.MinRating != nil {
		f.MinRating = extra.MinRating
	}
	if extra.SearchTerm != "" {
		f.SearchTerm = extra.SearchTerm
	}
	return f
}
