// Package filter narrows and aggregates product collections.
//
// All functions are pure: the input slice and its products are never
// modified and every result is freshly allocated.
//
//	criteria := types.FilterCriteria{SearchTerm: "lamp", MinRating: types.FloatPtr(4)}
//	matching := filter.FilterProducts(products, criteria)
//
// The category facet shown next to a listing is derived from the full
// collection:
//
//	categories := filter.GetCategories(products)
//	counts := filter.CountProductsByCategory(products)
package filter
