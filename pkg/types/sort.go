package types

type SortOption string

const (
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortRating    SortOption = "rating"
	SortReviews   SortOption = "reviews"
)

const DefaultSort = SortNameAsc

type SortOptionLabel struct {
	Value SortOption `json:"value"`
	Label string     `json:"label"`
}

// SortOptions is the closed sort vocabulary in dropdown order.
var SortOptions = []SortOptionLabel{
	{Value: SortNameAsc, Label: "Name (A-Z)"},
	{Value: SortNameDesc, Label: "Name (Z-A)"},
	{Value: SortPriceAsc, Label: "Price (Low to High)"},
	{Value: SortPriceDesc, Label: "Price (High to Low)"},
	{Value: SortRating, Label: "Highest Rated"},
	{Value: SortReviews, Label: "Most Reviews"},
}

func (s SortOption) IsValid() bool {
	for _, o := range SortOptions {
		if o.Value == s {
			return true
		}
	}
	return false
}
