package server

import (
	"github.com/matst80/slask-catalog/pkg/types"
)

// ProductCard is a product as rendered in a listing, with the discount
// already worked out.
type ProductCard struct {
	types.Product
	IsDiscounted    bool `json:"isDiscounted"`
	DiscountPercent int  `json:"discountPercent,omitempty"`
}

func ToProductCard(p types.Product) ProductCard {
	return ProductCard{
		Product:         p,
		IsDiscounted:    p.IsDiscounted(),
		DiscountPercent: p.DiscountPercent(),
	}
}

type ListingResponse struct {
	Products  []ProductCard    `json:"products"`
	TotalHits int              `json:"totalHits"`
	Sort      types.SortOption `json:"sort"`
	Selected  []string         `json:"selected"`
}

// CategoryFacet is one row of the category filter panel.
type CategoryFacet struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}
