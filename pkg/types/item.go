package types

import "math"

type ProductId = string

// Product is a read-only catalog entry. Nothing in this module mutates a
// Product after it has been handed to it.
type Product struct {
	Id            ProductId `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Price         float64   `json:"price" yaml:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Rating        float64   `json:"rating" yaml:"rating"`
	ReviewCount   *int      `json:"reviewCount,omitempty" yaml:"reviewCount,omitempty"`
	Category      string    `json:"category" yaml:"category"`
}

// GetReviewCount returns the number of reviews, a missing count is zero.
func (p *Product) GetReviewCount() int {
	if p.ReviewCount == nil {
		return 0
	}
	return *p.ReviewCount
}

func (p *Product) IsDiscounted() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// DiscountPercent is the rounded discount relative to the original price,
// 0 when the product is not discounted.
func (p *Product) DiscountPercent() int {
	if !p.IsDiscounted() || *p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
}

func IntPtr(v int) *int {
	return &v
}

func FloatPtr(v float64) *float64 {
	return &v
}
