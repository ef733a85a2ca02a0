package sorting

import (
	"cmp"

	"github.com/matst80/slask-catalog/pkg/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type compareFunc func(a, b *types.Product) int

func newNameCollator() *collate.Collator {
	return collate.New(language.Und)
}

func byName(c *collate.Collator) compareFunc {
	return func(a, b *types.Product) int {
		return c.CompareString(a.Name, b.Name)
	}
}

func byPrice(a, b *types.Product) int {
	return cmp.Compare(a.Price, b.Price)
}

func byRating(a, b *types.Product) int {
	return cmp.Compare(a.Rating, b.Rating)
}

func byReviewCount(a, b *types.Product) int {
	return cmp.Compare(a.GetReviewCount(), b.GetReviewCount())
}

func descending(fn compareFunc) compareFunc {
	return func(a, b *types.Product) int {
		return fn(b, a)
	}
}

// thenBy falls through to the next comparator when the previous ones tie.
func thenBy(fns ...compareFunc) compareFunc {
	return func(a, b *types.Product) int {
		for _, fn := range fns {
			if r := fn(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}
