package messaging

import (
	"errors"
	"fmt"

	"github.com/matst80/slask-catalog/pkg/types"
)

var ErrMissingProductId = errors.New("product without id")

type ChangeTopic string

const (
	ProductsUpserted ChangeTopic = "products_upserted"
	ProductDeleted   ChangeTopic = "product_deleted"
)

type RabbitConfig struct {
	Url    string `envconfig:"RABBIT_URL"`
	VHost  string `envconfig:"RABBIT_HOST"`
	Prefix string `envconfig:"RABBIT_PREFIX" default:"catalog"`
}

// ProductDeletion is the payload of a ProductDeleted message.
type ProductDeletion struct {
	Id string `json:"id"`
}

func validateProducts(products []types.Product) error {
	for i := range products {
		if products[i].Id == "" {
			return fmt.Errorf("%w at index %d (%s)", ErrMissingProductId, i, products[i].Name)
		}
	}
	return nil
}
