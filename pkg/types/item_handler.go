package types

// ProductHandler receives changes to the product collection, from disk
// loads as well as from the message bus.
type ProductHandler interface {
	HandleProducts(products []Product)
	DeleteProduct(id ProductId) bool
}
