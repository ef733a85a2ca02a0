package catalog

import (
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/matst80/slask-catalog/pkg/filter"
	"github.com/matst80/slask-catalog/pkg/sorting"
	"github.com/matst80/slask-catalog/pkg/types"
	"github.com/rs/zerolog/log"
)

// Facets is the data driving the category filter panel. It is derived from
// the whole collection, not from the current selection.
type Facets struct {
	Categories []string         `json:"categories"`
	Counts     map[string]int   `json:"counts"`
	PriceRange types.PriceRange `json:"priceRange"`
	Total      int              `json:"total"`
	Version    string           `json:"version"`
}

type ChangeListener func(facets Facets)

// Catalog holds the product collection and recomputes the facets every time
// the collection changes. Listings are computed on demand from a Selection.
type Catalog struct {
	mu        sync.RWMutex
	products  []types.Product
	positions map[types.ProductId]int
	facets    Facets
	listeners []ChangeListener
}

func NewCatalog(products ...types.Product) *Catalog {
	c := &Catalog{}
	c.Replace(products)
	return c
}

func (c *Catalog) AddChangeListener(fn ChangeListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Replace swaps the whole collection.
func (c *Catalog) Replace(products []types.Product) {
	c.mu.Lock()
	c.products = slices.Clone(products)
	c.rebuildLocked()
	facets, listeners := c.facets, c.listeners
	c.mu.Unlock()
	notify(listeners, facets)
}

// HandleProducts upserts products by id. Existing products keep their
// position, new ones are appended. Products without an id are ignored.
func (c *Catalog) HandleProducts(products []types.Product) {
	if len(products) == 0 {
		return
	}
	c.mu.Lock()
	next := slices.Clone(c.products)
	skipped := 0
	for _, p := range products {
		if p.Id == "" {
			skipped++
			continue
		}
		if idx, ok := c.positions[p.Id]; ok {
			next[idx] = p
			continue
		}
		c.positions[p.Id] = len(next)
		next = append(next, p)
	}
	c.products = next
	c.rebuildLocked()
	facets, listeners := c.facets, c.listeners
	c.mu.Unlock()
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("ignored products without id")
	}
	log.Printf("Upserted %d products, catalog size %d", len(products)-skipped, facets.Total)
	notify(listeners, facets)
}

func (c *Catalog) DeleteProduct(id types.ProductId) bool {
	c.mu.Lock()
	idx, ok := c.positions[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.products = slices.Delete(slices.Clone(c.products), idx, idx+1)
	c.rebuildLocked()
	facets, listeners := c.facets, c.listeners
	c.mu.Unlock()
	notify(listeners, facets)
	return true
}

func (c *Catalog) rebuildLocked() {
	c.positions = make(map[types.ProductId]int, len(c.products))
	for i, p := range c.products {
		c.positions[p.Id] = i
	}
	c.facets = Facets{
		Categories: filter.GetCategories(c.products),
		Counts:     filter.CountProductsByCategory(c.products),
		PriceRange: filter.GetPriceRange(c.products),
		Total:      len(c.products),
		Version:    contentVersion(c.products),
	}
}

// contentVersion hashes every product field in collection order, so equal
// collections get the same version in any process.
func contentVersion(products []types.Product) string {
	d := xxhash.New()
	buf := make([]byte, 0, 128)
	for i := range products {
		p := &products[i]
		buf = buf[:0]
		buf = append(buf, p.Id...)
		buf = append(buf, 0)
		buf = append(buf, p.Name...)
		buf = append(buf, 0)
		buf = append(buf, p.Category...)
		buf = append(buf, 0)
		buf = strconv.AppendFloat(buf, p.Price, 'g', -1, 64)
		buf = append(buf, 0)
		if p.OriginalPrice != nil {
			buf = strconv.AppendFloat(buf, *p.OriginalPrice, 'g', -1, 64)
		}
		buf = append(buf, 0)
		buf = strconv.AppendFloat(buf, p.Rating, 'g', -1, 64)
		buf = append(buf, 0)
		if p.ReviewCount != nil {
			buf = strconv.AppendInt(buf, int64(*p.ReviewCount), 10)
		}
		buf = append(buf, 1)
		_, _ = d.Write(buf)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

func notify(listeners []ChangeListener, facets Facets) {
	for _, fn := range listeners {
		fn(facets)
	}
}

// Snapshot is the collection at one version. The product slice is never
// written to after publication so it can be read without holding the lock.
type Snapshot struct {
	Version  string
	products []types.Product
}

func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{Version: c.facets.Version, products: c.products}
}

// Query runs arbitrary criteria followed by a sort.
func (s Snapshot) Query(criteria types.FilterCriteria, sort types.SortOption) []types.Product {
	return sorting.SortProducts(filter.FilterProducts(s.products, criteria), sort)
}

func (c *Catalog) Products() []types.Product {
	return slices.Clone(c.Snapshot().products)
}

func (c *Catalog) Version() string {
	return c.Snapshot().Version
}

func (c *Catalog) Get(id types.ProductId) (types.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.positions[id]
	if !ok {
		return types.Product{}, false
	}
	return c.products[idx], true
}

func (c *Catalog) Facets() Facets {
	c.mu.RLock()
	defer c.mu.RUnlock()
	facets := c.facets
	facets.Categories = slices.Clone(facets.Categories)
	facets.Counts = maps.Clone(facets.Counts)
	return facets
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// View is the visible listing for a selection: category filter first, then
// the selected sort.
func (c *Catalog) View(selection *Selection) []types.Product {
	if selection == nil {
		selection = NewSelection()
	}
	matching := filter.FilterByCategories(c.Snapshot().products, selection.Categories, selection.Extra)
	return sorting.SortProducts(matching, selection.Sort)
}

func (c *Catalog) Query(criteria types.FilterCriteria, sort types.SortOption) []types.Product {
	return c.Snapshot().Query(criteria, sort)
}
