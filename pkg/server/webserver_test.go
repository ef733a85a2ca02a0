package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

type memoryCache struct {
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, out any) error {
	data, ok := m.data[key]
	if !ok {
		return errors.New("miss")
	}
	return jsoncompat.Unmarshal(data, out)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	m.sets++
	m.data[key] = data
	return nil
}

func sampleCatalog() *catalog.Catalog {
	return catalog.NewCatalog(
		types.Product{Id: "1", Name: "Wireless Headphones", Price: 80, OriginalPrice: types.FloatPtr(100), Rating: 4.5, ReviewCount: types.IntPtr(128), Category: "Electronics"},
		types.Product{Id: "2", Name: "Running Shoes", Price: 59, Rating: 4.1, ReviewCount: types.IntPtr(64), Category: "Sports"},
		types.Product{Id: "3", Name: "Smart Watch", Price: 199, Rating: 3.9, Category: "Electronics"},
		types.Product{Id: "4", Name: "Yoga Mat", Price: 25, Rating: 4.8, ReviewCount: types.IntPtr(301), Category: "Sports"},
		types.Product{Id: "5", Name: "Coffee Maker", Price: 79.5, Rating: 4.2, ReviewCount: types.IntPtr(12), Category: "Home"},
	)
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeListing(t *testing.T, rec *httptest.ResponseRecorder) ListingResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	var result ListingResponse
	require.NoError(t, jsoncompat.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func listingIds(l ListingResponse) []string {
	result := make([]string, len(l.Products))
	for i, p := range l.Products {
		result[i] = p.Id
	}
	return result
}

func TestProductsDefaultsToNameAsc(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()
	result := decodeListing(t, doRequest(t, h, http.MethodGet, "/products", ""))

	assert.Equal(t, types.SortNameAsc, result.Sort)
	assert.Equal(t, 5, result.TotalHits)
	assert.Equal(t, []string{"5", "2", "3", "1", "4"}, listingIds(result))
}

func TestProductsFilterAndSortFromQuery(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()

	result := decodeListing(t, doRequest(t, h, http.MethodGet, "/products?cat=Sports&cat=Home&sort=price-desc", ""))
	assert.Equal(t, []string{"5", "2", "4"}, listingIds(result))
	assert.Equal(t, []string{"Sports", "Home"}, result.Selected)

	result = decodeListing(t, doRequest(t, h, http.MethodGet, "/products?cat=Electronics||Home&maxPrice=100&sort=rating", ""))
	assert.Equal(t, []string{"1", "5"}, listingIds(result))

	result = decodeListing(t, doRequest(t, h, http.MethodGet, "/products?q=%20MAT&minRating=4.5", ""))
	assert.Equal(t, []string{"4"}, listingIds(result))
}

func TestProductsUnknownSortKeepsOrder(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()
	result := decodeListing(t, doRequest(t, h, http.MethodGet, "/products?sort=popular", ""))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, listingIds(result))
}

func TestProductsFromJsonBody(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()
	body := `{"categories":["Sports"],"sort":"reviews"}`
	result := decodeListing(t, doRequest(t, h, http.MethodPost, "/products", body))
	assert.Equal(t, []string{"4", "2"}, listingIds(result))
}

func TestProductsBadRequest(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()
	rec := doRequest(t, h, http.MethodGet, "/products?minPrice=cheap", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductCardDiscount(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()
	rec := doRequest(t, h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var card ProductCard
	require.NoError(t, jsoncompat.Unmarshal(rec.Body.Bytes(), &card))
	assert.True(t, card.IsDiscounted)
	assert.Equal(t, 20, card.DiscountPercent)
	assert.Equal(t, "Wireless Headphones", card.Name)

	rec = doRequest(t, h, http.MethodGet, "/products/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFacetsAndCategories(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()

	rec := doRequest(t, h, http.MethodGet, "/facets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var facets catalog.Facets
	require.NoError(t, jsoncompat.Unmarshal(rec.Body.Bytes(), &facets))
	assert.Equal(t, []string{"Electronics", "Home", "Sports"}, facets.Categories)
	assert.Equal(t, types.PriceRange{Min: 25, Max: 199}, facets.PriceRange)

	rec = doRequest(t, h, http.MethodGet, "/categories?cat=Home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []CategoryFacet
	require.NoError(t, jsoncompat.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Equal(t, []CategoryFacet{
		{Name: "Electronics", Count: 2},
		{Name: "Home", Count: 1, Selected: true},
		{Name: "Sports", Count: 2},
	}, categories)
}

func TestSortOptionsEndpoint(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()
	rec := doRequest(t, h, http.MethodGet, "/sort-options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var options []types.SortOptionLabel
	require.NoError(t, jsoncompat.Unmarshal(rec.Body.Bytes(), &options))
	assert.Len(t, options, 6)
	assert.Equal(t, types.SortNameAsc, options[0].Value)
}

func TestOptionsRequest(t *testing.T) {
	h := NewWebServer(sampleCatalog(), nil).ClientHandler()
	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListingCacheIsInvalidatedOnChange(t *testing.T) {
	c := sampleCatalog()
	cache := newMemoryCache()
	h := NewWebServer(c, cache).ClientHandler()

	first := decodeListing(t, doRequest(t, h, http.MethodGet, "/products?cat=Home", ""))
	assert.Equal(t, []string{"5"}, listingIds(first))
	assert.Equal(t, 1, cache.sets)

	cached := decodeListing(t, doRequest(t, h, http.MethodGet, "/products?cat=Home", ""))
	assert.Equal(t, listingIds(first), listingIds(cached))
	assert.Equal(t, 1, cache.sets)

	c.HandleProducts([]types.Product{{Id: "6", Name: "Desk Lamp", Price: 19, Rating: 3.5, Category: "Home"}})

	fresh := decodeListing(t, doRequest(t, h, http.MethodGet, "/products?cat=Home", ""))
	assert.Equal(t, []string{"5", "6"}, listingIds(fresh))
	assert.Equal(t, 2, cache.sets)
}

func TestListingCacheSharedBetweenCatalogs(t *testing.T) {
	cache := newMemoryCache()
	older := NewWebServer(catalog.NewCatalog(
		types.Product{Id: "old", Name: "Desk Lamp", Price: 19, Rating: 3.5, Category: "Home"},
	), cache).ClientHandler()
	newer := NewWebServer(catalog.NewCatalog(
		types.Product{Id: "new", Name: "Desk Lamp", Price: 24, Rating: 3.5, Category: "Home"},
	), cache).ClientHandler()

	assert.Equal(t, []string{"old"}, listingIds(decodeListing(t, doRequest(t, older, http.MethodGet, "/products", ""))))
	assert.Equal(t, []string{"new"}, listingIds(decodeListing(t, doRequest(t, newer, http.MethodGet, "/products", ""))))
	assert.Equal(t, 2, cache.sets)

	same := NewWebServer(catalog.NewCatalog(
		types.Product{Id: "old", Name: "Desk Lamp", Price: 19, Rating: 3.5, Category: "Home"},
	), cache).ClientHandler()
	assert.Equal(t, []string{"old"}, listingIds(decodeListing(t, doRequest(t, same, http.MethodGet, "/products", ""))))
	assert.Equal(t, 2, cache.sets)
}
