package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-catalog/pkg/types"
)

type recordingHandler struct {
	received []types.Product
}

func (r *recordingHandler) HandleProducts(products []types.Product) {
	r.received = append(r.received, products...)
}

func (r *recordingHandler) DeleteProduct(id types.ProductId) bool {
	return false
}

func sampleProducts() []types.Product {
	return []types.Product{
		{Id: "1", Name: "Wireless Headphones", Price: 99.99, OriginalPrice: types.FloatPtr(129.99), Rating: 4.5, ReviewCount: types.IntPtr(128), Category: "Electronics"},
		{Id: "2", Name: "Yoga Mat", Price: 25, Rating: 4.8, Category: "Sports"},
	}
}

func TestSaveAndLoadRoundTripsEveryFormat(t *testing.T) {
	for _, name := range []string{"products.json", "products.json.gz", "products.yaml"} {
		t.Run(name, func(t *testing.T) {
			ds := NewDiskStorage(t.TempDir())
			require.NoError(t, ds.SaveProducts(name, sampleProducts()))

			handler := &recordingHandler{}
			loaded, err := ds.LoadProducts(name, handler)
			require.NoError(t, err)
			assert.Equal(t, sampleProducts(), loaded)
			assert.Equal(t, sampleProducts(), handler.received)

			entries, err := os.ReadDir(ds.RootFolder)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file should be renamed into place")
		})
	}
}

func TestLoadAssignsMissingIds(t *testing.T) {
	dir := t.TempDir()
	data := `[{"name":"Desk Lamp","price":25,"rating":3.5,"category":"Home"},{"id":"x","name":"Mug","price":5,"rating":4,"category":"Home"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte(data), 0o644))

	products, err := NewDiskStorage(dir).LoadProducts("products.json")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.NotEmpty(t, products[0].Id)
	assert.Equal(t, "x", products[1].Id)
	assert.Nil(t, products[0].ReviewCount)
}

func TestLoadAssignsStableIds(t *testing.T) {
	dir := t.TempDir()
	data := `[{"name":"Desk Lamp","price":25,"category":"Home"},{"name":"Desk Lamp","price":30,"category":"Home"},{"name":"Desk Lamp","price":25,"category":"Office"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte(data), 0o644))
	ds := NewDiskStorage(dir)

	first, err := ds.LoadProducts("products.json")
	require.NoError(t, err)
	second, err := ds.LoadProducts("products.json")
	require.NoError(t, err)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].Id, second[i].Id)
	}
	assert.NotEqual(t, first[0].Id, first[1].Id)
	assert.NotEqual(t, first[0].Id, first[2].Id)
	assert.NotEqual(t, first[1].Id, first[2].Id)
}

func TestLoadYamlFile(t *testing.T) {
	dir := t.TempDir()
	data := `
- id: a
  name: Trail Shoes
  price: 89
  rating: 4.4
  reviewCount: 12
  category: Sports
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.yml"), []byte(data), 0o644))

	products, err := NewDiskStorage(dir).LoadProducts("products.yml")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 12, products[0].GetReviewCount())
	assert.Equal(t, "Sports", products[0].Category)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewDiskStorage(t.TempDir()).LoadProducts("missing.json")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestLoadBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644))
	_, err := NewDiskStorage(dir).LoadProducts("products.json")
	assert.ErrorContains(t, err, "decode products file")
}
