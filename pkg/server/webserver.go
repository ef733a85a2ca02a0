package server

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

var (
	noListings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcatalog_listings_total",
		Help: "The total number of processed product listings",
	})
	noFacets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcatalog_facets_total",
		Help: "The total number of processed facet requests",
	})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcatalog_cache_hits_total",
		Help: "The total number of listings served from cache",
	})
	totalProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskcatalog_products_total",
		Help: "The total number of products in the catalog",
	})
)

type WebServer struct {
	Catalog   *catalog.Catalog
	CacheTime time.Duration
	cache     *CacheHelper[ListingResponse]
}

// NewWebServer serves the catalog. cache may be nil.
func NewWebServer(c *catalog.Catalog, cache Cache) *WebServer {
	ws := &WebServer{
		Catalog:   c,
		CacheTime: 5 * time.Minute,
	}
	if cache != nil {
		ws.cache = NewCacheHelper[ListingResponse](cache)
	}
	totalProducts.Set(float64(c.Len()))
	c.AddChangeListener(func(f catalog.Facets) {
		totalProducts.Set(float64(f.Total))
	})
	return ws
}

func listing(snapshot catalog.Snapshot, sr *types.CatalogRequest) ListingResponse {
	products := snapshot.Query(sr.ToCriteria(), sr.Sort)
	cards := make([]ProductCard, len(products))
	for i, p := range products {
		cards[i] = ToProductCard(p)
	}
	return ListingResponse{
		Products:  cards,
		TotalHits: len(cards),
		Sort:      sr.Sort,
		Selected:  sr.Categories,
	}
}

// cacheKey includes the content version of the snapshot, processes holding
// different collections never share a listing.
func cacheKey(snapshot catalog.Snapshot, sr *types.CatalogRequest) (string, error) {
	data, err := jsoncompat.Marshal(sr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("listing:%s:%s", snapshot.Version, data), nil
}

func (ws *WebServer) Products(w http.ResponseWriter, r *http.Request, enc jsoncompat.Encoder) error {
	sr, err := types.GetCatalogRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	go noListings.Inc()

	var result ListingResponse
	snapshot := ws.Catalog.Snapshot()
	key, err := cacheKey(snapshot, sr)
	if err != nil {
		return err
	}
	hit, err := ws.cache.Handle(r.Context(), key, &result, func() ListingResponse {
		return listing(snapshot, sr)
	}, ws.CacheTime)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache listing")
	}
	if hit {
		go cacheHits.Inc()
	}

	defaultHeaders(w, r, "120")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(result)
}

func (ws *WebServer) GetProduct(w http.ResponseWriter, r *http.Request, enc jsoncompat.Encoder) error {
	id := r.PathValue("id")
	p, ok := ws.Catalog.Get(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return nil
	}
	publicHeaders(w, r, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(ToProductCard(p))
}

func (ws *WebServer) Facets(w http.ResponseWriter, r *http.Request, enc jsoncompat.Encoder) error {
	go noFacets.Inc()
	defaultHeaders(w, r, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(ws.Catalog.Facets())
}

// Categories lists every category with its count, flagging the ones given
// as cat parameters as selected.
func (ws *WebServer) Categories(w http.ResponseWriter, r *http.Request, enc jsoncompat.Encoder) error {
	sr, err := types.GetCatalogRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	go noFacets.Inc()
	facets := ws.Catalog.Facets()
	result := make([]CategoryFacet, 0, len(facets.Categories))
	for _, name := range facets.Categories {
		result = append(result, CategoryFacet{
			Name:     name,
			Count:    facets.Counts[name],
			Selected: slices.Contains(sr.Categories, name),
		})
	}
	defaultHeaders(w, r, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(result)
}

func (ws *WebServer) SortOptions(w http.ResponseWriter, r *http.Request, enc jsoncompat.Encoder) error {
	publicHeaders(w, r, "3600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(types.SortOptions)
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv.HandleFunc("/products", common.JsonHandler(ws.Products))
	srv.HandleFunc("GET /products/{id}", common.JsonHandler(ws.GetProduct))
	srv.HandleFunc("/facets", common.JsonHandler(ws.Facets))
	srv.HandleFunc("/categories", common.JsonHandler(ws.Categories))
	srv.HandleFunc("/sort-options", common.JsonHandler(ws.SortOptions))

	return srv
}
