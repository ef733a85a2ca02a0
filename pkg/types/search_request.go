package types

import (
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
)

// CatalogRequest is the wire shape of a catalog listing request, either as
// query parameters (GET) or as a JSON body (POST).
type CatalogRequest struct {
	Categories []string   `json:"categories" schema:"cat"`
	Sort       SortOption `json:"sort" schema:"sort"`
	Query      string     `json:"q" schema:"q"`
	MinPrice   *float64   `json:"minPrice" schema:"minPrice"`
	MaxPrice   *float64   `json:"maxPrice" schema:"maxPrice"`
	MinRating  *float64   `json:"minRating" schema:"minRating"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func (s *CatalogRequest) Sanitize() {
	if s.Sort == "" {
		s.Sort = DefaultSort
	}
	categories := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		// cat=a||b is accepted as well as repeated cat params
		for part := range strings.SplitSeq(c, "||") {
			part = strings.TrimSpace(part)
			if part != "" {
				categories = append(categories, part)
			}
		}
	}
	s.Categories = categories
}

// ToCriteria converts the request into filter criteria. A price range is only
// applied when at least one bound is given, the missing bound is open.
func (s *CatalogRequest) ToCriteria() FilterCriteria {
	criteria := FilterCriteria{
		Categories: s.Categories,
		MinRating:  s.MinRating,
		SearchTerm: s.Query,
	}
	if s.MinPrice != nil || s.MaxPrice != nil {
		rng := PriceRange{Min: math.Inf(-1), Max: math.Inf(1)}
		if s.MinPrice != nil {
			rng.Min = *s.MinPrice
		}
		if s.MaxPrice != nil {
			rng.Max = *s.MaxPrice
		}
		criteria.PriceRange = &rng
	}
	return criteria
}

func GetCatalogRequest(r *http.Request) (*CatalogRequest, error) {
	sr := makeBaseCatalogRequest()
	var err error
	if r.Method == http.MethodGet {
		err = requestFromQuery(r.URL.Query(), sr)
	} else {
		err = jsoncompat.NewDecoder(r.Body).Decode(sr)
	}
	sr.Sanitize()
	return sr, err
}

func requestFromQuery(query url.Values, result *CatalogRequest) error {
	return decoder.Decode(result, query)
}

func makeBaseCatalogRequest() *CatalogRequest {
	return &CatalogRequest{
		Categories: []string{},
		Sort:       DefaultSort,
	}
}
