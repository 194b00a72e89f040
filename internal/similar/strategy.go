// Package similar implements the per-product "find similar items" lookup.
//
// A Strategy is one way of searching: the store catalog or an AI-driven web
// search. Lookup holds the overlay state for one product and never mixes
// results from two strategies.
package similar

import (
	"context"
	"errors"

	"github.com/five82/shopper/internal/backend"
)

// Kind names a lookup strategy.
type Kind int

const (
	KindNone Kind = iota
	KindCatalog
	KindAISearch
)

func (k Kind) String() string {
	switch k {
	case KindCatalog:
		return "catalog"
	case KindAISearch:
		return "ai-search"
	default:
		return "none"
	}
}

// Strategy finds items similar to a detected product.
type Strategy interface {
	Kind() Kind
	// Label is the short source name shown on the selector.
	Label() string
	// Action is the text of the button that starts a search.
	Action() string
	// Source captions a result list.
	Source() string
	// Retry is the label used to switch to this strategy after results.
	Retry() string
	// ViewLabel is the per-item outbound action.
	ViewLabel() string
	Find(ctx context.Context, product backend.DetectedProduct) ([]backend.SimilarItem, error)
}

// CatalogSearcher is the backend surface Catalog needs.
type CatalogSearcher interface {
	FindSimilarByCatalog(ctx context.Context, product backend.DetectedProduct) (*backend.SimilarResponse, error)
}

// WebSearcher is the backend surface AISearch needs.
type WebSearcher interface {
	FindSimilarByAISearch(ctx context.Context, product backend.DetectedProduct) (*backend.SimilarResponse, error)
}

// Catalog searches the store catalog.
type Catalog struct {
	API CatalogSearcher
}

func (Catalog) Kind() Kind { return KindCatalog }
func (Catalog) Label() string { return "Shopify Store" }
func (Catalog) Action() string { return "Search Store Catalog" }
func (Catalog) Source() string { return "From store catalog" }
func (Catalog) Retry() string { return "Try Store" }
func (Catalog) ViewLabel() string { return "View Product" }

// Find implements Strategy.
func (c Catalog) Find(ctx context.Context, product backend.DetectedProduct) ([]backend.SimilarItem, error) {
	if c.API == nil {
		return nil, errors.New("catalog search: no backend configured")
	}
	resp, err := c.API.FindSimilarByCatalog(ctx, product)
	if err != nil {
		return nil, err
	}
	return resp.Items(), nil
}

// AISearch asks the backend to search the web with an AI model.
type AISearch struct {
	API WebSearcher
}

func (AISearch) Kind() Kind { return KindAISearch }
func (AISearch) Label() string { return "AI Web Search" }
func (AISearch) Action() string { return "Search Online with AI" }
func (AISearch) Source() string { return "From AI web search" }
func (AISearch) Retry() string { return "Try AI" }
func (AISearch) ViewLabel() string { return "View Online" }

// Find implements Strategy.
func (a AISearch) Find(ctx context.Context, product backend.DetectedProduct) ([]backend.SimilarItem, error) {
	if a.API == nil {
		return nil, errors.New("ai search: no backend configured")
	}
	resp, err := a.API.FindSimilarByAISearch(ctx, product)
	if err != nil {
		return nil, err
	}
	return resp.Items(), nil
}

// Ensure both strategies implement Strategy at compile time.
var (
	_ Strategy = Catalog{}
	_ Strategy = AISearch{}
)

// Set is the ordered list of strategies offered to the user.
type Set []Strategy

// NewSet returns the catalog and AI strategies backed by api.
func NewSet(api backend.API) Set {
	return Set{Catalog{API: api}, AISearch{API: api}}
}

// Get returns the strategy for k.
func (s Set) Get(k Kind) (Strategy, bool) {
	for _, st := range s {
		if st.Kind() == k {
			return st, true
		}
	}
	return nil, false
}

// Other returns the first strategy that is not k.
func (s Set) Other(k Kind) (Strategy, bool) {
	for _, st := range s {
		if st.Kind() != k {
			return st, true
		}
	}
	return nil, false
}
