package driven

import (
	"context"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// StorefrontAPI is the remote catalog and search backend.
// Implementations own transport concerns: base URL, timeouts, rate limiting
// and decoding of loosely-typed payloads.
type StorefrontAPI interface {
	// ListProducts returns a page of catalog items.
	ListProducts(ctx context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error)

	// GetProduct returns a single catalog item.
	// Returns domain.ErrNotFound if the item does not exist.
	GetProduct(ctx context.Context, id int64) (*domain.CatalogItem, error)

	// Search sends a free-text query and returns the narrative answer with
	// results in service order.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// Endpoint is implemented by clients whose target can be changed at runtime.
type Endpoint interface {
	// BaseURL returns the current API root.
	BaseURL() string

	// SetBaseURL re-points subsequent requests.
	SetBaseURL(baseURL string) error
}
