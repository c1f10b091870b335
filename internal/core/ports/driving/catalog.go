package driving

import (
	"context"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// CatalogService browses the product catalog.
type CatalogService interface {
	// List returns a page of catalog items.
	List(ctx context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error)

	// Get returns a single catalog item.
	Get(ctx context.Context, id int64) (*domain.CatalogItem, error)
}
