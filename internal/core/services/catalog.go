package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stylist-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService browses the product catalog.
type CatalogService struct {
	api driven.StorefrontAPI
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(api driven.StorefrontAPI) *CatalogService {
	return &CatalogService{api: api}
}

// List returns a page of catalog items.
func (s *CatalogService) List(ctx context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error) {
	if s.api == nil {
		return nil, domain.ErrAPIUnavailable
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	logger.Debug("listing products (skip=%d limit=%d category=%q)", opts.Skip, opts.Limit, opts.Category)
	items, err := s.api.ListProducts(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	logger.Debug("listed %d products", len(items))
	return items, nil
}

// Get returns a single catalog item.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	if s.api == nil {
		return nil, domain.ErrAPIUnavailable
	}
	if id <= 0 {
		return nil, fmt.Errorf("get product %d: %w", id, domain.ErrInvalidInput)
	}

	item, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return item, nil
}
