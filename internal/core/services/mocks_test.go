package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// mockStorefrontAPI implements driven.StorefrontAPI for testing.
type mockStorefrontAPI struct {
	mu sync.Mutex

	items     []domain.CatalogItem
	item      *domain.CatalogItem
	listErr   error
	getErr    error
	searchFn  func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	listCalls []domain.ListOptions
	getCalls  []int64
	searches  []domain.SearchRequest
}

func (m *mockStorefrontAPI) ListProducts(_ context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls = append(m.listCalls, opts)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

func (m *mockStorefrontAPI) GetProduct(_ context.Context, id int64) (*domain.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls = append(m.getCalls, id)
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.item, nil
}

func (m *mockStorefrontAPI) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.mu.Lock()
	m.searches = append(m.searches, req)
	fn := m.searchFn
	m.mu.Unlock()

	if fn == nil {
		return &domain.SearchResponse{}, nil
	}
	return fn(ctx, req)
}

func (m *mockStorefrontAPI) searchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.searches)
}

// mockOverlay implements driven.SettingsOverlay for testing.
type mockOverlay struct {
	apply func(*domain.AppSettings)
	err   error
}

func (m *mockOverlay) Apply(settings *domain.AppSettings) error {
	if m.err != nil {
		return m.err
	}
	if m.apply != nil {
		m.apply(settings)
	}
	return nil
}
