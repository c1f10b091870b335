package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
)

// mockChatSession is a mock implementation of driving.ChatSession.
type mockChatSession struct {
	id      string
	reply   domain.Message
	err     error
	queries []string
}

func (m *mockChatSession) ID() string { return m.id }

func (m *mockChatSession) Submit(_ context.Context, query string) (domain.Message, error) {
	if m.err != nil {
		return domain.Message{}, m.err
	}
	if strings.TrimSpace(query) == "" {
		return domain.Message{}, domain.ErrEmptyQuery
	}
	m.queries = append(m.queries, query)
	return m.reply, nil
}

func (m *mockChatSession) Messages() []domain.Message { return nil }

func (m *mockChatSession) InFlight() bool { return false }

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply    domain.Message
	err      error
	sessions []*mockChatSession
}

func (m *mockChatService) NewSession() driving.ChatSession {
	sess := &mockChatSession{
		id:    fmt.Sprintf("session-%d", len(m.sessions)+1),
		reply: m.reply,
		err:   m.err,
	}
	m.sessions = append(m.sessions, sess)
	return sess
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	items    []domain.CatalogItem
	item     *domain.CatalogItem
	err      error
	lastOpts domain.ListOptions
	lastID   int64
}

func (m *mockCatalogService) List(_ context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error) {
	m.lastOpts = opts
	return m.items, m.err
}

func (m *mockCatalogService) Get(_ context.Context, id int64) (*domain.CatalogItem, error) {
	m.lastID = id
	return m.item, m.err
}
