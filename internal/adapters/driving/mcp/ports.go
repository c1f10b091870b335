package mcp

import (
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers stylist questions.
	Chat driving.ChatService

	// Catalog browses products. Optional; catalog tools and resources are
	// only registered when set.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
