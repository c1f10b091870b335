// Package tui provides an interactive terminal user interface for stylist.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat opens stylist chat sessions.
	Chat driving.ChatService

	// Catalog browses the product catalog.
	Catalog driving.CatalogService

	// Settings exposes application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	catalog driving.CatalogService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Chat:     chat,
		Catalog:  catalog,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
