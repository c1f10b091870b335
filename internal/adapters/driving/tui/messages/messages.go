// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the stylist chat view.
	ViewChat
	// ViewCatalog lists catalog products.
	ViewCatalog
	// ViewProduct shows a single product.
	ViewProduct
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewCatalog:
		return "catalog"
	case ViewProduct:
		return "product"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ChatReplied carries the bot reply for a submitted query.
// Err is set only when the submission was refused (empty or in flight).
type ChatReplied struct {
	Reply domain.Message
	Err   error
}

// ProductsLoaded carries a page of catalog items.
type ProductsLoaded struct {
	Items []domain.CatalogItem
	Skip  int
	Err   error
}

// ProductSelected requests the detail view for a product.
type ProductSelected struct {
	ID int64
}

// ProductLoaded carries a single catalog item.
type ProductLoaded struct {
	ID   int64
	Item *domain.CatalogItem
	Err  error
}

// SettingsChanged signals that settings were reloaded from disk.
type SettingsChanged struct {
	BaseURL string
}
