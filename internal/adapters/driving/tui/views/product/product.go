// Package product provides the product detail view for the TUI.
package product

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
)

// ErrNoCatalogService is returned when the view has no catalog service.
var ErrNoCatalogService = errors.New("catalog service not available")

// View shows a single catalog item in a scrollable viewport.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	viewport  viewport.Model
	statusbar *status.Bar

	catalog driving.CatalogService
	ctx     context.Context

	id      int64
	item    *domain.CatalogItem
	back    messages.ViewType
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new product detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		viewport:  viewport.New(80, 18),
		statusbar: status.NewBar(s, km),
		catalog:   catalog,
		ctx:       context.Background(),
		back:      messages.ViewCatalog,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetProduct starts loading the product with the given id. Esc returns to back.
func (v *View) SetProduct(id int64, back messages.ViewType) tea.Cmd {
	v.id = id
	v.back = back
	v.item = nil
	v.err = nil
	v.loading = true
	v.viewport.SetContent("")
	v.viewport.GotoTop()
	v.statusbar.SetState(status.StateLoading)

	catalog := v.catalog
	ctx := v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.ProductLoaded{ID: id, Err: ErrNoCatalogService}
		}
		item, err := catalog.Get(ctx, id)
		return messages.ProductLoaded{ID: id, Item: item, Err: err}
	}
}

// Update handles messages for the product view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			back := v.back
			return v, func() tea.Msg {
				return messages.ViewChanged{View: back}
			}
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case messages.ProductLoaded:
		v.handleLoaded(msg)
		return v, nil
	}

	return v, nil
}

// handleLoaded applies a loaded product. Replies for another product are dropped.
func (v *View) handleLoaded(msg messages.ProductLoaded) {
	if msg.ID != v.id {
		return
	}
	v.loading = false

	if msg.Err == nil && msg.Item == nil {
		msg.Err = domain.ErrNotFound
	}
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		if errors.Is(msg.Err, domain.ErrNotFound) {
			v.statusbar.SetMessage("product not found")
		} else {
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return
	}

	v.err = nil
	v.item = msg.Item
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(v.item.Title)
	v.viewport.SetContent(v.renderItem(v.item))
}

// renderItem formats the full product description.
func (v *View) renderItem(item *domain.CatalogItem) string {
	width := v.viewport.Width
	if width < 20 {
		width = 20
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(item.Title))
	b.WriteString("\n")
	if item.Brand != "" {
		b.WriteString(v.styles.Subtitle.Render(item.Brand))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Price.Render(list.FormatPrice(item.Price, item.Currency)))
	b.WriteString("\n\n")

	fields := []struct{ label, value string }{
		{"Category", item.Category},
		{"Product page", item.URL},
		{"Image", item.ImageURL},
		{"Reference", item.ExternalID},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString(v.styles.Muted.Render(f.label+": ") + v.styles.Normal.Render(f.value))
		b.WriteString("\n")
	}

	if !item.Features.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Features"))
		b.WriteString("\n")
		b.WriteString(renderFeatures(item.Features, v.styles, wrap))
	}

	if item.Description != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(item.Description))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFeatures renders features as bullets, under group labels when grouped.
func renderFeatures(f domain.Features, s *styles.Styles, wrap lipgloss.Style) string {
	var b strings.Builder
	bullets := func(items []string, indent string) {
		for _, it := range items {
			b.WriteString(wrap.Render(indent + "• " + it))
			b.WriteString("\n")
		}
	}

	if !f.IsGrouped() {
		bullets(f.List, "")
		return b.String()
	}
	for _, g := range f.Groups {
		if len(g.Items) == 0 {
			continue
		}
		b.WriteString(s.Normal.Render(g.Label))
		b.WriteString("\n")
		bullets(g.Items, "  ")
	}
	return b.String()
}

// View renders the product view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case v.loading:
		body = v.styles.Muted.Render("Loading product...")
	case v.err != nil:
		body = v.styles.Error.Render("Error: " + v.err.Error())
	default:
		body = v.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", v.statusbar.View())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	vpHeight := height - 3
	if vpHeight < 3 {
		vpHeight = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vpHeight
	v.statusbar.SetWidth(width)

	if v.item != nil {
		v.viewport.SetContent(v.renderItem(v.item))
	}
}

// Item returns the loaded product, or nil.
func (v *View) Item() *domain.CatalogItem {
	return v.item
}

// ProductID returns the id of the requested product.
func (v *View) ProductID() int64 {
	return v.id
}

// Back returns the view Esc returns to.
func (v *View) Back() messages.ViewType {
	return v.back
}

// Loading returns whether the product is being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
