// Package catalog provides the product catalog view for the TUI.
package catalog

import (
	"context"
	"errors"
	"fmt"

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

// PageSize is the number of products fetched per page.
const PageSize = 20

// ErrNoCatalogService is returned when the view has no catalog service.
var ErrNoCatalogService = errors.New("catalog service not available")

// View lists catalog products one page at a time.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ProductList
	statusbar *status.Bar

	catalog driving.CatalogService
	ctx     context.Context

	items   []domain.CatalogItem
	skip    int
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new catalog view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.CatalogHelp())

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewProductList(s, ""),
		statusbar: bar,
		catalog:   catalog,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first page.
func (v *View) Init() tea.Cmd {
	return v.load(0)
}

// Update handles messages for the catalog view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProductsLoaded:
		v.handleLoaded(msg)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()

	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()

	case keymap.Matches(key, v.keymap.Select):
		if item := v.SelectedItem(); item != nil {
			id := item.ID
			return v, func() tea.Msg {
				return messages.ProductSelected{ID: id}
			}
		}

	case keymap.Matches(key, v.keymap.NextPage):
		if !v.loading && len(v.items) == PageSize {
			return v, v.load(v.skip + PageSize)
		}

	case keymap.Matches(key, v.keymap.PrevPage):
		if !v.loading && v.skip > 0 {
			return v, v.load(max(0, v.skip-PageSize))
		}

	case keymap.Matches(key, v.keymap.Refresh):
		if !v.loading {
			return v, v.load(v.skip)
		}
	}

	return v, nil
}

// load fetches the page starting at skip.
func (v *View) load(skip int) tea.Cmd {
	v.loading = true
	v.skip = skip
	v.statusbar.SetState(status.StateLoading)

	catalog := v.catalog
	ctx := v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.ProductsLoaded{Skip: skip, Err: ErrNoCatalogService}
		}
		items, err := catalog.List(ctx, domain.ListOptions{Skip: skip, Limit: PageSize})
		return messages.ProductsLoaded{Items: items, Skip: skip, Err: err}
	}
}

// handleLoaded applies a loaded page. Pages for a superseded request are dropped.
func (v *View) handleLoaded(msg messages.ProductsLoaded) {
	if msg.Skip != v.skip {
		return
	}
	v.loading = false

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.items = msg.Items
	products := make([]domain.Product, len(msg.Items))
	for i := range msg.Items {
		products[i] = msg.Items[i].Product()
	}
	v.list.SetProducts(products, nil)

	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(products))
	v.statusbar.SetMessage(v.pageLabel())
}

// pageLabel describes the visible range, e.g. "Products 21-40".
func (v *View) pageLabel() string {
	if len(v.items) == 0 {
		return "No products"
	}
	return fmt.Sprintf("Products %d-%d", v.skip+1, v.skip+len(v.items))
}

// View renders the catalog view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Catalog"), "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.loading && len(v.items) == 0:
		sections = append(sections, v.styles.Muted.Render("Loading products..."))
	default:
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	listHeight := height - 5
	if listHeight < 3 {
		listHeight = 3
	}
	v.list.SetDimensions(width, listHeight)
	v.statusbar.SetWidth(width)
}

// SelectedItem returns the selected catalog item, or nil if none.
func (v *View) SelectedItem() *domain.CatalogItem {
	if len(v.items) == 0 {
		return nil
	}
	i := v.list.Selected()
	if i < 0 || i >= len(v.items) {
		return nil
	}
	return &v.items[i]
}

// Items returns the items on the current page.
func (v *View) Items() []domain.CatalogItem {
	return v.items
}

// Skip returns the offset of the current page.
func (v *View) Skip() int {
	return v.skip
}

// Loading returns whether a page request is outstanding.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
