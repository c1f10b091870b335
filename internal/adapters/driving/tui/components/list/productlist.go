// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// PrimaryMarker prefixes the primary product of a reply.
const PrimaryMarker = "★"

// ProductList displays products in a navigable list.
type ProductList struct {
	title    string
	products []domain.Product
	primary  *int64
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProductList creates a new product list component.
func NewProductList(s *styles.Styles, title string) *ProductList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProductList{
		title:  title,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the product list.
func (l *ProductList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ProductList) Update(msg tea.Msg) (*ProductList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the product list.
func (l *ProductList) View() string {
	if len(l.products) == 0 {
		return l.styles.Muted.Render("No products")
	}

	lines := make([]string, 0, len(l.products)+2)
	if l.title != "" {
		header := l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.products)))
		lines = append(lines, header, "")
	}

	start, end := l.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, l.renderProduct(i, &l.products[i]))
	}

	return strings.Join(lines, "\n")
}

// visibleRange returns the window of rows that fits the height,
// scrolled so the selection stays visible.
func (l *ProductList) visibleRange() (int, int) {
	visible := l.height - 2
	if l.title == "" {
		visible = l.height
	}
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.products) {
		end = len(l.products)
	}
	return start, end
}

// renderProduct formats a single product row.
func (l *ProductList) renderProduct(index int, p *domain.Product) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	marker := "  "
	if l.IsPrimary(*p) {
		marker = l.styles.PrimaryMarker.Render(PrimaryMarker) + " "
	}

	title := p.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitleLen := l.width - 30
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title = Truncate(title, maxTitleLen)

	price := FormatPrice(p.Price, "")

	if index == l.selected {
		row := fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, price)
		return marker + l.styles.Selected.Render(row)
	}

	row := l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
		l.styles.Price.Render(price)
	if p.Brand != "" {
		row += l.styles.Muted.Render("  " + p.Brand)
	}
	return marker + row
}

// SetProducts replaces the listed products and resets the selection.
// primary marks the reply's primary product, if any.
func (l *ProductList) SetProducts(products []domain.Product, primary *int64) {
	l.products = products
	l.primary = primary
	l.selected = 0
}

// Products returns the listed products.
func (l *ProductList) Products() []domain.Product {
	return l.products
}

// IsPrimary returns true if p is the marked primary product.
func (l *ProductList) IsPrimary(p domain.Product) bool {
	return l.primary != nil && *l.primary == p.Identifier()
}

// Selected returns the index of the selected product.
func (l *ProductList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ProductList) SetSelected(index int) {
	if index >= 0 && index < len(l.products) {
		l.selected = index
	}
}

// SelectedProduct returns the currently selected product, or nil if none.
func (l *ProductList) SelectedProduct() *domain.Product {
	if len(l.products) == 0 || l.selected < 0 || l.selected >= len(l.products) {
		return nil
	}
	return &l.products[l.selected]
}

// MoveUp moves selection up.
func (l *ProductList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ProductList) MoveDown() {
	if l.selected < len(l.products)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ProductList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of products.
func (l *ProductList) Count() int {
	return len(l.products)
}

// IsEmpty returns whether the list is empty.
func (l *ProductList) IsEmpty() bool {
	return len(l.products) == 0
}

// FormatPrice renders a price with two decimals, prefixed by the currency
// when known. Unknown prices render as "n/a".
func FormatPrice(price decimal.NullDecimal, currency string) string {
	if !price.Valid {
		return "n/a"
	}
	s := price.Decimal.StringFixed(2)
	if currency != "" {
		return currency + " " + s
	}
	return s
}

// Truncate shortens s to at most n display cells, ending with "...".
func Truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
