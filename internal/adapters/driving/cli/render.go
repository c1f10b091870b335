package cli

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// primaryMarker flags the most relevant product of a reply.
const primaryMarker = "★"

// productJSON is the JSON form of a recommended product.
type productJSON struct {
	ID       int64               `json:"id"`
	Title    string              `json:"title"`
	Brand    string              `json:"brand,omitempty"`
	Price    decimal.NullDecimal `json:"price"`
	ImageURL string              `json:"image_url,omitempty"`
	Rank     *int                `json:"rank,omitempty"`
	Primary  bool                `json:"primary"`
}

// messageJSON is the JSON form of a bot reply.
type messageJSON struct {
	SessionID        string        `json:"session_id"`
	Answer           string        `json:"answer"`
	PrimaryProductID *int64        `json:"primary_product_id,omitempty"`
	Products         []productJSON `json:"products"`
}

func newMessageJSON(sessionID string, m domain.Message) messageJSON {
	out := messageJSON{
		SessionID:        sessionID,
		Answer:           m.Text,
		PrimaryProductID: m.PrimaryProductID,
		Products:         make([]productJSON, len(m.Products)),
	}
	for i, p := range m.Products {
		out.Products[i] = productJSON{
			ID:       p.Identifier(),
			Title:    p.Title,
			Brand:    p.Brand,
			Price:    p.Price,
			ImageURL: p.ImageURL,
			Rank:     p.Rank,
			Primary:  m.IsPrimary(p),
		}
	}
	return out
}

// printMessage writes a transcript entry as plain text. Emphasis markers
// are dropped; paragraphs are separated by a blank line.
func printMessage(cmd *cobra.Command, m domain.Message) {
	label := "You"
	if m.IsBot() {
		label = "Stylist"
	}

	paras := m.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Plain()
	}
	cmd.Printf("%s: %s\n", label, strings.Join(texts, "\n\n"))

	if len(m.Products) == 0 {
		return
	}
	cmd.Println()
	for i, p := range m.Products {
		marker := " "
		if m.IsPrimary(p) {
			marker = primaryMarker
		}
		cmd.Printf("  %s %d. %s", marker, i+1, p.Title)
		if p.Brand != "" {
			cmd.Printf(" - %s", p.Brand)
		}
		cmd.Printf(" (%s) [#%d]\n", formatPrice(p.Price, ""), p.Identifier())
	}
}

// formatPrice renders a price with two decimals, or "n/a" when unknown.
func formatPrice(price decimal.NullDecimal, currency string) string {
	if !price.Valid {
		return "n/a"
	}
	if currency == "" {
		return price.Decimal.StringFixed(2)
	}
	return currency + " " + price.Decimal.StringFixed(2)
}
