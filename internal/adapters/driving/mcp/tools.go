package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// defaultListLimit is used when list_products is called without a limit.
const defaultListLimit = 20

// errCatalogUnavailable is returned by catalog handlers without a catalog port.
var errCatalogUnavailable = errors.New("catalog is not available")

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query     string `json:"query" jsonschema:"what the shopper is looking for, in their own words"`
	SessionID string `json:"session_id,omitempty" jsonschema:"continue an earlier conversation; omit to start a new one"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	SessionID        string          `json:"session_id"`
	Answer           string          `json:"answer"`
	PrimaryProductID *int64          `json:"primary_product_id,omitempty"`
	Products         []ProductOutput `json:"products"`
}

// ProductOutput is a product recommended in an answer.
type ProductOutput struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Brand    string `json:"brand,omitempty"`
	Price    string `json:"price,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Rank     *int   `json:"rank,omitempty"`
	Primary  bool   `json:"primary,omitempty"`
}

// ListProductsInput is the input schema for the list_products tool.
type ListProductsInput struct {
	Skip     int    `json:"skip,omitempty" jsonschema:"number of products to skip"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of products (1-100, default 20)"`
	Category string `json:"category,omitempty" jsonschema:"only list products in this category"`
}

// ListProductsOutput is the output schema for the list_products tool.
type ListProductsOutput struct {
	Products []CatalogItemOutput `json:"products"`
	Count    int                 `json:"count"`
}

// GetProductInput is the input schema for the get_product tool.
type GetProductInput struct {
	ID int64 `json:"id" jsonschema:"the catalog product id"`
}

// CatalogItemOutput is a full catalog entry.
type CatalogItemOutput struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Brand         string               `json:"brand,omitempty"`
	Price         string               `json:"price,omitempty"`
	Currency      string               `json:"currency,omitempty"`
	Category      string               `json:"category,omitempty"`
	Description   string               `json:"description,omitempty"`
	URL           string               `json:"url,omitempty"`
	ImageURL      string               `json:"image_url,omitempty"`
	Features      []string             `json:"features,omitempty"`
	FeatureGroups []FeatureGroupOutput `json:"feature_groups,omitempty"`
}

// FeatureGroupOutput is a labelled list of features.
type FeatureGroupOutput struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask the stylist for outfit or product recommendations",
	}, s.handleAsk)

	if s.ports.Catalog == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_products",
		Description: "List catalog products, optionally by category",
	}, s.handleListProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get full details of a catalog product",
	}, s.handleGetProduct)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, AskOutput{}, domain.ErrEmptyQuery
	}

	session, err := s.session(input.SessionID)
	if err != nil {
		return nil, AskOutput{}, err
	}

	reply, err := session.Submit(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, err
	}
	s.register(session)

	output := AskOutput{
		SessionID:        session.ID(),
		Answer:           plainText(reply),
		PrimaryProductID: reply.PrimaryProductID,
		Products:         make([]ProductOutput, len(reply.Products)),
	}
	for i, p := range reply.Products {
		output.Products[i] = ProductOutput{
			ID:       p.Identifier(),
			Title:    p.Title,
			Brand:    p.Brand,
			Price:    formatPrice(p.Price),
			ImageURL: p.ImageURL,
			Rank:     p.Rank,
			Primary:  reply.IsPrimary(p),
		}
	}

	return nil, output, nil
}

// handleListProducts handles the list_products tool invocation.
func (s *Server) handleListProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListProductsInput,
) (*mcp.CallToolResult, ListProductsOutput, error) {
	if s.ports.Catalog == nil {
		return nil, ListProductsOutput{}, errCatalogUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	items, err := s.ports.Catalog.List(ctx, domain.ListOptions{
		Skip:     input.Skip,
		Limit:    limit,
		Category: input.Category,
	})
	if err != nil {
		return nil, ListProductsOutput{}, err
	}

	output := ListProductsOutput{
		Products: make([]CatalogItemOutput, len(items)),
		Count:    len(items),
	}
	for i := range items {
		output.Products[i] = catalogItemOutput(&items[i])
	}

	return nil, output, nil
}

// handleGetProduct handles the get_product tool invocation.
func (s *Server) handleGetProduct(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetProductInput,
) (*mcp.CallToolResult, CatalogItemOutput, error) {
	if s.ports.Catalog == nil {
		return nil, CatalogItemOutput{}, errCatalogUnavailable
	}

	item, err := s.ports.Catalog.Get(ctx, input.ID)
	if err != nil {
		return nil, CatalogItemOutput{}, err
	}

	return nil, catalogItemOutput(item), nil
}

// catalogItemOutput converts a catalog item to its tool output.
func catalogItemOutput(item *domain.CatalogItem) CatalogItemOutput {
	out := CatalogItemOutput{
		ID:          item.ID,
		Title:       item.Title,
		Brand:       item.Brand,
		Price:       formatPrice(item.Price),
		Currency:    item.Currency,
		Category:    item.Category,
		Description: item.Description,
		URL:         item.URL,
		ImageURL:    item.ImageURL,
		Features:    item.Features.List,
	}
	for _, g := range item.Features.Groups {
		if len(g.Items) == 0 {
			continue
		}
		out.FeatureGroups = append(out.FeatureGroups, FeatureGroupOutput{Label: g.Label, Items: g.Items})
	}
	return out
}

// plainText renders message text without emphasis markers.
func plainText(m domain.Message) string {
	paras := m.Paragraphs()
	parts := make([]string, len(paras))
	for i, p := range paras {
		parts[i] = p.Plain()
	}
	return strings.Join(parts, "\n\n")
}

// formatPrice renders a known price as a decimal string.
func formatPrice(price decimal.NullDecimal) string {
	if !price.Valid {
		return ""
	}
	return price.Decimal.String()
}
