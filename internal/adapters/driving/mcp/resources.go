package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for stylist resources.
	uriScheme = "stylist://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the first catalog page.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "products",
		Name:        "products",
		Description: "First page of the product catalog",
		MIMEType:    "application/json",
	}, s.handleProductsResource)

	// Template for a single product.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{productId}",
		Name:        "product",
		Description: "Full details of a catalog product",
		MIMEType:    "application/json",
	}, s.handleProductResource)
}

// handleProductsResource returns the first page of the catalog.
func (s *Server) handleProductsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	items, err := s.ports.Catalog.List(ctx, domain.ListOptions{Limit: defaultListLimit})
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	outputs := make([]CatalogItemOutput, len(items))
	for i := range items {
		outputs[i] = catalogItemOutput(&items[i])
	}

	data, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling products: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleProductResource returns a single catalog product.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id, ok := extractProductID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Catalog.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	data, err := json.MarshalIndent(catalogItemOutput(item), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling product: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractProductID extracts the product ID from a URI like stylist://products/{productId}.
func extractProductID(uri string) (int64, bool) {
	const prefix = uriScheme + "products/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
