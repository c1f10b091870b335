package domain

import (
	"github.com/shopspring/decimal"
)

// Product is the chat-result view of a catalog item returned by the search service.
// It is a read-only projection owned by the Message that references it.
type Product struct {
	// ID is the catalog identifier reported as "id".
	ID int64

	// ProductID is the identifier reported as "product_id", when present.
	// It takes precedence over ID.
	ProductID *int64

	// Title is the display name used for matching against answer text.
	Title string

	// Brand is the manufacturer or label.
	Brand string

	// Price is the listed price, if known.
	Price decimal.NullDecimal

	// ImageURL points at the product image.
	ImageURL string

	// Rank is the position assigned by the ranking service, if any.
	Rank *int
}

// Identifier returns ProductID when present, otherwise ID.
func (p Product) Identifier() int64 {
	if p.ProductID != nil {
		return *p.ProductID
	}
	return p.ID
}

// HasRank returns true if the ranking service assigned a rank.
func (p Product) HasRank() bool {
	return p.Rank != nil
}

// CatalogItem is a full catalog entry as served by the products endpoints.
type CatalogItem struct {
	// ID is the catalog database identifier.
	ID int64

	// ExternalID is the identifier on the originating store, if scraped.
	ExternalID string

	// Title is the product name.
	Title string

	// Brand is the manufacturer or label.
	Brand string

	// Price is the listed price, if known.
	Price decimal.NullDecimal

	// Currency is the ISO code of Price, if reported.
	Currency string

	// Description is plain text; markup is stripped when decoded.
	Description string

	// Category groups similar items (e.g. "hoodie").
	Category string

	// ImageURL points at the product image.
	ImageURL string

	// URL is the product page on the originating store.
	URL string

	// Features describes the product's attributes.
	Features Features
}

// Product projects the catalog item into its chat-result view.
func (c CatalogItem) Product() Product {
	return Product{
		ID:       c.ID,
		Title:    c.Title,
		Brand:    c.Brand,
		Price:    c.Price,
		ImageURL: c.ImageURL,
	}
}

// Feature group labels, in display order.
const (
	FeatureGroupProduct  = "Product features"
	FeatureGroupFabric   = "Fabric features"
	FeatureGroupFunction = "Function"
)

// Features holds catalog attributes in one of two shapes: a flat list,
// or labelled groups as produced by the store scraper.
type Features struct {
	// List is set when the catalog reports a flat list of features.
	List []string

	// Groups is set when the catalog reports grouped features.
	Groups []FeatureGroup
}

// FeatureGroup is a labelled list of features.
type FeatureGroup struct {
	Label string
	Items []string
}

// IsEmpty returns true if no features are present in either shape.
func (f Features) IsEmpty() bool {
	if len(f.List) > 0 {
		return false
	}
	for _, g := range f.Groups {
		if len(g.Items) > 0 {
			return false
		}
	}
	return true
}

// IsGrouped returns true if the features use the grouped shape.
func (f Features) IsGrouped() bool {
	return len(f.List) == 0 && len(f.Groups) > 0
}

// ListOptions configures a catalog listing.
type ListOptions struct {
	// Skip is the number of items to skip.
	Skip int

	// Limit is the maximum number of items (1..100, 0 uses the server default).
	Limit int

	// Category filters to a single category.
	Category string
}

// Validate checks the options against the catalog API's accepted ranges.
func (o ListOptions) Validate() error {
	if o.Skip < 0 {
		return ErrInvalidInput
	}
	if o.Limit < 0 || o.Limit > MaxListLimit {
		return ErrInvalidInput
	}
	if len(o.Category) > MaxCategoryLength {
		return ErrInvalidInput
	}
	return nil
}

// Catalog listing limits.
const (
	MaxListLimit      = 100
	MaxCategoryLength = 100
)

// SearchRequest is the body sent to the search endpoint.
type SearchRequest struct {
	// Query is the user's free text.
	Query string

	// K is the number of results requested.
	K int
}

// SearchResponse is the search endpoint's reply.
type SearchResponse struct {
	// Answer is the narrative text, possibly absent or of an unexpected type.
	Answer TextValue

	// Results are the ranked products in service order.
	Results []Product

	// PrimaryProductID designates the most relevant result, if the service chose one.
	PrimaryProductID *int64
}
