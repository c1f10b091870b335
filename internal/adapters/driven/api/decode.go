package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// flexInt decodes an integer sent as a JSON number or a numeric string.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || fl != math.Trunc(fl) || math.IsInf(fl, 0) {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = flexInt(fl)
	return nil
}

func (f *flexInt) int64Ptr() *int64 {
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}

func (f *flexInt) intPtr() *int {
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

// optionalInt decodes like flexInt but treats null and unusable values as
// absent, so one malformed optional field does not fail the whole payload.
type optionalInt struct {
	v *int
}

func (o *optionalInt) UnmarshalJSON(data []byte) error {
	o.v = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var f flexInt
	if err := f.UnmarshalJSON(data); err != nil {
		return nil
	}
	o.v = f.intPtr()
	return nil
}

// searchRequest is the /search request body.
type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// searchResponse is the /search response body.
type searchResponse struct {
	Answer           json.RawMessage `json:"answer"`
	Results          []productResult `json:"results"`
	PrimaryProductID *flexInt        `json:"primary_product_id"`
}

// productResult is one /search result.
type productResult struct {
	ID        flexInt             `json:"id"`
	ProductID *flexInt            `json:"product_id"`
	Title     string              `json:"title"`
	Brand     string              `json:"brand"`
	Price     decimal.NullDecimal `json:"price"`
	ImageURL  string              `json:"image_url"`
	Rank      optionalInt         `json:"rank"`
}

func (r productResult) toDomain() domain.Product {
	return domain.Product{
		ID:        int64(r.ID),
		ProductID: r.ProductID.int64Ptr(),
		Title:     r.Title,
		Brand:     r.Brand,
		Price:     r.Price,
		ImageURL:  r.ImageURL,
		Rank:      r.Rank.v,
	}
}

func (r searchResponse) toDomain() (*domain.SearchResponse, error) {
	answer, err := decodeText(r.Answer)
	if err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}

	results := make([]domain.Product, len(r.Results))
	for i := range r.Results {
		results[i] = r.Results[i].toDomain()
	}

	return &domain.SearchResponse{
		Answer:           answer,
		Results:          results,
		PrimaryProductID: r.PrimaryProductID.int64Ptr(),
	}, nil
}

// catalogItem is a /products entry.
type catalogItem struct {
	ID          flexInt             `json:"id"`
	ExternalID  json.RawMessage     `json:"external_id"`
	Title       string              `json:"title"`
	Brand       string              `json:"brand"`
	Price       decimal.NullDecimal `json:"price"`
	Currency    string              `json:"currency"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	ImageURL    string              `json:"image_url"`
	URL         string              `json:"url"`
	Features    json.RawMessage     `json:"features"`
}

func (c catalogItem) toDomain() (domain.CatalogItem, error) {
	externalID, err := decodeText(c.ExternalID)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("decode external_id: %w", err)
	}
	features, err := decodeFeatures(c.Features)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("decode features: %w", err)
	}

	return domain.CatalogItem{
		ID:          int64(c.ID),
		ExternalID:  externalID.String(),
		Title:       c.Title,
		Brand:       c.Brand,
		Price:       c.Price,
		Currency:    c.Currency,
		Description: htmlToText(c.Description),
		Category:    c.Category,
		ImageURL:    c.ImageURL,
		URL:         c.URL,
		Features:    features,
	}, nil
}

// decodeCatalogPage accepts a bare array or an {items: [...]} envelope.
func decodeCatalogPage(data []byte) ([]domain.CatalogItem, error) {
	data = bytes.TrimSpace(data)

	var raw []catalogItem
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Items []catalogItem `json:"items"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, err
		}
		raw = envelope.Items
	}

	items := make([]domain.CatalogItem, 0, len(raw))
	for _, r := range raw {
		item, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeText classifies a raw JSON value as a domain.TextValue.
func decodeText(raw json.RawMessage) (domain.TextValue, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.TextFromAny(nil), nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.TextValue{}, err
	}
	return domain.TextFromAny(v), nil
}

// featureGroupKeys maps grouped feature keys to labels, in display order.
var featureGroupKeys = []struct {
	key   string
	label string
}{
	{"product_features", domain.FeatureGroupProduct},
	{"fabric_features", domain.FeatureGroupFabric},
	{"function", domain.FeatureGroupFunction},
}

// decodeFeatures accepts a flat list or an object of grouped lists.
// Unknown group keys are ignored.
func decodeFeatures(raw json.RawMessage) (domain.Features, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.Features{}, nil
	}

	switch raw[0] {
	case '[':
		var list []any
		if err := json.Unmarshal(raw, &list); err != nil {
			return domain.Features{}, err
		}
		return domain.Features{List: textList(list)}, nil
	case '{':
		var grouped map[string][]any
		if err := json.Unmarshal(raw, &grouped); err != nil {
			return domain.Features{}, err
		}
		var groups []domain.FeatureGroup
		for _, g := range featureGroupKeys {
			items := textList(grouped[g.key])
			if len(items) == 0 {
				continue
			}
			groups = append(groups, domain.FeatureGroup{Label: g.label, Items: items})
		}
		return domain.Features{Groups: groups}, nil
	default:
		text, err := decodeText(raw)
		if err != nil {
			return domain.Features{}, err
		}
		if s := strings.TrimSpace(text.String()); s != "" {
			return domain.Features{List: []string{s}}, nil
		}
		return domain.Features{}, nil
	}
}

// textList normalises list elements to non-empty strings.
func textList(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(domain.TextFromAny(item).String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// htmlToText reduces scraped HTML to plain text. Text without markup is
// returned unchanged.
func htmlToText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	var paragraphs []string
	doc.Find("p, li").Each(func(_ int, sel *goquery.Selection) {
		if text := collapseSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n\n")
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
