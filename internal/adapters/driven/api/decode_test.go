package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

func TestFlexInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{`7`, 7, false},
		{`"12"`, 12, false},
		{`" 13 "`, 13, false},
		{`3.0`, 3, false},
		{`1e3`, 1000, false},
		{`3.5`, 0, true},
		{`"abc"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f flexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, int64(f))
		})
	}
}

func TestFlexInt_NullLeavesPointerNil(t *testing.T) {
	var v struct {
		ID *flexInt `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &v))

	assert.Nil(t, v.ID)
	assert.Nil(t, v.ID.int64Ptr())
	assert.Nil(t, v.ID.intPtr())
}

func TestOptionalInt(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{`4`, intPtr(4)},
		{`"6"`, intPtr(6)},
		{`2.0`, intPtr(2)},
		{`null`, nil},
		{`2.5`, nil},
		{`"first"`, nil},
		{`[1]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var o optionalInt
			require.NoError(t, json.Unmarshal([]byte(tt.input), &o))
			assert.Equal(t, tt.want, o.v)
		})
	}
}

func intPtr(v int) *int { return &v }

func TestDecodeFeatures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Features
	}{
		{"absent", ``, domain.Features{}},
		{"null", `null`, domain.Features{}},
		{"list", `["Slim fit", 42, null]`, domain.Features{List: []string{"Slim fit", "42"}}},
		{"string", `"Water resistant"`, domain.Features{List: []string{"Water resistant"}}},
		{"blank string", `"  "`, domain.Features{}},
		{
			"grouped",
			`{"fabric_features": ["Cotton"], "product_features": ["Hooded"]}`,
			domain.Features{Groups: []domain.FeatureGroup{
				{Label: domain.FeatureGroupProduct, Items: []string{"Hooded"}},
				{Label: domain.FeatureGroupFabric, Items: []string{"Cotton"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeFeatures(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Soft cotton tee", "Soft cotton tee"},
		{"plain keeps spacing", "Line one\nLine two", "Line one\nLine two"},
		{"inline markup", "<b>Bold</b>   claim", "Bold claim"},
		{"paragraphs", "<p>One</p>\n<p>Two <em>words</em></p>", "One\n\nTwo words"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, htmlToText(tt.input))
		})
	}
}

func TestDecodeCatalogPage_Invalid(t *testing.T) {
	_, err := decodeCatalogPage([]byte(`"not a page"`))
	assert.Error(t, err)

	_, err = decodeCatalogPage([]byte(`[{"id": "x"}]`))
	assert.Error(t, err)
}
