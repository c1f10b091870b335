package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TextKind identifies which variant a TextValue carries.
type TextKind int

// Text value variants.
const (
	// TextNone is an absent or null value.
	TextNone TextKind = iota
	// TextString is a plain string.
	TextString
	// TextList is a sequence of values joined with spaces.
	TextList
	// TextOther is any other value, converted generically.
	TextOther
)

// TextValue is a heterogeneous text field as it arrives from the service.
// String normalises every variant to a single string.
type TextValue struct {
	kind  TextKind
	str   string
	list  []any
	other any
}

// NewText returns a string-valued TextValue.
func NewText(s string) TextValue {
	return TextValue{kind: TextString, str: s}
}

// TextFromAny classifies a decoded JSON value.
func TextFromAny(v any) TextValue {
	switch val := v.(type) {
	case nil:
		return TextValue{kind: TextNone}
	case string:
		return TextValue{kind: TextString, str: val}
	case []any:
		return TextValue{kind: TextList, list: val}
	case []string:
		list := make([]any, len(val))
		for i, s := range val {
			list[i] = s
		}
		return TextValue{kind: TextList, list: list}
	default:
		return TextValue{kind: TextOther, other: val}
	}
}

// Kind returns the variant.
func (t TextValue) Kind() TextKind {
	return t.kind
}

// String normalises the value: none is empty, lists join with single
// spaces, anything else uses a generic conversion that yields "" on failure.
func (t TextValue) String() string {
	switch t.kind {
	case TextString:
		return t.str
	case TextList:
		parts := make([]string, len(t.list))
		for i, item := range t.list {
			if item == nil {
				continue
			}
			parts[i] = stringify(item)
		}
		return strings.Join(parts, " ")
	case TextOther:
		return stringify(t.other)
	default:
		return ""
	}
}

// IsEmpty returns true if the normalised string is empty.
func (t TextValue) IsEmpty() bool {
	return t.String() == ""
}

// stringify converts an arbitrary value to text.
func stringify(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = ""
		}
	}()

	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		return TextFromAny(val).String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Span is a run of text within a paragraph.
type Span struct {
	Text     string
	Emphasis bool
}

// Paragraph is an ordered list of spans.
type Paragraph struct {
	Spans []Span
}

// Plain returns the paragraph text without emphasis markers.
func (p Paragraph) Plain() string {
	var b strings.Builder
	for _, s := range p.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// emphasisMarker delimits emphasised spans.
const emphasisMarker = "**"

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// RenderBotText segments bot text into paragraphs on runs of two or more
// newlines, and each paragraph into spans alternating plain and emphasised
// at every "**" marker, starting with plain. Empty segments are dropped.
func RenderBotText(text string) []Paragraph {
	if text == "" {
		return nil
	}

	raw := paragraphBreak.Split(text, -1)
	paragraphs := make([]Paragraph, 0, len(raw))
	for _, para := range raw {
		paragraphs = append(paragraphs, Paragraph{Spans: renderEmphasis(para)})
	}
	return paragraphs
}

// renderEmphasis splits a paragraph at emphasis markers.
func renderEmphasis(text string) []Span {
	parts := strings.Split(text, emphasisMarker)
	spans := make([]Span, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		spans = append(spans, Span{Text: part, Emphasis: i%2 == 1})
	}
	return spans
}
