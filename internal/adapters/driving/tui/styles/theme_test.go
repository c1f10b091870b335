package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Highlight))
	assert.NotEmpty(t, string(theme.Background))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Success))
	assert.NotEmpty(t, string(theme.Warning))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Highlight,
		theme.Success,
		theme.Warning,
		theme.Error,
	}

	seen := make(map[string]bool)
	for _, c := range accents {
		s := string(c)
		assert.False(t, seen[s], "duplicate accent: %s", s)
		seen[s] = true
	}
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title":         styles.Title,
		"Subtitle":      styles.Subtitle,
		"Normal":        styles.Normal,
		"Muted":         styles.Muted,
		"Emphasis":      styles.Emphasis,
		"Selected":      styles.Selected,
		"PrimaryMarker": styles.PrimaryMarker,
		"Price":         styles.Price,
		"UserLabel":     styles.UserLabel,
		"BotLabel":      styles.BotLabel,
		"Error":         styles.Error,
		"Success":       styles.Success,
		"Warning":       styles.Warning,
		"InputField":    styles.InputField,
		"StatusBar":     styles.StatusBar,
		"Help":          styles.Help,
		"Border":        styles.Border,
	} {
		assert.NotEqual(t, lipgloss.Style{}, style, name)
	}
}

func TestStyles_RenderKeepsText(t *testing.T) {
	styles := DefaultStyles()

	assert.Contains(t, styles.Emphasis.Render("bold"), "bold")
	assert.Contains(t, styles.PrimaryMarker.Render("★"), "★")
	assert.Contains(t, styles.Price.Render("1999.00"), "1999.00")
}
