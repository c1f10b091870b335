package environ

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

func TestOverlay_NoVariables(t *testing.T) {
	settings := domain.DefaultAppSettings()

	err := NewOverlayFromMap(map[string]string{}).Apply(&settings)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestOverlay_AppliesVariables(t *testing.T) {
	settings := domain.DefaultAppSettings()
	overlay := NewOverlayFromMap(map[string]string{
		"STYLIST_API_BASE_URL": "https://shop.example.com/api/v1",
		"STYLIST_API_TIMEOUT":  "15s",
		"STYLIST_RESULT_COUNT": "9",
		"API_BASE_URL":         "http://unprefixed/ignored",
	})

	require.NoError(t, overlay.Apply(&settings))

	assert.Equal(t, "https://shop.example.com/api/v1", settings.API.BaseURL)
	assert.Equal(t, 15*time.Second, settings.API.Timeout)
	assert.Equal(t, 9, settings.Chat.ResultCount)
	assert.Equal(t, domain.DefaultRateLimit, settings.API.RateLimit)
}

func TestOverlay_PartialLeavesOthers(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.API.BaseURL = "http://from-file/api/v1"

	err := NewOverlayFromMap(map[string]string{"STYLIST_RESULT_COUNT": "3"}).Apply(&settings)

	require.NoError(t, err)
	assert.Equal(t, "http://from-file/api/v1", settings.API.BaseURL)
	assert.Equal(t, 3, settings.Chat.ResultCount)
}

func TestOverlay_InvalidValue(t *testing.T) {
	tests := map[string]string{
		"STYLIST_API_TIMEOUT":  "soon",
		"STYLIST_RESULT_COUNT": "many",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			settings := domain.DefaultAppSettings()

			err := NewOverlayFromMap(map[string]string{key: value}).Apply(&settings)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, domain.DefaultAppSettings(), settings)
		})
	}
}

func TestOverlay_ProcessEnvironment(t *testing.T) {
	t.Setenv("STYLIST_API_BASE_URL", "http://env.local:9000/api/v1")
	settings := domain.DefaultAppSettings()

	require.NoError(t, NewOverlay().Apply(&settings))

	assert.Equal(t, "http://env.local:9000/api/v1", settings.API.BaseURL)
}
