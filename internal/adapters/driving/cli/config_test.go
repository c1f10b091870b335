package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
	assert.Equal(t, "Manage application settings", configCmd.Short)
}

func TestConfigGetCmd_AllKeys(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "get")

	require.NoError(t, err)
	assert.Contains(t, out, `api.base_url = "`+domain.DefaultAPIBaseURL+`"`)
	assert.Contains(t, out, `chat.result_count = "5"`)
	assert.NotContains(t, out, "Warning")
}

func TestConfigGetCmd_WarnsWhenInvalid(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	settingsService.(*MockSettingsService).Invalid = errors.New("base url must use http or https")

	out, err := execute(t, "config", "get")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: base url must use http or https")
}

func TestConfigGetCmd_SingleKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "get", "chat.result_count")

	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestConfigGetCmd_UnknownKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "config", "get", "nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "set", "chat.result_count", "8")

	require.NoError(t, err)
	assert.Contains(t, out, `Set chat.result_count = "8"`)
	assert.Equal(t, "8", settingsService.(*MockSettingsService).Values["chat.result_count"])
}

func TestConfigSetCmd_Error(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	settingsService.(*MockSettingsService).SetErr = domain.ErrInvalidInput

	_, err := execute(t, "config", "set", "chat.result_count", "500")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set chat.result_count")
}

func TestConfigSetCmd_RequiresTwoArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "config", "set", "chat.result_count")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigPathCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/stylist/config.toml\n", out)
}

func TestConfigCmd_NoSettingsService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	for _, args := range [][]string{{"config", "get"}, {"config", "set", "a", "b"}, {"config", "path"}} {
		_, err := execute(t, args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settings service not configured")
	}
}
