package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".stylist", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[api]
base_url = "https://shop.example.com/api/v1"
timeout_seconds = 30
rate_limit = 2.5
burst = 3

[chat]
result_count = 8
greeting = ""
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/api/v1", store.GetString("api.base_url"))
	assert.Equal(t, 30, store.GetInt("api.timeout_seconds"))
	assert.InDelta(t, 2.5, store.GetFloat("api.rate_limit"), 1e-9)
	assert.InDelta(t, 3.0, store.GetFloat("api.burst"), 1e-9)
	assert.Equal(t, 8, store.GetInt("chat.result_count"))
	val, ok := store.Get("chat.greeting")
	assert.True(t, ok)
	assert.Equal(t, "", val)
	assert.Equal(t, []string{
		"api.base_url", "api.burst", "api.rate_limit", "api.timeout_seconds",
		"chat.greeting", "chat.result_count",
	}, store.Keys())
}

func TestConfigStore_WritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "http://10.0.0.2:8000/api/v1"))
	require.NoError(t, store.Set("chat.result_count", int64(7)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[api]")
	assert.Contains(t, string(data), "[chat]")
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("api.base_url", "http://a/api"))
	require.NoError(t, store1.Set("api.timeout_seconds", 42))
	require.NoError(t, store1.Set("api.rate_limit", 0.5))
	require.NoError(t, store1.Set("top", "level"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://a/api", store2.GetString("api.base_url"))
	assert.Equal(t, 42, store2.GetInt("api.timeout_seconds"))
	assert.InDelta(t, 0.5, store2.GetFloat("api.rate_limit"), 1e-9)
	assert.Equal(t, "level", store2.GetString("top"))
}

func TestConfigStore_GetTypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("n", int64(3)))

	assert.Empty(t, store.GetString("n"))
	assert.Zero(t, store.GetInt("s"))
	assert.Zero(t, store.GetFloat("s"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_WriteFileErrorRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("kept", "value"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("another", "value")

	assert.Error(t, err)
	_, ok := store.Get("another")
	assert.False(t, ok)
	assert.Equal(t, "value", store.GetString("kept"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("valid", "data"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"api.base_url":  "x",
		"api.burst":     int64(2),
		"chat":          "scalar",
		"chat.greeting": "hi",
		"top":           true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{"base_url": "x", "burst": int64(2)}, nested["api"])
	assert.Equal(t, "scalar", nested["chat"])
	assert.Equal(t, "hi", nested["chat.greeting"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, flat, flattenMap(nested, ""))
}
