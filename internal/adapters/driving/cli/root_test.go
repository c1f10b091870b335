package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
)

// MockChatSession implements driving.ChatSession for CLI tests.
type MockChatSession struct {
	ReplyFunc func(query string) (domain.Message, error)

	messages []domain.Message
	queries  []string
}

func (m *MockChatSession) ID() string { return "session-test" }

func (m *MockChatSession) Submit(_ context.Context, query string) (domain.Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Message{}, domain.ErrEmptyQuery
	}
	m.queries = append(m.queries, query)
	m.messages = append(m.messages, domain.NewUserMessage(int64(len(m.messages)+1), query))

	reply := domain.NewBotMessage(int64(len(m.messages)+1), "You said: "+query)
	if m.ReplyFunc != nil {
		var err error
		reply, err = m.ReplyFunc(query)
		if err != nil {
			return domain.Message{}, err
		}
	}
	m.messages = append(m.messages, reply)
	return reply, nil
}

func (m *MockChatSession) Messages() []domain.Message { return m.messages }

func (m *MockChatSession) InFlight() bool { return false }

// MockChatService implements driving.ChatService for CLI tests.
type MockChatService struct {
	Greeting  string
	ReplyFunc func(query string) (domain.Message, error)

	Sessions []*MockChatSession
}

func (m *MockChatService) NewSession() driving.ChatSession {
	sess := &MockChatSession{ReplyFunc: m.ReplyFunc}
	if m.Greeting != "" {
		sess.messages = []domain.Message{domain.NewBotMessage(0, m.Greeting)}
	}
	m.Sessions = append(m.Sessions, sess)
	return sess
}

// MockCatalogService implements driving.CatalogService for CLI tests.
type MockCatalogService struct {
	ListFunc func(ctx context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error)
	GetFunc  func(ctx context.Context, id int64) (*domain.CatalogItem, error)
}

func (m *MockCatalogService) List(ctx context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, opts)
	}
	return []domain.CatalogItem{}, nil
}

func (m *MockCatalogService) Get(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	mu       sync.Mutex
	Values   map[string]string
	BaseURL  string
	SetErr   error
	Invalid  error
	FilePath string
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := domain.DefaultAppSettings()
	if m.BaseURL != "" {
		s.API.BaseURL = m.BaseURL
	}
	return &s, nil
}

func (m *MockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *MockSettingsService) GetValue(key string) (string, error) {
	v, ok := m.Values[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
	return v, nil
}

func (m *MockSettingsService) SetValue(key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if _, ok := m.Values[key]; !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
	m.Values[key] = value
	return nil
}

func (m *MockSettingsService) Keys() []string {
	return []string{"api.base_url", "chat.result_count"}
}

func (m *MockSettingsService) Path() string { return m.FilePath }

func (m *MockSettingsService) Validate() error { return m.Invalid }

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *MockSettingsService) setBaseURL(u string) {
	m.mu.Lock()
	m.BaseURL = u
	m.mu.Unlock()
}

// MockEndpoint implements driven.Endpoint for CLI tests.
type MockEndpoint struct {
	mu  sync.Mutex
	url string
}

func (m *MockEndpoint) BaseURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

func (m *MockEndpoint) SetBaseURL(u string) error {
	if err := domain.ValidateBaseURL(u); err != nil {
		return err
	}
	m.mu.Lock()
	m.url = u
	m.mu.Unlock()
	return nil
}

// setupTestServices installs mock services and returns a cleanup function
// that restores the previous services and resets flag state.
func setupTestServices() func() {
	origChat, origCatalog, origSettings := chatService, catalogService, settingsService
	origEndpoint, origWatch := endpoint, configWatch
	origTerminal := isTerminal

	SetServices(Services{
		Chat:    &MockChatService{},
		Catalog: &MockCatalogService{},
		Settings: &MockSettingsService{
			Values:   map[string]string{"api.base_url": domain.DefaultAPIBaseURL, "chat.result_count": "5"},
			FilePath: "/tmp/stylist/config.toml",
		},
		Endpoint: &MockEndpoint{url: domain.DefaultAPIBaseURL},
	})
	isTerminal = func() bool { return false }

	return func() {
		chatService, catalogService, settingsService = origChat, origCatalog, origSettings
		endpoint, configWatch = origEndpoint, origWatch
		isTerminal = origTerminal

		verbose, apiBase = false, ""
		askJSON = false
		productsCategory, productsLimit, productsSkip = "", 20, 0
		productsJSON, productShowJSON = false, false

		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}
}

func timeout() <-chan time.Time {
	return time.After(2 * time.Second)
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "stylist", rootCmd.Use)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"ask", "chat", "products", "config", "tui", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("api-base"))
}

func TestSetServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	chat := &MockChatService{}
	catalog := &MockCatalogService{}
	SetServices(Services{Chat: chat, Catalog: catalog})

	assert.Equal(t, chat, chatService)
	assert.Equal(t, catalog, catalogService)
	assert.Nil(t, settingsService)
	assert.Nil(t, endpoint)
}

func TestSetVersion(t *testing.T) {
	orig := version
	defer func() { version = orig }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestAPIBaseFlag_RepointsEndpoint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "--api-base", "https://shop.example.com/api/v1", "version")

	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api/v1", endpoint.BaseURL())
}

func TestAPIBaseFlag_RejectsInvalidURL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "--api-base", "ftp://shop.example.com", "version")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.DefaultAPIBaseURL, endpoint.BaseURL())
}

func TestAPIBaseFlag_RequiresEndpoint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	endpoint = nil

	_, err := execute(t, "--api-base", "http://localhost:9000/api/v1", "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint not configured")
}

func TestStartConfigWatch_RepointsEndpoint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	settings := settingsService.(*MockSettingsService)
	settings.setBaseURL("http://10.0.0.5:8000/api/v1")
	configWatch = func(_ context.Context, onChange func()) error {
		onChange()
		return nil
	}

	changed := make(chan string, 1)
	startConfigWatch(context.Background(), func(baseURL string) { changed <- baseURL })

	select {
	case got := <-changed:
		assert.Equal(t, "http://10.0.0.5:8000/api/v1", got)
	case <-timeout():
		t.Fatal("onChange was not called")
	}
	assert.Equal(t, "http://10.0.0.5:8000/api/v1", endpoint.BaseURL())
}

func TestStartConfigWatch_PinnedByFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	apiBase = "http://pinned:1/api"
	settingsService.(*MockSettingsService).setBaseURL("http://10.0.0.5:8000/api/v1")

	done := make(chan struct{})
	configWatch = func(_ context.Context, onChange func()) error {
		onChange()
		close(done)
		return nil
	}

	called := false
	startConfigWatch(context.Background(), func(string) { called = true })

	select {
	case <-done:
	case <-timeout():
		t.Fatal("watch did not run")
	}
	assert.False(t, called)
	assert.Equal(t, domain.DefaultAPIBaseURL, endpoint.BaseURL())
}

func TestStartConfigWatch_UnchangedURLIsIgnored(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	done := make(chan struct{})
	configWatch = func(_ context.Context, onChange func()) error {
		onChange()
		close(done)
		return nil
	}

	called := false
	startConfigWatch(context.Background(), func(string) { called = true })

	select {
	case <-done:
	case <-timeout():
		t.Fatal("watch did not run")
	}
	assert.False(t, called)
}

func TestStartConfigWatch_NoWatchIsNoop(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	assert.NotPanics(t, func() {
		startConfigWatch(context.Background(), nil)
	})
}
