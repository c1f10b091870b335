package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL      = "api.base_url"
	KeyAPITimeout      = "api.timeout_seconds"
	KeyAPIRateLimit    = "api.rate_limit"
	KeyAPIBurst        = "api.burst"
	KeyChatResultCount = "chat.result_count"
	KeyChatGreeting    = "chat.greeting"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	overlay     driven.SettingsOverlay
}

// NewSettingsService creates a new settings service.
// The overlay is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, overlay driven.SettingsOverlay) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		overlay:     overlay,
	}
}

// Get resolves current settings. Stored values override defaults and the
// overlay overrides both.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()

	if s.overlay != nil {
		if err := s.overlay.Apply(settings); err != nil {
			return nil, fmt.Errorf("apply overrides: %w", err)
		}
	}

	return settings, nil
}

// stored returns defaults merged with stored values, without overrides.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			Timeout:   s.getSeconds(KeyAPITimeout, defaults.API.Timeout),
			RateLimit: s.getFloat(KeyAPIRateLimit, defaults.API.RateLimit),
			Burst:     s.getInt(KeyAPIBurst, defaults.API.Burst),
		},
		Chat: domain.ChatSettings{
			ResultCount: s.getInt(KeyChatResultCount, defaults.Chat.ResultCount),
			Greeting:    s.getStringOrEmpty(KeyChatGreeting, defaults.Chat.Greeting),
		},
	}
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyAPIBaseURL, settings.API.BaseURL); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(KeyAPITimeout, int64(settings.API.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if err := s.configStore.Set(KeyAPIRateLimit, settings.API.RateLimit); err != nil {
		return fmt.Errorf("save api rate_limit: %w", err)
	}
	if err := s.configStore.Set(KeyAPIBurst, int64(settings.API.Burst)); err != nil {
		return fmt.Errorf("save api burst: %w", err)
	}
	if err := s.configStore.Set(KeyChatResultCount, int64(settings.Chat.ResultCount)); err != nil {
		return fmt.Errorf("save chat result_count: %w", err)
	}
	if err := s.configStore.Set(KeyChatGreeting, settings.Chat.Greeting); err != nil {
		return fmt.Errorf("save chat greeting: %w", err)
	}

	return nil
}

// GetValue returns the effective value of a single key as text.
func (s *SettingsService) GetValue(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case KeyAPIBaseURL:
		return settings.API.BaseURL, nil
	case KeyAPITimeout:
		return strconv.FormatInt(int64(settings.API.Timeout/time.Second), 10), nil
	case KeyAPIRateLimit:
		return strconv.FormatFloat(settings.API.RateLimit, 'f', -1, 64), nil
	case KeyAPIBurst:
		return strconv.Itoa(settings.API.Burst), nil
	case KeyChatResultCount:
		return strconv.Itoa(settings.Chat.ResultCount), nil
	case KeyChatGreeting:
		return settings.Chat.Greeting, nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// SetValue parses, validates and persists a single key. Overrides are not
// consulted, so a stored value is never replaced by an environment value.
func (s *SettingsService) SetValue(key, value string) error {
	settings := s.stored()

	switch key {
	case KeyAPIBaseURL:
		settings.API.BaseURL = value
	case KeyAPITimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number of seconds", domain.ErrInvalidInput, key)
		}
		settings.API.Timeout = time.Duration(n) * time.Second
	case KeyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.API.RateLimit = f
	case KeyAPIBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.API.Burst = n
	case KeyChatResultCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Chat.ResultCount = n
	case KeyChatGreeting:
		settings.Chat.Greeting = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the supported setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyAPIBaseURL,
		KeyAPITimeout,
		KeyAPIRateLimit,
		KeyAPIBurst,
		KeyChatResultCount,
		KeyChatGreeting,
	}
	sort.Strings(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Validate checks the effective settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getStringOrEmpty distinguishes a stored empty string from an absent key.
func (s *SettingsService) getStringOrEmpty(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}
