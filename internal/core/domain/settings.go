package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default settings values.
const (
	DefaultAPIBaseURL  = "http://127.0.0.1:8000/api/v1"
	DefaultAPITimeout  = 60 * time.Second
	DefaultRateLimit   = 5.0
	DefaultRateBurst   = 5
	DefaultResultCount = 5
	MaxResultCount     = 50
)

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	API  APISettings
	Chat ChatSettings
}

// APISettings configures the storefront API client.
type APISettings struct {
	// BaseURL is the API root, e.g. http://127.0.0.1:8000/api/v1.
	BaseURL string

	// Timeout bounds each HTTP request. Zero disables the timeout.
	Timeout time.Duration

	// RateLimit is the sustained requests per second.
	RateLimit float64

	// Burst is the maximum burst size.
	Burst int
}

// ChatSettings configures chat sessions.
type ChatSettings struct {
	// ResultCount is k, the number of results requested per search.
	ResultCount int

	// Greeting seeds new sessions. Empty disables the greeting.
	Greeting string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   DefaultAPITimeout,
			RateLimit: DefaultRateLimit,
			Burst:     DefaultRateBurst,
		},
		Chat: ChatSettings{
			ResultCount: DefaultResultCount,
			Greeting:    DefaultGreeting,
		},
	}
}

// Validate checks settings for consistency.
func (s *AppSettings) Validate() error {
	if err := ValidateBaseURL(s.API.BaseURL); err != nil {
		return err
	}
	if s.API.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidInput)
	}
	if s.API.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidInput)
	}
	if s.API.Burst < 0 {
		return fmt.Errorf("%w: burst must not be negative", ErrInvalidInput)
	}
	if s.Chat.ResultCount < 1 || s.Chat.ResultCount > MaxResultCount {
		return fmt.Errorf("%w: result count must be between 1 and %d", ErrInvalidInput, MaxResultCount)
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: base url: %v", ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base url must use http or https", ErrInvalidInput)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: base url must include a host", ErrInvalidInput)
	}
	return nil
}
