// Package environ overlays environment variables onto stored settings.
//
// Recognised variables:
//
//	STYLIST_API_BASE_URL   API root, e.g. https://shop.example.com/api/v1
//	STYLIST_API_TIMEOUT    request timeout as a Go duration, e.g. 30s
//	STYLIST_RESULT_COUNT   results requested per search (k)
//
// Unset variables leave the stored value in place.
package environ

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driven"
)

// Ensure Overlay implements the interface.
var _ driven.SettingsOverlay = (*Overlay)(nil)

// overrides mirrors the recognised variables. Nil means unset.
type overrides struct {
	BaseURL     *string        `env:"API_BASE_URL"`
	Timeout     *time.Duration `env:"API_TIMEOUT"`
	ResultCount *int           `env:"RESULT_COUNT"`
}

// Prefix is prepended to every variable name.
const Prefix = "STYLIST_"

// Overlay applies STYLIST_* environment variables over settings.
type Overlay struct {
	environment map[string]string
}

// NewOverlay reads from the process environment.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// NewOverlayFromMap reads from the given variables instead of the process
// environment.
func NewOverlayFromMap(environment map[string]string) *Overlay {
	return &Overlay{environment: environment}
}

// Apply overwrites fields of settings for which a variable is set.
func (o *Overlay) Apply(settings *domain.AppSettings) error {
	var ov overrides
	opts := env.Options{Prefix: Prefix}
	if o.environment != nil {
		opts.Environment = o.environment
	}
	if err := env.ParseWithOptions(&ov, opts); err != nil {
		return fmt.Errorf("%w: environment: %v", domain.ErrInvalidInput, err)
	}

	if ov.BaseURL != nil && *ov.BaseURL != "" {
		settings.API.BaseURL = *ov.BaseURL
	}
	if ov.Timeout != nil {
		settings.API.Timeout = *ov.Timeout
	}
	if ov.ResultCount != nil {
		settings.Chat.ResultCount = *ov.ResultCount
	}
	return nil
}
