// Package cli provides the cobra command tree for stylist.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stylist-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// WatchFunc blocks until ctx is cancelled, calling onChange whenever the
// settings source changes.
type WatchFunc func(ctx context.Context, onChange func()) error

// Services holds the core services the commands drive.
type Services struct {
	Chat     driving.ChatService
	Catalog  driving.CatalogService
	Settings driving.SettingsService

	// Endpoint is re-pointed by --api-base and by config reloads. Optional.
	Endpoint driven.Endpoint

	// Watch reports settings changes for long-running commands. Optional.
	Watch WatchFunc
}

var (
	chatService     driving.ChatService
	catalogService  driving.CatalogService
	settingsService driving.SettingsService
	endpoint        driven.Endpoint
	configWatch     WatchFunc
)

var (
	verbose bool
	apiBase string
)

var rootCmd = &cobra.Command{
	Use:   "stylist",
	Short: "Chat with the storefront stylist",
	Long: `Stylist is a terminal client for the storefront assistant.

Ask for outfits in plain words and get an answer with the matching
products, browse the catalog, or open the interactive terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: persistentPreRun,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "storefront API base URL (overrides config)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	chatService = s.Chat
	catalogService = s.Catalog
	settingsService = s.Settings
	endpoint = s.Endpoint
	configWatch = s.Watch
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func persistentPreRun(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if apiBase == "" {
		return nil
	}
	if err := domain.ValidateBaseURL(apiBase); err != nil {
		return fmt.Errorf("--api-base: %w", err)
	}
	if endpoint == nil {
		return errors.New("api endpoint not configured")
	}
	if err := endpoint.SetBaseURL(apiBase); err != nil {
		return fmt.Errorf("--api-base: %w", err)
	}
	logger.Debug("api base overridden: %s", apiBase)
	return nil
}

// startConfigWatch re-points the endpoint when the configured base URL
// changes, then calls onChange with the new URL. It returns immediately;
// watching stops when ctx is cancelled. An explicit --api-base pins the
// endpoint.
func startConfigWatch(ctx context.Context, onChange func(baseURL string)) {
	if configWatch == nil || settingsService == nil || endpoint == nil {
		return
	}

	go func() {
		err := configWatch(ctx, func() {
			if apiBase != "" {
				return
			}
			settings, err := settingsService.Get()
			if err != nil {
				logger.Warn("reload settings: %v", err)
				return
			}
			if settings.API.BaseURL == endpoint.BaseURL() {
				return
			}
			if err := endpoint.SetBaseURL(settings.API.BaseURL); err != nil {
				logger.Warn("apply api base: %v", err)
				return
			}
			logger.Info("api base changed: %s", settings.API.BaseURL)
			if onChange != nil {
				onChange(settings.API.BaseURL)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("config watch stopped: %v", err)
		}
	}()
}
