// Command stylist is a terminal client for the storefront stylist.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/stylist-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driven/config/environ"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/stylist-cli/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := wire(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cli.Execute()
}

// wire builds the adapters and services and hands them to the CLI.
func wire() error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(store, environ.NewOverlay())
	settings, err := settingsService.Get()
	if err == nil {
		err = settings.Validate()
	}
	if err != nil {
		// Keep config commands usable so the settings can be fixed.
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}

	client, err := api.NewClient(api.ConfigFromSettings(settings.API))
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Chat: services.NewChatService(client, services.ChatOptions{
			ResultCount: settings.Chat.ResultCount,
			Greeting:    settings.Chat.Greeting,
		}),
		Catalog:  services.NewCatalogService(client),
		Settings: settingsService,
		Endpoint: client,
		Watch:    store.Watch,
	})
	return nil
}
