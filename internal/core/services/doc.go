// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - ChatService / ChatSession: transcript ownership and search submission
//   - CatalogService: catalog listing and product lookup
//   - SettingsService: defaults, stored values and overrides
//
// Services perform no I/O of their own; all network and file access
// goes through driven ports.
package services
