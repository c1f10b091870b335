// Package driving defines the interfaces the CLI, TUI and MCP adapters use
// to drive the core: chat sessions, catalog browsing and settings.
//
// Implementations live in internal/core/services.
package driving
