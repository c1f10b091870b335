// Package mcp provides an MCP (Model Context Protocol) server adapter for stylist.
// It lets AI assistants ask the stylist for outfits and browse the catalog.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// ErrUnknownSession is returned when an ask call names a session that does not exist.
var ErrUnknownSession = errors.New("mcp: unknown session")
