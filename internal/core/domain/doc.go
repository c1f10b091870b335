// Package domain defines the core business entities for the stylist client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types and the pure logic that operates on them:
//
//   - Product: A search result projection of a catalog item
//   - CatalogItem: A full catalog entry shown in the detail view
//   - Message: One entry in a chat transcript
//   - TextValue: A heterogeneous text field normalised to a string
//
// The chat-result ordering (OrderResultsByAnswerText) and bot text rendering
// (RenderBotText) live here because they are deterministic and have no I/O.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, value-type libraries (shopspring/decimal)
//   - Cannot Import: Any internal/ package, any I/O-performing dependency
package domain
