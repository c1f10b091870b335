package driving

import (
	"context"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// ChatSession is one conversation with the stylist.
type ChatSession interface {
	// ID returns the session identifier used for log correlation.
	ID() string

	// Submit sends a query and returns the bot reply.
	// Returns domain.ErrEmptyQuery for blank input and
	// domain.ErrRequestInFlight while a prior submission is outstanding;
	// neither touches the transcript. Search failures are not errors: they
	// produce a fallback reply.
	Submit(ctx context.Context, query string) (domain.Message, error)

	// Messages returns a snapshot of the transcript in append order.
	Messages() []domain.Message

	// InFlight reports whether a search is outstanding.
	InFlight() bool
}

// ChatService starts chat sessions.
type ChatService interface {
	// NewSession creates a session seeded with the configured greeting.
	NewSession() ChatSession
}
