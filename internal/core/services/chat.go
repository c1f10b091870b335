package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stylist-cli/internal/logger"
)

// Ensure ChatService and ChatSession implement the interfaces.
var (
	_ driving.ChatService = (*ChatService)(nil)
	_ driving.ChatSession = (*ChatSession)(nil)
)

// ChatOptions configures new sessions.
type ChatOptions struct {
	// ResultCount is k, the number of results requested per search.
	ResultCount int

	// Greeting seeds each session. Empty disables the greeting.
	Greeting string
}

// ChatService creates chat sessions against a storefront API.
type ChatService struct {
	api  driven.StorefrontAPI
	opts ChatOptions
	now  func() time.Time
}

// NewChatService creates a new chat service.
// A non-positive ResultCount falls back to domain.DefaultResultCount.
func NewChatService(api driven.StorefrontAPI, opts ChatOptions) *ChatService {
	if opts.ResultCount <= 0 {
		opts.ResultCount = domain.DefaultResultCount
	}
	return &ChatService{
		api:  api,
		opts: opts,
		now:  time.Now,
	}
}

// NewSession creates a session seeded with the configured greeting.
func (s *ChatService) NewSession() driving.ChatSession {
	return s.newSession()
}

func (s *ChatService) newSession() *ChatSession {
	session := &ChatSession{
		id:   uuid.NewString(),
		api:  s.api,
		k:    s.opts.ResultCount,
		now:  s.now,
		msgs: make([]domain.Message, 0, 8),
	}
	if s.opts.Greeting != "" {
		session.msgs = append(session.msgs, domain.NewBotMessage(session.nextID(), s.opts.Greeting))
	}
	return session
}

// ChatSession owns one transcript. At most one search is outstanding at a
// time; the transcript is append-only.
type ChatSession struct {
	id  string
	api driven.StorefrontAPI
	k   int
	now func() time.Time

	inFlight atomic.Bool

	mu     sync.RWMutex
	msgs   []domain.Message
	lastID int64
}

// ID returns the session identifier.
func (s *ChatSession) ID() string {
	return s.id
}

// InFlight reports whether a search is outstanding.
func (s *ChatSession) InFlight() bool {
	return s.inFlight.Load()
}

// Messages returns a snapshot of the transcript.
func (s *ChatSession) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Message, len(s.msgs))
	for i := range s.msgs {
		out[i] = s.msgs[i].Clone()
	}
	return out
}

// Submit appends the user message, issues the search and appends the reply.
// The user message is visible in Messages before the search resolves.
func (s *ChatSession) Submit(ctx context.Context, query string) (domain.Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Message{}, domain.ErrEmptyQuery
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Message{}, domain.ErrRequestInFlight
	}
	defer s.inFlight.Store(false)

	log := logger.L().With().Str("session", s.id).Logger()

	s.mu.Lock()
	s.msgs = append(s.msgs, domain.NewUserMessage(s.nextID(), query))
	s.mu.Unlock()

	log.Debug().Str("query", query).Int("k", s.k).Msg("search started")
	resp, err := s.api.Search(ctx, domain.SearchRequest{Query: query, K: s.k})

	s.mu.Lock()
	defer s.mu.Unlock()

	var reply domain.Message
	if err != nil || resp == nil {
		log.Warn().Err(err).Msg("search failed")
		reply = domain.NewBotMessage(s.nextID(), domain.SearchFailedText)
	} else {
		reply = domain.NewReply(s.nextID(), *resp)
		log.Debug().Int("results", len(reply.Products)).Msg("search completed")
	}
	s.msgs = append(s.msgs, reply)

	return reply.Clone(), nil
}

// nextID returns a clock-derived identifier strictly greater than the last
// one issued (caller must hold the lock, or own the session exclusively).
func (s *ChatSession) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
