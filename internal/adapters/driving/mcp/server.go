package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stylist-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// MaxSessions bounds the chat sessions kept for multi-turn ask calls.
// The oldest session is dropped when the bound is reached.
const MaxSessions = 64

// Server is the MCP server for stylist.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu       sync.Mutex
	sessions map[string]driving.ChatSession
	order    []string
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "stylist",
		Version: Version,
	}

	s := &Server{
		ports:    ports,
		server:   mcp.NewServer(impl, nil),
		sessions: make(map[string]driving.ChatSession),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// session returns the chat session with the given id, or a new, not yet
// registered one when id is empty.
func (s *Server) session(id string) (driving.ChatSession, error) {
	if id == "" {
		return s.ports.Chat.NewSession(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return sess, nil
}

// register keeps sess for later ask calls, dropping the oldest session
// once MaxSessions is reached.
func (s *Server) register(sess driving.ChatSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID()]; ok {
		return
	}
	if len(s.order) >= MaxSessions {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
		logger.Debug("mcp: dropped session %s", oldest)
	}
	s.sessions[sess.ID()] = sess
	s.order = append(s.order, sess.ID())
}

// SessionCount returns the number of live chat sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
