package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
	"github.com/icyhq/icy/internal/store"
	"github.com/icyhq/icy/internal/wizard"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// MaxSessions caps the number of open wizard sessions. Starting one more
	// evicts the least recently used.
	MaxSessions = 64
	// SessionTTL is how long a session may sit idle before it is dropped.
	SessionTTL = 30 * time.Minute
)

// Server manages an embedded MCP HTTP server that lets an agent drive brand
// setup wizards. Each brand-start call opens a session backed by its own
// wizard.Controller; a successful brand-submit saves the profile to the store
// and closes the session.
type Server struct {
	store      store.Store
	defaultKey string
	mcpServer  *server.MCPServer
	stdServer  *http.Server
	addr       string

	mu          sync.Mutex
	sessions    map[string]*session
	maxSessions int
	sessionTTL  time.Duration
	now         func() time.Time
}

// session is one in-flight wizard run.
type session struct {
	key      string
	ctrl     *wizard.Controller
	lastUsed time.Time

	// pending holds a submitted profile whose save failed; the next
	// brand-submit retries it.
	pending *brand.Profile
}

// New creates a server that saves completed profiles to st. defaultKey is
// used when brand-start names no key. The server is not started until
// Start() is called.
func New(st store.Store, defaultKey string) *Server {
	s := &Server{
		store:       st,
		defaultKey:  defaultKey,
		sessions:    make(map[string]*session),
		maxSessions: MaxSessions,
		sessionTTL:  SessionTTL,
		now:         time.Now,
	}
	s.mcpServer = server.NewMCPServer(
		"icy-brand",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Start listens on addr ("127.0.0.1:0" picks a free port) and serves the
// MCP endpoint in the background. It returns the bound address.
func (s *Server) Start(ctx context.Context, addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return "", fmt.Errorf("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.addr = listener.Addr().String()

	// Stateless mode: wizard sessions are keyed by our own ids, not by MCP
	// transport sessions.
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	s.stdServer = &http.Server{Handler: mux}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server listening on %s", s.addr)
	return s.addr, nil
}

// Stop stops the HTTP server. Open wizard sessions are dropped.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	if n := len(s.sessions); n > 0 {
		logger.Info("MCP server stopped with %d unfinished wizard session(s)", n)
	}
	clear(s.sessions)
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://%s/mcp", s.addr)
}

// pruneSessions drops idle sessions and, when still at capacity, the least
// recently used one so a new session fits. Callers hold s.mu.
func (s *Server) pruneSessions() {
	now := s.now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.sessionTTL {
			logger.Info("mcp: dropping idle wizard session %s", id)
			delete(s.sessions, id)
		}
	}
	for len(s.sessions) >= s.maxSessions {
		var oldest string
		for id, sess := range s.sessions {
			if oldest == "" || sess.lastUsed.Before(s.sessions[oldest].lastUsed) {
				oldest = id
			}
		}
		logger.Info("mcp: session limit reached, dropping wizard session %s", oldest)
		delete(s.sessions, oldest)
	}
}
