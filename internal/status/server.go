// Package status serves a small read-only HTTP endpoint describing a running
// client: whether the broker connection is up and which topics are
// subscribed. It is off by default and meant for local monitoring of
// long-running --disable-shell sessions.
//
//	server, err := status.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/logging"
)

const (
	// gracefulShutdownTimeout is the maximum time to wait for in-flight
	// requests during shutdown.
	gracefulShutdownTimeout = 5 * time.Second

	readHeaderTimeout = 5 * time.Second

	// healthCheckTimeout bounds the broker health check per request.
	healthCheckTimeout = 2 * time.Second
)

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// TopicSource lists subscribed topics.
type TopicSource interface {
	Topics() []string
}

// Deps holds the dependencies of the status server.
type Deps struct {
	// Addr is the listen address, e.g. "127.0.0.1:8090".
	Addr    string
	Logger  *logging.Logger
	Broker  HealthChecker
	Topics  TopicSource
	Version string
}

// Server is the status HTTP server.
type Server struct {
	addr    string
	logger  *logging.Logger
	broker  HealthChecker
	topics  TopicSource
	version string

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New creates a status server. It is not listening until Start is called.
//
// Returns:
//   - *Server: Configured server
//   - error: If a required dependency is missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Broker == nil {
		return nil, fmt.Errorf("broker health checker is required")
	}
	if deps.Topics == nil {
		return nil, fmt.Errorf("topic source is required")
	}

	return &Server{
		addr:    deps.Addr,
		logger:  deps.Logger,
		broker:  deps.Broker,
		topics:  deps.Topics,
		version: deps.Version,
	}, nil
}

// Start binds the listen address and serves in a background goroutine.
//
// Binding happens before Start returns, so a port already in use is
// reported here rather than logged later.
//
// Parameters:
//   - ctx: Parent context for request handling
//
// Returns:
//   - error: If the address cannot be bound or the server already started
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return fmt.Errorf("status server already started")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("binding status server: %w", err)
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	srv := s.server
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server error", "error", err)
		}
	}()

	s.logger.Info("status server listening", "address", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts down the server.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down status server: %w", err)
	}
	return nil
}
