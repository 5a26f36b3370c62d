package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"mercator-hq/vulcan/pkg/config"
	"mercator-hq/vulcan/pkg/pools"
	"mercator-hq/vulcan/pkg/proxy"
	"mercator-hq/vulcan/pkg/telemetry/metrics"
)

// refusalMessage is sent to a client accepted while no pool is
// configured, before its socket is closed.
const refusalMessage = "no mining pools configured, connection refused\n"

// Server is the relay's TCP accept loop.
type Server struct {
	config   *config.ProxyConfig
	registry *pools.Registry
	metrics  *metrics.Collector

	// dial is swapped out in tests.
	dial func(addr string) (net.Conn, error)

	listener     net.Listener
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a relay server. collector may be nil, in which case
// no metrics are recorded.
func NewServer(cfg *config.ProxyConfig, registry *pools.Registry, collector *metrics.Collector) *Server {
	s := &Server{
		config:       cfg,
		registry:     registry,
		metrics:      collector,
		shutdownChan: make(chan struct{}),
	}
	s.dial = func(addr string) (net.Conn, error) {
		return net.DialTimeout("tcp", addr, cfg.DialTimeout)
	}
	return s
}

// Start binds the listener and blocks accepting clients until ctx is
// cancelled, Shutdown is called, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to bind %s: %w", s.config.ListenAddress, err)
	}
	s.listener = listener
	s.isRunning = true
	s.mu.Unlock()

	slog.Info("relay listening",
		"address", listener.Addr().String(),
		"pools", s.registry.Len(),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.acceptLoop()
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, stopping relay")
		return s.Shutdown()
	case <-s.shutdownChan:
		return s.Shutdown()
	case err := <-errChan:
		return err
	}
}

// acceptLoop accepts clients until the listener closes.
func (s *Server) acceptLoop() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdownChan:
				return nil
			default:
				return fmt.Errorf("accept failed: %w", err)
			}
		}
		go s.handleConn(conn)
	}
}

// handleConn takes one accepted client through select, dial, and relay.
// It runs in its own goroutine; a slow or failed dial never blocks other
// clients.
func (s *Server) handleConn(conn net.Conn) {
	s.registry.ConnAccepted()
	s.metrics.ConnAccepted()

	pool := s.registry.Select()
	if pool == nil {
		s.metrics.ConnRefused()
		slog.Warn("refusing client, no pools configured",
			"client", conn.RemoteAddr().String(),
		)
		_, _ = conn.Write([]byte(refusalMessage))
		conn.Close()
		return
	}

	upstream, err := s.dial(pool.Addr())
	if err != nil {
		s.metrics.DialFailed(pool.Addr())
		slog.Error("failed to dial pool",
			"client", conn.RemoteAddr().String(),
			"pool", pool.Addr(),
			"error", err,
		)
		conn.Close()
		return
	}

	pair := proxy.NewPair(conn, upstream, pool, s.config.ReadBufferSize, s.metrics)
	pair.Run()
}

// Shutdown closes the listener. Relay pairs already established are left
// to run; they end with their own sockets or with the process.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)

		s.mu.Lock()
		if s.listener != nil {
			err = s.listener.Close()
		}
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("relay stopped")
	})
	return err
}

// Addr returns the bound listener address, useful when listening on an
// ephemeral port.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// IsRunning reports whether the accept loop is active.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
