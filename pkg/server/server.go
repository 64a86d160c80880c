package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mchmarny/coursemenu/pkg/logger"
	"github.com/mchmarny/coursemenu/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 9876

	// DefaultReadTimeout bounds reading the entire request, body included.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds the wait for the next request on a keep-alive connection.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the grace period given to in-flight requests on shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes caps the size of request headers.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)

// Server is an HTTP server with graceful shutdown.
type Server interface {
	// Serve listens on the configured port and blocks until ctx is canceled
	// or the server fails. A graceful shutdown returns nil.
	Serve(ctx context.Context) error

	// IsRunning reports whether the socket is bound and accepting connections.
	IsRunning() bool

	// Addr returns the bound listener address, or "" when not running.
	Addr() string

	// Handler returns the fully wired handler, middleware included.
	Handler() http.Handler
}

// HealthChecker reports whether a component is alive (liveness).
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

// ReadinessChecker reports whether a component can take traffic (readiness).
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type server struct {
	mux             *http.ServeMux
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	errLog          *log.Logger
	tlsConfig       *TLSConfig
	registry        *prometheus.Registry      // per instance, never the global default
	requests        metric.IncrementalCounter // nil unless metrics are enabled

	mu      sync.RWMutex // guards running and addr
	running bool
	addr    string
}

// TLSConfig holds the certificate and key used to serve HTTPS.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// New creates a server configured by opts.
//
// Defaults: port 9876, read/write timeouts 10s, idle timeout 60s,
// shutdown grace period 5s, 1 MB of headers.
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(8080),
//	    server.WithPrometheusMetrics(),
//	    server.WithSimpleHealth(),
//	)
func New(opts ...Option) Server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		registry:        metric.NewRegistry(),
		errLog:          logger.NewLogLogger(slog.LevelError),
	}

	for _, opt := range opts {
		opt(s)
	}

	slog.Info("server initialized",
		"port", s.port,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout,
		"tls", s.tlsConfig != nil,
		"metrics", s.requests != nil)

	return s
}

// IsRunning returns true if the server is currently accepting connections.
// It is safe to call from any goroutine.
//
// The server is considered running once the socket is bound, and stops being
// so when Serve returns.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

// Addr returns the bound address, e.g. "[::]:9876", while the server runs.
//
// Example:
//
//	srv := server.New(server.WithPort(0))
//	go srv.Serve(ctx)
//	// wait for srv.IsRunning()
//	_, port, _ := net.SplitHostPort(srv.Addr())
func (s *server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return ""
	}
	return s.addr
}

// Handler returns the mux wrapped in the request-count middleware when
// metrics are enabled. It lets tests drive the server through httptest
// without binding a socket.
func (s *server) Handler() http.Handler {
	return s.instrument(s.mux)
}

func (s *server) setRunning(running bool, addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = running
	s.addr = addr
}

// listen binds the socket, wrapping it in TLS when configured.
func (s *server) listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tlsConfig == nil {
		return ln, nil
	}

	cert, err := tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile)
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	return tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// Serve starts the HTTP server and blocks until the context is canceled or an error occurs.
//
// The server uses errgroup to manage two goroutines:
//  1. Server goroutine: serves on the pre-bound (optionally TLS) listener
//  2. Shutdown goroutine: waits for context cancellation and calls Shutdown
//     with shutdownTimeout so in-flight requests can complete
//
// This method returns:
//   - nil on successful graceful shutdown
//   - An error if the listener or TLS certificate cannot be set up, or the server fails
//
// http.ErrServerClosed is the expected result of a shutdown and is not reported.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.Handler(),
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	ln, err := s.listen(srv.Addr)
	if err != nil {
		return err
	}

	slog.Info("starting server", "addr", ln.Addr().String(), "tls", s.tlsConfig != nil)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// running only flips after the socket is bound
		s.setRunning(true, ln.Addr().String())
		defer s.setRunning(false, "")

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)
		start := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(start))

		return nil
	})

	return g.Wait()
}
