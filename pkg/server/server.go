package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 9876

	// DefaultReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means there will be no timeout.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for active connections
	// to gracefully close during server shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values, including the request line.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB

	// DefaultCheckTimeout bounds a single health or readiness check.
	DefaultCheckTimeout = 2 * time.Second
)

// Server defines the interface for an HTTP server that serves the sidebar API,
// metrics and health checks. Implementations must support graceful shutdown via
// context cancellation.
type Server interface {
	// Serve starts the HTTP server and blocks until the context is canceled.
	// It returns an error if the server fails to start or encounters an error
	// during shutdown. Returns nil on successful graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning returns true if the server is currently accepting connections.
	// Returns true only after the socket has been successfully bound.
	IsRunning() bool

	// Addr returns the bound listener address while the server is running.
	Addr() string
}

// HealthChecker defines the interface for components that can report their health status.
// Implementations should return nil if healthy, or an error describing the problem.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

// ReadinessChecker defines the interface for components that can report their readiness status.
// Unlike health checks, readiness checks may depend on external services such as the state store.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// ReadinessFunc adapts a function to ReadinessChecker.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) Ready(ctx context.Context) error { return f(ctx) }

// server is the internal implementation of the Server interface.
type server struct {
	mux             *http.ServeMux       // HTTP request multiplexer
	port            int                  // Port to listen on
	host            string               // Interface to bind, empty for all
	readTimeout     time.Duration        // Maximum duration for reading requests
	writeTimeout    time.Duration        // Maximum duration for writing responses
	idleTimeout     time.Duration        // Maximum idle time for keep-alive connections
	shutdownTimeout time.Duration        // Grace period for shutdown
	maxHeaderBytes  int                  // Maximum header size in bytes
	errLog          *log.Logger          // Optional error logger
	tlsConfig       *TLSConfig           // Optional TLS configuration
	mu              sync.RWMutex         // Protects running state
	running         bool                 // Indicates if server is currently running
	addr            string               // Bound address while running
	registry        *prometheus.Registry // Prometheus registry for metrics
	metrics         bool                 // Serve /metrics from registry
}

// TLSConfig contains the certificate and key file paths for TLS/HTTPS support.
type TLSConfig struct {
	CertFile string // Path to the TLS certificate file
	KeyFile  string // Path to the TLS private key file
}

// Option is a functional option for configuring the Server.
type Option func(*server)

// WithPort sets the port number for the HTTP server.
// If not specified, DefaultPort (9876) is used. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithHost binds the server to a single interface, e.g. "127.0.0.1".
func WithHost(host string) Option {
	return func(s *server) { s.host = host }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithIdleTimeout sets the maximum time to wait for the next request when keep-alives are enabled.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithMaxHeaderBytes sets the maximum number of bytes to read from request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithErrorLog sets the logger used for errors accepting connections and
// unexpected handler behavior.
func WithErrorLog(l *log.Logger) Option {
	return func(s *server) { s.errLog = l }
}

// WithHandler registers a custom HTTP handler for the specified pattern.
// Multiple handlers can be registered by calling this option multiple times.
//
// Example:
//
//	srv := server.New(server.WithHandler("GET /api/state", stateHandler))
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithRegistry replaces the per-server Prometheus registry. Counters
// registered on reg are served by WithMetrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithMetrics serves the server registry at /metrics.
func WithMetrics() Option {
	return func(s *server) { s.metrics = true }
}

// WithHealthCheck serves /healthz from checker. Failures return 503.
func WithHealthCheck(checker HealthChecker) Option {
	return func(s *server) {
		s.mux.Handle("/healthz", checkHandler("health", checker.Healthy))
	}
}

// WithReadinessCheck serves /readyz from checker. Failures return 503.
func WithReadinessCheck(checker ReadinessChecker) Option {
	return func(s *server) {
		s.mux.Handle("/readyz", checkHandler("readiness", checker.Ready))
	}
}

func checkHandler(kind string, check func(context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), DefaultCheckTimeout)
		defer cancel()

		if err := check(ctx); err != nil {
			slog.Warn("check failed", "kind", kind, "error", err)
			writeStatus(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ok")
	})
}

func writeStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WithTLS configures the server to use TLS/HTTPS with the provided certificate and key files.
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(8443),
//	    server.WithTLS(server.TLSConfig{
//	        CertFile: "/path/to/cert.pem",
//	        KeyFile:  "/path/to/key.pem",
//	    }),
//	)
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) {
		s.tlsConfig = &cfg
	}
}

// New creates a new HTTP server with the provided options.
//
// Default configuration:
//   - Port: 9876
//   - ReadTimeout: 10s
//   - WriteTimeout: 10s
//   - IdleTimeout: 60s
//   - ShutdownTimeout: 5s
//   - MaxHeaderBytes: 1 MB
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(9876),
//	    server.WithRegistry(reg),
//	    server.WithMetrics(),
//	    server.WithHealthCheck(api),
//	)
func New(opts ...Option) Server {
	return newServer(opts...)
}

func newServer(opts ...Option) *server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		registry:        prometheus.NewRegistry(),
		errLog:          log.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.metrics {
		s.mux.Handle("/metrics", metric.GetHandlerForRegistry(s.registry))
	}

	slog.Info("server initialized",
		"port", s.port,
		"metrics", s.metrics,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout)

	return s
}

// IsRunning returns true if the server is currently running and accepting connections.
// This method is thread-safe and can be called concurrently from multiple goroutines.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

// Addr returns the bound address, or "" when the server is not running.
func (s *server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.addr
}

// Serve starts the HTTP server and blocks until the context is canceled or an error occurs.
//
// The server uses errgroup to manage two goroutines:
//  1. Server goroutine: Runs the HTTP server on the pre-bound listener
//  2. Shutdown goroutine: Waits for context cancellation and initiates graceful shutdown
//
// This method returns:
//   - nil on successful graceful shutdown
//   - An error if the server fails to start or shutdown encounters an error
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port)),
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	// Create listener first so we can set running=true only after socket is bound
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tlsConfig != nil {
		cert, certErr := tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile)
		if certErr != nil {
			listener.Close()
			return fmt.Errorf("failed to load TLS certificate: %w", certErr)
		}

		listener = tls.NewListener(listener, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		slog.Info("starting TLS server", "addr", listener.Addr().String())
	} else {
		slog.Info("starting server", "addr", listener.Addr().String())
	}

	s.mu.Lock()
	s.running = true
	s.addr = listener.Addr().String()
	s.mu.Unlock()

	g, gCtx := errgroup.WithContext(ctx)

	// Server goroutine
	g.Go(func() error {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.addr = ""
			s.mu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	// Shutdown goroutine
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)

		shutdownStart := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(shutdownStart))

		return nil
	})

	return g.Wait()
}
