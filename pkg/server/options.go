package server

import (
	"context"
	"net/http"
	"time"

	"github.com/mchmarny/coursemenu/pkg/metric"
)

// Option is a functional option for configuring the Server.
// Options are applied in order, so later options win when they touch the same setting.
type Option func(*server)

// WithPort sets the port number for the HTTP server.
// If not specified, DefaultPort (9876) is used. Zero asks the kernel for a
// free port, the bound address is then available from Server.Addr.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithReadTimeout sets the maximum duration for reading the entire request,
// headers and body included.
// If not specified, DefaultReadTimeout (10s) is used.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
// Keep it above the read timeout to leave room for handler execution.
// If not specified, DefaultWriteTimeout (10s) is used.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithIdleTimeout sets the maximum time to wait for the next request when keep-alives are enabled.
// If not specified, DefaultIdleTimeout (60s) is used.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the grace period in-flight requests get once the
// Serve context is canceled. Keep it below the orchestrator's termination
// grace period so the process exits before it is killed.
// If not specified, DefaultShutdownTimeout (5s) is used.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithMaxHeaderBytes sets the maximum number of bytes read from request headers.
// If not specified, DefaultMaxHeaderBytes (1 MB) is used.
func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithHandler registers a custom HTTP handler for the specified pattern.
// Patterns follow http.ServeMux syntax, including method and wildcard forms.
// Multiple handlers can be registered by repeating the option, registering
// the same pattern twice panics.
//
// Example:
//
//	entry := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    w.Write([]byte(r.PathValue("label")))
//	})
//	srv := server.New(server.WithHandler("GET /api/menu/{label}", entry))
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithSimpleHealth adds a health check endpoint at /healthz that always returns 200 OK.
// Use WithHealthCheck when liveness depends on component state.
//
// The endpoint returns:
//   - 200 OK with body "ok"
func WithSimpleHealth() Option {
	return WithHealthCheck(nil)
}

// WithHealthCheck adds a liveness endpoint at /healthz backed by hc.
// Each check runs with a short timeout derived from the request context.
// A nil hc always reports healthy.
//
// The endpoint returns:
//   - 200 OK with body "ok" when hc.Healthy returns nil
//   - 503 Service Unavailable with the error text otherwise
func WithHealthCheck(hc HealthChecker) Option {
	check := func(context.Context) error { return nil }
	if hc != nil {
		check = hc.Healthy
	}

	return func(s *server) {
		s.mux.Handle("/healthz", probeHandler("health", check))
	}
}

// WithReadinessCheck adds a readiness endpoint at /readyz backed by rc.
// Unlike liveness, readiness may change over the process lifetime and tells
// load balancers whether to route traffic here.
//
// The endpoint returns:
//   - 200 OK with body "ok" when rc.Ready returns nil
//   - 503 Service Unavailable with the error text otherwise
func WithReadinessCheck(rc ReadinessChecker) Option {
	return func(s *server) {
		s.mux.Handle("/readyz", probeHandler("readiness", rc.Ready))
	}
}

// WithPrometheusMetrics exposes /metrics from the server's own registry,
// which carries the Go runtime and process collectors.
//
// It also counts every request in http_requests_total, labelled by method,
// matched route pattern and status code. Requests that match no pattern are
// recorded with route "unmatched".
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(9876),
//	    server.WithPrometheusMetrics(),
//	)
func WithPrometheusMetrics() Option {
	return func(s *server) {
		s.requests = metric.NewCounter(s.registry,
			"http_requests_total",
			"Total HTTP requests by method, route and status code.",
			"method", "route", "code")
		s.mux.Handle("/metrics", metric.HandlerFor(s.registry))
	}
}

// WithTLS configures the server to serve HTTPS with the provided certificate and key files.
// The files are loaded when Serve starts, a missing or invalid pair makes Serve
// return an error before any request is served. TLS 1.2 is the minimum version.
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
