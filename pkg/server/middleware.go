package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// probeTimeout bounds a single health or readiness check.
const probeTimeout = 2 * time.Second

func probeHandler(name string, check func(context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if err := check(ctx); err != nil {
			slog.Warn("probe failed", "probe", name, "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(err.Error()))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts requests when metrics are enabled.
// The route label is the matched mux pattern, which keeps cardinality bounded.
func (s *server) instrument(next http.Handler) http.Handler {
	if s.requests == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// ServeMux records the matched pattern on r
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}

		s.requests.Increment(r.Method, route, strconv.Itoa(rec.status))
	})
}
