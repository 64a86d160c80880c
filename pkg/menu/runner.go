package menu

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mchmarny/coursemenu/pkg/server"
)

// Server builds an HTTP server carrying the catalog routes, liveness and
// readiness probes and Prometheus metrics, on top of opt.
func (m *Menu) Server(opt ...server.Option) server.Server {
	opt = append(opt,
		server.WithHealthCheck(m),
		server.WithReadinessCheck(m),
		server.WithPrometheusMetrics(),
	)

	m.RegisterHandlers(func(pattern string, h http.Handler) {
		opt = append(opt, server.WithHandler(pattern, h))
	})

	return server.New(opt...)
}

// Run serves the catalog and blocks until ctx is canceled or the server fails.
func (m *Menu) Run(ctx context.Context, opt ...server.Option) error {
	info := m.Catalog.CourseInfo()
	slog.Info("serving course menu",
		"title", info.Title,
		"entries", m.Catalog.Len(),
		"dev_mode", m.Catalog.IsDevMode(),
	)

	return m.Server(opt...).Serve(ctx)
}
