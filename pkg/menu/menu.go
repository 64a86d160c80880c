package menu

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mchmarny/coursemenu/pkg/catalog"
)

// Menu exposes a course catalog as read-only JSON resources.
type Menu struct {
	// Catalog is the snapshot being served.
	Catalog *catalog.Catalog

	// Version of the serving binary, reported on the index route.
	Version string
}

// New returns a Menu serving c.
func New(c *catalog.Catalog, version string) *Menu {
	return &Menu{Catalog: c, Version: version}
}

type indexResponse struct {
	Version string `json:"version"`
	catalog.Document
}

type devModeResponse struct {
	DevMode bool `json:"devMode"`
}

// RegisterHandlers passes every catalog route to register.
func (m *Menu) RegisterHandlers(register func(pattern string, handler http.Handler)) {
	register("GET /{$}", http.HandlerFunc(m.index))
	register("GET /api/catalog", http.HandlerFunc(m.document))
	register("GET /api/course", http.HandlerFunc(m.course))
	register("GET /api/menu", http.HandlerFunc(m.entries))
	register("GET /api/menu/{label}", http.HandlerFunc(m.entry))
	register("GET /api/devmode", http.HandlerFunc(m.devMode))
}

func (m *Menu) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, indexResponse{
		Version:  m.Version,
		Document: m.Catalog.Document(),
	})
}

func (m *Menu) document(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, m.Catalog.Document())
}

func (m *Menu) course(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, m.Catalog.CourseInfo())
}

func (m *Menu) entries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, m.Catalog.MenuEntries())
}

func (m *Menu) entry(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("label")

	e, ok := m.Catalog.Entry(label)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no menu entry labelled "+label)
		return
	}

	writeJSON(w, r, http.StatusOK, e)
}

func (m *Menu) devMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, devModeResponse{DevMode: m.Catalog.IsDevMode()})
}

// Healthy always succeeds, a loaded catalog cannot degrade.
func (m *Menu) Healthy(context.Context) error {
	return nil
}

// Ready reports whether there is a catalog with at least one entry to serve.
func (m *Menu) Ready(context.Context) error {
	if m.Catalog == nil || m.Catalog.Len() == 0 {
		return errors.New("course catalog is empty")
	}

	slog.Debug("catalog ready", "entries", m.Catalog.Len())
	return nil
}
