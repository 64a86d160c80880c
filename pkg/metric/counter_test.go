package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCounterIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounter(reg, "test_requests_total", "Test requests.", "route", "code")

	c.Increment("/api/menu", "200")
	c.Increment("/api/menu", "200")
	c.Increment("/api/course", "404")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected 1 metric family, got %d", len(families))
	}

	totals := map[string]float64{}
	for _, m := range families[0].GetMetric() {
		var route string
		for _, l := range m.GetLabel() {
			if l.GetName() == "route" {
				route = l.GetValue()
			}
		}
		totals[route] = m.GetCounter().GetValue()
	}

	if totals["/api/menu"] != 2 || totals["/api/course"] != 1 {
		t.Errorf("unexpected totals: %v", totals)
	}
}

func TestNewCounterDuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCounter(reg, "dup_total", "Duplicate.")

	defer func() {
		if recover() == nil {
			t.Error("expected registering a duplicate counter to panic")
		}
	}()
	NewCounter(reg, "dup_total", "Duplicate.")
}

func TestHandlerFor(t *testing.T) {
	reg := NewRegistry()
	NewCounter(reg, "handler_test_total", "Handler test.", "kind").Increment("x")

	rec := httptest.NewRecorder()
	HandlerFor(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{`handler_test_total{kind="x"} 1`, "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
}
