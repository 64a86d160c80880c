package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mchmarny/coursemenu/pkg/catalog"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestShowJSON(t *testing.T) {
	out, err := run(t, "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc catalog.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !reflect.DeepEqual(doc, catalog.Default().Document()) {
		t.Error("printed document differs from the built-in catalog")
	}
}

func TestShowYAMLReloads(t *testing.T) {
	out, err := run(t, "show", "--format", "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "course.yaml")
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	out, err = run(t, "show", "--catalog", path)
	if err != nil {
		t.Fatalf("failed to show reloaded catalog: %v", err)
	}
	if !strings.Contains(out, `"label": "Pacto pedagógico"`) {
		t.Error("expected reloaded catalog to contain the week one submenu")
	}
}

func TestShowUnsupportedFormat(t *testing.T) {
	if _, err := run(t, "show", "-o", "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestShowMalformedCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("course: {title: T}\nitems: [{href: '', label: ''}]"), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	_, err := run(t, "show", "--catalog", path)
	if !errors.Is(err, catalog.ErrMalformedEntry) {
		t.Errorf("expected ErrMalformedEntry, got %v", err)
	}
}

func TestServeMissingCatalogFailsFast(t *testing.T) {
	_, err := run(t, "serve", "--port", "0", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected serve to fail on a missing catalog, got %v", err)
	}
}

func TestServeMalformedCatalogFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := "course: {title: T}\nitems: [{href: '', label: L, date: D, submenu: [{href: /x, label: X, date: D, submenu: []}]}]"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	_, err := run(t, "serve", "--port", "0", "--catalog", path)
	if !errors.Is(err, catalog.ErrMalformedEntry) {
		t.Errorf("expected serve to refuse a malformed catalog, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, appName+" "+version) {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestEnvIntOrDefault(t *testing.T) {
	t.Setenv(envVarPort, "8081")
	if got := envIntOrDefault(envVarPort, 1); got != 8081 {
		t.Errorf("expected 8081, got %d", got)
	}

	t.Setenv(envVarPort, "not-a-port")
	if got := envIntOrDefault(envVarPort, 1); got != 1 {
		t.Errorf("expected fallback 1, got %d", got)
	}
}
