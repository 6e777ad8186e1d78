package http

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mapselect/mapserver/internal/app"
	"github.com/mapselect/mapserver/internal/zonestore"
)

func TestNewRouter_MountedApplication(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "index.html"), "index")
	mapDir := t.TempDir()
	writeFile(t, filepath.Join(mapDir, "world.jpg"), "jpg")

	a := app.NewApplication()
	if err := a.Use(app.FrontendPlugin{DistDir: dist, MapDir: mapDir}); err != nil {
		t.Fatalf("use frontend: %v", err)
	}
	if err := a.Use(app.ZonePlugin{Store: zonestore.New()}); err != nil {
		t.Fatalf("use zones: %v", err)
	}

	buf := &bytes.Buffer{}
	handler := a.Mount(func(a *app.Application) http.Handler {
		return NewRouter(a, []string{"*"}, log.New(buf, "", 0), NewDrain())
	})

	tests := []struct {
		method string
		path   string
		body   string
		status int
		substr string
	}{
		{method: http.MethodGet, path: "/health", status: http.StatusOK, substr: "ok"},
		{method: http.MethodGet, path: "/zones", status: http.StatusOK, substr: "[]"},
		{method: http.MethodPost, path: "/zones", body: `{"x":10,"y":20}`, status: http.StatusCreated, substr: `"x":10`},
		{method: http.MethodGet, path: "/map/world.jpg", status: http.StatusOK, substr: "jpg"},
		{method: http.MethodGet, path: "/anything", status: http.StatusOK, substr: "index"},
		{method: http.MethodPost, path: "/anything", status: http.StatusNotFound, substr: codeNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body)))
		if rec.Code != tt.status {
			t.Fatalf("%s %s: expected status %d, got %d", tt.method, tt.path, tt.status, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tt.substr) {
			t.Fatalf("%s %s: expected body to contain %q, got %q", tt.method, tt.path, tt.substr, rec.Body.String())
		}
	}

	if !strings.Contains(buf.String(), "path=/zones") {
		t.Fatalf("expected request log, got %q", buf.String())
	}
}

func TestNewRouter_WithoutZonePlugin(t *testing.T) {
	t.Parallel()

	a := app.NewApplication()
	handler := a.Mount(func(a *app.Application) http.Handler {
		return NewRouter(a, nil, log.New(&bytes.Buffer{}, "", 0), nil)
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/zones", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
