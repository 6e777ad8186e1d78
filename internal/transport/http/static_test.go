package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestHandleMapImages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tiles", "a.png"), "png-bytes")
	writeFile(t, filepath.Join(root, "raw.bin"), "raw")
	writeFile(t, filepath.Join(filepath.Dir(root), "secret.txt"), "secret")

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
		body        string
	}{
		{name: "png", path: "/map/tiles/a.png", status: http.StatusOK, contentType: "image/png", body: "png-bytes"},
		{name: "unknown ext", path: "/map/raw.bin", status: http.StatusOK, contentType: "application/octet-stream", body: "raw"},
		{name: "missing", path: "/map/none.jpg", status: http.StatusNotFound},
		{name: "directory", path: "/map/tiles", status: http.StatusNotFound},
		{name: "traversal", path: "/map/../secret.txt", status: http.StatusNotFound},
	}

	handler := HandleMapImages(root)
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = tt.path
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.status, rec.Code)
		}
		if tt.status != http.StatusOK {
			continue
		}
		if got := rec.Header().Get("Content-Type"); got != tt.contentType {
			t.Fatalf("%s: expected content type %q, got %q", tt.name, tt.contentType, got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("%s: expected wildcard CORS, got %q", tt.name, got)
		}
		if rec.Body.String() != tt.body {
			t.Fatalf("%s: expected body %q, got %q", tt.name, tt.body, rec.Body.String())
		}
	}
}

func TestHandleSPA(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "index.html"), "<html>app</html>")
	writeFile(t, filepath.Join(dist, "assets", "app.js"), "console.log(1)")

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
	}{
		{name: "root", path: "/", contentType: "text/html", body: "<html>app</html>"},
		{name: "asset", path: "/assets/app.js", contentType: "application/javascript", body: "console.log(1)"},
		{name: "client route", path: "/select/zone", contentType: "text/html", body: "<html>app</html>"},
		{name: "directory", path: "/assets", contentType: "text/html", body: "<html>app</html>"},
	}

	handler := HandleSPA(dist)
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", tt.name, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != tt.contentType {
			t.Fatalf("%s: expected content type %q, got %q", tt.name, tt.contentType, got)
		}
		if rec.Body.String() != tt.body {
			t.Fatalf("%s: expected body %q, got %q", tt.name, tt.body, rec.Body.String())
		}
	}
}

func TestHandleSPA_MissingIndex(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	HandleSPA(t.TempDir()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
