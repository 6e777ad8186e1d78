package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

var assetTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

const defaultContentType = "application/octet-stream"

// HandleMapImages serves files below root for requests under /map/.
func HandleMapImages(root string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		rel := strings.TrimPrefix(r.URL.Path, "/map/")
		full := resolve(root, rel)
		if !isFile(full) {
			writeError(w, http.StatusNotFound, codeNotFound, "file not found")
			return
		}
		serveFile(w, r, full, contentType(imageTypes, full))
	}
}

// HandleSPA serves the built frontend from dist. Paths that do not name a
// file get index.html so client-side routes resolve.
func HandleSPA(dist string) http.HandlerFunc {
	index := filepath.Join(dist, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		full := index
		if r.URL.Path != "/" {
			full = resolve(dist, r.URL.Path)
		}
		if !isFile(full) {
			full = index
		}
		if !isFile(full) {
			writeError(w, http.StatusNotFound, codeNotFound, "file not found")
			return
		}
		serveFile(w, r, full, contentType(assetTypes, full))
	}
}

// resolve joins rel onto root without letting ".." escape root.
func resolve(root, rel string) string {
	clean := path.Clean("/" + rel)
	return filepath.Join(root, filepath.FromSlash(clean))
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

func contentType(types map[string]string, name string) string {
	if ct, ok := types[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}

func serveFile(w http.ResponseWriter, r *http.Request, name, ctype string) {
	f, err := os.Open(name)
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, "file not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	http.ServeContent(w, r, "", info.ModTime(), f)
}
