package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveCompressed(t *testing.T, cfg CompressionConfig, h http.HandlerFunc, method, acceptEncoding string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/", nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	rec := httptest.NewRecorder()
	Compression(cfg)(h).ServeHTTP(rec, req)
	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()
	gr, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer gr.Close()
	b, err := io.ReadAll(gr)
	require.NoError(t, err)
	return string(b)
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestCompression(t *testing.T) {
	body := `{"labels":[` + strings.Repeat(`"2025-06-01",`, 200) + `"2025-06-02"]}`

	tests := []struct {
		name           string
		acceptEncoding string
		level          int
		expectGzip     bool
	}{
		{"client accepts gzip", "gzip, deflate", 6, true},
		{"client does not accept gzip", "deflate", 6, false},
		{"no accept-encoding header", "", 6, false},
		{"fastest level", "gzip", 1, true},
		{"out of range level falls back", "gzip", 42, true},
		{"gzip q=0.5", "gzip;q=0.5", 6, true},
		{"gzip q=0", "gzip;q=0", 6, false},
		{"gzip listed second", "br, gzip", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serveCompressed(t, CompressionConfig{Level: tt.level}, jsonBody(body), http.MethodGet, tt.acceptEncoding)
			if tt.expectGzip {
				assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
				assert.Equal(t, "Accept-Encoding", resp.Header.Get("Vary"))
				assert.Empty(t, resp.Header.Get("Content-Length"))
				assert.Equal(t, body, gunzip(t, resp.Body))
				return
			}
			assert.Empty(t, resp.Header.Get("Content-Encoding"))
			got, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, body, string(got))
		})
	}
}

func TestCompressionStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		writeBody  bool
		expectGzip bool
	}{
		{"200 with body", http.StatusOK, true, true},
		{"404 with body", http.StatusNotFound, true, true},
		{"502 with body", http.StatusBadGateway, true, true},
		{"204 no content", http.StatusNoContent, false, false},
		{"304 not modified", http.StatusNotModified, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.writeBody {
					_, _ = io.WriteString(w, `{"error":"x"}`)
				}
			}
			resp := serveCompressed(t, CompressionConfig{}, h, http.MethodGet, "gzip")
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.expectGzip {
				assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
			} else {
				assert.Empty(t, resp.Header.Get("Content-Encoding"))
			}
		})
	}
}

func TestCompressionContentTypeFiltering(t *testing.T) {
	tests := []struct {
		contentType string
		expectGzip  bool
	}{
		{"text/html", true},
		{"text/css", true},
		{"application/json", true},
		{"application/javascript", true},
		{"image/svg+xml", true},
		{"text/html; charset=utf-8", true},
		{"image/png", false},
		{"application/pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			h := func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = io.WriteString(w, "test content")
			}
			resp := serveCompressed(t, CompressionConfig{}, h, http.MethodGet, "gzip")
			assert.Equal(t, tt.expectGzip, resp.Header.Get("Content-Encoding") == "gzip")
		})
	}
}

func TestCompressionMinSize(t *testing.T) {
	t.Run("small body sent as-is", func(t *testing.T) {
		resp := serveCompressed(t, CompressionConfig{MinSize: 1024}, jsonBody(`{"status":"ok"}`), http.MethodGet, "gzip")
		assert.Empty(t, resp.Header.Get("Content-Encoding"))
		got, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"ok"}`, string(got))
	})

	t.Run("body written in chunks crosses threshold", func(t *testing.T) {
		chunk := strings.Repeat("a", 300)
		h := func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			for range 4 {
				_, _ = io.WriteString(w, chunk)
			}
		}
		resp := serveCompressed(t, CompressionConfig{MinSize: 1024}, h, http.MethodGet, "gzip")
		assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
		assert.Equal(t, strings.Repeat(chunk, 4), gunzip(t, resp.Body))
	})
}

func TestCompressionDetectsContentType(t *testing.T) {
	h := func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html><body>hello</body></html>")
	}
	resp := serveCompressed(t, CompressionConfig{}, h, http.MethodGet, "gzip")
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestCompressionSkips(t *testing.T) {
	t.Run("HEAD request", func(t *testing.T) {
		h := func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
		}
		resp := serveCompressed(t, CompressionConfig{}, h, http.MethodHead, "gzip")
		assert.Empty(t, resp.Header.Get("Content-Encoding"))
	})

	t.Run("existing content encoding", func(t *testing.T) {
		h := func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Header().Set("Content-Encoding", "br")
			_, _ = io.WriteString(w, "already compressed")
		}
		resp := serveCompressed(t, CompressionConfig{}, h, http.MethodGet, "gzip")
		assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))
	})
}
