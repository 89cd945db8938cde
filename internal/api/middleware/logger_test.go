package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestLogger(t *testing.T) {
	t.Run("logs status and size without the query", func(t *testing.T) {
		buf := captureLog(t)
		handler := middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("hello")) //nolint:errcheck // Test handler
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/investments?amount=1000", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		line := buf.String()
		if !strings.Contains(line, "POST /api/investments 201 5B") {
			t.Errorf("Unexpected log line %q", line)
		}
		if strings.Contains(line, "amount") {
			t.Errorf("Query string leaked into log: %q", line)
		}
	})

	t.Run("strips newlines from the path", func(t *testing.T) {
		buf := captureLog(t)
		handler := middleware.Logger(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
		req.URL.Path = "/api/x\nforged 200"
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("Expected a single log line, got %q", buf.String())
		}
	})
}

func TestNewCORS(t *testing.T) {
	handler := middleware.NewCORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Expected allowed origin, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Expected credentials allowed, got %q", got)
		}
	})

	t.Run("other origins get no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no allowed origin, got %q", got)
		}
	})
}
