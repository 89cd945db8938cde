package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

var stripNewlines = strings.NewReplacer("\n", "", "\r", "").Replace

// Logger logs one line per request: request ID, client address, method, path,
// status, response size and duration. Query strings are left out since they
// carry amounts and rates.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		//nolint:gosec // G706: user-supplied values have CR/LF stripped.
		log.Printf(
			"[%s] %s %s %s %d %dB %s",
			chimiddleware.GetReqID(r.Context()),
			stripNewlines(r.RemoteAddr),
			stripNewlines(r.Method),
			stripNewlines(r.URL.Path),
			rec.status,
			rec.bytes,
			time.Since(start).Round(time.Microsecond),
		)
	})
}

// statusRecorder captures the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}
