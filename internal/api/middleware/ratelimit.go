package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
)

// NewRateLimit limits each client IP to requests per window. Excess requests
// get 429 with the standard error body. The key is the request's RemoteAddr,
// so forwarded-for headers only count when RealIP is mounted in front.
func NewRateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			response.RespondError(w, http.StatusTooManyRequests, "too many attempts, try again later", "")
		}),
	)
}
