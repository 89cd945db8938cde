package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
)

type contextKey string

const userIDKey contextKey = "userID"

// Authenticator resolves a session token to a user ID.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set writes the session cookie holding token for ttl.
func (c SessionCookie) Set(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, c.cookie(token, int(ttl.Seconds())))
}

// Clear expires the session cookie.
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c SessionCookie) cookie(value string, maxAge int) *http.Cookie {
	// Browsers drop SameSite=None cookies that are not Secure.
	sameSite := http.SameSiteNoneMode
	if !c.Secure {
		sameSite = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSite,
	}
}

// TokenFromRequest returns the session token from the cookie, or else from
// an "Authorization: Bearer" header.
func (c SessionCookie) TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(c.Name); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAuth rejects requests without a valid session with 401 and stores the
// user ID in the request context otherwise. Invalid or expired tokens also
// clear the cookie.
func RequireAuth(a Authenticator, cookie SessionCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := a.Authenticate(cookie.TokenFromRequest(r))
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrMissingToken):
					response.RespondError(w, http.StatusUnauthorized, "authentication required", "")
				case errors.Is(err, apperrors.ErrTokenExpired):
					cookie.Clear(w)
					response.RespondError(w, http.StatusUnauthorized, "session expired", "")
				default:
					cookie.Clear(w)
					response.RespondError(w, http.StatusUnauthorized, "invalid session", "")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID set by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
