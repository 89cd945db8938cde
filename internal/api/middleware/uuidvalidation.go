// Package middleware holds the HTTP middleware mounted by the API router.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// ValidateUUIDMiddleware rejects requests whose {uuid} path segment is not an
// investment ID, so handlers below it never query with a malformed key.
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDMiddleware)
//	    r.Get("/", h.GetInvestment)
//	})
func ValidateUUIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch id := chi.URLParam(r, "uuid"); {
		case id == "":
			response.RespondError(w, http.StatusBadRequest, "investment id is required", "")
		case validation.ValidateUUID(id) != nil:
			response.RespondError(w, http.StatusBadRequest, "investment id must be a UUID", id)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
