package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are ignored.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode request body: %w", err)
	}
	return v, nil
}

// userID returns the authenticated user, writing 401 when there is none.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "authentication required", "")
		return "", false
	}
	return id, true
}

// respondValidation writes 400 with the per-field messages of a validation error.
// It reports false when err is not a validation error.
func respondValidation(w http.ResponseWriter, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	return true
}

// respondServiceError maps sentinel errors to their HTTP status. Anything
// unrecognised is a 500 reported as fallback.
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	if respondValidation(w, err) {
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvestmentNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), "")
	case errors.Is(err, apperrors.ErrUserNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), "")
	case errors.Is(err, apperrors.ErrEmailTaken):
		response.RespondError(w, http.StatusConflict, apperrors.ErrEmailTaken.Error(), "")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
	case errors.Is(err, apperrors.ErrIncorrectPassword):
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrIncorrectPassword.Error(), "")
	case errors.Is(err, apperrors.ErrUnknownIndex):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownIndex.Error(), "")
	case errors.Is(err, apperrors.ErrInvalidDate), errors.Is(err, apperrors.ErrInvalidUUID):
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
