package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// IndicesHandler serves central bank index history.
type IndicesHandler struct {
	indicesService *service.IndicesService
}

// NewIndicesHandler creates a new IndicesHandler
func NewIndicesHandler(indicesService *service.IndicesService) *IndicesHandler {
	return &IndicesHandler{
		indicesService: indicesService,
	}
}

// respondIndexError reports unknown indices as 400 and upstream failures as 502.
func respondIndexError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrUnknownIndex) {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownIndex.Error(), "supported: selic, cdi, ipca, igpm")
		return
	}
	response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrieveIndex.Error(), err.Error())
}

// Series returns the full history of an index.
//
// Endpoint: GET /api/indices/{index}
// Response: 200 OK with model.IndexSeries
// Error: 400 Bad Request for an unsupported index
// Error: 502 Bad Gateway if the central bank API fails
func (h *IndicesHandler) Series(w http.ResponseWriter, r *http.Request) {
	series, err := h.indicesService.GetSeries(r.Context(), strings.ToLower(chi.URLParam(r, "index")))
	if err != nil {
		respondIndexError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// Yearly returns the compounded change of an index per calendar year.
//
// Endpoint: GET /api/indices/{index}/yearly
// Response: 200 OK with []model.IndexYear
func (h *IndicesHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	years, err := h.indicesService.GetYearly(r.Context(), strings.ToLower(chi.URLParam(r, "index")))
	if err != nil {
		respondIndexError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, years)
}

// Summary returns the latest annualized level of every index.
//
// Endpoint: GET /api/indices/summary
// Response: 200 OK with []model.IndexOverview
func (h *IndicesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	overview, err := h.indicesService.GetOverview(r.Context())
	if err != nil {
		respondIndexError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}
