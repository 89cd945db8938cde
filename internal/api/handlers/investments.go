package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// InvestmentHandler handles investment-related HTTP requests.
// Every route requires an authenticated user and only sees that user's rows.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
	chartService      *service.ChartService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService *service.InvestmentService, chartService *service.ChartService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
		chartService:      chartService,
	}
}

// ListInvestments handles GET requests for the user's investments, newest first.
//
// Endpoint: GET /api/investments
// Query Parameters:
//   - type: only investments of this type
//   - page, per_page: enable paging (per_page defaults to 10, max 100)
//
// Response: 200 OK with model.InvestmentPage
// Error: 400 Bad Request for invalid paging parameters
func (h *InvestmentHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter, err := request.ParseInvestmentFilter(q.Get("type"), q.Get("page"), q.Get("per_page"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}
	filter.UserID = uid

	page, err := h.investmentService.ListInvestments(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestments)
		return
	}

	response.RespondJSON(w, http.StatusOK, page)
}

// GetInvestment handles GET requests for a single investment.
//
// Endpoint: GET /api/investments/{uuid}
// Response: 200 OK with model.InvestmentRow
// Error: 404 Not Found if the investment does not exist or belongs to another user
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	row, err := h.investmentService.GetInvestment(r.Context(), uid, chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestment)
		return
	}

	response.RespondJSON(w, http.StatusOK, row)
}

// CreateInvestment handles POST requests to record an investment.
//
// Endpoint: POST /api/investments
// Request Body: CreateInvestmentRequest (type, amount and date required)
// Response: 201 Created with model.InvestmentRow
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateInvestment)
		return
	}

	row, err := h.investmentService.CreateInvestment(r.Context(), uid, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateInvestment)
		return
	}

	response.RespondJSON(w, http.StatusCreated, row)
}

// UpdateInvestment handles PUT requests to change an investment.
// Only fields present in the body are changed.
//
// Endpoint: PUT /api/investments/{uuid}
// Request Body: UpdateInvestmentRequest (all fields optional)
// Response: 200 OK with the updated model.InvestmentRow
// Error: 400 Bad Request if the updated investment would be invalid
// Error: 404 Not Found if the investment does not exist or belongs to another user
func (h *InvestmentHandler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.UpdateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	row, err := h.investmentService.UpdateInvestment(r.Context(), uid, chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateInvestment)
		return
	}

	response.RespondJSON(w, http.StatusOK, row)
}

// DeleteInvestment handles DELETE requests to remove an investment.
//
// Endpoint: DELETE /api/investments/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the investment does not exist or belongs to another user
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.investmentService.DeleteInvestment(r.Context(), uid, chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteInvestment)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Summary returns the dashboard summary cards.
//
// Endpoint: GET /api/investments/summary
// Response: 200 OK with model.InvestmentSummary
func (h *InvestmentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	summary, err := h.investmentService.GetSummary(r.Context(), uid)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestments)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Projection returns the projected total value from today.
//
// Endpoint: GET /api/investments/projection
// Query Parameters:
//   - period: 1m, 6m, 1y or 10y (default 6m)
//   - step: days between points (default 1)
//
// Response: 200 OK with model.Projection
// Error: 400 Bad Request for an unknown period or invalid step
func (h *InvestmentHandler) Projection(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	params, err := request.ParseProjectionParams(r.URL.Query().Get("period"), r.URL.Query().Get("step"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	projection, err := h.investmentService.GetProjection(r.Context(), uid, params)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestments)
		return
	}

	response.RespondJSON(w, http.StatusOK, projection)
}

// Distribution returns the invested amount per category.
//
// Endpoint: GET /api/investments/distribution
// Query Parameters:
//   - category: also return the investments of this category
//
// Response: 200 OK with model.Distribution
func (h *InvestmentHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	dist, err := h.investmentService.GetDistribution(r.Context(), uid, r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestments)
		return
	}

	response.RespondJSON(w, http.StatusOK, dist)
}

// Preview estimates an unsaved investment one year ahead.
//
// Endpoint: GET /api/investments/preview
// Query Parameters:
//   - amount, yield_rate: numbers; anything else reads as 0
//   - yield_type: aa, cdi, selic or ipca (default aa)
//
// Response: 200 OK with model.InvestmentPreview
func (h *InvestmentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if _, ok := userID(w, r); !ok {
		return
	}

	q := r.URL.Query()
	params := request.ParsePreviewParams(q.Get("amount"), q.Get("yield_rate"), q.Get("yield_type"))

	response.RespondJSON(w, http.StatusOK, h.investmentService.Preview(r.Context(), params))
}

// ProjectionChart renders the projection as a PNG line chart.
// Accepts the same query parameters as Projection.
//
// Endpoint: GET /api/investments/charts/projection.png
// Response: 200 OK with image/png
// Error: 404 Not Found when there is nothing to plot
func (h *InvestmentHandler) ProjectionChart(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	params, err := request.ParseProjectionParams(r.URL.Query().Get("period"), r.URL.Query().Get("step"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	png, err := h.chartService.ProjectionPNG(r.Context(), uid, params)
	h.respondChart(w, png, err)
}

// DistributionChart renders the distribution as a PNG pie chart.
//
// Endpoint: GET /api/investments/charts/distribution.png
// Response: 200 OK with image/png
// Error: 404 Not Found when the user has no investments
func (h *InvestmentHandler) DistributionChart(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	png, err := h.chartService.DistributionPNG(r.Context(), uid)
	h.respondChart(w, png, err)
}

func (h *InvestmentHandler) respondChart(w http.ResponseWriter, png []byte, err error) {
	if errors.Is(err, service.ErrNoChartData) {
		response.RespondError(w, http.StatusNotFound, service.ErrNoChartData.Error(), "")
		return
	}
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRenderChart)
		return
	}
	response.RespondPNG(w, png)
}
