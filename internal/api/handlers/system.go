package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// SystemHandler serves the unauthenticated health and version probes.
type SystemHandler struct {
	system *service.SystemService
}

func NewSystemHandler(system *service.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// HealthResponse is the body of GET /api/system/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health pings the portfolio database.
//
// Endpoint: GET /api/system/health
// Response: 200 OK when the database answers, 503 Service Unavailable otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	body, status := HealthResponse{Status: "healthy", Database: "connected"}, http.StatusOK
	if err := h.system.CheckHealth(); err != nil {
		body = HealthResponse{Status: "unhealthy", Database: "disconnected", Error: err.Error()}
		status = http.StatusServiceUnavailable
	}
	response.RespondJSON(w, status, body)
}

// Version reports the build version and the applied migration version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with model.VersionInfo
// Error: 500 Internal Server Error if the schema version cannot be read
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	info, err := h.system.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, info)
}
