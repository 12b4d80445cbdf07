package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/biostack-io/biostack-engine/pkg/disclaimers"
)

// DisclaimersResponse is the fixed educational-use payload for GET /disclaimers.
type DisclaimersResponse struct {
	Title                       string   `json:"title"`
	Summary                     string   `json:"summary"`
	Claims                      []string `json:"claims"`
	EmergencyGuidance           string   `json:"emergencyGuidance"`
	CompatibilitySafetyReminder string   `json:"compatibilitySafetyReminder"`
}

// DisclaimersHandler serves the static disclaimer strings.
type DisclaimersHandler struct {
	logger *zap.Logger
}

// NewDisclaimersHandler creates a new DisclaimersHandler.
func NewDisclaimersHandler(logger *zap.Logger) *DisclaimersHandler {
	return &DisclaimersHandler{logger: logger}
}

// RegisterRoutes registers the disclaimers route on the given mux.
func (h *DisclaimersHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /disclaimers", h.Get)
}

// Get handles GET /disclaimers.
func (h *DisclaimersHandler) Get(w http.ResponseWriter, r *http.Request) {
	response := DisclaimersResponse{
		Title:                       disclaimers.Title,
		Summary:                     disclaimers.Summary,
		Claims:                      disclaimers.Claims,
		EmergencyGuidance:           disclaimers.EmergencyGuidance,
		CompatibilitySafetyReminder: disclaimers.CompatibilitySafetyReminder,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write disclaimers response", zap.Error(err))
	}
}
