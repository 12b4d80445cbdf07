package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/biostack-io/biostack-engine/pkg/services"
)

// CompatibilityHandler serves the compatibility evaluation endpoint.
type CompatibilityHandler struct {
	service services.CompatibilityService
	logger  *zap.Logger
}

// NewCompatibilityHandler creates a new CompatibilityHandler.
func NewCompatibilityHandler(service services.CompatibilityService, logger *zap.Logger) *CompatibilityHandler {
	return &CompatibilityHandler{service: service, logger: logger}
}

// RegisterRoutes registers the compatibility route on the given mux.
func (h *CompatibilityHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /compatibility", h.Evaluate)
}

// Evaluate handles GET /compatibility?ids=a,b,c. Requires at least two
// non-empty ids after trimming; deduplication and resolution of unknown ids
// happen inside the engine.
func (h *CompatibilityHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	rawIDs := r.URL.Query().Get("ids")

	ids := make([]string, 0)
	for _, id := range strings.Split(rawIDs, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	if len(ids) < 2 {
		if err := ErrorResponse(w, http.StatusBadRequest, "Provide at least two comma-separated ids in the ids query."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	outcome := h.service.Evaluate(ids)
	if err := WriteJSON(w, http.StatusOK, outcome); err != nil {
		h.logger.Error("Failed to write compatibility response", zap.Error(err))
	}
}
