package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/biostack-io/biostack-engine/pkg/dataset"
	"github.com/biostack-io/biostack-engine/pkg/models"
)

// CatalogHandler serves the read-only catalog: categories and entries.
type CatalogHandler struct {
	data   *dataset.Dataset
	logger *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler over the loaded dataset.
func NewCatalogHandler(data *dataset.Dataset, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{data: data, logger: logger}
}

// RegisterRoutes registers the catalog routes on the given mux.
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /entries", h.ListEntries)
	mux.HandleFunc("GET /entries/{id}", h.GetEntry)
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, h.data.Categories()); err != nil {
		h.logger.Error("Failed to write categories response", zap.Error(err))
	}
}

// ListEntries handles GET /entries. An optional q parameter applies a
// case-insensitive substring filter over name, mechanism, benefits,
// warnings, synergies, and raw notes.
func (h *CatalogHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	entries := h.data.Entries()
	if query == "" {
		if err := WriteJSON(w, http.StatusOK, entries); err != nil {
			h.logger.Error("Failed to write entries response", zap.Error(err))
		}
		return
	}

	filtered := make([]models.Entry, 0, len(entries))
	for _, entry := range entries {
		if entryMatchesQuery(&entry, query) {
			filtered = append(filtered, entry)
		}
	}

	if err := WriteJSON(w, http.StatusOK, filtered); err != nil {
		h.logger.Error("Failed to write filtered entries response", zap.Error(err))
	}
}

// GetEntry handles GET /entries/{id}.
func (h *CatalogHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entry, ok := h.data.EntryByID(id)
	if !ok {
		if err := ErrorResponse(w, http.StatusNotFound, "Entry not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, entry); err != nil {
		h.logger.Error("Failed to write entry response", zap.Error(err))
	}
}

func entryMatchesQuery(entry *models.Entry, query string) bool {
	corpus := strings.ToLower(strings.Join([]string{
		entry.Name,
		entry.Mechanism,
		strings.Join(entry.Benefits, " "),
		strings.Join(entry.Warnings, " "),
		strings.Join(entry.Synergies, " "),
		entry.RawNotes,
	}, " "))
	return strings.Contains(corpus, query)
}
