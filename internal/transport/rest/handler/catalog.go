package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/service"
)

// CatalogHandler serves the static assessment configuration and the
// runtime-editable weights
type CatalogHandler struct {
	catalog   *model.Catalog
	assessSvc *service.AssessmentService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *model.Catalog, assessSvc *service.AssessmentService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, assessSvc: assessSvc}
}

// Get handles GET /v1/catalog
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blocks := h.catalog.Blocks()
	questions := make(map[string][]string, len(blocks))
	for _, b := range blocks {
		for _, q := range h.catalog.QuestionsOf(b.Name) {
			questions[b.Name] = append(questions[b.Name], q.Text)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"blocks":    blocks,
		"questions": questions,
		"matrix":    model.DecisionMatrix,
	})
}

// GetWeights handles GET /v1/weights
func (h *CatalogHandler) GetWeights(w http.ResponseWriter, r *http.Request) {
	weights, err := h.assessSvc.EffectiveWeights(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, weights)
}

// UpdateWeights handles PUT /v1/weights
func (h *CatalogHandler) UpdateWeights(w http.ResponseWriter, r *http.Request) {
	var req map[string]int
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "no weights provided")
		return
	}

	for block, weight := range req {
		if err := h.assessSvc.UpdateWeight(r.Context(), block, weight); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	weights, err := h.assessSvc.EffectiveWeights(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, weights)
}

// ResetWeights handles POST /v1/weights/reset
func (h *CatalogHandler) ResetWeights(w http.ResponseWriter, r *http.Request) {
	if err := h.assessSvc.ResetWeights(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.DefaultWeights())
}
