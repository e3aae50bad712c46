package handler

import (
	"net/http"

	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/service"
)

// RoadmapHandler handles the portfolio roadmap endpoints
type RoadmapHandler struct {
	roadmapSvc *service.RoadmapService
}

// NewRoadmapHandler creates a new roadmap handler
func NewRoadmapHandler(roadmapSvc *service.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmapSvc: roadmapSvc}
}

// Get handles GET /v1/roadmap
func (h *RoadmapHandler) Get(w http.ResponseWriter, r *http.Request) {
	rows, err := h.roadmapSvc.Roadmap(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []model.RoadmapRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// ResetSubcategories handles POST /v1/roadmap/reset-subcategories
func (h *RoadmapHandler) ResetSubcategories(w http.ResponseWriter, r *http.Request) {
	n, err := h.roadmapSvc.ResetSubcategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"reset": n})
}
