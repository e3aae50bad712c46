package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/service"
	"github.com/ghcastellano/avangrid-apm/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment endpoints
type AssessmentHandler struct {
	assessSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessSvc: assessSvc}
}

// Get handles GET /v1/applications/{appId}/assessment
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.assessSvc.Compute(r.Context(), mux.Vars(r)["appId"])
	if err == service.ErrApplicationNotFound {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// Suggest handles POST /v1/applications/{appId}/suggestions
func (h *AssessmentHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	scores, err := h.assessSvc.RecalculateSuggestions(r.Context(), mux.Vars(r)["appId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scores == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "insufficient data"})
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// Approve handles POST /v1/applications/{appId}/scores/{block}/approve
func (h *AssessmentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	analystID := middleware.GetAnalystID(r.Context())

	if err := h.assessSvc.ApproveScore(r.Context(), vars["appId"], vars["block"], analystID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

// UpdateStrategy handles PUT /v1/applications/{appId}/strategy
func (h *AssessmentHandler) UpdateStrategy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subcategory string `json:"subcategory"`
		QuickWin    bool   `json:"quickWin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	warning, err := h.assessSvc.UpdateStrategy(r.Context(), mux.Vars(r)["appId"], req.Subcategory, req.QuickWin)
	if err == service.ErrApplicationNotFound {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := map[string]string{"status": "updated"}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusOK, resp)
}

// Options handles GET /v1/catalog/subcategories: the valid vocabulary
// per recommendation, for override pickers
func (h *AssessmentHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.SubcategoryOptions)
}
