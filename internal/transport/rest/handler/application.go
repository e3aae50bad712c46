package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/service"
)

// ApplicationHandler handles portfolio entry endpoints
type ApplicationHandler struct {
	appSvc    *service.ApplicationService
	ingestSvc *service.IngestService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appSvc *service.ApplicationService, ingestSvc *service.IngestService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc, ingestSvc: ingestSvc}
}

// Create handles POST /v1/applications
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.appSvc.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// List handles GET /v1/applications
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if apps == nil {
		apps = []*model.Application{}
	}
	writeJSON(w, http.StatusOK, apps)
}

// Get handles GET /v1/applications/{appId}
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.appSvc.Get(r.Context(), mux.Vars(r)["appId"])
	if err == service.ErrApplicationNotFound {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// Rename handles PUT /v1/applications/{appId}
func (h *ApplicationHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.appSvc.Rename(r.Context(), mux.Vars(r)["appId"], req.Name)
	if err == service.ErrApplicationNotFound {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// Delete handles DELETE /v1/applications/{appId}
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.appSvc.Delete(r.Context(), mux.Vars(r)["appId"])
	if err == service.ErrApplicationNotFound {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Ingest handles POST /v1/applications/{appId}/ingest
func (h *ApplicationHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows []model.RawAnswer `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to ingest")
		return
	}

	n, err := h.ingestSvc.IngestQuestionnaire(r.Context(), mux.Vars(r)["appId"], req.Rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"persisted": n})
}

// Transcript handles POST /v1/applications/{appId}/transcript
func (h *ApplicationHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Transcript == "" {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	n, err := h.ingestSvc.IngestTranscript(r.Context(), mux.Vars(r)["appId"], req.Transcript)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"persisted": n})
}

// Notes handles POST /v1/notes: expert assessment rows targeted by
// application name rather than id
func (h *ApplicationHandler) Notes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicationName string            `json:"applicationName"`
		Rows            []model.RawAnswer `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ApplicationName == "" || len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "applicationName and rows are required")
		return
	}

	appID, n, err := h.ingestSvc.ImportExpertNotes(r.Context(), req.ApplicationName, req.Rows)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"applicationId": appID, "persisted": n})
}
