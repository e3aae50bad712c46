package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/service"
	"github.com/ghcastellano/avangrid-apm/internal/transport/rest/handler"
	"github.com/ghcastellano/avangrid-apm/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	Catalog            *model.Catalog
	AuthService        *service.AuthService
	ApplicationService *service.ApplicationService
	IngestService      *service.IngestService
	AssessmentService  *service.AssessmentService
	RoadmapService     *service.RoadmapService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	appHandler := handler.NewApplicationHandler(c.ApplicationService, c.IngestService)
	assessHandler := handler.NewAssessmentHandler(c.AssessmentService)
	catalogHandler := handler.NewCatalogHandler(c.Catalog, c.AssessmentService)
	roadmapHandler := handler.NewRoadmapHandler(c.RoadmapService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Analyst routes (require auth)
	analyst := v1.NewRoute().Subrouter()
	analyst.Use(authMW.RequireAnalyst)

	analyst.HandleFunc("/catalog", catalogHandler.Get).Methods("GET", "OPTIONS")
	analyst.HandleFunc("/catalog/subcategories", assessHandler.Options).Methods("GET", "OPTIONS")
	analyst.HandleFunc("/weights", catalogHandler.GetWeights).Methods("GET", "OPTIONS")
	analyst.HandleFunc("/weights", catalogHandler.UpdateWeights).Methods("PUT", "OPTIONS")
	analyst.HandleFunc("/weights/reset", catalogHandler.ResetWeights).Methods("POST", "OPTIONS")

	analyst.HandleFunc("/applications", appHandler.Create).Methods("POST", "OPTIONS")
	analyst.HandleFunc("/applications", appHandler.List).Methods("GET", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}", appHandler.Get).Methods("GET", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}", appHandler.Rename).Methods("PUT", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}", appHandler.Delete).Methods("DELETE", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}/ingest", appHandler.Ingest).Methods("POST", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}/transcript", appHandler.Transcript).Methods("POST", "OPTIONS")
	analyst.HandleFunc("/notes", appHandler.Notes).Methods("POST", "OPTIONS")

	analyst.HandleFunc("/applications/{appId}/assessment", assessHandler.Get).Methods("GET", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}/suggestions", assessHandler.Suggest).Methods("POST", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}/scores/{block}/approve", assessHandler.Approve).Methods("POST", "OPTIONS")
	analyst.HandleFunc("/applications/{appId}/strategy", assessHandler.UpdateStrategy).Methods("PUT", "OPTIONS")

	analyst.HandleFunc("/roadmap", roadmapHandler.Get).Methods("GET", "OPTIONS")
	analyst.HandleFunc("/roadmap/reset-subcategories", roadmapHandler.ResetSubcategories).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
