package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghcastellano/avangrid-apm/internal/app"
	"github.com/ghcastellano/avangrid-apm/internal/config"
	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/scoring"
	"github.com/ghcastellano/avangrid-apm/internal/service"
	"github.com/ghcastellano/avangrid-apm/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Log AI config and model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Extract: %s", aiConfig.Models.Extract)
	log.Printf("  Suggest: %s", aiConfig.Models.Suggest)
	if aiConfig.IsEnabled() {
		log.Println("  API Key: configured ✓")
	} else {
		log.Println("  API Key: NOT SET (using mock extractor)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Block catalog, repositories and caches
	catalog := model.DefaultCatalog()
	store := app.New(db, rdb)

	// Services
	authSvc := service.NewAuthService()
	extractor := service.NewExtractionService(catalog)
	resolver := scoring.NewResolver(catalog, nil)
	ingestSvc := service.NewIngestService(store.ApplicationRepo, store.AnswerRepo, store.AssessmentCache, resolver, extractor)
	assessmentSvc := service.NewAssessmentService(
		store.ApplicationRepo,
		store.AnswerRepo,
		store.ScoreRepo,
		store.WeightRepo,
		store.WeightCache,
		store.AssessmentCache,
		catalog,
		extractor,
	)
	roadmapSvc := service.NewRoadmapService(store.ApplicationRepo, store.AssessmentCache, assessmentSvc)
	applicationSvc := service.NewApplicationService(store.ApplicationRepo, store.AnswerRepo, store.ScoreRepo, store.AssessmentCache)

	// Create router with container
	container := &rest.Container{
		Catalog:            catalog,
		AuthService:        authSvc,
		ApplicationService: applicationSvc,
		IngestService:      ingestSvc,
		AssessmentService:  assessmentSvc,
		RoadmapService:     roadmapSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Analyst auth: username=%s", os.Getenv("ANALYST_USERNAME"))
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/applications")
		log.Println("  POST /v1/applications/{appId}/ingest")
		log.Println("  POST /v1/applications/{appId}/transcript")
		log.Println("  GET  /v1/applications/{appId}/assessment")
		log.Println("  POST /v1/applications/{appId}/suggestions")
		log.Println("  PUT  /v1/applications/{appId}/strategy")
		log.Println("  GET/PUT /v1/weights")
		log.Println("  GET  /v1/roadmap")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
