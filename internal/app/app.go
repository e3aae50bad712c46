package app

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ghcastellano/avangrid-apm/internal/cache"
	"github.com/ghcastellano/avangrid-apm/internal/repository"
)

// App bundles the storage layer: repositories over one Mongo database
// and caches over one Redis client.
type App struct {
	ApplicationRepo repository.ApplicationRepo
	AnswerRepo      repository.AnswerRepo
	ScoreRepo       repository.ScoreRepo
	WeightRepo      repository.WeightRepo

	WeightCache     cache.WeightCache
	AssessmentCache cache.AssessmentCache
}

func New(db *mongo.Database, rdb *redis.Client) *App {
	return &App{
		ApplicationRepo: repository.NewApplicationRepo(db),
		AnswerRepo:      repository.NewAnswerRepo(db),
		ScoreRepo:       repository.NewScoreRepo(db),
		WeightRepo:      repository.NewWeightRepo(db),
		WeightCache:     cache.NewWeightCache(rdb),
		AssessmentCache: cache.NewAssessmentCache(rdb),
	}
}
