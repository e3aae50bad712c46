package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// AssessmentCache handles Redis operations for computed assessments and
// the roadmap view. Both are derived data, so every write path that
// changes answers, scores or weights must invalidate here.
type AssessmentCache interface {
	GetAssessment(ctx context.Context, applicationID string) (*model.Assessment, error)
	SetAssessment(ctx context.Context, assessment *model.Assessment) error
	InvalidateAssessment(ctx context.Context, applicationID string) error

	GetRoadmap(ctx context.Context) ([]model.RoadmapRow, error)
	SetRoadmap(ctx context.Context, rows []model.RoadmapRow) error
	InvalidateRoadmap(ctx context.Context) error
}

type assessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAssessmentCache creates a new assessment cache
func NewAssessmentCache(client *redis.Client) AssessmentCache {
	return &assessmentCache{
		client: client,
		ttl:    15 * time.Minute,
	}
}

func (c *assessmentCache) assessmentKey(applicationID string) string {
	return fmt.Sprintf("apm:assessment:%s", applicationID)
}

const roadmapKey = "apm:roadmap"

func (c *assessmentCache) GetAssessment(ctx context.Context, applicationID string) (*model.Assessment, error) {
	data, err := c.client.Get(ctx, c.assessmentKey(applicationID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var assessment model.Assessment
	if err := json.Unmarshal([]byte(data), &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (c *assessmentCache) SetAssessment(ctx context.Context, assessment *model.Assessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.assessmentKey(assessment.ApplicationID), data, c.ttl).Err()
}

func (c *assessmentCache) InvalidateAssessment(ctx context.Context, applicationID string) error {
	return c.client.Del(ctx, c.assessmentKey(applicationID)).Err()
}

func (c *assessmentCache) GetRoadmap(ctx context.Context) ([]model.RoadmapRow, error) {
	data, err := c.client.Get(ctx, roadmapKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rows []model.RoadmapRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *assessmentCache) SetRoadmap(ctx context.Context, rows []model.RoadmapRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roadmapKey, data, c.ttl).Err()
}

func (c *assessmentCache) InvalidateRoadmap(ctx context.Context) error {
	return c.client.Del(ctx, roadmapKey).Err()
}
