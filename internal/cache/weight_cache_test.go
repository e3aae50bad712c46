package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

func setupTestRedis(t *testing.T) *redis.Client {
	s := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: s.Addr()})
}

func TestWeightCacheRoundTrip(t *testing.T) {
	c := NewWeightCache(setupTestRedis(t))
	ctx := context.Background()

	got, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("Get on empty cache: %v", err)
	}
	if got != nil {
		t.Fatalf("empty cache returned %v, want nil", got)
	}

	weights := map[string]int{"Strategic Fit": 40, "User Value": 10}
	if err := c.Set(ctx, weights); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = c.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 || got["Strategic Fit"] != 40 || got["User Value"] != 10 {
		t.Errorf("Get = %v, want %v", got, weights)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	got, err = c.Get(ctx)
	if err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if got != nil {
		t.Errorf("invalidated cache returned %v, want nil", got)
	}
}

func TestAssessmentCacheRoundTrip(t *testing.T) {
	c := NewAssessmentCache(setupTestRedis(t))
	ctx := context.Background()

	bvi := 72.0
	thi := 55.5
	assessment := &model.Assessment{
		ApplicationID:  "app-1",
		Name:           "Dispatch Console",
		BlockScores:    map[string]int{"Strategic Fit": 4},
		BVI:            &bvi,
		THI:            &thi,
		Recommendation: model.RecInvest,
		Subcategory:    "Absorb",
		Priority:       "P1 - Critical",
	}
	if err := c.SetAssessment(ctx, assessment); err != nil {
		t.Fatalf("SetAssessment: %v", err)
	}

	got, err := c.GetAssessment(ctx, "app-1")
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if got == nil || got.Name != "Dispatch Console" || got.Recommendation != model.RecInvest {
		t.Fatalf("GetAssessment = %+v", got)
	}
	if got.BVI == nil || *got.BVI != 72.0 || got.THI == nil || *got.THI != 55.5 {
		t.Errorf("indexes did not survive the round trip: %+v", got)
	}

	if err := c.InvalidateAssessment(ctx, "app-1"); err != nil {
		t.Fatalf("InvalidateAssessment: %v", err)
	}
	if got, _ := c.GetAssessment(ctx, "app-1"); got != nil {
		t.Errorf("invalidated assessment still cached: %+v", got)
	}

	// Unknown applications are a miss, not an error
	if got, err := c.GetAssessment(ctx, "nope"); err != nil || got != nil {
		t.Errorf("unknown id: got %+v, err %v", got, err)
	}
}

func TestRoadmapCacheKeepsUndefinedIndexes(t *testing.T) {
	c := NewAssessmentCache(setupTestRedis(t))
	ctx := context.Background()

	rows := []model.RoadmapRow{
		{ApplicationID: "a", Name: "Alpha", BVI: nil, THI: nil, Recommendation: model.RecNone},
	}
	if err := c.SetRoadmap(ctx, rows); err != nil {
		t.Fatalf("SetRoadmap: %v", err)
	}

	got, err := c.GetRoadmap(ctx)
	if err != nil {
		t.Fatalf("GetRoadmap: %v", err)
	}
	if len(got) != 1 || got[0].BVI != nil || got[0].THI != nil {
		t.Errorf("undefined indexes must stay nil, got %+v", got)
	}
}
