package service

import (
	"context"

	"github.com/ghcastellano/avangrid-apm/internal/cache"
	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/repository"
	"github.com/ghcastellano/avangrid-apm/internal/scoring"
)

// RoadmapService builds the portfolio roadmap view
type RoadmapService struct {
	appRepo     repository.ApplicationRepo
	assessments cache.AssessmentCache
	assessor    *AssessmentService
}

// NewRoadmapService creates a new roadmap service
func NewRoadmapService(appRepo repository.ApplicationRepo, assessments cache.AssessmentCache, assessor *AssessmentService) *RoadmapService {
	return &RoadmapService{
		appRepo:     appRepo,
		assessments: assessments,
		assessor:    assessor,
	}
}

// Roadmap assembles one row per application from the current
// assessments. A human-entered subcategory that no longer fits the
// recomputed recommendation surfaces as a row warning, never as a
// correction.
func (s *RoadmapService) Roadmap(ctx context.Context) ([]model.RoadmapRow, error) {
	if cached, err := s.assessments.GetRoadmap(ctx); err == nil && cached != nil {
		return cached, nil
	}

	apps, err := s.appRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]model.RoadmapRow, 0, len(apps))
	for _, app := range apps {
		assessment, err := s.assessor.Compute(ctx, app.ID)
		if err != nil {
			return nil, err
		}

		row := model.RoadmapRow{
			ApplicationID:  app.ID,
			Name:           app.Name,
			BlockScores:    assessment.BlockScores,
			BVI:            assessment.BVI,
			THI:            assessment.THI,
			Recommendation: assessment.Recommendation,
			Subcategory:    assessment.Subcategory,
			QuickWin:       assessment.QuickWin,
			Priority:       assessment.Priority,
			Group:          assessment.Group,
			ChainStage:     assessment.ChainStage,
		}
		if assessment.Overridden {
			if w, ok := scoring.ValidateSubcategory(assessment.Recommendation, assessment.Subcategory); !ok {
				row.Warning = w
			}
		}
		rows = append(rows, row)
	}

	_ = s.assessments.SetRoadmap(ctx, rows)
	return rows, nil
}

// ResetSubcategories clears every human-entered subcategory and quick-win
// flag, returning the portfolio to pure automatic classification
func (s *RoadmapService) ResetSubcategories(ctx context.Context) (int, error) {
	apps, err := s.appRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	reset := 0
	for _, app := range apps {
		if app.Subcategory == "" && !app.QuickWin {
			continue
		}
		app.Subcategory = ""
		app.QuickWin = false
		if err := s.appRepo.Update(ctx, app); err != nil {
			return reset, err
		}
		_ = s.assessments.InvalidateAssessment(ctx, app.ID)
		reset++
	}
	_ = s.assessments.InvalidateRoadmap(ctx)
	return reset, nil
}
