package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ghcastellano/avangrid-apm/internal/cache"
	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/repository"
)

// ApplicationService manages portfolio entries
type ApplicationService struct {
	appRepo     repository.ApplicationRepo
	answerRepo  repository.AnswerRepo
	scoreRepo   repository.ScoreRepo
	assessments cache.AssessmentCache
}

// NewApplicationService creates a new application service
func NewApplicationService(appRepo repository.ApplicationRepo, answerRepo repository.AnswerRepo, scoreRepo repository.ScoreRepo, assessments cache.AssessmentCache) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		answerRepo:  answerRepo,
		scoreRepo:   scoreRepo,
		assessments: assessments,
	}
}

// Create registers a new application. Names are unique across the
// portfolio; the safe name is derived for spreadsheet-style consumers.
func (s *ApplicationService) Create(ctx context.Context, name string) (*model.Application, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("application name is required")
	}

	existing, err := s.appRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("application %q already exists", name)
	}

	app := &model.Application{
		Name:     name,
		SafeName: SafeName(name),
	}
	if _, err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	_ = s.assessments.InvalidateRoadmap(ctx)
	return app, nil
}

// Get returns one application, or ErrApplicationNotFound
func (s *ApplicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// List returns every application, sorted by name
func (s *ApplicationService) List(ctx context.Context) ([]*model.Application, error) {
	return s.appRepo.List(ctx)
}

// Rename updates an application's display name and safe name
func (s *ApplicationService) Rename(ctx context.Context, id, name string) (*model.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("application name is required")
	}
	app.Name = name
	app.SafeName = SafeName(name)
	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	_ = s.assessments.InvalidateAssessment(ctx, id)
	_ = s.assessments.InvalidateRoadmap(ctx)
	return app, nil
}

// Delete removes an application and everything resolved for it
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.answerRepo.DeleteByApplication(ctx, id); err != nil {
		return err
	}
	if err := s.scoreRepo.DeleteByApplication(ctx, id); err != nil {
		return err
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.assessments.InvalidateAssessment(ctx, id)
	_ = s.assessments.InvalidateRoadmap(ctx)
	return nil
}

// SafeName strips the characters spreadsheet tooling rejects and caps
// the length at 31
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\', '\'', '"':
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 31 {
		out = out[:31]
	}
	return out
}
