package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ghcastellano/avangrid-apm/internal/cache"
	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/repository"
	"github.com/ghcastellano/avangrid-apm/internal/scoring"
)

// completeAnswerLen is the stored-answer completeness bar: a persisted
// questionnaire answer shorter than this is treated as a placeholder
// that a later upload may fill in, while anything longer is settled and
// a re-upload of the same questionnaire will not disturb it.
const completeAnswerLen = 5

// IngestService turns source documents into resolved answers
type IngestService struct {
	appRepo     repository.ApplicationRepo
	answerRepo  repository.AnswerRepo
	assessments cache.AssessmentCache
	resolver    *scoring.Resolver
	extractor   *ExtractionService
}

// NewIngestService creates a new ingest service
func NewIngestService(
	appRepo repository.ApplicationRepo,
	answerRepo repository.AnswerRepo,
	assessments cache.AssessmentCache,
	resolver *scoring.Resolver,
	extractor *ExtractionService,
) *IngestService {
	return &IngestService{
		appRepo:     appRepo,
		answerRepo:  answerRepo,
		assessments: assessments,
		resolver:    resolver,
		extractor:   extractor,
	}
}

// IngestQuestionnaire resolves one questionnaire upload and persists it.
// Within the upload, rows merge by the resolver's rules; against the
// store, a settled answer is only replaced when it was incomplete and
// the new one is substantial. Returns the number of persisted answers.
func (s *IngestService) IngestQuestionnaire(ctx context.Context, applicationID string, rows []model.RawAnswer) (int, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	if app == nil {
		return 0, ErrApplicationNotFound
	}

	resolved := s.resolver.Resolve(nil, rows, model.RankQuestionnaire, model.SourceQuestionnaire)
	if len(resolved) == 0 {
		return 0, nil
	}

	stored, err := s.storedByQuestion(ctx, applicationID)
	if err != nil {
		return 0, err
	}

	persisted := 0
	for q, ra := range resolved {
		prev := stored[q]
		if prev != nil {
			incomplete := len(strings.TrimSpace(prev.AnswerText)) < completeAnswerLen
			if !incomplete || len(strings.TrimSpace(ra.AnswerText)) < completeAnswerLen {
				continue
			}
			ra.ID = prev.ID
		}
		ra.ApplicationID = applicationID
		if err := s.answerRepo.Upsert(ctx, ra); err != nil {
			return persisted, err
		}
		persisted++
	}

	s.invalidate(ctx, applicationID)
	return persisted, nil
}

// IngestTranscript extracts answers from free transcript text and merges
// them over the stored set. Only extractions above the capture bar are
// considered at all; the source-rank rules decide the rest.
func (s *IngestService) IngestTranscript(ctx context.Context, applicationID, transcript string) (int, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	if app == nil {
		return 0, ErrApplicationNotFound
	}

	extracted, err := s.extractor.ExtractAnswers(ctx, transcript)
	if err != nil {
		return 0, err
	}

	var rows []model.RawAnswer
	for _, ea := range extracted {
		if ea.Answer == "" || ea.Confidence <= CaptureConfidence {
			continue
		}
		rows = append(rows, model.RawAnswer{
			QuestionText: ea.Question,
			AnswerText:   ea.Answer,
			Confidence:   ea.Confidence,
		})
	}
	return s.mergeRanked(ctx, applicationID, rows, model.RankTranscript, model.SourceTranscript)
}

// ImportExpertNotes merges expert assessment rows under the highest
// source rank. The target application is located by name.
func (s *IngestService) ImportExpertNotes(ctx context.Context, appName string, rows []model.RawAnswer) (string, int, error) {
	app, err := s.MatchApplication(ctx, appName)
	if err != nil {
		return "", 0, err
	}
	if app == nil {
		return "", 0, fmt.Errorf("no application matches %q", appName)
	}
	n, err := s.mergeRanked(ctx, app.ID, rows, model.RankExpertNotes, model.SourceExpertNotes)
	return app.ID, n, err
}

// MatchApplication finds an application by name: exact first, then
// ignoring case and punctuation, then by shared name tokens. Token
// matching needs at least two overlapping tokens to avoid pairing every
// "Manager" with every other "Manager".
func (s *IngestService) MatchApplication(ctx context.Context, name string) (*model.Application, error) {
	if app, err := s.appRepo.GetByName(ctx, name); err != nil || app != nil {
		return app, err
	}

	apps, err := s.appRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	target := normalizeName(name)
	for _, app := range apps {
		if normalizeName(app.Name) == target {
			return app, nil
		}
	}

	targetTokens := nameTokens(name)
	var best *model.Application
	bestOverlap := 0
	for _, app := range apps {
		overlap := 0
		for tok := range nameTokens(app.Name) {
			if targetTokens[tok] {
				overlap++
			}
		}
		if overlap > bestOverlap {
			best, bestOverlap = app, overlap
		}
	}
	if bestOverlap >= 2 {
		return best, nil
	}
	return nil, nil
}

func (s *IngestService) mergeRanked(ctx context.Context, applicationID string, rows []model.RawAnswer, rank int, source model.SourceKind) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stored, err := s.storedByQuestion(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	s.resolver.Resolve(stored, rows, rank, source)

	persisted := 0
	for _, ra := range stored {
		if ra.LastSourceRank != rank || ra.LastSource != source {
			continue
		}
		ra.ApplicationID = applicationID
		if err := s.answerRepo.Upsert(ctx, ra); err != nil {
			return persisted, err
		}
		persisted++
	}

	s.invalidate(ctx, applicationID)
	return persisted, nil
}

func (s *IngestService) storedByQuestion(ctx context.Context, applicationID string) (map[string]*model.ResolvedAnswer, error) {
	answers, err := s.answerRepo.GetByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.ResolvedAnswer, len(answers))
	for _, a := range answers {
		out[a.QuestionText] = a
	}
	return out, nil
}

func (s *IngestService) invalidate(ctx context.Context, applicationID string) {
	// Cache misses self-heal, so invalidation failures are not fatal
	_ = s.assessments.InvalidateAssessment(ctx, applicationID)
	_ = s.assessments.InvalidateRoadmap(ctx)
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func nameTokens(name string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		tok = strings.Trim(tok, "()-_.,")
		if len(tok) > 2 {
			out[tok] = true
		}
	}
	return out
}
