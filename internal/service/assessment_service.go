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

var ErrApplicationNotFound = fmt.Errorf("application not found")

// suggestionCompleteness is the minimum share of substantial answers a
// portfolio entry needs before the automatic score suggestion runs
const suggestionCompleteness = 0.5

// AssessmentService computes the full assessment for an application:
// block scores, indexes, recommendation, subcategory and priority
type AssessmentService struct {
	appRepo     repository.ApplicationRepo
	answerRepo  repository.AnswerRepo
	scoreRepo   repository.ScoreRepo
	weightRepo  repository.WeightRepo
	weights     cache.WeightCache
	assessments cache.AssessmentCache
	catalog     *model.Catalog
	scorer      *scoring.BlockScorer
	aggregator  *scoring.IndexAggregator
	extractor   *ExtractionService
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	appRepo repository.ApplicationRepo,
	answerRepo repository.AnswerRepo,
	scoreRepo repository.ScoreRepo,
	weightRepo repository.WeightRepo,
	weights cache.WeightCache,
	assessments cache.AssessmentCache,
	catalog *model.Catalog,
	extractor *ExtractionService,
) *AssessmentService {
	return &AssessmentService{
		appRepo:     appRepo,
		answerRepo:  answerRepo,
		scoreRepo:   scoreRepo,
		weightRepo:  weightRepo,
		weights:     weights,
		assessments: assessments,
		catalog:     catalog,
		scorer:      scoring.NewBlockScorer(catalog, scoring.NewEvaluator(catalog.Lexicon())),
		aggregator:  scoring.NewIndexAggregator(catalog),
		extractor:   extractor,
	}
}

// Compute builds the assessment for one application. Weights and
// approved scores are read fresh on every call so a weight change shows
// up in the next computation; the redis layer only absorbs repeat reads.
func (s *AssessmentService) Compute(ctx context.Context, applicationID string) (*model.Assessment, error) {
	if cached, err := s.assessments.GetAssessment(ctx, applicationID); err == nil && cached != nil {
		return cached, nil
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	answers, err := s.answerRepo.GetByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	resolved := make(map[string]*model.ResolvedAnswer, len(answers))
	for _, a := range answers {
		resolved[a.QuestionText] = a
	}

	computed, detail := s.scorer.ScoreAll(resolved)

	blockScores := make(map[string]int, len(computed))
	hasData := make(map[string]bool, len(computed))
	for block, bs := range computed {
		blockScores[block] = bs.FinalScore
		hasData[block] = bs.CountedQuestions > 0
	}

	// An approved score is an analyst's judgement and beats the computed
	// one, including for index purposes
	approved, err := s.scoreRepo.GetApproved(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	for _, sc := range approved {
		blockScores[sc.Block] = sc.Score
		hasData[sc.Block] = true
	}

	weights, err := s.EffectiveWeights(ctx)
	if err != nil {
		return nil, err
	}

	// Unanswered blocks participate in the index math at their floor
	// score of 1. An index is undefined only when its whole category has
	// no data at all.
	hasBusiness, hasTechnical := false, false
	for block, ok := range hasData {
		if !ok {
			continue
		}
		if b, found := s.catalog.Block(block); found {
			switch b.Category {
			case model.CategoryBusiness:
				hasBusiness = true
			case model.CategoryTechnical:
				hasTechnical = true
			}
		}
	}

	var bvi, thi *float64
	if hasBusiness || hasTechnical {
		bvi, thi = s.aggregator.Indexes(blockScores, weights)
	}
	if !hasBusiness {
		bvi = nil
	}
	if !hasTechnical {
		thi = nil
	}

	rec := scoring.Classify(bvi, thi)

	assessment := &model.Assessment{
		ApplicationID:  applicationID,
		Name:           app.Name,
		BlockScores:    blockScores,
		BlockDetail:    detail,
		BVI:            bvi,
		THI:            thi,
		Recommendation: rec,
		QuickWin:       app.QuickWin,
	}

	if app.Subcategory != "" {
		assessment.Subcategory = app.Subcategory
		assessment.Overridden = true
	} else if rec != model.RecNone {
		assessment.Subcategory = scoring.DeriveSubcategory(
			rec, *bvi, *thi,
			blockScores[model.BlockArchitecture],
			blockScores[model.BlockMaintainability],
		)
	}
	assessment.Priority, assessment.Rationale = scoring.PriorityFor(assessment.Subcategory, app.QuickWin)

	var texts []string
	for _, a := range answers {
		texts = append(texts, a.AnswerText)
	}
	assessment.Group = scoring.GroupFor(s.catalog, app.Name, texts)
	assessment.ChainStage = scoring.ChainStageFor(s.catalog, app.Name, texts)

	// best effort; a cold cache just recomputes
	_ = s.assessments.SetAssessment(ctx, assessment)
	return assessment, nil
}

// RecalculateSuggestions rebuilds the unapproved score suggestions for
// an application from its stored answers. Questionnaire and expert
// answers contribute when substantial; transcript answers only above the
// suggestion confidence bar. Untouched blocks get the conservative
// no-data default so every block ends up with a reviewable proposal,
// except blocks whose score an analyst has already approved.
func (s *AssessmentService) RecalculateSuggestions(ctx context.Context, applicationID string) ([]*model.SuggestedScore, error) {
	answers, err := s.answerRepo.GetByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, nil
	}

	evidence := make(map[string][]string)
	substantial := 0
	fromTranscript := false
	for _, a := range answers {
		if len(strings.TrimSpace(a.AnswerText)) >= completeAnswerLen {
			substantial++
		}
		if a.LastSource == model.SourceTranscript {
			if a.Confidence <= SuggestionConfidence {
				continue
			}
			fromTranscript = true
		} else if len(strings.TrimSpace(a.AnswerText)) < completeAnswerLen {
			continue
		}
		evidence[a.Block] = append(evidence[a.Block], a.QuestionText+" "+a.AnswerText)
	}

	if float64(substantial)/float64(len(answers)) < suggestionCompleteness {
		return nil, nil
	}

	suggestions, err := s.extractor.SuggestScores(ctx, evidence)
	if err != nil {
		return nil, err
	}

	suggestedBy := "ai_questionnaire"
	if fromTranscript {
		suggestedBy = "ai_transcript"
	}

	if err := s.scoreRepo.DeleteSuggested(ctx, applicationID); err != nil {
		return nil, err
	}

	// An approved score is settled; the rebuild never touches its block
	approved, err := s.scoreRepo.GetApproved(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	approvedBlocks := make(map[string]bool, len(approved))
	for _, sc := range approved {
		approvedBlocks[sc.Block] = true
	}

	var out []*model.SuggestedScore
	for _, b := range s.catalog.Blocks() {
		if approvedBlocks[b.Name] {
			continue
		}
		sg, ok := suggestions[b.Name]
		if !ok {
			sg = NoDataSuggestion()
		}
		score := &model.SuggestedScore{
			ApplicationID: applicationID,
			Block:         b.Name,
			Score:         sg.Score,
			SuggestedBy:   suggestedBy,
			Confidence:    sg.Confidence,
			Rationale:     sg.Rationale,
		}
		if err := s.scoreRepo.Upsert(ctx, score); err != nil {
			return out, err
		}
		out = append(out, score)
	}
	return out, nil
}

// ApproveScore marks one block suggestion as analyst-approved, which
// overlays the computed block score from then on
func (s *AssessmentService) ApproveScore(ctx context.Context, applicationID, block, analystID string) error {
	if _, ok := s.catalog.Block(block); !ok {
		return fmt.Errorf("unknown block %q", block)
	}
	if err := s.scoreRepo.Approve(ctx, applicationID, block, analystID); err != nil {
		return err
	}
	s.invalidate(ctx, applicationID)
	return nil
}

// UpdateStrategy stores a human-entered subcategory and quick-win flag.
// A subcategory that conflicts with the current recommendation is saved
// anyway and the conflict returned as a warning; the system never
// overrides an analyst's entry.
func (s *AssessmentService) UpdateStrategy(ctx context.Context, applicationID, subcategory string, quickWin bool) (string, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return "", err
	}
	if app == nil {
		return "", ErrApplicationNotFound
	}

	warning := ""
	if subcategory != "" {
		if !knownSubcategory(subcategory) {
			return "", fmt.Errorf("unknown subcategory %q", subcategory)
		}
		assessment, err := s.Compute(ctx, applicationID)
		if err != nil {
			return "", err
		}
		if w, ok := scoring.ValidateSubcategory(assessment.Recommendation, subcategory); !ok {
			warning = w
		}
	}

	app.Subcategory = subcategory
	app.QuickWin = quickWin
	if err := s.appRepo.Update(ctx, app); err != nil {
		return "", err
	}
	s.invalidate(ctx, applicationID)
	return warning, nil
}

// EffectiveWeights returns the current block weights: stored overrides
// where present, catalog defaults elsewhere
func (s *AssessmentService) EffectiveWeights(ctx context.Context) (map[string]int, error) {
	if cached, err := s.weights.Get(ctx); err == nil && cached != nil {
		return cached, nil
	}

	stored, err := s.weightRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	effective := s.catalog.DefaultWeights()
	for block, w := range stored {
		if _, ok := effective[block]; ok {
			effective[block] = w
		}
	}
	_ = s.weights.Set(ctx, effective)
	return effective, nil
}

// UpdateWeight sets one block's weight and drops every derived cache
func (s *AssessmentService) UpdateWeight(ctx context.Context, block string, weight int) error {
	if _, ok := s.catalog.Block(block); !ok {
		return fmt.Errorf("unknown block %q", block)
	}
	if weight <= 0 {
		return fmt.Errorf("weight must be positive, got %d", weight)
	}
	if err := s.weightRepo.Set(ctx, block, weight); err != nil {
		return err
	}
	s.invalidateAll(ctx)
	return nil
}

// ResetWeights restores the catalog defaults
func (s *AssessmentService) ResetWeights(ctx context.Context) error {
	if err := s.weightRepo.Reset(ctx); err != nil {
		return err
	}
	s.invalidateAll(ctx)
	return nil
}

// invalidateAll drops every derived cache entry; weight changes touch
// every assessment
func (s *AssessmentService) invalidateAll(ctx context.Context) {
	_ = s.weights.Invalidate(ctx)
	_ = s.assessments.InvalidateRoadmap(ctx)
	if apps, err := s.appRepo.List(ctx); err == nil {
		for _, app := range apps {
			_ = s.assessments.InvalidateAssessment(ctx, app.ID)
		}
	}
}

func (s *AssessmentService) invalidate(ctx context.Context, applicationID string) {
	_ = s.assessments.InvalidateAssessment(ctx, applicationID)
	_ = s.assessments.InvalidateRoadmap(ctx)
}

func knownSubcategory(subcategory string) bool {
	for _, e := range model.DecisionMatrix {
		if e.Subcategory == subcategory {
			return true
		}
	}
	return false
}
