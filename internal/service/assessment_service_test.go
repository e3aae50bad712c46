package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ghcastellano/avangrid-apm/internal/cache"
	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// In-memory repository fakes. Keyed the same way the mongo
// implementations key their collections.

type fakeAppRepo struct {
	seq  int
	apps map[string]*model.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*model.Application)}
}

func (f *fakeAppRepo) Create(ctx context.Context, app *model.Application) (string, error) {
	f.seq++
	app.ID = fmt.Sprintf("app-%d", f.seq)
	f.apps[app.ID] = app
	return app.ID, nil
}

func (f *fakeAppRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	return f.apps[id], nil
}

func (f *fakeAppRepo) GetByName(ctx context.Context, name string) (*model.Application, error) {
	for _, app := range f.apps {
		if app.Name == name {
			return app, nil
		}
	}
	return nil, nil
}

func (f *fakeAppRepo) List(ctx context.Context) ([]*model.Application, error) {
	var out []*model.Application
	for _, app := range f.apps {
		out = append(out, app)
	}
	return out, nil
}

func (f *fakeAppRepo) Update(ctx context.Context, app *model.Application) error {
	f.apps[app.ID] = app
	return nil
}

func (f *fakeAppRepo) Delete(ctx context.Context, id string) error {
	delete(f.apps, id)
	return nil
}

type fakeAnswerRepo struct {
	seq     int
	answers []*model.ResolvedAnswer
}

func (f *fakeAnswerRepo) Upsert(ctx context.Context, answer *model.ResolvedAnswer) error {
	for i, a := range f.answers {
		if a.ApplicationID == answer.ApplicationID && a.QuestionText == answer.QuestionText {
			answer.ID = a.ID
			f.answers[i] = answer
			return nil
		}
	}
	f.seq++
	if answer.ID == "" {
		answer.ID = fmt.Sprintf("ans-%d", f.seq)
	}
	f.answers = append(f.answers, answer)
	return nil
}

func (f *fakeAnswerRepo) GetByApplication(ctx context.Context, applicationID string) ([]*model.ResolvedAnswer, error) {
	var out []*model.ResolvedAnswer
	for _, a := range f.answers {
		if a.ApplicationID == applicationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnswerRepo) DeleteByApplication(ctx context.Context, applicationID string) error {
	kept := f.answers[:0]
	for _, a := range f.answers {
		if a.ApplicationID != applicationID {
			kept = append(kept, a)
		}
	}
	f.answers = kept
	return nil
}

type fakeScoreRepo struct {
	scores []*model.SuggestedScore
}

func (f *fakeScoreRepo) Upsert(ctx context.Context, score *model.SuggestedScore) error {
	for i, s := range f.scores {
		if s.ApplicationID == score.ApplicationID && s.Block == score.Block {
			f.scores[i] = score
			return nil
		}
	}
	f.scores = append(f.scores, score)
	return nil
}

func (f *fakeScoreRepo) GetByApplication(ctx context.Context, applicationID string) ([]*model.SuggestedScore, error) {
	var out []*model.SuggestedScore
	for _, s := range f.scores {
		if s.ApplicationID == applicationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScoreRepo) GetApproved(ctx context.Context, applicationID string) ([]*model.SuggestedScore, error) {
	var out []*model.SuggestedScore
	for _, s := range f.scores {
		if s.ApplicationID == applicationID && s.Approved {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScoreRepo) Approve(ctx context.Context, applicationID, block, approvedBy string) error {
	for _, s := range f.scores {
		if s.ApplicationID == applicationID && s.Block == block {
			s.Approved = true
			s.ApprovedBy = approvedBy
			return nil
		}
	}
	return nil
}

func (f *fakeScoreRepo) DeleteSuggested(ctx context.Context, applicationID string) error {
	kept := f.scores[:0]
	for _, s := range f.scores {
		if s.ApplicationID == applicationID && !s.Approved {
			continue
		}
		kept = append(kept, s)
	}
	f.scores = kept
	return nil
}

func (f *fakeScoreRepo) DeleteByApplication(ctx context.Context, applicationID string) error {
	kept := f.scores[:0]
	for _, s := range f.scores {
		if s.ApplicationID != applicationID {
			kept = append(kept, s)
		}
	}
	f.scores = kept
	return nil
}

type fakeWeightRepo struct {
	weights map[string]int
}

func newFakeWeightRepo() *fakeWeightRepo {
	return &fakeWeightRepo{weights: make(map[string]int)}
}

func (f *fakeWeightRepo) Set(ctx context.Context, block string, weight int) error {
	f.weights[block] = weight
	return nil
}

func (f *fakeWeightRepo) GetAll(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(f.weights))
	for k, v := range f.weights {
		out[k] = v
	}
	return out, nil
}

func (f *fakeWeightRepo) Reset(ctx context.Context) error {
	f.weights = make(map[string]int)
	return nil
}

type assessorFixture struct {
	svc         *AssessmentService
	apps        *fakeAppRepo
	answers     *fakeAnswerRepo
	scores      *fakeScoreRepo
	weights     *fakeWeightRepo
	assessCache cache.AssessmentCache
}

func newAssessorFixture(t *testing.T) *assessorFixture {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "") // force the deterministic local fallback

	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})

	catalog := model.DefaultCatalog()
	f := &assessorFixture{
		apps:    newFakeAppRepo(),
		answers: &fakeAnswerRepo{},
		scores:  &fakeScoreRepo{},
		weights: newFakeWeightRepo(),
	}
	f.assessCache = cache.NewAssessmentCache(rdb)
	f.svc = NewAssessmentService(
		f.apps,
		f.answers,
		f.scores,
		f.weights,
		cache.NewWeightCache(rdb),
		f.assessCache,
		catalog,
		NewExtractionService(catalog),
	)
	return f
}

func (f *assessorFixture) addApp(t *testing.T, name string) string {
	t.Helper()
	id, err := f.apps.Create(context.Background(), &model.Application{Name: name, SafeName: name})
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	return id
}

func (f *assessorFixture) approveScores(t *testing.T, appID string, scores map[string]int) {
	t.Helper()
	for block, score := range scores {
		f.scores.scores = append(f.scores.scores, &model.SuggestedScore{
			ApplicationID: appID,
			Block:         block,
			Score:         score,
			SuggestedBy:   "manual",
			Approved:      true,
			ApprovedBy:    "analyst_test",
		})
	}
}

func TestComputeFromApprovedScores(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()
	appID := f.addApp(t, "Maximo Mobile")

	f.approveScores(t, appID, map[string]int{
		model.BlockStrategicFit:       5,
		model.BlockBusinessEfficiency: 4,
		model.BlockUserValue:          4,
		model.BlockFinancialValue:     4,
		model.BlockArchitecture:       4,
		model.BlockOperationalRisk:    4,
		model.BlockMaintainability:    4,
		model.BlockSupportQuality:     4,
	})

	a, err := f.svc.Compute(ctx, appID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if a.BVI == nil || *a.BVI != 86.0 {
		t.Errorf("BVI = %v, want 86.0", a.BVI)
	}
	if a.THI == nil || *a.THI != 80.0 {
		t.Errorf("THI = %v, want 80.0", a.THI)
	}
	if a.Recommendation != model.RecEvolve {
		t.Errorf("Recommendation = %q, want EVOLVE", a.Recommendation)
	}
	if a.Subcategory != "Enhance" {
		t.Errorf("Subcategory = %q, want Enhance", a.Subcategory)
	}
	if a.Priority != "P2 - Strategic" {
		t.Errorf("Priority = %q, want P2 - Strategic", a.Priority)
	}
	if a.Overridden {
		t.Error("derived subcategory marked as overridden")
	}
}

func TestComputeFloorsUnansweredBlocks(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()
	appID := f.addApp(t, "Maximo Mobile")

	// Every Strategic Fit question answered "Yes" scores the block 4;
	// the other business blocks stay at their floor of 1 and still
	// count: BVI = (4*30 + 1*30 + 1*20 + 1*20) / 100 * 20 = 38.0
	catalog := model.DefaultCatalog()
	for i, cq := range catalog.QuestionsOf(model.BlockStrategicFit) {
		f.answers.answers = append(f.answers.answers, &model.ResolvedAnswer{
			ID:            fmt.Sprintf("sf-%d", i),
			ApplicationID: appID,
			QuestionText:  cq.Text,
			Block:         model.BlockStrategicFit,
			AnswerText:    "Yes",
			Confidence:    1,
			LastSource:    model.SourceQuestionnaire,
		})
	}

	a, err := f.svc.Compute(ctx, appID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if a.BVI == nil || *a.BVI != 38.0 {
		t.Errorf("BVI = %v, want 38.0 with unanswered blocks floored at 1", a.BVI)
	}
	if a.THI != nil {
		t.Errorf("THI = %v, want nil while no technical block has data", a.THI)
	}
	if a.BlockScores[model.BlockUserValue] != 1 {
		t.Errorf("User Value score = %d, want floor 1", a.BlockScores[model.BlockUserValue])
	}
}

func TestComputeNoData(t *testing.T) {
	f := newAssessorFixture(t)
	appID := f.addApp(t, "Empty Shell")

	a, err := f.svc.Compute(context.Background(), appID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if a.BVI != nil || a.THI != nil {
		t.Errorf("indexes without data: BVI=%v THI=%v, want nil", a.BVI, a.THI)
	}
	if a.Recommendation != model.RecNone {
		t.Errorf("Recommendation = %q, want none", a.Recommendation)
	}
	if a.Subcategory != "" || a.Priority != "" {
		t.Errorf("Subcategory=%q Priority=%q, want empty", a.Subcategory, a.Priority)
	}
}

func TestComputeUnknownApplication(t *testing.T) {
	f := newAssessorFixture(t)
	if _, err := f.svc.Compute(context.Background(), "nope"); err != ErrApplicationNotFound {
		t.Errorf("Compute = %v, want ErrApplicationNotFound", err)
	}
}

func TestUpdateWeightRecomputesIndexes(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()
	appID := f.addApp(t, "Outage Dispatch")

	f.approveScores(t, appID, map[string]int{
		model.BlockStrategicFit:       5,
		model.BlockBusinessEfficiency: 4,
		model.BlockUserValue:          4,
		model.BlockFinancialValue:     4,
		model.BlockArchitecture:       2,
		model.BlockOperationalRisk:    4,
		model.BlockMaintainability:    4,
		model.BlockSupportQuality:     4,
	})

	a, err := f.svc.Compute(ctx, appID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if a.THI == nil || *a.THI != 68.0 {
		t.Fatalf("THI = %v, want 68.0 under default weights", a.THI)
	}
	if a.Recommendation != model.RecEvolve {
		t.Fatalf("Recommendation = %q, want EVOLVE", a.Recommendation)
	}

	// Tripling the weight of the weak block must flip the verdict on the
	// next computation, which means the cached assessment has to go
	if err := f.svc.UpdateWeight(ctx, model.BlockArchitecture, 90); err != nil {
		t.Fatalf("UpdateWeight: %v", err)
	}

	a, err = f.svc.Compute(ctx, appID)
	if err != nil {
		t.Fatalf("Compute after weight change: %v", err)
	}
	if a.THI == nil || *a.THI != 57.5 {
		t.Errorf("THI = %v, want 57.5 with Architecture weight 90", a.THI)
	}
	if a.Recommendation != model.RecInvest {
		t.Errorf("Recommendation = %q, want INVEST after weight change", a.Recommendation)
	}
}

func TestUpdateWeightValidation(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()

	if err := f.svc.UpdateWeight(ctx, "Not A Block", 10); err == nil {
		t.Error("unknown block accepted")
	}
	if err := f.svc.UpdateWeight(ctx, model.BlockUserValue, 0); err == nil {
		t.Error("zero weight accepted")
	}
	if err := f.svc.UpdateWeight(ctx, model.BlockUserValue, -5); err == nil {
		t.Error("negative weight accepted")
	}
}

func TestEffectiveWeightsOverlay(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()

	f.weights.weights[model.BlockArchitecture] = 50
	f.weights.weights["Ghost Block"] = 99 // stale row for a renamed block

	got, err := f.svc.EffectiveWeights(ctx)
	if err != nil {
		t.Fatalf("EffectiveWeights: %v", err)
	}
	if got[model.BlockArchitecture] != 50 {
		t.Errorf("Architecture weight = %d, want override 50", got[model.BlockArchitecture])
	}
	if got[model.BlockStrategicFit] != 30 {
		t.Errorf("Strategic Fit weight = %d, want default 30", got[model.BlockStrategicFit])
	}
	if _, ok := got["Ghost Block"]; ok {
		t.Error("stale weight row leaked into effective weights")
	}
}

func TestUpdateStrategyOverrideAndWarning(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()
	appID := f.addApp(t, "Maximo Mobile")

	f.approveScores(t, appID, map[string]int{
		model.BlockStrategicFit:       5,
		model.BlockBusinessEfficiency: 4,
		model.BlockUserValue:          4,
		model.BlockFinancialValue:     4,
		model.BlockArchitecture:       4,
		model.BlockOperationalRisk:    4,
		model.BlockMaintainability:    4,
		model.BlockSupportQuality:     4,
	})

	// "Retire" belongs to ELIMINATE while the computed verdict is EVOLVE:
	// the value is saved and the mismatch comes back as a warning
	warning, err := f.svc.UpdateStrategy(ctx, appID, "Retire", false)
	if err != nil {
		t.Fatalf("UpdateStrategy: %v", err)
	}
	if warning == "" {
		t.Error("conflicting subcategory produced no warning")
	}

	a, err := f.svc.Compute(ctx, appID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !a.Overridden || a.Subcategory != "Retire" {
		t.Errorf("Overridden=%v Subcategory=%q, want human override kept", a.Overridden, a.Subcategory)
	}
	if a.Priority != "P1 - Critical" {
		t.Errorf("Priority = %q, want P1 - Critical for Retire", a.Priority)
	}

	// A matching subcategory with quick-win escalates the priority
	warning, err = f.svc.UpdateStrategy(ctx, appID, "Enhance", true)
	if err != nil {
		t.Fatalf("UpdateStrategy: %v", err)
	}
	if warning != "" {
		t.Errorf("valid subcategory produced warning %q", warning)
	}
	a, err = f.svc.Compute(ctx, appID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if a.Priority != "P1 - Quick Win" {
		t.Errorf("Priority = %q, want P1 - Quick Win", a.Priority)
	}

	if _, err := f.svc.UpdateStrategy(ctx, appID, "Banana", false); err == nil {
		t.Error("unknown subcategory accepted")
	}
}

func TestApproveScore(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()
	appID := f.addApp(t, "SCADA Monitor")

	f.scores.scores = append(f.scores.scores, &model.SuggestedScore{
		ApplicationID: appID,
		Block:         model.BlockArchitecture,
		Score:         3,
		SuggestedBy:   "ai_questionnaire",
	})

	if err := f.svc.ApproveScore(ctx, appID, "Not A Block", "analyst_1"); err == nil {
		t.Error("unknown block accepted")
	}
	if err := f.svc.ApproveScore(ctx, appID, model.BlockArchitecture, "analyst_1"); err != nil {
		t.Fatalf("ApproveScore: %v", err)
	}

	approved, _ := f.scores.GetApproved(ctx, appID)
	if len(approved) != 1 || approved[0].ApprovedBy != "analyst_1" {
		t.Fatalf("approved = %+v, want one entry by analyst_1", approved)
	}

	// The approved score now overlays the computed one
	a, err := f.svc.Compute(ctx, appID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if a.BlockScores[model.BlockArchitecture] != 3 {
		t.Errorf("Architecture score = %d, want approved 3", a.BlockScores[model.BlockArchitecture])
	}
}

func TestRecalculateSuggestionsGate(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()
	appID := f.addApp(t, "Sparse App")

	// One substantial answer out of three stays under the completeness bar
	for i, text := range []string{"Mobile execution of maintenance work orders", "n/a", "ok"} {
		f.answers.answers = append(f.answers.answers, &model.ResolvedAnswer{
			ID:            fmt.Sprintf("a-%d", i),
			ApplicationID: appID,
			QuestionText:  fmt.Sprintf("q-%d", i),
			Block:         model.BlockStrategicFit,
			AnswerText:    text,
			Confidence:    1,
			LastSource:    model.SourceQuestionnaire,
		})
	}

	got, err := f.svc.RecalculateSuggestions(ctx, appID)
	if err != nil {
		t.Fatalf("RecalculateSuggestions: %v", err)
	}
	if got != nil {
		t.Errorf("suggestions below completeness bar: got %d, want none", len(got))
	}
}

func TestRecalculateSuggestionsFillsEveryBlock(t *testing.T) {
	f := newAssessorFixture(t)
	ctx := context.Background()
	appID := f.addApp(t, "Maximo Mobile")

	f.answers.answers = append(f.answers.answers,
		&model.ResolvedAnswer{
			ID:            "a-1",
			ApplicationID: appID,
			QuestionText:  "Is the application deployed on-premises, in the cloud, or in a hybrid model?",
			Block:         model.BlockArchitecture,
			AnswerText:    "Fully cloud-based on a modern platform with automated deployments.",
			Confidence:    1,
			LastSource:    model.SourceQuestionnaire,
		},
		&model.ResolvedAnswer{
			ID:            "a-2",
			ApplicationID: appID,
			QuestionText:  "Is the application expected to be used in the next 3-5 years?",
			Block:         model.BlockStrategicFit,
			AnswerText:    "Yes, strategic mobility roadmap item.",
			Confidence:    1,
			LastSource:    model.SourceQuestionnaire,
		},
	)

	// An already-approved score must survive the rebuild
	f.approveScores(t, appID, map[string]int{model.BlockUserValue: 4})

	got, err := f.svc.RecalculateSuggestions(ctx, appID)
	if err != nil {
		t.Fatalf("RecalculateSuggestions: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("got %d suggestions, want one per unapproved block", len(got))
	}

	byBlock := make(map[string]*model.SuggestedScore, len(got))
	for _, s := range got {
		if s.SuggestedBy != "ai_questionnaire" {
			t.Errorf("block %s suggestedBy = %q, want ai_questionnaire", s.Block, s.SuggestedBy)
		}
		if s.Score < 1 || s.Score > 5 {
			t.Errorf("block %s score %d out of range", s.Block, s.Score)
		}
		byBlock[s.Block] = s
	}

	for _, block := range []string{model.BlockArchitecture, model.BlockStrategicFit} {
		if byBlock[block].Confidence != 0.4 {
			t.Errorf("evidenced block %s confidence = %v, want 0.4", block, byBlock[block].Confidence)
		}
	}
	noData := byBlock[model.BlockFinancialValue]
	if noData.Score != 2 || noData.Confidence != 0.2 {
		t.Errorf("untouched block suggestion = %+v, want conservative 2 @ 0.2", noData)
	}
	if !strings.HasPrefix(noData.Rationale, "NO DATA") {
		t.Errorf("untouched block rationale = %q, want NO DATA marker", noData.Rationale)
	}

	approved, _ := f.scores.GetApproved(ctx, appID)
	if len(approved) != 1 {
		t.Errorf("approved scores after rebuild = %d, want 1", len(approved))
	}
}
