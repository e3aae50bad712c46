package scoring

import (
	"testing"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

func newTestScorer() *BlockScorer {
	catalog := model.DefaultCatalog()
	return NewBlockScorer(catalog, NewEvaluator(catalog.Lexicon()))
}

func resolvedFor(catalog *model.Catalog, block string, answers map[int]model.ResolvedAnswer) map[string]*model.ResolvedAnswer {
	out := make(map[string]*model.ResolvedAnswer)
	questions := catalog.QuestionsOf(block)
	for idx, ra := range answers {
		ra := ra
		ra.QuestionText = questions[idx].Text
		ra.Block = block
		out[ra.QuestionText] = &ra
	}
	return out
}

func TestScoreBlockEmptyFloorsAtOne(t *testing.T) {
	s := newTestScorer()
	bs, detail := s.ScoreBlock(model.BlockStrategicFit, nil)
	if bs.FinalScore != 1 {
		t.Errorf("empty block FinalScore = %d, want 1", bs.FinalScore)
	}
	if bs.CountedQuestions != 0 {
		t.Errorf("empty block CountedQuestions = %d, want 0", bs.CountedQuestions)
	}
	if len(detail) == 0 {
		t.Error("detail should list every catalog question even without answers")
	}
	for _, qs := range detail {
		if qs.Score != 0 {
			t.Errorf("unanswered question %q scored %v", qs.Question, qs.Score)
		}
	}
}

func TestScoreBlockNumericPreference(t *testing.T) {
	catalog := model.DefaultCatalog()
	s := newTestScorer()
	five := 5.0

	tests := []struct {
		name    string
		answers map[int]model.ResolvedAnswer
		want    int
	}{
		{
			"numeric overrides neutral text",
			map[int]model.ResolvedAnswer{
				0: {AnswerText: "Average performance overall", NumericScore: &five},
			},
			5,
		},
		{
			"negative text ignores numeric",
			map[int]model.ResolvedAnswer{
				0: {AnswerText: "A legacy system with manual workarounds", NumericScore: &five},
			},
			1,
		},
		{
			"short answer counts as unanswered",
			map[int]model.ResolvedAnswer{
				0: {AnswerText: "x", NumericScore: &five},
			},
			1, // floor, nothing counted
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolved := resolvedFor(catalog, model.BlockArchitecture, tc.answers)
			bs, _ := s.ScoreBlock(model.BlockArchitecture, resolved)
			if bs.FinalScore != tc.want {
				t.Errorf("FinalScore = %d, want %d", bs.FinalScore, tc.want)
			}
		})
	}
}

func TestScoreBlockAveragesAndClamps(t *testing.T) {
	catalog := model.DefaultCatalog()
	s := newTestScorer()

	tests := []struct {
		name    string
		answers map[int]model.ResolvedAnswer
		want    int
	}{
		{
			// 5 (three positives) and 2 (one negative), average 3.5
			"3.5 rounds up to even 4",
			map[int]model.ResolvedAnswer{
				0: {AnswerText: "Modern cloud automation"},
				1: {AnswerText: "There are some manual steps"},
			},
			4,
		},
		{
			// 1 and 4, average 2.5 stays at the even neighbour
			"2.5 rounds down to even 2",
			map[int]model.ResolvedAnswer{
				0: {AnswerText: "no"},
				1: {AnswerText: "yes"},
			},
			2,
		},
		{
			// 4 and 5, average 4.5
			"4.5 rounds down to even 4",
			map[int]model.ResolvedAnswer{
				0: {AnswerText: "yes"},
				1: {AnswerText: "Modern cloud automation"},
			},
			4,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolved := resolvedFor(catalog, model.BlockUserValue, tc.answers)
			bs, _ := s.ScoreBlock(model.BlockUserValue, resolved)
			if bs.CountedQuestions != 2 {
				t.Fatalf("CountedQuestions = %d, want 2", bs.CountedQuestions)
			}
			if bs.FinalScore != tc.want {
				t.Errorf("FinalScore = %d, want %d", bs.FinalScore, tc.want)
			}
		})
	}
}

func TestScoreAllCoversEveryBlock(t *testing.T) {
	catalog := model.DefaultCatalog()
	s := newTestScorer()
	scores, details := s.ScoreAll(nil)
	if len(scores) != len(catalog.Blocks()) {
		t.Fatalf("ScoreAll returned %d blocks, want %d", len(scores), len(catalog.Blocks()))
	}
	for _, b := range catalog.Blocks() {
		bs, ok := scores[b.Name]
		if !ok {
			t.Errorf("missing block %q", b.Name)
			continue
		}
		if bs.FinalScore < 1 || bs.FinalScore > 5 {
			t.Errorf("block %q FinalScore = %d, outside 1..5", b.Name, bs.FinalScore)
		}
		if len(details[b.Name]) != len(catalog.QuestionsOf(b.Name)) {
			t.Errorf("block %q detail has %d rows, want %d", b.Name, len(details[b.Name]), len(catalog.QuestionsOf(b.Name)))
		}
	}
}
