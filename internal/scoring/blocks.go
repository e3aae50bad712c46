package scoring

import (
	"math"
	"strings"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// BlockScorer reduces resolved answers to one integer score per block
type BlockScorer struct {
	catalog   *model.Catalog
	evaluator *Evaluator
}

// NewBlockScorer creates a block scorer over the catalog's questions,
// evaluating answer text with the given evaluator
func NewBlockScorer(catalog *model.Catalog, evaluator *Evaluator) *BlockScorer {
	return &BlockScorer{catalog: catalog, evaluator: evaluator}
}

// ScoreBlock computes one block's score from the resolved answers, keyed
// by canonical question text. Per question: a negative/neutral heuristic
// result (<=2) is trusted as-is; otherwise a supplied numeric score >= 1
// takes precedence over the heuristic. Answers shorter than two characters
// count as unanswered whatever else is present. A block with no counted
// questions floors at 1, never 0, so downstream index math stays defined.
func (s *BlockScorer) ScoreBlock(block string, resolved map[string]*model.ResolvedAnswer) (model.BlockScore, []model.QuestionScore) {
	bs := model.BlockScore{Block: block, FinalScore: 1}
	detail := make([]model.QuestionScore, 0, len(s.catalog.QuestionsOf(block)))

	for _, cq := range s.catalog.QuestionsOf(block) {
		answer := ""
		var numeric *float64
		if ra, ok := resolved[cq.Text]; ok {
			answer = ra.AnswerText
			numeric = ra.NumericScore
		}

		score := s.scoreQuestion(answer, numeric)
		detail = append(detail, model.QuestionScore{Question: cq.Text, Answer: answer, Score: score})
		if score > 0 {
			bs.RawSum += score
			bs.CountedQuestions++
		}
	}

	if bs.CountedQuestions > 0 {
		// Half-to-even keeps a {1,4} block at 2 instead of nudging it to 3
		final := int(math.RoundToEven(bs.RawSum / float64(bs.CountedQuestions)))
		if final < 1 {
			final = 1
		}
		if final > 5 {
			final = 5
		}
		bs.FinalScore = final
	}
	return bs, detail
}

func (s *BlockScorer) scoreQuestion(answer string, numeric *float64) float64 {
	textScore := s.evaluator.Evaluate(answer)

	var score float64
	if textScore <= 2 {
		score = float64(textScore)
	} else if numeric != nil && *numeric >= 1 {
		score = *numeric
	} else {
		score = float64(textScore)
	}

	if len(strings.TrimSpace(answer)) < 2 {
		return 0
	}
	return score
}

// ScoreAll computes every block's score for one application
func (s *BlockScorer) ScoreAll(resolved map[string]*model.ResolvedAnswer) (map[string]model.BlockScore, map[string][]model.QuestionScore) {
	scores := make(map[string]model.BlockScore, len(s.catalog.Blocks()))
	details := make(map[string][]model.QuestionScore, len(s.catalog.Blocks()))
	for _, b := range s.catalog.Blocks() {
		bs, detail := s.ScoreBlock(b.Name, resolved)
		scores[b.Name] = bs
		details[b.Name] = detail
	}
	return scores, details
}
