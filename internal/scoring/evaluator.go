package scoring

import (
	"strings"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// Evaluator converts one free-text answer into an integer score. It is a
// deterministic keyword cascade, not NLP: the lexicon is injected so tests
// can swap it out.
type Evaluator struct {
	lexicon model.Lexicon
}

// NewEvaluator creates an evaluator over the given lexicon
func NewEvaluator(lexicon model.Lexicon) *Evaluator {
	return &Evaluator{lexicon: lexicon}
}

// Evaluate scores an answer on 1..5, or 0 when there is no usable signal.
// The rule order matters: exact yes/no short-circuits, then keyword
// counts, then the security/IAM hard-negative override. "no" is both the
// exact-match short-circuit and a low keyword, so it also counts toward
// negHits inside longer answers.
func (e *Evaluator) Evaluate(answerText string) int {
	trimmed := strings.TrimSpace(answerText)
	if len(trimmed) < 2 {
		return 0
	}

	t := strings.ToLower(answerText)
	if strings.TrimSpace(t) == "no" {
		return 1
	}
	if strings.TrimSpace(t) == "yes" {
		return 4
	}

	posHits := 0
	for _, w := range e.lexicon.High {
		if strings.Contains(t, w) {
			posHits++
		}
	}
	negHits := 0
	for _, w := range e.lexicon.Low {
		if strings.Contains(t, w) {
			negHits++
		}
	}

	score := 3
	if posHits > negHits {
		score = 4
	}
	if posHits > 2 && negHits == 0 {
		score = 5
	}
	if negHits > posHits {
		score = 2
	}
	if negHits > 1 {
		score = 1
	}
	if (strings.Contains(t, "security") || strings.Contains(t, "iam")) && strings.Contains(t, "no") {
		score = 1
	}
	return score
}
