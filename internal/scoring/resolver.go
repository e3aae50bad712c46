package scoring

import (
	"strings"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// Match thresholds. The master-list cutoff is looser than the one used
// against an application's already-resolved keys, which guards against
// a resolved question drifting to a neighboring canonical question.
const (
	MasterMatchCutoff   = 0.75
	ResolvedMatchCutoff = 0.85
)

// MinAnswerLen is the non-trivial answer threshold at resolve time: a
// trimmed answer must be longer than one character to overwrite.
const MinAnswerLen = 1

// Resolver matches raw answers to canonical questions and merges them
// into the per-application resolved set
type Resolver struct {
	catalog    *model.Catalog
	similarity SimilarityFunc
}

// NewResolver creates a resolver over the catalog with the given
// similarity function (nil selects LevenshteinRatio)
func NewResolver(catalog *model.Catalog, similarity SimilarityFunc) *Resolver {
	if similarity == nil {
		similarity = LevenshteinRatio
	}
	return &Resolver{catalog: catalog, similarity: similarity}
}

// MatchCanonical finds the best canonical question for a raw question
// text. First match wins on a similarity tie: the canonical list order is
// the tie-break, by construction rather than by design.
func (r *Resolver) MatchCanonical(questionText string) (model.CanonicalQuestion, bool) {
	best := model.CanonicalQuestion{}
	bestRatio := 0.0
	for _, cq := range r.catalog.AllQuestions() {
		ratio := r.similarity(questionText, cq.Text)
		if ratio > bestRatio {
			bestRatio = ratio
			best = cq
		}
	}
	if bestRatio >= MasterMatchCutoff {
		return best, true
	}
	return model.CanonicalQuestion{}, false
}

// matchResolvedKey looks for an existing resolved entry whose canonical
// text is close enough to the given question, using the stricter cutoff
func (r *Resolver) matchResolvedKey(existing map[string]*model.ResolvedAnswer, questionText string) (string, bool) {
	if _, ok := existing[questionText]; ok {
		return questionText, true
	}
	bestKey := ""
	bestRatio := 0.0
	for key := range existing {
		ratio := r.similarity(questionText, key)
		if ratio > bestRatio {
			bestRatio = ratio
			bestKey = key
		}
	}
	if bestRatio >= ResolvedMatchCutoff {
		return bestKey, true
	}
	return "", false
}

// nonTrivial reports whether an answer is substantial enough to overwrite
func nonTrivial(answer string) bool {
	return len(strings.TrimSpace(answer)) > MinAnswerLen
}

// Resolve merges one incoming batch into the resolved answer set, keyed by
// canonical question text. The merge is last-write-wins by source rank,
// but a trivial answer never erases a previously captured one, whatever
// its rank. Raw rows that match no canonical question are carried forward
// onto the previous matched question when they do not look like a question
// themselves (continuation lines in spreadsheet-style sources), otherwise
// dropped. The returned map is the same map, updated in place.
func (r *Resolver) Resolve(existing map[string]*model.ResolvedAnswer, incoming []model.RawAnswer, sourceRank int, source model.SourceKind) map[string]*model.ResolvedAnswer {
	if existing == nil {
		existing = make(map[string]*model.ResolvedAnswer)
	}

	var currentQ *model.CanonicalQuestion
	for _, raw := range incoming {
		qText := strings.TrimSpace(raw.QuestionText)
		aText := strings.TrimSpace(raw.AnswerText)
		if qText == "" && aText == "" {
			continue
		}

		cq, ok := r.MatchCanonical(qText)
		if ok {
			currentQ = &cq
			if aText != "" {
				r.merge(existing, cq, aText, raw, sourceRank, source)
			}
			continue
		}

		// Carry-forward: an unmatched row that is not itself a question
		// is treated as the continuation of the previous answer
		if currentQ != nil && !strings.HasSuffix(qText, "?") && qText != "" {
			r.merge(existing, *currentQ, qText, raw, sourceRank, source)
		}
	}
	return existing
}

func (r *Resolver) merge(existing map[string]*model.ResolvedAnswer, cq model.CanonicalQuestion, answer string, raw model.RawAnswer, sourceRank int, source model.SourceKind) {
	if !nonTrivial(answer) {
		return
	}
	key := cq.Text
	if matched, ok := r.matchResolvedKey(existing, cq.Text); ok {
		key = matched
	}
	prev, ok := existing[key]
	if ok && sourceRank < prev.LastSourceRank {
		return
	}
	confidence := raw.Confidence
	if confidence == 0 {
		confidence = 1 // typed sources carry full confidence
	}
	next := &model.ResolvedAnswer{
		QuestionText:   key,
		Block:          cq.Block,
		AnswerText:     answer,
		NumericScore:   raw.NumericScore,
		Confidence:     confidence,
		LastSourceRank: sourceRank,
		LastSource:     source,
	}
	if ok {
		next.ID = prev.ID
		next.ApplicationID = prev.ApplicationID
	}
	existing[key] = next
}
