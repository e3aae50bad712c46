package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ghcastellano/avangrid-apm/internal/config"
	"github.com/ghcastellano/avangrid-apm/internal/model"
	"github.com/ghcastellano/avangrid-apm/internal/scoring"
)

// Consumption thresholds for extracted answers. Capture into the answer
// store uses the low bar; feeding automatic score suggestion uses the
// high bar.
const (
	CaptureConfidence    = 0.3
	SuggestionConfidence = 0.5
)

// ScoreSuggestion is one block score proposal from the suggestion path
type ScoreSuggestion struct {
	Score      int     `json:"score"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// NoDataSuggestion is the conservative default assigned to blocks the
// evidence never touches. Low score, low confidence, flagged for review.
func NoDataSuggestion() ScoreSuggestion {
	return ScoreSuggestion{
		Score:      2,
		Confidence: 0.2,
		Rationale:  "NO DATA - conservative score assigned due to lack of responses, manual review recommended",
	}
}

// ExtractionService handles language-understanding calls via the Gemini
// API, with a deterministic local fallback when no key is configured or
// a call fails
type ExtractionService struct {
	config    *config.AIConfig
	client    *http.Client
	catalog   *model.Catalog
	evaluator *scoring.Evaluator
}

// NewExtractionService creates a new extraction service
func NewExtractionService(catalog *model.Catalog) *ExtractionService {
	cfg := config.DefaultAIConfig()
	return &ExtractionService{
		config:    cfg,
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		catalog:   catalog,
		evaluator: scoring.NewEvaluator(catalog.Lexicon()),
	}
}

// ExtractAnswers pulls answers to the canonical questions out of free
// transcript text. Each entry carries a confidence in [0,1]; callers
// filter by the threshold appropriate to their context.
func (s *ExtractionService) ExtractAnswers(ctx context.Context, transcript string) ([]model.ExtractedAnswer, error) {
	if !s.config.IsEnabled() {
		return s.mockExtract(transcript), nil
	}

	prompt := s.buildExtractionPrompt(transcript)
	response, err := s.callGemini(ctx, s.config.Models.Extract, prompt)
	if err != nil {
		return s.mockExtract(transcript), nil
	}

	var result struct {
		Answers []model.ExtractedAnswer `json:"answers"`
	}
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return s.mockExtract(transcript), nil
	}
	return result.Answers, nil
}

// SuggestScores proposes one score per block from the combined evidence.
// Blocks absent from the evidence get no suggestion here; the caller
// fills those with NoDataSuggestion.
func (s *ExtractionService) SuggestScores(ctx context.Context, evidence map[string][]string) (map[string]ScoreSuggestion, error) {
	if !s.config.IsEnabled() {
		return s.mockSuggest(evidence), nil
	}

	prompt := s.buildSuggestionPrompt(evidence)
	response, err := s.callGemini(ctx, s.config.Models.Suggest, prompt)
	if err != nil {
		return s.mockSuggest(evidence), nil
	}

	var result struct {
		Scores map[string]ScoreSuggestion `json:"scores"`
	}
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return s.mockSuggest(evidence), nil
	}
	for block, sg := range result.Scores {
		if sg.Score < 1 {
			sg.Score = 1
		}
		if sg.Score > 5 {
			sg.Score = 5
		}
		result.Scores[block] = sg
	}
	return result.Scores, nil
}

func (s *ExtractionService) buildExtractionPrompt(transcript string) string {
	var b strings.Builder
	b.WriteString("You are analyzing a meeting transcript about an IT application under assessment.\n")
	b.WriteString("For each question below, extract the answer from the transcript if one is present.\n")
	b.WriteString("Provide a confidence score from 0.0 to 1.0; be conservative, only use >0.8 for explicit, clear answers.\n\n")
	b.WriteString("QUESTIONS:\n")
	for _, q := range s.catalog.AllQuestions() {
		b.WriteString("- ")
		b.WriteString(q.Text)
		b.WriteString("\n")
	}
	b.WriteString("\nTRANSCRIPT:\n")
	b.WriteString(transcript)
	b.WriteString("\n\nOutput format (JSON):\n")
	b.WriteString(`{"answers": [{"question": str, "answer": str, "confidence": 0.0-1.0, "sourceExcerpt": str}]}`)
	b.WriteString("\nReturn ONLY valid JSON, no other text.")
	return b.String()
}

func (s *ExtractionService) buildSuggestionPrompt(evidence map[string][]string) string {
	var b strings.Builder
	b.WriteString("You are an application portfolio management consultant scoring an application.\n")
	b.WriteString("Score each block below from 1 (worst) to 5 (best) using only the available answers.\n")
	b.WriteString("Negative signals (manual, legacy, obsolete, gaps, poor) lower scores; positive signals (automated, modern, strategic, optimized) raise them.\n\n")
	blocks := make([]string, 0, len(evidence))
	for block := range evidence {
		blocks = append(blocks, block)
	}
	sort.Strings(blocks)
	for _, block := range blocks {
		fmt.Fprintf(&b, "BLOCK %q:\n", block)
		for _, line := range evidence[block] {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nOutput format (JSON):\n")
	b.WriteString(`{"scores": {"<block>": {"score": 1-5, "confidence": 0.0-1.0, "rationale": str}}}`)
	b.WriteString("\nReturn ONLY valid JSON, no other text.")
	return b.String()
}

// mockExtract is the offline fallback: for each canonical question, find
// the transcript sentence with the highest significant-word overlap.
// Deterministic, and deliberately modest about its confidence.
func (s *ExtractionService) mockExtract(transcript string) []model.ExtractedAnswer {
	sentences := splitSentences(transcript)
	if len(sentences) == 0 {
		return nil
	}

	var out []model.ExtractedAnswer
	for _, q := range s.catalog.AllQuestions() {
		words := significantWords(q.Text)
		if len(words) == 0 {
			continue
		}
		best, bestHits := "", 0
		for _, sentence := range sentences {
			lower := strings.ToLower(sentence)
			hits := 0
			for _, w := range words {
				if strings.Contains(lower, w) {
					hits++
				}
			}
			if hits > bestHits {
				best, bestHits = sentence, hits
			}
		}
		if bestHits == 0 {
			continue
		}
		confidence := float64(bestHits) / float64(len(words))
		if confidence > 0.6 {
			confidence = 0.6 // a keyword match is never an explicit answer
		}
		out = append(out, model.ExtractedAnswer{
			Question:   q.Text,
			Answer:     best,
			Confidence: confidence,
			Excerpt:    best,
		})
	}
	return out
}

// mockSuggest scores each evidenced block with the keyword heuristic
// over its answer lines
func (s *ExtractionService) mockSuggest(evidence map[string][]string) map[string]ScoreSuggestion {
	out := make(map[string]ScoreSuggestion, len(evidence))
	for block, lines := range evidence {
		sum, counted := 0, 0
		for _, line := range lines {
			if score := s.evaluator.Evaluate(line); score > 0 {
				sum += score
				counted++
			}
		}
		if counted == 0 {
			continue
		}
		score := (sum + counted/2) / counted
		if score < 1 {
			score = 1
		}
		if score > 5 {
			score = 5
		}
		out[block] = ScoreSuggestion{
			Score:      score,
			Confidence: 0.4,
			Rationale:  fmt.Sprintf("keyword heuristic over %d answers", counted),
		}
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n' || r == '!' || r == '?'
	}) {
		if s := strings.TrimSpace(raw); len(s) > 10 {
			out = append(out, s)
		}
	}
	return out
}

func significantWords(question string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.Trim(w, "?,.()")
		if len(w) > 4 {
			out = append(out, w)
		}
	}
	return out
}

// callGemini makes a request to the Gemini API
func (s *ExtractionService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
