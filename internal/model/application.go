package model

import "time"

// SourceKind identifies where an ingestion batch came from
type SourceKind string

const (
	SourceQuestionnaire SourceKind = "questionnaire"
	SourceTranscript    SourceKind = "transcript"
	SourceExpertNotes   SourceKind = "expert_notes"
)

// Default source ranks: higher rank overrides lower on conflict
const (
	RankQuestionnaire = 0
	RankTranscript    = 1
	RankExpertNotes   = 2
)

// Application is a portfolio entry under assessment
type Application struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	SafeName    string    `json:"safeName" bson:"safeName"`
	Confirmed   bool      `json:"confirmed" bson:"confirmed"` // assessment reviewed by a human
	Subcategory string    `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	QuickWin    bool      `json:"quickWin" bson:"quickWin"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RawAnswer is one (question, answer, score?) triple as it appeared in a
// source document, before canonical matching. Not persisted in this form.
type RawAnswer struct {
	QuestionText string   `json:"questionText"`
	AnswerText   string   `json:"answerText"`
	NumericScore *float64 `json:"numericScore,omitempty"`
	Confidence   float64  `json:"confidence,omitempty"` // 1 for typed sources, extractor's for transcripts
	SourceRank   int      `json:"sourceRank"`
}

// ResolvedAnswer is the single authoritative answer for one canonical
// question of one application, after merging all sources
type ResolvedAnswer struct {
	ID             string     `json:"id" bson:"_id,omitempty"`
	ApplicationID  string     `json:"applicationId" bson:"applicationId"`
	QuestionText   string     `json:"questionText" bson:"questionText"` // canonical wording
	Block          string     `json:"block" bson:"block"`
	AnswerText     string     `json:"answerText" bson:"answerText"`
	NumericScore   *float64   `json:"numericScore,omitempty" bson:"numericScore,omitempty"`
	Confidence     float64    `json:"confidence" bson:"confidence"`
	LastSourceRank int        `json:"lastSourceRank" bson:"lastSourceRank"`
	LastSource     SourceKind `json:"lastSource,omitempty" bson:"lastSource,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// BlockScore is the reduced score of one synergy block, recomputed from
// the current resolved answers
type BlockScore struct {
	Block            string  `json:"block" bson:"block"`
	RawSum           float64 `json:"rawSum" bson:"rawSum"`
	CountedQuestions int     `json:"countedQuestions" bson:"countedQuestions"`
	FinalScore       int     `json:"finalScore" bson:"finalScore"` // always 1..5
}

// QuestionScore is the per-question detail behind a block score
type QuestionScore struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"` // 0 = unanswered
}

// SuggestedScore is a persisted per-block score proposal, either manual or
// produced by the extraction-assisted suggestion path. Approved scores
// override the computed block score in the roadmap.
type SuggestedScore struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	ApplicationID string    `json:"applicationId" bson:"applicationId"`
	Block         string    `json:"block" bson:"block"`
	Score         int       `json:"score" bson:"score"`
	SuggestedBy   string    `json:"suggestedBy" bson:"suggestedBy"` // "manual", "ai_questionnaire", "ai_transcript"
	Confidence    float64   `json:"confidence" bson:"confidence"`
	Rationale     string    `json:"rationale,omitempty" bson:"rationale,omitempty"`
	Approved      bool      `json:"approved" bson:"approved"`
	ApprovedBy    string    `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// BlockWeight is a persisted, runtime-editable block weight
type BlockWeight struct {
	Block     string    `json:"block" bson:"_id"`
	Weight    int       `json:"weight" bson:"weight"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ExtractedAnswer is one entry returned by the language-understanding
// service for a transcript
type ExtractedAnswer struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Excerpt    string  `json:"sourceExcerpt,omitempty"`
}
