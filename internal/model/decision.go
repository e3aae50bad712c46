package model

// Recommendation is the strategic bucket derived from (BVI, THI)
type Recommendation string

const (
	RecEvolve    Recommendation = "EVOLVE"
	RecInvest    Recommendation = "INVEST"
	RecMaintain  Recommendation = "MAINTAIN"
	RecEliminate Recommendation = "ELIMINATE"
	RecNone      Recommendation = "" // no data
)

// DecisionThreshold is the single cutoff applied to both indices,
// inclusive on the high side
const DecisionThreshold = 60.0

// MatrixEntry maps a (recommendation, subcategory) pair to its priority
// rule and rationale label
type MatrixEntry struct {
	Recommendation Recommendation `json:"recommendation"`
	Subcategory    string         `json:"subcategory"`
	Priority       string         `json:"priority"`
	Rationale      string         `json:"rationale"`
}

// DecisionMatrix is the fixed priority lookup table
var DecisionMatrix = []MatrixEntry{
	{RecEliminate, "Replace", "P1 - Critical", "High Risk / EOL"},
	{RecEliminate, "Retire", "P1 - Critical", "Decommission"},
	{RecEliminate, "Absorbed", "P2 - Tactical", "Consolidation"},
	{RecInvest, "Absorb", "P1 - Critical", "High Value Opportunity"},
	{RecEvolve, "Modernize", "P1 - Critical", "Transformation"},
	{RecEvolve, "Migrate", "P1 - Critical", "Platform shift"},
	{RecEvolve, "Enhance", "P2 - Strategic", "Expansion"},
	{RecEvolve, "Refactor", "P2 - Strategic", "Code quality"},
	{RecEvolve, "Upgrade", "P2 - Strategic", "Version"},
	{RecMaintain, "Internalize", "P2 - Compliance", "Governance"},
	{RecMaintain, "Maintain", "P3 - Routine", "Keep lights on"},
}

// SubcategoryOptions lists the valid subcategories per recommendation,
// used to validate human overrides
var SubcategoryOptions = map[Recommendation][]string{
	RecEliminate: {"Replace", "Retire", "Absorbed"},
	RecInvest:    {"Absorb"},
	RecEvolve:    {"Modernize", "Migrate", "Enhance", "Refactor", "Upgrade"},
	RecMaintain:  {"Internalize", "Maintain"},
}

// Assessment is the full computed output for one application: the
// producer side of the report contract
type Assessment struct {
	ApplicationID  string                     `json:"applicationId"`
	Name           string                     `json:"name"`
	BlockScores    map[string]int             `json:"blockScores"`
	BlockDetail    map[string][]QuestionScore `json:"blockDetail,omitempty"`
	BVI            *float64                   `json:"bvi"` // nil = undefined (no data)
	THI            *float64                   `json:"thi"`
	Recommendation Recommendation             `json:"recommendation"`
	Subcategory    string                     `json:"subcategory"`
	Priority       string                     `json:"priority"`
	Rationale      string                     `json:"rationale,omitempty"`
	QuickWin       bool                       `json:"quickWin"`
	Overridden     bool                       `json:"overridden"` // subcategory is human-entered
	Group          string                     `json:"group,omitempty"`
	ChainStage     string                     `json:"chainStage,omitempty"`
}

// RoadmapRow is one line of the portfolio roadmap view
type RoadmapRow struct {
	ApplicationID  string         `json:"applicationId"`
	Name           string         `json:"name"`
	BlockScores    map[string]int `json:"blockScores"`
	BVI            *float64       `json:"bvi"`
	THI            *float64       `json:"thi"`
	Recommendation Recommendation `json:"recommendation"`
	Subcategory    string         `json:"subcategory"`
	QuickWin       bool           `json:"quickWin"`
	Priority       string         `json:"priority"`
	Group          string         `json:"group"`
	ChainStage     string         `json:"chainStage"`
	Warning        string         `json:"warning,omitempty"` // override/recommendation mismatch
}
