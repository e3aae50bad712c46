package scoring

import (
	"fmt"
	"strings"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// Classify maps the two indexes to a strategic recommendation. The
// threshold is inclusive on the high side for both axes. A nil index
// means no data, which yields RecNone rather than a guess.
func Classify(bvi, thi *float64) model.Recommendation {
	if bvi == nil || thi == nil {
		return model.RecNone
	}
	switch {
	case *bvi >= model.DecisionThreshold && *thi >= model.DecisionThreshold:
		return model.RecEvolve
	case *bvi >= model.DecisionThreshold:
		return model.RecInvest
	case *thi >= model.DecisionThreshold:
		return model.RecMaintain
	default:
		return model.RecEliminate
	}
}

// DeriveSubcategory picks the default subcategory for a recommendation
// from the indexes and the Architecture / Maintainability block scores.
// This is the automatic suggestion only: a human-entered subcategory
// always takes precedence and is never recomputed over.
func DeriveSubcategory(rec model.Recommendation, bvi, thi float64, archScore, maintScore int) string {
	switch rec {
	case model.RecEliminate:
		if thi < 40 {
			return "Replace"
		}
		if bvi > 50 {
			return "Retire"
		}
		return "Absorbed"
	case model.RecInvest:
		return "Absorb"
	case model.RecEvolve:
		switch {
		case archScore <= 2:
			return "Modernize"
		case maintScore <= 2:
			return "Migrate"
		case bvi > 75:
			return "Enhance"
		case thi < 75:
			return "Refactor"
		default:
			return "Upgrade"
		}
	case model.RecMaintain:
		if bvi > 50 {
			return "Internalize"
		}
		return "Maintain"
	}
	return ""
}

// PriorityFor looks up the priority and rationale label for a
// subcategory from the decision matrix. The lookup keys on subcategory
// alone so a human-entered value keeps its priority even when the
// recommendation has since drifted. quickWin escalates the priority one
// level, P2 to P1 and P3 to P2, and never touches an existing P1. An
// empty subcategory yields an empty priority: the roadmap stays blank
// until somebody picks one.
func PriorityFor(subcategory string, quickWin bool) (priority, rationale string) {
	if subcategory == "" {
		return "", ""
	}
	priority = "P3 - Routine"
	for _, e := range model.DecisionMatrix {
		if e.Subcategory == subcategory {
			priority = e.Priority
			rationale = e.Rationale
			break
		}
	}
	if quickWin {
		switch {
		case strings.HasPrefix(priority, "P2"):
			priority = "P1 - Quick Win"
		case strings.HasPrefix(priority, "P3"):
			priority = "P2 - Quick Win"
		}
	}
	return priority, rationale
}

// ValidateSubcategory checks a human-entered subcategory against the
// vocabulary allowed for the current recommendation. A mismatch is a
// warning to surface, never a correction: the entered value stands.
func ValidateSubcategory(rec model.Recommendation, subcategory string) (string, bool) {
	if subcategory == "" {
		return "", true
	}
	opts, ok := model.SubcategoryOptions[rec]
	if !ok {
		return "", true
	}
	for _, o := range opts {
		if o == subcategory {
			return "", true
		}
	}
	return fmt.Sprintf("subcategory %q is not a %s option", subcategory, rec), false
}
