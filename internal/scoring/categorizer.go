package scoring

import (
	"strings"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// Categorizer buckets applications into reporting categories by keyword
// frequency over the application name plus all answer text. It feeds
// report grouping only and is independent of the scoring pipeline.
type Categorizer struct {
	categories []model.KeywordCategory
	fallback   string
}

// nameBonus is added per keyword hit inside the application name itself,
// which is a far stronger signal than a hit buried in answer prose
const nameBonus = 2

func NewCategorizer(categories []model.KeywordCategory, fallback string) *Categorizer {
	return &Categorizer{categories: categories, fallback: fallback}
}

// Categorize concatenates the name and all answer text into one lowercase
// blob and assigns the category whose keywords occur most often. Keyword
// hits in the name count extra. All-zero counts or a tie for the top
// count fall back to the catch-all category.
func (c *Categorizer) Categorize(appName string, answers []string) string {
	name := strings.ToLower(appName)
	blob := name + " " + strings.ToLower(strings.Join(answers, " "))

	best, bestScore, tied := c.fallback, 0, false
	for _, cat := range c.categories {
		score := 0
		for _, kw := range cat.Keywords {
			score += strings.Count(blob, kw)
			if strings.Contains(name, kw) {
				score += nameBonus
			}
		}
		if score > bestScore {
			best, bestScore, tied = cat.Name, score, false
		} else if score == bestScore && score > 0 {
			tied = true
		}
	}
	if bestScore == 0 || tied {
		return c.fallback
	}
	return best
}

// GroupFor classifies into a functional group, falling back to
// "Uncategorized"
func GroupFor(catalog *model.Catalog, appName string, answers []string) string {
	return NewCategorizer(catalog.Groups(), "Uncategorized").Categorize(appName, answers)
}

// ChainStageFor classifies into a value chain stage, falling back to
// "Cross-Cutting"
func ChainStageFor(catalog *model.Catalog, appName string, answers []string) string {
	return NewCategorizer(catalog.ChainStages(), "Cross-Cutting").Categorize(appName, answers)
}
