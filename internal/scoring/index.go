package scoring

import (
	"math"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// IndexAggregator folds per-block scores into the 0..100 business value
// and technical health indexes
type IndexAggregator struct {
	catalog *model.Catalog
}

func NewIndexAggregator(catalog *model.Catalog) *IndexAggregator {
	return &IndexAggregator{catalog: catalog}
}

// Index computes the weighted index for one block category. weights maps
// block name to its current weight; blocks missing from the map fall back
// to the catalog default. Blocks with no entry in scores are skipped
// entirely rather than counted as zero. Returns nil when no block in the
// category has a score, or when the participating weights sum to zero:
// an undefined index, not a zero one.
func (a *IndexAggregator) Index(cat model.BlockCategory, scores map[string]int, weights map[string]int) *float64 {
	var weighted float64
	var totalWeight int
	for _, b := range a.catalog.BlocksOf(cat) {
		score, ok := scores[b.Name]
		if !ok {
			continue
		}
		w := b.Weight
		if override, ok := weights[b.Name]; ok {
			w = override
		}
		weighted += float64(score * w)
		totalWeight += w
	}
	if totalWeight == 0 {
		return nil
	}
	v := math.Round(weighted/float64(totalWeight)*20*10) / 10
	return &v
}

// Indexes computes both BVI and THI from one score map
func (a *IndexAggregator) Indexes(scores map[string]int, weights map[string]int) (bvi, thi *float64) {
	bvi = a.Index(model.CategoryBusiness, scores, weights)
	thi = a.Index(model.CategoryTechnical, scores, weights)
	return bvi, thi
}
