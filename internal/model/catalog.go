package model

// BlockCategory splits the synergy blocks into the two index groups
type BlockCategory string

const (
	CategoryBusiness  BlockCategory = "Business"
	CategoryTechnical BlockCategory = "Tech"
)

// SynergyBlock is one of the eight weighted assessment dimensions
type SynergyBlock struct {
	Name        string         `json:"name" bson:"name"`
	Category    BlockCategory  `json:"category" bson:"category"`
	Weight      int            `json:"weight" bson:"weight"`
	ScoreLabels map[int]string `json:"scoreLabels" bson:"scoreLabels"` // 1..5 -> short label
}

// CanonicalQuestion is the authoritative wording of a questionnaire item
type CanonicalQuestion struct {
	Text  string `json:"text" bson:"text"`
	Block string `json:"block" bson:"block"`
}

// Lexicon holds the keyword sets used by the heuristic answer evaluator
type Lexicon struct {
	High []string `json:"high"`
	Low  []string `json:"low"`
}

// KeywordCategory is a named keyword set for report grouping
type KeywordCategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Catalog is the static assessment configuration: blocks, canonical
// questions, evaluator lexicon and report grouping categories. Built once
// at startup and passed explicitly to the components that need it.
type Catalog struct {
	blocks      []SynergyBlock
	blockByName map[string]*SynergyBlock
	questions   map[string][]CanonicalQuestion // block name -> ordered questions
	flat        []CanonicalQuestion            // all questions, catalog order
	lexicon     Lexicon
	groups      []KeywordCategory
	chainStages []KeywordCategory
}

// NewCatalog validates the configuration and builds the lookup indexes.
// A block with a non-positive weight or an empty question list is a
// startup error, surfaced before any application is processed.
func NewCatalog(blocks []SynergyBlock, questions map[string][]string, lexicon Lexicon, groups, chainStages []KeywordCategory) (*Catalog, error) {
	c := &Catalog{
		blocks:      blocks,
		blockByName: make(map[string]*SynergyBlock, len(blocks)),
		questions:   make(map[string][]CanonicalQuestion, len(blocks)),
		lexicon:     lexicon,
		groups:      groups,
		chainStages: chainStages,
	}
	for i := range blocks {
		b := &c.blocks[i]
		if b.Weight <= 0 {
			return nil, &ConfigError{Block: b.Name, Reason: "weight must be positive"}
		}
		qs, ok := questions[b.Name]
		if !ok || len(qs) == 0 {
			return nil, &ConfigError{Block: b.Name, Reason: "no canonical questions"}
		}
		c.blockByName[b.Name] = b
		for _, q := range qs {
			cq := CanonicalQuestion{Text: q, Block: b.Name}
			c.questions[b.Name] = append(c.questions[b.Name], cq)
			c.flat = append(c.flat, cq)
		}
	}
	return c, nil
}

// ConfigError reports invalid static configuration detected at startup
type ConfigError struct {
	Block  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "catalog: block " + e.Block + ": " + e.Reason
}

// BlocksOf returns the blocks of a category in catalog order
func (c *Catalog) BlocksOf(cat BlockCategory) []SynergyBlock {
	out := make([]SynergyBlock, 0, 4)
	for _, b := range c.blocks {
		if b.Category == cat {
			out = append(out, b)
		}
	}
	return out
}

// Blocks returns all blocks in catalog order
func (c *Catalog) Blocks() []SynergyBlock {
	return c.blocks
}

// Block looks up a block by name
func (c *Catalog) Block(name string) (*SynergyBlock, bool) {
	b, ok := c.blockByName[name]
	return b, ok
}

// QuestionsOf returns the ordered canonical questions of a block
func (c *Catalog) QuestionsOf(block string) []CanonicalQuestion {
	return c.questions[block]
}

// AllQuestions returns every canonical question in catalog order. The
// order matters: fuzzy-match ties resolve to the first question seen.
func (c *Catalog) AllQuestions() []CanonicalQuestion {
	return c.flat
}

// Weight returns the default weight of a block (0 if unknown)
func (c *Catalog) Weight(block string) int {
	if b, ok := c.blockByName[block]; ok {
		return b.Weight
	}
	return 0
}

// Label returns the score definition label for a block score
func (c *Catalog) Label(block string, score int) string {
	if b, ok := c.blockByName[block]; ok {
		return b.ScoreLabels[score]
	}
	return ""
}

// Lexicon returns the evaluator keyword sets
func (c *Catalog) Lexicon() Lexicon {
	return c.lexicon
}

// Groups returns the functional grouping categories
func (c *Catalog) Groups() []KeywordCategory {
	return c.groups
}

// ChainStages returns the value-chain stage categories
func (c *Catalog) ChainStages() []KeywordCategory {
	return c.chainStages
}

// DefaultWeights returns the catalog weights as a map, the shape the
// index aggregator consumes
func (c *Catalog) DefaultWeights() map[string]int {
	w := make(map[string]int, len(c.blocks))
	for _, b := range c.blocks {
		w[b.Name] = b.Weight
	}
	return w
}
