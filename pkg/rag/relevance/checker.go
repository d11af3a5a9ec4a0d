package relevance

import (
	"sort"

	"edu-assistant-be/pkg/rag/retriever"
)

const (
	DefaultThreshold = 0.3
	DefaultTopN      = 5
)

// Result carries the gate verdict plus the passages that survived it.
type Result struct {
	Relevant  bool
	BestScore float64
	Passages  []*retriever.RetrievedPassage
}

// Checker gates retrieved passages on a minimum similarity score.
// An empty retrieval set is never relevant.
type Checker struct {
	threshold float64
	topN      int
}

func NewChecker(threshold float64, topN int) *Checker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Checker{threshold: threshold, topN: topN}
}

// Check passes when the best similarity meets the threshold. On pass it
// returns the top-N passages sorted by descending score.
func (c *Checker) Check(passages []*retriever.RetrievedPassage) Result {
	if len(passages) == 0 {
		return Result{Relevant: false}
	}

	sorted := make([]*retriever.RetrievedPassage, len(passages))
	copy(sorted, passages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	best := sorted[0].Score
	if best < c.threshold {
		return Result{Relevant: false, BestScore: best}
	}

	if len(sorted) > c.topN {
		sorted = sorted[:c.topN]
	}
	return Result{Relevant: true, BestScore: best, Passages: sorted}
}
