package usecase

import (
	"sort"

	"personarank/internal/domain"
)

// Ranker orders scored sections by relevance, applies a per-document
// diversity cap, and truncates to the top K.
type Ranker struct {
	topK      int
	maxPerDoc int
	minScore  float64
}

// NewRanker creates a ranker. maxPerDoc <= 0 disables the diversity cap;
// minScore <= 0 disables score filtering.
func NewRanker(topK, maxPerDoc int, minScore float64) *Ranker {
	if topK <= 0 {
		topK = 20
	}
	return &Ranker{
		topK:      topK,
		maxPerDoc: maxPerDoc,
		minScore:  minScore,
	}
}

// Rank selects and orders the final result sections. docOrder maps document
// IDs to their position in the run's input list and is used, together with
// page number, to break score ties deterministically.
//
// The diversity cap is soft: a candidate from a document that already holds
// maxPerDoc selected slots is deferred, not discarded. Deferred candidates
// are reinstated best-first when the eligible pool cannot fill K, so the
// result never shrinks below min(K, candidates) because of the cap alone.
func (r *Ranker) Rank(scored []domain.ScoredSection, docOrder map[string]int) []domain.ScoredSection {
	candidates := make([]domain.ScoredSection, 0, len(scored))
	for _, s := range scored {
		if r.minScore > 0 && s.Score < r.minScore {
			continue
		}
		candidates = append(candidates, s)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if docOrder[a.Section.DocID] != docOrder[b.Section.DocID] {
			return docOrder[a.Section.DocID] < docOrder[b.Section.DocID]
		}
		return a.Section.Page < b.Section.Page
	})

	selected := make([]domain.ScoredSection, 0, r.topK)
	var deferred []domain.ScoredSection
	perDoc := make(map[string]int)

	for _, c := range candidates {
		if len(selected) == r.topK {
			break
		}
		doc := c.Section.DocID
		if r.maxPerDoc > 0 && perDoc[doc] >= r.maxPerDoc {
			deferred = append(deferred, c)
			continue
		}
		perDoc[doc]++
		selected = append(selected, c)
	}

	// Not enough diversity-eligible candidates: reinstate deferred ones,
	// best first (deferred preserves relevance order).
	for _, c := range deferred {
		if len(selected) == r.topK {
			break
		}
		selected = append(selected, c)
	}

	for i := range selected {
		selected[i].Rank = i + 1
	}

	return selected
}
