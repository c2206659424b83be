package usecase

import (
	"time"

	"personarank/internal/domain"
)

// Assembler attaches run metadata to the ranked selection. No scoring or
// reordering happens here.
type Assembler struct {
	refinedChars int
}

// NewAssembler creates an assembler. refinedChars bounds the per-section
// excerpt emitted alongside the ranked list.
func NewAssembler(refinedChars int) *Assembler {
	if refinedChars <= 0 {
		refinedChars = 500
	}
	return &Assembler{refinedChars: refinedChars}
}

// Assemble builds the terminal ResultSet for a run.
func (a *Assembler) Assemble(meta domain.RunMeta, selected []domain.ScoredSection) domain.ResultSet {
	refinements := make([]domain.Refinement, 0, len(selected))
	for _, s := range selected {
		refinements = append(refinements, domain.Refinement{
			DocID:       s.Section.DocID,
			RefinedText: refine(s.Section.Body, a.refinedChars),
			Page:        s.Section.Page,
		})
	}

	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}

	return domain.ResultSet{
		Meta:        meta,
		Sections:    selected,
		Refinements: refinements,
	}
}

// refine truncates a section body for the refined-text excerpt.
func refine(body string, max int) string {
	if len(body) <= max {
		return body
	}
	cut := max
	for cut > 0 && body[cut]&0xC0 == 0x80 {
		cut--
	}
	return body[:cut] + "..."
}
