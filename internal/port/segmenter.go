package port

import "personarank/internal/domain"

// Segmenter splits an extracted document into ranked units.
type Segmenter interface {
	Segment(doc domain.Document) ([]domain.Section, error)
}
