package port

import "personarank/internal/domain"

// Extractor yields page-tagged raw text for a single input file.
type Extractor interface {
	// Extract reads the file at path and returns its pages in order.
	// Failures are reported as *domain.ExtractionError.
	Extract(path string) ([]domain.Page, error)
}
