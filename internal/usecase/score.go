package usecase

import (
	"errors"
	"log/slog"
	"math"

	"personarank/internal/domain"
	"personarank/internal/port"
)

var errEmptyVector = errors.New("encoder returned empty vector")

// ScoringEngine computes a relevance score for every section against the
// composite query via cosine similarity of their embeddings.
type ScoringEngine struct {
	encoder       port.Encoder
	passagePrefix string
	batchSize     int
	logger        *slog.Logger

	// Progress, when set, is called after each encoded batch with the
	// number of sections processed so far and the total.
	Progress func(done, total int)
}

// NewScoringEngine creates a scoring engine. The passage prefix is applied
// to section bodies before encoding (asymmetric embedding models).
func NewScoringEngine(encoder port.Encoder, passagePrefix string, batchSize int, logger *slog.Logger) *ScoringEngine {
	if batchSize <= 0 {
		batchSize = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoringEngine{
		encoder:       encoder,
		passagePrefix: passagePrefix,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// Score embeds the query and all section bodies and returns one scored
// section per surviving input section, in input order. A section whose
// encoding fails is dropped with a logged diagnostic; a query encoding
// failure is fatal.
func (e *ScoringEngine) Score(query domain.PersonaQuery, sections []domain.Section) ([]domain.ScoredSection, error) {
	queryVecs, err := e.encoder.Encode([]string{query.Composite})
	if err != nil {
		return nil, &domain.EncodingError{Query: true, Err: err}
	}
	if len(queryVecs) == 0 || len(queryVecs[0]) == 0 {
		return nil, &domain.EncodingError{Query: true, Err: errEmptyVector}
	}
	queryVec := queryVecs[0]

	scored := make([]domain.ScoredSection, 0, len(sections))
	for start := 0; start < len(sections); start += e.batchSize {
		end := start + e.batchSize
		if end > len(sections) {
			end = len(sections)
		}
		batch := sections[start:end]

		texts := make([]string, len(batch))
		for i, s := range batch {
			texts[i] = e.passagePrefix + s.Body
		}

		vecs, err := e.encoder.Encode(texts)
		if err != nil || len(vecs) != len(batch) {
			// Retry one by one so a single bad section does not sink
			// the whole batch.
			for _, s := range batch {
				vec, err := e.encoder.Encode([]string{e.passagePrefix + s.Body})
				if err != nil || len(vec) != 1 {
					e.logger.Warn("dropping section: encoding failed",
						"doc", s.DocID, "page", s.Page, "title", s.Title, "error", err)
					continue
				}
				scored = append(scored, domain.ScoredSection{
					Section: s,
					Score:   cosineSimilarity(queryVec, vec[0]),
				})
			}
		} else {
			for i, s := range batch {
				scored = append(scored, domain.ScoredSection{
					Section: s,
					Score:   cosineSimilarity(queryVec, vecs[i]),
				})
			}
		}

		if e.Progress != nil {
			e.Progress(end, len(sections))
		}
	}

	return scored, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
