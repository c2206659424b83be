package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"personarank/internal/domain"
	"personarank/internal/port"
)

// Pipeline runs the full ranking flow: extract, segment, score, rank,
// assemble. Single-threaded, single pass; per-document failures are
// isolated, configuration and query failures abort the run.
type Pipeline struct {
	extractor port.Extractor
	segmenter port.Segmenter
	queries   *QueryBuilder
	scorer    *ScoringEngine
	ranker    *Ranker
	assembler *Assembler
	logger    *slog.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(
	extractor port.Extractor,
	segmenter port.Segmenter,
	queries *QueryBuilder,
	scorer *ScoringEngine,
	ranker *Ranker,
	assembler *Assembler,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor: extractor,
		segmenter: segmenter,
		queries:   queries,
		scorer:    scorer,
		ranker:    ranker,
		assembler: assembler,
		logger:    logger,
	}
}

// Run executes one ranking run over the given document paths. The context
// deadline is honored between documents, never inside the scoring loop.
func (p *Pipeline) Run(ctx context.Context, persona, job string, docPaths []string) (domain.ResultSet, error) {
	query, err := p.queries.Build(persona, job)
	if err != nil {
		return domain.ResultSet{}, err
	}
	if len(docPaths) == 0 {
		return domain.ResultSet{}, &domain.ValidationError{Field: "input_documents", Reason: "must list at least one document"}
	}

	var sections []domain.Section
	docOrder := make(map[string]int)
	inputDocs := make([]string, 0, len(docPaths))
	extracted := 0

	for i, path := range docPaths {
		if err := ctx.Err(); err != nil {
			return domain.ResultSet{}, fmt.Errorf("run aborted before %s: %w", filepath.Base(path), err)
		}

		id := filepath.Base(path)
		docOrder[id] = i

		pages, err := p.extractor.Extract(path)
		if err != nil {
			var extErr *domain.ExtractionError
			if errors.As(err, &extErr) {
				p.logger.Warn("skipping document: extraction failed", "doc", id, "error", err)
				continue
			}
			return domain.ResultSet{}, err
		}
		extracted++
		// Metadata lists the documents actually processed, not the ones
		// that failed extraction.
		inputDocs = append(inputDocs, id)

		doc := domain.Document{ID: id, Path: path, Order: i, Pages: pages}
		docSections, err := p.segmenter.Segment(doc)
		if err != nil {
			return domain.ResultSet{}, fmt.Errorf("segment %s: %w", id, err)
		}
		if len(docSections) == 0 {
			p.logger.Warn("document yielded no sections", "doc", id)
			continue
		}

		p.logger.Debug("segmented document", "doc", id, "pages", len(pages), "sections", len(docSections))
		sections = append(sections, docSections...)
	}

	if extracted == 0 {
		return domain.ResultSet{}, fmt.Errorf("no documents could be extracted")
	}
	if len(sections) == 0 {
		return domain.ResultSet{}, fmt.Errorf("no sections extracted from %d document(s)", extracted)
	}

	p.logger.Info("scoring sections", "sections", len(sections), "model", p.scorer.encoder.ModelName())
	scored, err := p.scorer.Score(query, sections)
	if err != nil {
		return domain.ResultSet{}, err
	}
	if len(scored) == 0 {
		return domain.ResultSet{}, fmt.Errorf("no sections survived encoding")
	}

	selected := p.ranker.Rank(scored, docOrder)

	meta := domain.RunMeta{
		InputDocuments: inputDocs,
		Persona:        query.Persona,
		Job:            query.Job,
		Timestamp:      time.Now().UTC(),
	}

	return p.assembler.Assemble(meta, selected), nil
}
