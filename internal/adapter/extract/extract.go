// Package extract turns input files into page-tagged raw text.
package extract

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"personarank/internal/domain"
)

// SupportedExtensions lists file extensions the extractor can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".docx": true,
}

// IsSupported checks whether a filename has an extractable extension.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FileExtractor extracts page-tagged text from local files, dispatching on
// extension. An optional cache avoids re-parsing unchanged files.
type FileExtractor struct {
	cache  *Cache
	logger *slog.Logger

	// FallbackPdftotext enables the pdftotext subprocess as a second
	// extraction strategy when the library fails on a PDF.
	FallbackPdftotext bool
}

// New creates a file extractor. cache may be nil.
func New(cache *Cache, logger *slog.Logger) *FileExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileExtractor{
		cache:             cache,
		logger:            logger,
		FallbackPdftotext: true,
	}
}

// Extract reads the file at path and returns its pages in order. All
// failures come back as *domain.ExtractionError.
func (x *FileExtractor) Extract(path string) ([]domain.Page, error) {
	if x.cache != nil {
		if pages, ok := x.cache.Get(path); ok {
			x.logger.Debug("extraction cache hit", "path", path)
			return pages, nil
		}
	}

	pages, err := x.extract(path)
	if err != nil {
		return nil, &domain.ExtractionError{Path: path, Err: err}
	}

	if x.cache != nil {
		if err := x.cache.Put(path, pages); err != nil {
			x.logger.Warn("failed to cache extraction", "path", path, "error", err)
		}
	}

	return pages, nil
}

func (x *FileExtractor) extract(path string) ([]domain.Page, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return x.extractPDF(path)
	case ".txt":
		return extractText(path)
	case ".md", ".markdown":
		return extractMarkdown(path)
	case ".html", ".htm":
		return extractHTML(path)
	case ".docx":
		return extractDOCX(path)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}

// nonEmptyPages drops blank pages while preserving original page numbers.
func nonEmptyPages(pages []domain.Page) []domain.Page {
	out := pages[:0]
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			out = append(out, p)
		}
	}
	return out
}
