package extract

import (
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"personarank/internal/domain"
)

// extractPDF tries the Go library first, then falls back to pdftotext if
// enabled and available.
func (x *FileExtractor) extractPDF(path string) ([]domain.Page, error) {
	pages, err := extractPDFLib(path)
	if err == nil && len(pages) > 0 {
		return pages, nil
	}
	if x.FallbackPdftotext {
		x.logger.Debug("pdf library extraction failed, trying pdftotext", "path", path, "error", err)
		if fallback, ferr := extractPdftotext(path); ferr == nil {
			return fallback, nil
		}
	}
	if err == nil {
		err = fmt.Errorf("no extractable text")
	}
	return nil, err
}

func extractPDFLib(path string) ([]domain.Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []domain.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, domain.Page{Number: i, Text: text})
	}

	return nonEmptyPages(pages), nil
}

// extractPdftotext shells out to poppler's pdftotext. Pages come back
// separated by form feeds.
func extractPdftotext(path string) ([]domain.Page, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	var pages []domain.Page
	for i, text := range strings.Split(string(out), "\f") {
		pages = append(pages, domain.Page{Number: i + 1, Text: text})
	}
	pages = nonEmptyPages(pages)
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftotext: no extractable text")
	}
	return pages, nil
}
