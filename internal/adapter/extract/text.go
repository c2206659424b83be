package extract

import (
	"os"
	"strings"

	"personarank/internal/domain"
)

// extractText reads a plain text file. Form feeds act as page separators;
// without them the whole file is one page.
func extractText(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pages []domain.Page
	for i, text := range strings.Split(string(data), "\f") {
		pages = append(pages, domain.Page{Number: i + 1, Text: text})
	}
	return nonEmptyPages(pages), nil
}
