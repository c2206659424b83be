package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"personarank/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractTextPages(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "first page text\fsecond page text\f\f")

	x := New(nil, nil)
	pages, err := x.Extract(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(pages) != 2 {
		t.Fatalf("expected 2 non-empty pages, got %d", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Errorf("page numbers wrong: %d, %d", pages[0].Number, pages[1].Number)
	}
	if !strings.Contains(pages[1].Text, "second page") {
		t.Errorf("page 2 text = %q", pages[1].Text)
	}
}

func TestExtractTextSinglePage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "just one page of content")

	x := New(nil, nil)
	pages, err := x.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Fatalf("expected a single page 1, got %+v", pages)
	}
}

func TestExtractMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "# Packing Tips\n\nBring layers for the evening.\n\n## Beaches\n\nThe coast has calm water.")

	x := New(nil, nil)
	pages, err := x.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("markdown is single-page, got %d pages", len(pages))
	}
	text := pages[0].Text
	for _, want := range []string{"Packing Tips", "Bring layers", "Beaches", "calm water"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "#") {
		t.Error("markdown markers must not survive extraction")
	}
}

func TestExtractHTML(t *testing.T) {
	dir := t.TempDir()
	html := `<html><head><title>t</title><style>p{color:red}</style></head>
<body><h1>Guide</h1><p>Useful paragraph.</p><script>alert(1)</script></body></html>`
	path := writeFile(t, dir, "doc.html", html)

	x := New(nil, nil)
	pages, err := x.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	text := pages[0].Text
	if !strings.Contains(text, "Guide") || !strings.Contains(text, "Useful paragraph.") {
		t.Errorf("extracted text = %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Error("script/style content must be skipped")
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.xyz", "data")

	x := New(nil, nil)
	_, err := x.Extract(path)
	var extErr *domain.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	x := New(nil, nil)
	_, err := x.Extract(filepath.Join(t.TempDir(), "missing.txt"))
	var extErr *domain.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("report.pdf") || !IsSupported("notes.TXT") {
		t.Error("expected pdf and txt to be supported")
	}
	if IsSupported("archive.zip") {
		t.Error("zip must not be supported")
	}
}
