package segment

import (
	"log/slog"
	"strings"

	"personarank/internal/domain"
)

// Segmenter splits page-tagged document text into bounded, sentence-respecting
// sections. A section that straddles a page boundary is attributed to the page
// where its first character occurs.
type Segmenter struct {
	maxChars  int
	minChars  int
	logger    *slog.Logger
	truncated int
}

// New creates a segmenter with the given body size bounds.
func New(maxChars, minChars int, logger *slog.Logger) *Segmenter {
	if maxChars <= 0 {
		maxChars = 1000
	}
	if minChars < 0 {
		minChars = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{
		maxChars: maxChars,
		minChars: minChars,
		logger:   logger,
	}
}

// block is a paragraph of page text, tagged with the page it starts on.
type block struct {
	text    string
	page    int
	heading bool
}

// Segment produces the document's sections in reading order. Blank pages
// yield no sections and an entirely empty document yields nil, but any
// document with at least one non-empty page yields at least one section.
func (s *Segmenter) Segment(doc domain.Document) ([]domain.Section, error) {
	blocks := collectBlocks(doc.Pages)
	if len(blocks) == 0 {
		return nil, nil
	}

	var sections []domain.Section

	var (
		body    strings.Builder
		title   string
		page    int
		started bool
	)

	flush := func() {
		text := strings.TrimSpace(body.String())
		body.Reset()
		started = false
		if text == "" {
			return
		}
		if text == title {
			// Only the heading is buffered; let it open the next section.
			return
		}
		if len(text) < s.minChars && len(sections) > 0 {
			// Too small to stand alone; tack onto the previous section
			// if it still fits. With no previous section the text is
			// kept, a non-empty document must yield at least one section.
			prev := &sections[len(sections)-1]
			if len(prev.Body)+len(text)+1 <= s.maxChars {
				prev.Body = prev.Body + "\n" + text
			}
			title = ""
			return
		}
		sections = append(sections, domain.Section{
			DocID: doc.ID,
			Page:  page,
			Title: sectionTitle(title, text),
			Body:  text,
		})
		title = ""
	}

	start := func(p int) {
		if !started {
			page = p
			started = true
		}
	}

	add := func(text string, p int) {
		start(p)
		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.WriteString(text)
	}

	for _, b := range blocks {
		if b.heading {
			// A heading starts a new section and becomes its title.
			if started {
				flush()
			}
			title = b.text
			add(b.text, b.page)
			continue
		}

		if started && body.Len()+len(b.text)+1 > s.maxChars {
			flush()
		}

		if len(b.text) > s.maxChars {
			// Paragraph alone exceeds the budget; split by sentences.
			for _, part := range s.splitLong(b.text, doc.ID) {
				if started && body.Len()+len(part)+1 > s.maxChars {
					flush()
				}
				add(part, b.page)
			}
			continue
		}

		add(b.text, b.page)
	}
	if started {
		flush()
	}

	if len(sections) == 0 {
		// Nothing survived the budget rules (e.g. a heading-only page).
		// Fall back to one section per non-empty page so the document is
		// not silently dropped.
		for _, pg := range doc.Pages {
			text := strings.TrimSpace(pg.Text)
			if text == "" {
				continue
			}
			if len(text) > s.maxChars {
				text = truncateAt(text, s.maxChars)
			}
			sections = append(sections, domain.Section{
				DocID: doc.ID,
				Page:  pg.Number,
				Title: sectionTitle("", text),
				Body:  text,
			})
		}
	}

	return sections, nil
}

// TruncatedSentences reports how many sentences were hard-truncated because
// they alone exceeded the section budget.
func (s *Segmenter) TruncatedSentences() int { return s.truncated }

// splitLong breaks an over-budget paragraph into sentence runs that each fit
// the budget. A single sentence longer than the budget is hard-truncated and
// counted as a fallback case.
func (s *Segmenter) splitLong(text, docID string) []string {
	sentences := splitSentences(text)

	var parts []string
	var current strings.Builder

	for _, sent := range sentences {
		if len(sent) > s.maxChars {
			s.truncated++
			s.logger.Debug("sentence exceeds section budget, truncating",
				"doc", docID, "length", len(sent), "max", s.maxChars)
			sent = truncateAt(sent, s.maxChars)
		}
		if current.Len() > 0 && current.Len()+len(sent)+1 > s.maxChars {
			parts = append(parts, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// collectBlocks turns page text into an ordered paragraph stream. Blank pages
// contribute nothing.
func collectBlocks(pages []domain.Page) []block {
	var blocks []block
	for _, pg := range pages {
		for _, para := range splitParagraphs(pg.Text) {
			blocks = append(blocks, splitHeadings(para, pg.Number)...)
		}
	}
	return blocks
}

// splitHeadings peels heading-looking lines off the front of a paragraph so
// they can start new sections. Lines inside the paragraph body are left alone.
func splitHeadings(para string, page int) []block {
	lines := strings.Split(para, "\n")

	var blocks []block
	i := 0
	for i < len(lines) && isHeadingLine(strings.TrimSpace(lines[i])) {
		blocks = append(blocks, block{text: strings.TrimSpace(lines[i]), page: page, heading: true})
		i++
	}

	rest := strings.TrimSpace(strings.Join(lines[i:], "\n"))
	if rest != "" {
		blocks = append(blocks, block{text: rest, page: page})
	}
	return blocks
}

// splitParagraphs splits on blank lines.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitSentences does basic sentence splitting on terminal punctuation
// followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\n') {
			sent := strings.TrimSpace(current.String())
			if sent != "" {
				sentences = append(sentences, sent)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// truncateAt cuts text to at most max bytes without splitting a rune,
// preferring the last word boundary.
func truncateAt(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]
	if idx := strings.LastIndexByte(truncated, ' '); idx > max/2 {
		truncated = truncated[:idx]
	}
	return strings.TrimSpace(truncated)
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
