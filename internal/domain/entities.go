package domain

import "time"

// Page is a single page of extracted text. Page numbers are 1-based.
type Page struct {
	Number int
	Text   string
}

// Document is one input file after extraction. The Order field records the
// position of the document in the run's input list and is used for
// deterministic tie-breaking downstream.
type Document struct {
	ID    string
	Path  string
	Order int
	Pages []Page
}

// Section is the atomic ranking unit: a bounded, page-attributed chunk of a
// document's text. Sections are created by the segmenter and never mutated.
type Section struct {
	DocID string
	Page  int
	Title string
	Body  string
}

// Len returns the body length in bytes.
func (s Section) Len() int { return len(s.Body) }

// PersonaQuery holds the persona/job inputs and the derived query strings.
// Composite is the string that gets embedded and compared against sections;
// PersonaOnly is an alternate variant kept for diagnostics.
type PersonaQuery struct {
	Persona     string
	Job         string
	Composite   string
	PersonaOnly string
}

// ScoredSection pairs a section with its relevance score. Rank is assigned
// by the ranker, 1-based in final selection order; zero means unranked.
type ScoredSection struct {
	Section Section
	Score   float64
	Rank    int
}

// RunMeta describes the run that produced a ResultSet.
type RunMeta struct {
	InputDocuments []string
	Persona        string
	Job            string
	Timestamp      time.Time
}

// Refinement is a truncated excerpt of a selected section's body, emitted
// alongside the ranked list.
type Refinement struct {
	DocID       string
	RefinedText string
	Page        int
}

// ResultSet is the terminal artifact of a run: the ranked, diversified
// top-K sections plus run metadata.
type ResultSet struct {
	Meta        RunMeta
	Sections    []ScoredSection
	Refinements []Refinement
}
