package usecase

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"personarank/internal/domain"
)

func TestAssembleMetadataAndRefinements(t *testing.T) {
	a := NewAssembler(20)

	meta := domain.RunMeta{
		InputDocuments: []string{"a.pdf", "b.pdf"},
		Persona:        "Travel Planner",
		Job:            "plan a trip",
		Timestamp:      time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	}
	selected := []domain.ScoredSection{
		{
			Section: domain.Section{DocID: "a.pdf", Page: 2, Title: "Beaches", Body: strings.Repeat("x", 50)},
			Score:   0.9,
			Rank:    1,
		},
		{
			Section: domain.Section{DocID: "b.pdf", Page: 1, Title: "Hotels", Body: "short"},
			Score:   0.8,
			Rank:    2,
		},
	}

	rs := a.Assemble(meta, selected)

	if !reflect.DeepEqual(rs.Meta, meta) {
		t.Errorf("metadata not carried through: %+v", rs.Meta)
	}
	if len(rs.Sections) != 2 || len(rs.Refinements) != 2 {
		t.Fatalf("expected 2 sections and 2 refinements, got %d/%d", len(rs.Sections), len(rs.Refinements))
	}

	if rs.Refinements[0].RefinedText != strings.Repeat("x", 20)+"..." {
		t.Errorf("long body not truncated: %q", rs.Refinements[0].RefinedText)
	}
	if rs.Refinements[1].RefinedText != "short" {
		t.Errorf("short body must pass through untouched: %q", rs.Refinements[1].RefinedText)
	}
	if rs.Refinements[0].DocID != "a.pdf" || rs.Refinements[0].Page != 2 {
		t.Errorf("refinement attribution wrong: %+v", rs.Refinements[0])
	}
}

func TestAssembleDefaultsTimestamp(t *testing.T) {
	a := NewAssembler(100)

	rs := a.Assemble(domain.RunMeta{Persona: "p", Job: "j"}, nil)
	if rs.Meta.Timestamp.IsZero() {
		t.Error("expected a timestamp to be set")
	}
}

func TestAssembleDoesNotReorder(t *testing.T) {
	a := NewAssembler(100)

	selected := []domain.ScoredSection{
		{Section: domain.Section{DocID: "b", Page: 1, Body: "low"}, Score: 0.1, Rank: 1},
		{Section: domain.Section{DocID: "a", Page: 1, Body: "high"}, Score: 0.9, Rank: 2},
	}

	rs := a.Assemble(domain.RunMeta{Timestamp: time.Now()}, selected)
	if rs.Sections[0].Section.Body != "low" || rs.Sections[1].Section.Body != "high" {
		t.Error("assembler must not reorder sections")
	}
}
