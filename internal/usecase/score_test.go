package usecase

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"personarank/internal/domain"
)

// stubEncoder returns canned vectors per text and can be told to fail on
// specific texts or on everything.
type stubEncoder struct {
	vectors map[string][]float32
	failOn  map[string]bool
	failAll bool
}

func (e *stubEncoder) Encode(texts []string) ([][]float32, error) {
	if e.failAll {
		return nil, errors.New("encoder down")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if e.failOn[t] {
			return nil, fmt.Errorf("malformed text: %q", t)
		}
		v, ok := e.vectors[t]
		if !ok {
			v = []float32{1, 0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func (e *stubEncoder) Dimension() int { return 3 }

func (e *stubEncoder) ModelName() string { return "stub" }

func section(doc string, page int, body string) domain.Section {
	return domain.Section{DocID: doc, Page: page, Title: body, Body: body}
}

func TestScoreCosine(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float32{
		"q":       {1, 0, 0},
		"same":    {1, 0, 0},
		"orthog":  {0, 1, 0},
		"halfway": {1, 1, 0},
	}}
	e := NewScoringEngine(enc, "", 10, nil)

	query := domain.PersonaQuery{Composite: "q"}
	sections := []domain.Section{
		section("a.pdf", 1, "same"),
		section("a.pdf", 2, "orthog"),
		section("a.pdf", 3, "halfway"),
	}

	scored, err := e.Score(query, sections)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 3 {
		t.Fatalf("expected 3 scored sections, got %d", len(scored))
	}
	if math.Abs(scored[0].Score-1.0) > 1e-9 {
		t.Errorf("identical vectors should score 1.0, got %f", scored[0].Score)
	}
	if math.Abs(scored[1].Score) > 1e-9 {
		t.Errorf("orthogonal vectors should score 0, got %f", scored[1].Score)
	}
	if math.Abs(scored[2].Score-1/math.Sqrt2) > 1e-9 {
		t.Errorf("45-degree vectors should score ~0.707, got %f", scored[2].Score)
	}
}

func TestScorePassagePrefix(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float32{
		"q":             {1, 0, 0},
		"passage: body": {1, 0, 0},
	}}
	e := NewScoringEngine(enc, "passage: ", 10, nil)

	scored, err := e.Score(domain.PersonaQuery{Composite: "q"}, []domain.Section{section("a", 1, "body")})
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 1 || math.Abs(scored[0].Score-1.0) > 1e-9 {
		t.Fatalf("prefixed body vector not used: %+v", scored)
	}
}

func TestScorePermutationInvariant(t *testing.T) {
	vectors := map[string][]float32{"q": {1, 1, 0}}
	var sections []domain.Section
	for i := 0; i < 30; i++ {
		body := fmt.Sprintf("section body %d", i)
		vectors[body] = []float32{float32(i), float32(30 - i), 1}
		sections = append(sections, section("d.pdf", i+1, body))
	}
	e := NewScoringEngine(&stubEncoder{vectors: vectors}, "", 7, nil)

	query := domain.PersonaQuery{Composite: "q"}
	base, err := e.Score(query, sections)
	if err != nil {
		t.Fatal(err)
	}
	byBody := make(map[string]float64)
	for _, s := range base {
		byBody[s.Section.Body] = s.Score
	}

	shuffled := make([]domain.Section, len(sections))
	copy(shuffled, sections)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	again, err := e.Score(query, shuffled)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range again {
		if byBody[s.Section.Body] != s.Score {
			t.Errorf("score for %q changed after permutation: %f vs %f",
				s.Section.Body, s.Score, byBody[s.Section.Body])
		}
	}
}

func TestScoreDropsFailedSection(t *testing.T) {
	enc := &stubEncoder{
		vectors: map[string][]float32{"q": {1, 0, 0}},
		failOn:  map[string]bool{"bad": true},
	}
	e := NewScoringEngine(enc, "", 2, nil)

	sections := []domain.Section{
		section("a", 1, "good one"),
		section("a", 2, "bad"),
		section("a", 3, "good two"),
	}

	scored, err := e.Score(domain.PersonaQuery{Composite: "q"}, sections)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 2 {
		t.Fatalf("expected bad section to be dropped, got %d results", len(scored))
	}
	for _, s := range scored {
		if s.Section.Body == "bad" {
			t.Error("failed section was not dropped")
		}
	}
}

func TestScoreQueryFailureIsFatal(t *testing.T) {
	e := NewScoringEngine(&stubEncoder{failAll: true}, "", 10, nil)

	_, err := e.Score(domain.PersonaQuery{Composite: "q"}, []domain.Section{section("a", 1, "body")})
	var encErr *domain.EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if !encErr.Query {
		t.Error("expected the error to be flagged as a query encoding failure")
	}
}

func TestScoreProgressHook(t *testing.T) {
	vectors := map[string][]float32{"q": {1, 0, 0}}
	var sections []domain.Section
	for i := 0; i < 10; i++ {
		body := fmt.Sprintf("s%d", i)
		vectors[body] = []float32{1, 0, 0}
		sections = append(sections, section("a", i+1, body))
	}
	e := NewScoringEngine(&stubEncoder{vectors: vectors}, "", 4, nil)

	var calls [][2]int
	e.Progress = func(done, total int) { calls = append(calls, [2]int{done, total}) }

	if _, err := e.Score(domain.PersonaQuery{Composite: "q"}, sections); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 3 {
		t.Fatalf("expected 3 progress calls for 10 sections in batches of 4, got %d", len(calls))
	}
	last := calls[len(calls)-1]
	if last[0] != 10 || last[1] != 10 {
		t.Errorf("final progress call = %v, want [10 10]", last)
	}
}
