package encoder

import (
	"math"
	"testing"
)

func TestMockEncoderDeterministic(t *testing.T) {
	e := NewMockEncoder(64)

	a, err := e.Encode([]string{"wine tasting in the south"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Encode([]string{"wine tasting in the south"})
	if err != nil {
		t.Fatal(err)
	}

	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("dimension %d differs between identical inputs", i)
		}
	}
}

func TestMockEncoderDimension(t *testing.T) {
	e := NewMockEncoder(48)
	vecs, err := e.Encode([]string{"one", "two", "three"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	for _, v := range vecs {
		if len(v) != 48 {
			t.Errorf("vector dimension = %d, want 48", len(v))
		}
	}
	if e.Dimension() != 48 {
		t.Errorf("Dimension() = %d", e.Dimension())
	}
}

func TestMockEncoderNormalized(t *testing.T) {
	e := NewMockEncoder(64)
	vecs, err := e.Encode([]string{"some passage text"})
	if err != nil {
		t.Fatal(err)
	}

	var norm float64
	for _, x := range vecs[0] {
		norm += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-5 {
		t.Errorf("expected a unit vector, norm = %f", math.Sqrt(norm))
	}
}

func TestMockEncoderSharedWordsCloser(t *testing.T) {
	e := NewMockEncoder(64)
	vecs, err := e.Encode([]string{
		"coastal beaches and water sports",
		"coastal beaches and water adventures",
		"quarterly financial filings review",
	})
	if err != nil {
		t.Fatal(err)
	}

	cos := func(a, b []float32) float64 {
		var dot float64
		for i := range a {
			dot += float64(a[i]) * float64(b[i])
		}
		return dot // inputs are unit vectors
	}

	near := cos(vecs[0], vecs[1])
	far := cos(vecs[0], vecs[2])
	if near <= far {
		t.Errorf("texts sharing words should be closer: near=%f far=%f", near, far)
	}
}

func TestMockEncoderEmptyInput(t *testing.T) {
	e := NewMockEncoder(64)
	if _, err := e.Encode(nil); err == nil {
		t.Fatal("expected an error for empty input")
	}
}
