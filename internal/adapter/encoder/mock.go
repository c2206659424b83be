package encoder

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// MockEncoder is a deterministic offline encoder. Each text is hashed into a
// pseudo-random unit vector, so identical texts always embed identically and
// texts sharing words land closer together than unrelated ones. Useful for
// tests and smoke runs without a model.
type MockEncoder struct {
	dimension int
}

// NewMockEncoder creates a mock encoder with the given dimension.
func NewMockEncoder(dimension int) *MockEncoder {
	if dimension <= 0 {
		dimension = 64
	}
	return &MockEncoder{dimension: dimension}
}

func (e *MockEncoder) Encode(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to encode")
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embed(text)
	}
	return out, nil
}

// embed sums per-word hash vectors and normalizes, a bag-of-words sketch.
func (e *MockEncoder) embed(text string) []float32 {
	vec := make([]float32, e.dimension)
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		words = []string{text}
	}
	for _, w := range words {
		h := sha256.Sum256([]byte(w))
		stream := h[:]
		for d := 0; d < e.dimension; d++ {
			if (d+1)*4 > len(stream) {
				// Extend the keystream by re-hashing its tail.
				next := sha256.Sum256(stream[len(stream)-sha256.Size:])
				stream = append(stream, next[:]...)
			}
			u := binary.BigEndian.Uint32(stream[d*4:])
			vec[d] += float32(int32(u)) / float32(math.MaxInt32)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for d := range vec {
			vec[d] *= inv
		}
	}
	return vec
}

func (e *MockEncoder) Dimension() int { return e.dimension }

func (e *MockEncoder) ModelName() string { return "mock" }
