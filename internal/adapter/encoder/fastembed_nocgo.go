//go:build !cgo

package encoder

import "errors"

// ErrFastEmbedNotAvailable is returned when the binary was built without CGO.
var ErrFastEmbedNotAvailable = errors.New("fastembed: not available (built without CGO, use the openai or ollama provider)")

// FastEmbedEncoder is a stub for non-CGO builds.
type FastEmbedEncoder struct{}

// NewFastEmbedEncoder returns an error when CGO is not available.
func NewFastEmbedEncoder(modelName, cacheDir string, batchSize int) (*FastEmbedEncoder, error) {
	return nil, ErrFastEmbedNotAvailable
}

func (e *FastEmbedEncoder) Encode(texts []string) ([][]float32, error) {
	return nil, ErrFastEmbedNotAvailable
}

func (e *FastEmbedEncoder) Dimension() int { return 0 }

func (e *FastEmbedEncoder) ModelName() string { return "fastembed" }

// Close is a no-op on non-CGO builds.
func (e *FastEmbedEncoder) Close() error { return nil }
