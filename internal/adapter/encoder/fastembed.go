//go:build cgo

package encoder

import (
	"fmt"
	"path/filepath"

	fastembed "github.com/anush008/fastembed-go"
)

// FastEmbedEncoder embeds text with a local ONNX model. No network access is
// needed once the model files are cached.
type FastEmbedEncoder struct {
	model     *fastembed.FlagEmbedding
	modelName string
	dimension int
	batchSize int
}

var fastembedModels = map[string]fastembed.EmbeddingModel{
	"BAAI/bge-small-en-v1.5":                 fastembed.BGESmallENV15,
	"BAAI/bge-base-en-v1.5":                  fastembed.BGEBaseENV15,
	"sentence-transformers/all-MiniLM-L6-v2": fastembed.AllMiniLML6V2,
}

var fastembedDimensions = map[fastembed.EmbeddingModel]int{
	fastembed.BGESmallENV15: 384,
	fastembed.BGEBaseENV15:  768,
	fastembed.AllMiniLML6V2: 384,
}

// NewFastEmbedEncoder loads a local ONNX embedding model, downloading it to
// cacheDir on first use.
func NewFastEmbedEncoder(modelName, cacheDir string, batchSize int) (*FastEmbedEncoder, error) {
	model, ok := fastembedModels[modelName]
	if !ok {
		model = fastembed.EmbeddingModel(modelName)
		if _, known := fastembedDimensions[model]; !known {
			return nil, fmt.Errorf("unsupported fastembed model %q", modelName)
		}
	}

	if cacheDir == "" {
		cacheDir = filepath.Join(".", "local_cache")
	}
	if batchSize <= 0 {
		batchSize = 64
	}

	showProgress := false
	flagEmbed, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                model,
		CacheDir:             cacheDir,
		MaxLength:            512,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing fastembed: %w", err)
	}

	return &FastEmbedEncoder{
		model:     flagEmbed,
		modelName: modelName,
		dimension: fastembedDimensions[model],
		batchSize: batchSize,
	}, nil
}

func (e *FastEmbedEncoder) Encode(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to encode")
	}
	embeddings, err := e.model.Embed(texts, e.batchSize)
	if err != nil {
		return nil, fmt.Errorf("fastembed encode: %w", err)
	}
	return embeddings, nil
}

func (e *FastEmbedEncoder) Dimension() int { return e.dimension }

func (e *FastEmbedEncoder) ModelName() string { return e.modelName }

// Close releases the underlying ONNX session.
func (e *FastEmbedEncoder) Close() error {
	if e.model != nil {
		return e.model.Destroy()
	}
	return nil
}
