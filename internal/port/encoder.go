package port

// Encoder maps text to fixed-dimension embedding vectors.
type Encoder interface {
	// Encode generates embeddings for the given texts.
	// Returns one vector per input text.
	Encode(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
