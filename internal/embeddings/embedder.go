package embeddings

import "context"

// Embedder generates fixed-dimension vector embeddings for text.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the width of the vectors this embedder produces.
	Dimensions() int

	// Name returns the model identifier.
	Name() string
}
