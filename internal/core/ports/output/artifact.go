package ports

import (
	"context"
)

// Artifact is a deserialized, ready-to-use binary classifier.
// Implementations are immutable once built and safe for concurrent use.
type Artifact interface {
	// Kind names the model family, e.g. "random_forest"
	Kind() string

	// Classify returns one class label per row of the batch
	Classify(batch [][]float64) ([]int, error)

	// EstimateProbabilities returns one per-class distribution per row
	EstimateProbabilities(batch [][]float64) ([][]float64, error)
}

// ArtifactSource resolves an artifact location to raw bytes
type ArtifactSource interface {
	// Exists reports whether anything is stored at path
	Exists(ctx context.Context, path string) (bool, error)

	// Read returns the full contents stored at path
	Read(ctx context.Context, path string) ([]byte, error)
}

// ArtifactDecoder turns raw artifact bytes into an Artifact
type ArtifactDecoder interface {
	Decode(data []byte) (Artifact, error)
}

// ArtifactDecoderFunc adapts a plain function to ArtifactDecoder.
type ArtifactDecoderFunc func(data []byte) (Artifact, error)

func (f ArtifactDecoderFunc) Decode(data []byte) (Artifact, error) {
	return f(data)
}
