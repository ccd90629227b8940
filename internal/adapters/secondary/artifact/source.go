package artifact

import (
	"context"
	"strings"

	"fraud-scoring-service/internal/core/ports/output"
)

// SourceRouter picks an ArtifactSource by path prefix and falls back to a
// default source, normally the local filesystem.
type SourceRouter struct {
	fallback ports.ArtifactSource
	prefixes []string
	sources  map[string]ports.ArtifactSource
}

func NewSourceRouter(fallback ports.ArtifactSource) *SourceRouter {
	return &SourceRouter{
		fallback: fallback,
		sources:  make(map[string]ports.ArtifactSource),
	}
}

// Register routes paths starting with prefix to src.
func (r *SourceRouter) Register(prefix string, src ports.ArtifactSource) {
	if _, ok := r.sources[prefix]; !ok {
		r.prefixes = append(r.prefixes, prefix)
	}
	r.sources[prefix] = src
}

func (r *SourceRouter) Exists(ctx context.Context, path string) (bool, error) {
	return r.resolve(path).Exists(ctx, path)
}

func (r *SourceRouter) Read(ctx context.Context, path string) ([]byte, error) {
	return r.resolve(path).Read(ctx, path)
}

func (r *SourceRouter) resolve(path string) ports.ArtifactSource {
	best := ""
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return r.fallback
	}
	return r.sources[best]
}
