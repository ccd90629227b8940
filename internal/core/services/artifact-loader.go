package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"fraud-scoring-service/internal/core/domain"
	"fraud-scoring-service/internal/core/ports/output"
)

// ArtifactLoader owns the single model artifact of the process.
// The first successful Load populates it; later calls return the same
// artifact and ignore their path argument.
type ArtifactLoader struct {
	source  ports.ArtifactSource
	decoder ports.ArtifactDecoder

	// loadMu serializes the populate-once transition.
	loadMu sync.Mutex

	mu       sync.RWMutex
	artifact ports.Artifact
	path     string
}

func NewArtifactLoader(source ports.ArtifactSource, decoder ports.ArtifactDecoder) *ArtifactLoader {
	return &ArtifactLoader{source: source, decoder: decoder}
}

// Load returns the loaded artifact, deserializing it from path on the first
// successful call only.
func (l *ArtifactLoader) Load(ctx context.Context, path string) (ports.Artifact, error) {
	if artifact, ok := l.reuse(path); ok {
		return artifact, nil
	}

	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	// another caller may have finished loading while we waited
	if artifact, ok := l.reuse(path); ok {
		return artifact, nil
	}

	log.WithField("path", path).Info("loading model artifact")

	exists, err := l.source.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("check artifact %s: %w", path, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
	}

	data, err := l.source.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	artifact, err := l.decoder.Decode(data)
	if err != nil {
		if !errors.Is(err, domain.ErrArtifactCorrupt) {
			err = fmt.Errorf("%w: %w", domain.ErrArtifactCorrupt, err)
		}
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if artifact == nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, domain.ErrArtifactCorrupt)
	}

	l.mu.Lock()
	l.artifact = artifact
	l.path = path
	l.mu.Unlock()

	log.WithFields(log.Fields{
		"path": path,
		"kind": artifact.Kind(),
		"size": len(data),
	}).Info("model artifact loaded")

	return artifact, nil
}

func (l *ArtifactLoader) reuse(path string) (ports.Artifact, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.artifact == nil {
		return nil, false
	}
	if path != l.path {
		log.WithFields(log.Fields{
			"requested": path,
			"loaded":    l.path,
		}).Warn("model artifact already loaded from another path, reusing it")
	} else {
		log.Debug("model artifact already loaded, reusing it")
	}
	return l.artifact, true
}

// Artifact borrows the loaded artifact for one call. It never triggers a load.
func (l *ArtifactLoader) Artifact() (ports.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.artifact == nil {
		return nil, domain.ErrArtifactNotLoaded
	}
	return l.artifact, nil
}

func (l *ArtifactLoader) IsLoaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.artifact != nil
}

// Describe reports the loader state for health and diagnostics.
func (l *ArtifactLoader) Describe() domain.ArtifactStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.artifact == nil {
		return domain.ArtifactStatus{Loaded: false}
	}
	return domain.ArtifactStatus{
		Loaded:       true,
		ArtifactKind: l.artifact.Kind(),
		Path:         l.path,
	}
}
