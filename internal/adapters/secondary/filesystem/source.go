package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source reads artifacts from the local filesystem.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Exists(_ context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, nil
	}
	return true, nil
}

func (s *Source) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
