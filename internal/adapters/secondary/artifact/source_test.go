package artifact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	name string
}

func (s staticSource) Exists(context.Context, string) (bool, error) { return true, nil }

func (s staticSource) Read(context.Context, string) ([]byte, error) { return []byte(s.name), nil }

func TestSourceRouter(t *testing.T) {
	r := NewSourceRouter(staticSource{name: "file"})
	r.Register("configmap://", staticSource{name: "configmap"})
	r.Register("configmap://special/", staticSource{name: "special"})

	tests := map[string]string{
		"artifacts/models/model.json":          "file",
		"/abs/model.yaml":                      "file",
		"configmap://scoring/model/model.json": "configmap",
		"configmap://special/model/model.json": "special",
	}
	for path, want := range tests {
		data, err := r.Read(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, want, string(data), path)
	}
}
