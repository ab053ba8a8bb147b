package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	name string
}

func (s *stubEngine) Name() string                                    { return s.name }
func (s *stubEngine) Init(context.Context, EngineConfig) error        { return nil }
func (s *stubEngine) Health(context.Context) HealthStatus             { return HealthStatus{OK: true} }
func (s *stubEngine) Info(context.Context, string) (*MediaInfo, error) {
	return &MediaInfo{}, nil
}
func (s *stubEngine) Download(context.Context, DownloadRequest, ProgressFunc) (DownloadResult, error) {
	return DownloadResult{}, nil
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubEngine{name: "ytdlp"})

	e, err := r.Get("ytdlp")
	require.NoError(t, err)
	assert.Equal(t, "ytdlp", e.Name())

	_, err = r.Get("aria2")
	assert.Error(t, err)
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.List())

	r.Register(&stubEngine{name: "ytdlp"})
	assert.Equal(t, []string{"ytdlp"}, r.List())
}
