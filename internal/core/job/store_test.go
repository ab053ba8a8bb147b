package job

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStorePutGetDelete(t *testing.T) {
	s := NewStatusStore()

	_, ok := s.Get("j1")
	assert.False(t, ok)

	s.Put("j1", Status{State: StateStarting})
	st, ok := s.Get("j1")
	require.True(t, ok)
	assert.Equal(t, StateStarting, st.State)

	s.Delete("j1")
	_, ok = s.Get("j1")
	assert.False(t, ok)

	// Idempotent: deleting an absent key is a no-op.
	s.Delete("j1")
}

func TestStatusStoreIndependentKeys(t *testing.T) {
	s := NewStatusStore()
	s.Put("a", Status{State: StateDownloading, Progress: 10})
	s.Put("b", Status{State: StateDownloading, Progress: 90})

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, 10.0, a.Progress)
	assert.Equal(t, 90.0, b.Progress)
}

func TestResultStoreConsumeOnce(t *testing.T) {
	s := NewResultStore()
	s.Put("j1", Result{Success: true, FileName: "video.mp4"})

	r, ok := s.Consume("j1")
	require.True(t, ok)
	assert.Equal(t, "video.mp4", r.FileName)

	_, ok = s.Consume("j1")
	assert.False(t, ok)
}

func TestResultStoreConsumeConcurrent(t *testing.T) {
	s := NewResultStore()
	s.Put("j1", Result{Success: true, FileName: "video.mp4"})

	const readers = 16
	var wg sync.WaitGroup
	hits := make(chan struct{}, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.Consume("j1"); ok {
				hits <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(hits)

	count := 0
	for range hits {
		count++
	}
	assert.Equal(t, 1, count)
}
