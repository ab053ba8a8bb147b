package fileserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("mp4data"), 0o644))
	srv := NewServer(dir)

	req := httptest.NewRequest(http.MethodGet, "/files/clip.mp4", nil)
	rec := httptest.NewRecorder()
	srv.ServeFile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mp4data", rec.Body.String())
	assert.Equal(t, `attachment; filename="clip.mp4"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
}

func TestServeFileEscapedName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "My Video.mp4"), []byte("x"), 0o644))
	srv := NewServer(dir)

	req := httptest.NewRequest(http.MethodGet, "/files/My%20Video.mp4", nil)
	rec := httptest.NewRecorder()
	srv.ServeFile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeFileMissing(t *testing.T) {
	srv := NewServer(t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/files/nope.mp4", nil)
	rec := httptest.NewRecorder()
	srv.ServeFile(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeFileRejectsMultiSegmentNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "safe.mp4"), []byte("x"), 0o644))
	srv := NewServer(dir)

	for _, name := range []string{"..%2Fsecret.txt", "a%2Fb.mp4", ".."} {
		req := httptest.NewRequest(http.MethodGet, "/files/"+name, nil)
		rec := httptest.NewRecorder()
		srv.ServeFile(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestServeFileMissingName(t *testing.T) {
	srv := NewServer(t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/files/", nil)
	rec := httptest.NewRecorder()
	srv.ServeFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
