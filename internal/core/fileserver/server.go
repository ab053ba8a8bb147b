package fileserver

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/amouradore/mouradloader/internal/core/storage"
	"github.com/rs/zerolog/log"
)

// Server delivers completed downloads as attachments.
// URL pattern: /files/{name}, where name is a single path segment.
type Server struct {
	storage *storage.LocalProvider
}

func NewServer(downloadDir string) *Server {
	return &Server{
		storage: storage.NewLocalProvider(downloadDir),
	}
}

// ServeFile handles /files/{name} requests.
func (s *Server) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/files/")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	s.Serve(w, r, name)
}

// Serve writes the named download as an attachment.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, name string) {
	if name == "" {
		http.Error(w, "missing file name", http.StatusBadRequest)
		return
	}

	// The name must stay a single path segment under the download dir.
	if strings.ContainsAny(name, `/\`) || name == ".." || filepath.Base(name) != name {
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}

	f, meta, err := s.storage.Open(r.Context(), name)
	if err != nil {
		log.Debug().Err(err).Str("file", name).Msg("file not found")
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))

	// ServeContent handles Range requests automatically
	http.ServeContent(w, r, name, meta.ModTime, f)
}
