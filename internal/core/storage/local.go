package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"
)

// FileMetadata describes an opened file.
type FileMetadata struct {
	Size        int64
	ContentType string
	ModTime     time.Time
}

// LocalProvider opens files under a fixed base directory on the local
// filesystem.
type LocalProvider struct {
	basePath string
}

func NewLocalProvider(basePath string) *LocalProvider {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		abs = basePath
	}
	return &LocalProvider{basePath: abs}
}

func (p *LocalProvider) BasePath() string { return p.basePath }

// Open resolves name against the base directory and opens the file with its
// metadata. The mime type is derived from the extension.
func (p *LocalProvider) Open(_ context.Context, name string) (*os.File, FileMetadata, error) {
	path := filepath.Join(p.basePath, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, FileMetadata{}, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, FileMetadata{}, fmt.Errorf("stat file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return f, FileMetadata{
		Size:        stat.Size(),
		ContentType: contentType,
		ModTime:     stat.ModTime(),
	}, nil
}

func (p *LocalProvider) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(p.basePath, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}
