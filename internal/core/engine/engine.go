package engine

import (
	"context"
	"time"
)

// Engine is the media extraction interface. Implementations wrap an external
// tool that can inspect a URL and download/transcode its media.
type Engine interface {
	Name() string

	// Lifecycle
	Init(ctx context.Context, cfg EngineConfig) error
	Health(ctx context.Context) HealthStatus

	// Info extracts metadata without downloading.
	Info(ctx context.Context, url string) (*MediaInfo, error)

	// Download fetches media to the configured directory, reporting transfer
	// state through progress. The call blocks until the download finishes and
	// must only be run from a dedicated goroutine. progress must not block.
	Download(ctx context.Context, req DownloadRequest, progress ProgressFunc) (DownloadResult, error)
}

type EngineConfig struct {
	DownloadDir string
	Extra       map[string]string
}

type HealthStatus struct {
	OK      bool
	Message string
	Latency time.Duration
}

// MediaKind selects between full video and extracted audio output.
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

type DownloadRequest struct {
	URL      string
	FormatID string
	Kind     MediaKind
}

type DownloadResult struct {
	// FileName is the base name of the produced file, relative to the
	// engine's download directory.
	FileName string
}

// ProgressFunc receives transfer updates during a download.
type ProgressFunc func(Progress)

// Progress is one observation of transfer state. Total is zero when the
// source reports neither an exact nor an estimated size.
type Progress struct {
	Downloaded int64
	Total      int64
	Estimated  bool  // Total is an estimate, not exact
	Speed      int64 // bytes per second
	ETA        int64 // seconds remaining
	Finalizing bool  // transfer done, post-processing in progress
}

type MediaInfo struct {
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	Duration  float64  `json:"duration"`
	Uploader  string   `json:"uploader"`
	Formats   []Format `json:"formats"`
}

type Format struct {
	ID         string `json:"format_id"`
	Ext        string `json:"ext"`
	Quality    string `json:"quality"`
	Filesize   int64  `json:"filesize"`
	VideoCodec string `json:"vcodec"`
	AudioCodec string `json:"acodec"`
}
