package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/amouradore/mouradloader/internal/core/engine"
)

// Engine shells out to the yt-dlp binary for metadata extraction and
// downloading. One Engine instance serves any number of concurrent downloads;
// per-download state lives in the runner.
type Engine struct {
	binary       string
	downloadDir  string
	cookieFile   string
	audioFormat  string
	audioQuality string
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string { return "ytdlp" }

func (e *Engine) Init(_ context.Context, cfg engine.EngineConfig) error {
	e.binary = cfg.Extra["binary"]
	if e.binary == "" {
		e.binary = "yt-dlp"
	}
	e.downloadDir = cfg.DownloadDir
	e.cookieFile = cfg.Extra["cookie_file"]
	e.audioFormat = cfg.Extra["audio_format"]
	if e.audioFormat == "" {
		e.audioFormat = "mp3"
	}
	e.audioQuality = cfg.Extra["audio_quality"]
	if e.audioQuality == "" {
		e.audioQuality = "192K"
	}

	// Check binary exists
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("yt-dlp binary not found: %w", err)
	}

	return os.MkdirAll(e.downloadDir, 0o755)
}

func (e *Engine) Health(ctx context.Context) engine.HealthStatus {
	start := time.Now()
	cmd := exec.CommandContext(ctx, e.binary, "--version")
	out, err := cmd.Output()
	latency := time.Since(start)
	if err != nil {
		return engine.HealthStatus{OK: false, Message: err.Error(), Latency: latency}
	}
	return engine.HealthStatus{
		OK:      true,
		Message: "yt-dlp " + strings.TrimSpace(string(out)),
		Latency: latency,
	}
}

// Info runs yt-dlp --dump-json and maps the result. Formats with neither a
// video nor an audio codec are dropped (storyboard/image entries).
func (e *Engine) Info(ctx context.Context, url string) (*engine.MediaInfo, error) {
	raw, err := extractInfo(ctx, e.binary, e.cookieFile, url)
	if err != nil {
		return nil, err
	}

	info := &engine.MediaInfo{
		Title:     raw.Title,
		Thumbnail: raw.Thumbnail,
		Duration:  raw.Duration,
		Uploader:  raw.Uploader,
		Formats:   make([]engine.Format, 0, len(raw.Formats)),
	}
	for _, f := range raw.Formats {
		if f.VCodec == "none" && f.ACodec == "none" {
			continue
		}
		quality := f.FormatNote
		if quality == "" {
			quality = "N/A"
		}
		info.Formats = append(info.Formats, engine.Format{
			ID:         f.FormatID,
			Ext:        f.Ext,
			Quality:    quality,
			Filesize:   f.Filesize,
			VideoCodec: f.VCodec,
			AudioCodec: f.ACodec,
		})
	}
	return info, nil
}

func (e *Engine) Download(ctx context.Context, req engine.DownloadRequest, progress engine.ProgressFunc) (engine.DownloadResult, error) {
	dest, err := runDownload(ctx, e.binary, e.buildArgs(req), progress)
	if err != nil {
		return engine.DownloadResult{}, err
	}

	name := filepath.Base(dest)
	// Audio extraction renames the intermediate file; report the final name.
	if req.Kind == engine.KindAudio {
		name = forceExt(name, "."+e.audioFormat)
	}
	return engine.DownloadResult{FileName: name}, nil
}

func (e *Engine) buildArgs(req engine.DownloadRequest) []string {
	args := []string{
		"--no-warnings",
		"--newline",
		"--progress",
		"--no-playlist",
		"-o", filepath.Join(e.downloadDir, "%(title)s.%(ext)s"),
	}
	if e.cookieFile != "" {
		args = append(args, "--cookies", e.cookieFile)
	}

	if req.Kind == engine.KindAudio {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", e.audioFormat,
			"--audio-quality", e.audioQuality,
		)
	} else {
		format := req.FormatID
		if format == "" || format == "best" {
			format = "best"
		}
		args = append(args, "-f", format)
	}

	return append(args, req.URL)
}

func forceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
