package controller

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amouradore/mouradloader/internal/config"
	"github.com/amouradore/mouradloader/internal/controller/api"
	"github.com/amouradore/mouradloader/internal/core/engine"
	"github.com/amouradore/mouradloader/internal/core/engine/ytdlp"
	"github.com/amouradore/mouradloader/internal/core/event"
	"github.com/amouradore/mouradloader/internal/core/fileserver"
	"github.com/amouradore/mouradloader/internal/core/job"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func Run(ctx context.Context, cfg *config.Config) error {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}
	log.Debug().Str("level", cfg.Logging.Level).Msg("log level configured")

	if err := os.MkdirAll(cfg.Downloads.Dir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	registry := engine.NewRegistry()
	ytdlpEngine := ytdlp.New()
	if err := ytdlpEngine.Init(ctx, engine.EngineConfig{
		DownloadDir: cfg.Downloads.Dir,
		Extra: map[string]string{
			"binary":        cfg.Engine.Binary,
			"cookie_file":   cfg.Engine.CookieFile,
			"audio_format":  cfg.Engine.AudioFormat,
			"audio_quality": cfg.Engine.AudioQuality,
		},
	}); err != nil {
		return fmt.Errorf("yt-dlp engine init: %w", err)
	}
	registry.Register(ytdlpEngine)
	log.Info().Str("binary", cfg.Engine.Binary).Msg("yt-dlp engine registered")

	eng, err := registry.Get("ytdlp")
	if err != nil {
		return err
	}

	bus := event.NewBus()
	setupEventLogging(bus)

	manager := job.NewManager(eng, bus)
	files := fileserver.NewServer(cfg.Downloads.Dir)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	api.SetupRouter(e, api.RouterConfig{
		Engine:  eng,
		Manager: manager,
		Files:   files,
	})

	if health := eng.Health(ctx); !health.OK {
		log.Warn().Str("message", health.Message).Msg("engine health check failed")
	} else {
		log.Info().Str("version", health.Message).Dur("latency", health.Latency).Msg("engine healthy")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Str("downloads", cfg.Downloads.Dir).Msg("server starting")

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// setupEventLogging mirrors job lifecycle events into the log.
func setupEventLogging(bus event.Bus) {
	bus.Subscribe(event.EventJobCreated, func(_ context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.JobEvent); ok {
			log.Info().Str("job_id", p.JobID).Str("url", p.URL).Str("kind", p.Kind).Msg("job created")
		}
		return nil
	})
	bus.Subscribe(event.EventJobCompleted, func(_ context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.JobEvent); ok {
			log.Info().Str("job_id", p.JobID).Str("file", p.FileName).Msg("job completed")
		}
		return nil
	})
	bus.Subscribe(event.EventJobFailed, func(_ context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.JobEvent); ok {
			log.Warn().Str("job_id", p.JobID).Str("error", p.Error).Msg("job failed")
		}
		return nil
	})
}
