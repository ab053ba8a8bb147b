package job

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/amouradore/mouradloader/internal/core/engine"
	"github.com/amouradore/mouradloader/internal/core/event"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrMissingURL is returned by Start when no URL was supplied.
var ErrMissingURL = errors.New("url is required")

// Manager dispatches download jobs and owns the status/result stores.
// Start seeds a status record and hands the job to a worker goroutine;
// one worker exists per job id for its entire lifetime.
type Manager struct {
	eng      engine.Engine
	statuses *StatusStore
	results  *ResultStore
	bus      event.Bus

	// Stream timing. Fixed by design; tests shorten them in-package.
	pollInterval time.Duration
	graceDelay   time.Duration
}

func NewManager(eng engine.Engine, bus event.Bus) *Manager {
	return &Manager{
		eng:          eng,
		statuses:     NewStatusStore(),
		results:      NewResultStore(),
		bus:          bus,
		pollInterval: defaultPollInterval,
		graceDelay:   defaultGraceDelay,
	}
}

// Start validates the request, registers the job and begins the download in
// the background. It returns the new job id without waiting for any part of
// the transfer.
func (m *Manager) Start(url, formatID string, kind engine.MediaKind) (string, error) {
	if url == "" {
		return "", ErrMissingURL
	}
	if kind != engine.KindAudio {
		kind = engine.KindVideo
	}

	id := uuid.New().String()
	m.statuses.Put(id, Status{State: StateStarting})

	m.bus.Publish(context.Background(), event.Event{
		Type: event.EventJobCreated,
		Payload: event.JobEvent{
			JobID:    id,
			URL:      url,
			Kind:     string(kind),
			FormatID: formatID,
		},
	})

	go m.run(id, url, formatID, kind)

	return id, nil
}

// ConsumeResult returns the terminal outcome for id, removing it. One-shot:
// the second caller misses.
func (m *Manager) ConsumeResult(id string) (Result, bool) {
	return m.results.Consume(id)
}

// run is the download worker. It owns all writes to the job's status record
// and runs detached from any request context.
func (m *Manager) run(id, url, formatID string, kind engine.MediaKind) {
	res, err := m.eng.Download(context.Background(), engine.DownloadRequest{
		URL:      url,
		FormatID: formatID,
		Kind:     kind,
	}, func(p engine.Progress) {
		m.observe(id, p)
	})

	if err != nil {
		msg := classifyError(err.Error())
		m.statuses.Put(id, Status{State: StateError, Error: msg})
		m.results.Put(id, Result{Success: false, Error: msg})
		m.bus.Publish(context.Background(), event.Event{
			Type:    event.EventJobFailed,
			Payload: event.JobEvent{JobID: id, URL: url, Error: msg},
		})
		log.Warn().Str("job_id", id).Str("error", msg).Msg("job failed")
		return
	}

	m.statuses.Put(id, Status{State: StateCompleted, Progress: 100})
	m.results.Put(id, Result{Success: true, FileName: res.FileName})
	m.bus.Publish(context.Background(), event.Event{
		Type:    event.EventJobCompleted,
		Payload: event.JobEvent{JobID: id, URL: url, FileName: res.FileName},
	})
	log.Info().Str("job_id", id).Str("file", res.FileName).Msg("job completed")
}

// observe maps one engine progress callback onto the status record. It is a
// pure map write so the engine's download loop is never stalled here.
func (m *Manager) observe(id string, p engine.Progress) {
	if p.Finalizing {
		m.statuses.Put(id, Status{State: StateProcessing, Progress: 100})
		return
	}

	m.statuses.Put(id, Status{
		State:    StateDownloading,
		Progress: percent(p.Downloaded, p.Total),
		Speed:    p.Speed,
		ETA:      p.ETA,
	})
}

// percent computes downloaded/total as a percentage rounded to one decimal
// and clamped to [0,100]. Unknown totals report zero.
func percent(downloaded, total int64) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(downloaded) / float64(total) * 100
	pct = math.Round(pct*10) / 10
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
