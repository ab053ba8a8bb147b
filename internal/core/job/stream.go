package job

import (
	"context"
	"time"
)

const (
	// defaultPollInterval is how often the watcher samples the status record.
	defaultPollInterval = 500 * time.Millisecond

	// defaultGraceDelay keeps the status record readable after the first
	// terminal snapshot so a late result fetch still observes it. Fixed,
	// not configurable.
	defaultGraceDelay = 5 * time.Second
)

// Watch returns a channel of progress snapshots for id, emitting one every
// poll interval until the job reaches a terminal state. For unknown ids a
// single unknown snapshot is emitted. After the first terminal snapshot the
// watcher holds the stream for the grace delay, deletes the status record
// and closes the channel. Cancelling ctx stops the watcher; if a terminal
// snapshot was already delivered the record is deleted immediately.
//
// Watchers never write status; any number may observe the same job and each
// applies the grace-period deletion independently (Delete is idempotent).
func (m *Manager) Watch(ctx context.Context, id string) <-chan Snapshot {
	out := make(chan Snapshot)

	go func() {
		defer close(out)

		ticker := time.NewTicker(m.pollInterval)
		defer ticker.Stop()

		for {
			st, ok := m.statuses.Get(id)
			if !ok {
				select {
				case out <- Snapshot{State: StateUnknown}:
				case <-ctx.Done():
				}
				return
			}

			select {
			case out <- snapshotOf(st):
			case <-ctx.Done():
				return
			}

			if st.State.Terminal() {
				select {
				case <-time.After(m.graceDelay):
				case <-ctx.Done():
				}
				m.statuses.Delete(id)
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
