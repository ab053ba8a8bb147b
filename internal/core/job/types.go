package job

// State is the lifecycle phase of a download job.
type State string

const (
	StateStarting    State = "starting"
	StateDownloading State = "downloading"
	StateProcessing  State = "processing"
	StateCompleted   State = "completed"
	StateError       State = "error"

	// StateUnknown is never stored; the progress stream emits it once when
	// asked about a job id that has no status record.
	StateUnknown State = "unknown"
)

// Terminal reports whether no further transitions can occur.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateError
}

// Status is the mutable per-job record. The worker is its only writer; once
// the state is terminal the record is frozen until the watcher deletes it.
type Status struct {
	State    State
	Progress float64 // percent, 0-100, one decimal
	Speed    int64   // bytes per second, only meaningful while downloading
	ETA      int64   // seconds remaining, only meaningful while downloading
	Error    string  // set iff State == StateError
}

// Result is the immutable terminal outcome of a job, readable exactly once.
type Result struct {
	Success  bool
	FileName string // base name under the download directory, set on success
	Error    string // set on failure
}

// Snapshot is one progress event as serialized to stream clients.
type Snapshot struct {
	State    State   `json:"status"`
	Progress float64 `json:"progress"`
	Speed    int64   `json:"speed,omitempty"`
	ETA      int64   `json:"eta,omitempty"`
	Error    string  `json:"error,omitempty"`
}

func snapshotOf(s Status) Snapshot {
	return Snapshot{
		State:    s.State,
		Progress: s.Progress,
		Speed:    s.Speed,
		ETA:      s.ETA,
		Error:    s.Error,
	}
}
