package upload

import "sync"

// Status is the lifecycle state of one upload attempt.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Progress is the per-file progress record. Progress is 0–100 and
// non-decreasing within one attempt; a new attempt for the same file id
// resets it.
type Progress struct {
	FileID   string
	Progress int
	Status   Status
	Error    string
}

// tracker is the single source of truth for per-file progress. It is
// embedded in a Service instance rather than shared process-wide, so
// separate sessions cannot leak into each other. Entries accumulate for the
// lifetime of the owning service; callers must treat old entries as stale
// once a new attempt with the same id begins.
type tracker struct {
	mu      sync.RWMutex
	entries map[string]*Progress
}

func newTracker() *tracker {
	return &tracker{entries: make(map[string]*Progress)}
}

// advance merges a progress/status update into the record for fileID,
// creating it (defaulted to 0/pending) if untracked.
func (t *tracker) advance(fileID string, pct int, status Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entry(fileID)
	e.Progress = pct
	e.Status = status
}

// fail records a terminal error for fileID.
func (t *tracker) fail(fileID, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entry(fileID)
	e.Progress = 0
	e.Status = StatusError
	e.Error = msg
}

// get returns a snapshot of the record for fileID, or nil if untracked.
// Callers receive a copy; the tracked record is owned by the service.
func (t *tracker) get(fileID string) *Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[fileID]
	if !ok {
		return nil
	}
	snapshot := *e
	return &snapshot
}

// entry returns the record for fileID, creating a defaulted one if needed.
// Caller must hold the write lock.
func (t *tracker) entry(fileID string) *Progress {
	e, ok := t.entries[fileID]
	if !ok {
		e = &Progress{FileID: fileID, Status: StatusPending}
		t.entries[fileID] = e
	}
	return e
}
