package progress

import "github.com/quiverfm/quiver/internal/domain"

// UpdateType indicates the type of progress update
type UpdateType int

const (
	// UpdateStarted is emitted once, after totals are computed
	UpdateStarted UpdateType = iota

	// UpdateFileStarted is emitted before each regular file copy
	UpdateFileStarted

	// UpdateBytesTransferred is emitted once per copied chunk
	UpdateBytesTransferred

	// UpdateFileCompleted is emitted when a top-level source finishes
	UpdateFileCompleted

	// UpdateFileSkipped is emitted when conflict policy skips a source
	UpdateFileSkipped

	// UpdateFileFailed is emitted when a source fails to transfer
	UpdateFileFailed

	// UpdateConflictDetected is emitted before the conflict handler runs
	UpdateConflictDetected

	// UpdateCompleted carries the final result of a finished paste
	UpdateCompleted

	// UpdateCancelled carries the partial result of a cancelled paste
	UpdateCancelled
)

// String returns the string representation of the update type
func (t UpdateType) String() string {
	switch t {
	case UpdateStarted:
		return "started"
	case UpdateFileStarted:
		return "file_started"
	case UpdateBytesTransferred:
		return "bytes_transferred"
	case UpdateFileCompleted:
		return "file_completed"
	case UpdateFileSkipped:
		return "file_skipped"
	case UpdateFileFailed:
		return "file_failed"
	case UpdateConflictDetected:
		return "conflict_detected"
	case UpdateCompleted:
		return "completed"
	case UpdateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Update is a discrete progress message consumed by the UI
// Only the fields relevant to Type are populated
type Update struct {
	Type UpdateType

	// File is the source path for file-scoped updates
	File string

	// Destination is the colliding path for UpdateConflictDetected
	Destination string

	// FileSize is the size of the file for UpdateFileStarted
	FileSize int64

	// Bytes is the chunk size for UpdateBytesTransferred
	Bytes int64

	// TotalFiles and TotalBytes accompany UpdateStarted
	TotalFiles int
	TotalBytes int64

	// Reason explains an UpdateFileSkipped
	Reason string

	// Error describes an UpdateFileFailed
	Error string

	// Result accompanies UpdateCompleted and UpdateCancelled
	Result *domain.PasteResult
}

// Emitter receives progress updates from the transfer worker
type Emitter interface {
	Emit(Update)
}

// NullEmitter is a no-op emitter
type NullEmitter struct{}

func (NullEmitter) Emit(Update) {}

// EmitterFunc adapts a function to the Emitter interface
type EmitterFunc func(Update)

func (f EmitterFunc) Emit(u Update) { f(u) }
