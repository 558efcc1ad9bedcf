package progress

import "github.com/quiverfm/quiver/internal/domain"

// Aggregator folds the update stream back into a PasteProgress
// snapshot for UI rendering. It is consumer-side state: feed it every
// update drained from the sink and ask for Snapshot between renders.
type Aggregator struct {
	snapshot domain.PasteProgress
	fileSize int64
	fileDone int64
	tracker  *SpeedTracker
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{tracker: NewSpeedTracker()}
}

// Apply folds one update into the snapshot
// CompletedFiles counts top-level sources (one per FileCompleted,
// FileSkipped or FileFailed event) while TotalFiles is the recursive
// regular-file count, so the file-count fallback in Percentage
// understates progress for directory sources
func (a *Aggregator) Apply(u Update) {
	switch u.Type {
	case UpdateStarted:
		a.snapshot.TotalFiles = u.TotalFiles
		a.snapshot.TotalBytes = u.TotalBytes
	case UpdateFileStarted:
		a.snapshot.CurrentFile = u.File
		a.snapshot.CurrentFileProgress = 0
		a.fileSize = u.FileSize
		a.fileDone = 0
	case UpdateBytesTransferred:
		a.snapshot.BytesTransferred += u.Bytes
		a.fileDone += u.Bytes
		if a.fileSize > 0 {
			a.snapshot.CurrentFileProgress = float64(a.fileDone) / float64(a.fileSize)
		}
		a.tracker.Update(u.Bytes)
	case UpdateFileCompleted, UpdateFileSkipped, UpdateFileFailed:
		a.snapshot.CompletedFiles++
		a.snapshot.CurrentFileProgress = 0
	}

	a.snapshot.SpeedBytesPerSec = a.tracker.BytesPerSec()
	remaining := a.snapshot.TotalBytes - a.snapshot.BytesTransferred
	a.snapshot.EstimatedRemaining = a.tracker.EstimatedRemaining(remaining)
}

// Snapshot returns the current progress view
func (a *Aggregator) Snapshot() domain.PasteProgress {
	return a.snapshot
}
