package domain

import "time"

// ConflictResolution decides how a destination collision is handled
type ConflictResolution int

const (
	// ResolutionSkip leaves the existing destination untouched
	ResolutionSkip ConflictResolution = iota

	// ResolutionReplace removes the existing destination before copying
	ResolutionReplace

	// ResolutionKeepBoth copies under a synthesized unique name
	ResolutionKeepBoth

	// ResolutionReplaceIfNewer replaces only when the source mtime is strictly newer
	ResolutionReplaceIfNewer

	// ResolutionReplaceIfLarger replaces only when the source is strictly larger
	ResolutionReplaceIfLarger
)

// String returns the string representation of the resolution
func (r ConflictResolution) String() string {
	switch r {
	case ResolutionSkip:
		return "skip"
	case ResolutionReplace:
		return "replace"
	case ResolutionKeepBoth:
		return "keep-both"
	case ResolutionReplaceIfNewer:
		return "replace-if-newer"
	case ResolutionReplaceIfLarger:
		return "replace-if-larger"
	default:
		return "unknown"
	}
}

// IsValid checks if the resolution is a known value
func (r ConflictResolution) IsValid() bool {
	switch r {
	case ResolutionSkip, ResolutionReplace, ResolutionKeepBoth,
		ResolutionReplaceIfNewer, ResolutionReplaceIfLarger:
		return true
	}
	return false
}

// ParseConflictResolution parses a string into a ConflictResolution
func ParseConflictResolution(s string) (ConflictResolution, bool) {
	switch s {
	case "skip":
		return ResolutionSkip, true
	case "replace":
		return ResolutionReplace, true
	case "keep-both":
		return ResolutionKeepBoth, true
	case "replace-if-newer":
		return ResolutionReplaceIfNewer, true
	case "replace-if-larger":
		return ResolutionReplaceIfLarger, true
	}
	return ResolutionSkip, false
}

// ConflictHandler is invoked once per destination collision
// It receives the source path and the colliding destination path
type ConflictHandler func(source, destination string) ConflictResolution

// PasteProgress is a snapshot of an in-flight paste for UI rendering
type PasteProgress struct {
	CurrentFile         string
	CurrentFileProgress float64
	TotalFiles          int
	CompletedFiles      int
	BytesTransferred    int64
	TotalBytes          int64
	SpeedBytesPerSec    int64
	EstimatedRemaining  time.Duration
}

// Percentage returns overall completion as 0-100
// Uses the bytes ratio, falling back to the file-count ratio for
// zero-byte transfers
func (p PasteProgress) Percentage() float64 {
	if p.TotalBytes == 0 {
		if p.TotalFiles == 0 {
			return 100.0
		}
		return float64(p.CompletedFiles) / float64(p.TotalFiles) * 100.0
	}
	return float64(p.BytesTransferred) / float64(p.TotalBytes) * 100.0
}

// FileError pairs a path with the failure message recorded for it
type FileError struct {
	Path    string
	Message string
}

// PasteResult is the outcome of a paste execution
// Every fully processed top-level source lands in exactly one of
// SuccessfulFiles, SkippedFiles or FailedFiles
type PasteResult struct {
	// SuccessfulFiles are destination paths written by the paste
	SuccessfulFiles []string

	// SkippedFiles are source paths left untransferred by conflict policy
	SkippedFiles []string

	// FailedFiles records per-source I/O failures
	FailedFiles []FileError

	// CleanupFailures records post-cut source deletions that failed
	// They do not affect IsSuccess: the data itself transferred
	CleanupFailures []FileError

	TotalBytesTransferred int64
	Duration              time.Duration
}

// IsSuccess returns true when no source failed to transfer
func (r *PasteResult) IsSuccess() bool {
	return len(r.FailedFiles) == 0
}

// TotalProcessed returns the number of sources that reached an outcome
func (r *PasteResult) TotalProcessed() int {
	return len(r.SuccessfulFiles) + len(r.SkippedFiles) + len(r.FailedFiles)
}
