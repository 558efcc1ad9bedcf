// Package paste performs the actual file transfer behind a clipboard
// paste: recursive traversal, streaming copy with progress events,
// conflict policy application and post-cut source cleanup.
package paste

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quiverfm/quiver/internal/cancel"
	"github.com/quiverfm/quiver/internal/core/checksum"
	"github.com/quiverfm/quiver/internal/core/conflict"
	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/logger"
	"github.com/quiverfm/quiver/internal/progress"
)

// DefaultBufferSize is the streaming copy chunk size
const DefaultBufferSize = 64 * 1024

// Options configures an Executor
type Options struct {
	// BufferSize is the copy chunk size; DefaultBufferSize when zero
	BufferSize int

	// Verify enables post-copy checksum comparison per regular file
	Verify bool

	// Algorithm used for verification; SHA256 when empty
	Algorithm checksum.Algorithm
}

// Executor performs a single paste operation
// It is blocking and intended to run on a worker goroutine; the token
// and emitter are the only values shared with the UI side
type Executor struct {
	token    cancel.Token
	emitter  progress.Emitter
	opts     Options
	verifier *checksum.Calculator
}

// NewExecutor creates an executor bound to a token and event emitter
func NewExecutor(token cancel.Token, emitter progress.Emitter, opts Options) *Executor {
	if emitter == nil {
		emitter = progress.NullEmitter{}
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	if opts.Algorithm == "" {
		opts.Algorithm = checksum.SHA256
	}
	return &Executor{
		token:    token,
		emitter:  emitter,
		opts:     opts,
		verifier: checksum.NewDefaultCalculator(),
	}
}

// Execute transfers sources into destDir
// Per-source I/O failures are recorded in the result and do not abort
// the run. Cancellation is never an error: both the between-sources
// check and the mid-copy check return the partial result after
// emitting a Cancelled event.
func (e *Executor) Execute(sources []string, destDir string, isCut bool, handler domain.ConflictHandler) (*domain.PasteResult, error) {
	info, err := os.Stat(destDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("destination %s: %w", destDir, domain.ErrNotFound)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("destination %s: %w", destDir, domain.ErrPermissionDenied)
		}
		return nil, fmt.Errorf("destination %s: %w", destDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("destination %s: %w", destDir, domain.ErrNotDirectory)
	}

	startTime := time.Now()
	result := &domain.PasteResult{}

	totalFiles, totalBytes := calculateTotals(sources)
	e.emitter.Emit(progress.Update{
		Type:       progress.UpdateStarted,
		TotalFiles: totalFiles,
		TotalBytes: totalBytes,
	})

	tracker := progress.NewSpeedTracker()

	for _, source := range sources {
		if e.token.Cancelled() {
			return e.cancelled(result, startTime), nil
		}

		destination := filepath.Join(destDir, filepath.Base(source))

		target := destination
		removeExisting := false
		if _, err := os.Lstat(destination); err == nil {
			e.emitter.Emit(progress.Update{
				Type:        progress.UpdateConflictDetected,
				File:        source,
				Destination: destination,
			})

			decision := conflict.Decide(handler(source, destination), source, destination)
			if decision.Action == conflict.ActionSkip {
				result.SkippedFiles = append(result.SkippedFiles, source)
				e.emitter.Emit(progress.Update{
					Type:   progress.UpdateFileSkipped,
					File:   source,
					Reason: decision.Reason,
				})
				continue
			}
			target = decision.Target
			removeExisting = decision.RemoveExisting
		}

		if removeExisting {
			if err := removeAny(target); err != nil {
				result.FailedFiles = append(result.FailedFiles, domain.FileError{
					Path:    source,
					Message: fmt.Sprintf("failed to remove existing destination: %v", err),
				})
				e.emitter.Emit(progress.Update{
					Type:  progress.UpdateFileFailed,
					File:  source,
					Error: fmt.Sprintf("failed to remove existing destination: %v", err),
				})
				continue
			}
		}

		copied, err := e.copyAny(source, target, tracker)
		if err != nil {
			if errors.Is(err, errCancelled) {
				return e.cancelled(result, startTime), nil
			}
			result.FailedFiles = append(result.FailedFiles, domain.FileError{
				Path:    source,
				Message: err.Error(),
			})
			e.emitter.Emit(progress.Update{
				Type:  progress.UpdateFileFailed,
				File:  source,
				Error: err.Error(),
			})
			continue
		}

		result.SuccessfulFiles = append(result.SuccessfulFiles, target)
		result.TotalBytesTransferred += copied
		e.emitter.Emit(progress.Update{
			Type: progress.UpdateFileCompleted,
			File: source,
		})
	}

	if isCut && result.IsSuccess() {
		e.removeSources(sources, result)
	}

	result.Duration = time.Since(startTime)
	e.emitter.Emit(progress.Update{
		Type:   progress.UpdateCompleted,
		Result: result,
	})

	return result, nil
}

// cancelled finalizes a partial result after a cancellation check fired
func (e *Executor) cancelled(result *domain.PasteResult, startTime time.Time) *domain.PasteResult {
	result.Duration = time.Since(startTime)
	e.emitter.Emit(progress.Update{
		Type:   progress.UpdateCancelled,
		Result: result,
	})
	return result
}

// removeSources deletes every non-skipped source after a clean cut
// Deletion failures do not flip the result to failed: the data already
// transferred. They are logged and recorded as cleanup failures.
func (e *Executor) removeSources(sources []string, result *domain.PasteResult) {
	skipped := make(map[string]bool, len(result.SkippedFiles))
	for _, s := range result.SkippedFiles {
		skipped[s] = true
	}

	for _, source := range sources {
		if skipped[source] {
			continue
		}
		if err := removeAny(source); err != nil {
			logger.Get().Warn("failed to remove cut source", "path", source, "error", err)
			result.CleanupFailures = append(result.CleanupFailures, domain.FileError{
				Path:    source,
				Message: err.Error(),
			})
		}
	}
}

// removeAny removes a file, or a directory tree recursively
func removeAny(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
