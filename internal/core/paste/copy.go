package paste

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/progress"
)

// errCancelled aborts the copy stack without being surfaced to callers;
// Execute converts it into a graceful partial result
var errCancelled = errors.New("paste cancelled")

// copyAny copies a file or directory tree to dst
func (e *Executor) copyAny(src, dst string, tracker *progress.SpeedTracker) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		return e.copyDir(src, dst, tracker)
	}
	return e.copyFile(src, dst, tracker)
}

// copyFile streams src to dst in fixed-size chunks, checking the
// cancellation token per chunk. A cancelled copy removes the partially
// written destination and returns errCancelled.
func (e *Executor) copyFile(src, dst string, tracker *progress.SpeedTracker) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("failed to stat source: %w", err)
	}

	e.emitter.Emit(progress.Update{
		Type:     progress.UpdateFileStarted,
		File:     src,
		FileSize: info.Size(),
	})

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	buffer := make([]byte, e.opts.BufferSize)
	var copied int64

	for {
		if e.token.Cancelled() {
			dstFile.Close()
			os.Remove(dst)
			return copied, errCancelled
		}

		n, readErr := srcFile.Read(buffer)
		if n > 0 {
			if _, writeErr := dstFile.Write(buffer[:n]); writeErr != nil {
				dstFile.Close()
				os.Remove(dst)
				return copied, fmt.Errorf("write error: %w", writeErr)
			}

			copied += int64(n)
			tracker.Update(int64(n))
			e.emitter.Emit(progress.Update{
				Type:  progress.UpdateBytesTransferred,
				Bytes: int64(n),
			})
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			dstFile.Close()
			os.Remove(dst)
			return copied, fmt.Errorf("read error: %w", readErr)
		}
	}

	if err := dstFile.Close(); err != nil {
		os.Remove(dst)
		return copied, fmt.Errorf("close error: %w", err)
	}

	if e.opts.Verify {
		ok, err := e.verifier.VerifyFiles(context.Background(), src, dst, e.opts.Algorithm)
		if err != nil {
			return copied, fmt.Errorf("verification failed: %w", err)
		}
		if !ok {
			return copied, fmt.Errorf("%s: %w", dst, domain.ErrChecksumMismatch)
		}
	}

	return copied, nil
}

// copyDir copies a directory tree depth-first
// The per-chunk cancellation contract of copyFile holds inside trees
func (e *Executor) copyDir(src, dst string, tracker *progress.SpeedTracker) (int64, error) {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory: %w", err)
	}

	var total int64
	for _, entry := range entries {
		if e.token.Cancelled() {
			return total, errCancelled
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		var copied int64
		if entry.IsDir() {
			copied, err = e.copyDir(srcPath, dstPath, tracker)
		} else {
			copied, err = e.copyFile(srcPath, dstPath, tracker)
		}
		total += copied
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
