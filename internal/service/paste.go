// Package service wires the clipboard manager, paste executor,
// transfer journal and logger into the operations the UI consumes.
package service

import (
	"fmt"
	"time"

	"github.com/quiverfm/quiver/internal/cancel"
	"github.com/quiverfm/quiver/internal/clipboard"
	"github.com/quiverfm/quiver/internal/config"
	"github.com/quiverfm/quiver/internal/core/checksum"
	"github.com/quiverfm/quiver/internal/core/paste"
	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/logger"
	"github.com/quiverfm/quiver/internal/progress"
	"github.com/quiverfm/quiver/internal/state"
)

// PasteService orchestrates paste executions off the UI thread
type PasteService struct {
	cfg     *config.Config
	manager *clipboard.Manager
	journal *state.Journal
}

// NewPasteService creates a service from configuration
// The transfer journal is opened when enabled in config
func NewPasteService(cfg *config.Config) (*PasteService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	s := &PasteService{
		cfg:     cfg,
		manager: clipboard.NewManagerWithCapacity(cfg.Clipboard.HistorySize),
	}

	if cfg.Journal.Enabled {
		journal, err := state.NewJournal(cfg.Journal.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open transfer journal: %w", err)
		}
		s.journal = journal
	}

	return s, nil
}

// Manager returns the clipboard manager owned by the service
func (s *PasteService) Manager() *clipboard.Manager {
	return s.manager
}

// Journal returns the transfer journal, nil when disabled
func (s *PasteService) Journal() *state.Journal {
	return s.journal
}

// Close releases service resources
func (s *PasteService) Close() error {
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

// Handle tracks an in-flight paste spawned by the service
// Updates must be drained by the consumer; Wait blocks until the
// worker goroutine finishes
type Handle struct {
	// Updates delivers progress events in order, closed on completion
	Updates <-chan progress.Update

	token  cancel.Token
	done   chan struct{}
	result *domain.PasteResult
	err    error
}

// Cancel requests cooperative cancellation of the paste
func (h *Handle) Cancel() {
	h.token.Cancel()
}

// Wait blocks until the transfer finishes and returns its outcome
func (h *Handle) Wait() (*domain.PasteResult, error) {
	<-h.done
	return h.result, h.err
}

// Paste starts transferring the current clipboard operation into
// destDir on a worker goroutine
func (s *PasteService) Paste(destDir string, handler domain.ConflictHandler) (*Handle, error) {
	op, ok := s.manager.Operation()
	if !ok {
		return nil, domain.ErrNoClipboard
	}
	if s.manager.IsPasteActive() {
		return nil, domain.ErrPasteInProgress
	}

	token := s.manager.StartPaste()
	sink := progress.NewSink()

	executor := paste.NewExecutor(token, sink, paste.Options{
		BufferSize: s.cfg.BufferSize(),
		Verify:     s.cfg.Transfer.VerifyChecksums,
		Algorithm:  checksum.Algorithm(s.cfg.Transfer.ChecksumAlgorithm),
	})

	handle := &Handle{
		Updates: sink.Updates(),
		token:   token,
		done:    make(chan struct{}),
	}

	log := logger.With("kind", op.Kind.String(), "destination", destDir)
	log.Info("paste started", "sources", len(op.Paths()))

	startedAt := time.Now()
	go func() {
		defer close(handle.done)
		defer sink.Close()

		result, err := executor.Execute(op.Paths(), destDir, op.IsCut(), handler)
		handle.result = result
		handle.err = err

		if err != nil {
			log.Error("paste failed", "error", err)
			s.manager.CompletePaste(false)
			return
		}

		cancelled := token.Cancelled()

		// Cut semantics: the clipboard is cleared only after the move
		// fully succeeded and the sources are gone
		wasCut := op.IsCut() && !cancelled && result.IsSuccess()
		s.manager.CompletePaste(wasCut)

		log.Info("paste finished",
			"copied", len(result.SuccessfulFiles),
			"skipped", len(result.SkippedFiles),
			"failed", len(result.FailedFiles),
			"bytes", result.TotalBytesTransferred,
			"duration", result.Duration,
			"cancelled", cancelled,
		)

		if s.journal != nil {
			record := state.RecordFromResult(op.Kind, result, cancelled, startedAt)
			if recErr := s.journal.Record(record); recErr != nil {
				log.Warn("failed to record transfer", "error", recErr)
			}
		}
	}()

	return handle, nil
}
