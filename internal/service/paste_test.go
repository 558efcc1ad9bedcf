package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quiverfm/quiver/internal/config"
	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/progress"
	"github.com/quiverfm/quiver/internal/testutil"
)

func replaceAll(source, destination string) domain.ConflictResolution {
	return domain.ResolutionReplace
}

func newTestService(t *testing.T) *PasteService {
	t.Helper()

	svc, err := NewPasteService(config.Default())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestPaste_EmptyClipboard(t *testing.T) {
	svc := newTestService(t)

	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	if _, err := svc.Paste(dir, replaceAll); !errors.Is(err, domain.ErrNoClipboard) {
		t.Errorf("expected ErrNoClipboard, got %v", err)
	}
}

func TestPaste_CopyEndToEnd(t *testing.T) {
	svc := newTestService(t)

	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	src := testutil.CreateTestFile(t, dir, "a.txt", []byte("payload"))
	dst := testutil.CreateTestDir(t, dir, "dest")

	svc.Manager().Copy([]string{src})

	handle, err := svc.Paste(dst, replaceAll)
	if err != nil {
		t.Fatalf("paste failed to start: %v", err)
	}

	var sawStarted, sawCompleted bool
	for u := range handle.Updates {
		switch u.Type {
		case progress.UpdateStarted:
			sawStarted = true
		case progress.UpdateCompleted:
			sawCompleted = true
		}
	}

	result, err := handle.Wait()
	if err != nil {
		t.Fatalf("paste failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, failures: %v", result.FailedFiles)
	}
	if !sawStarted || !sawCompleted {
		t.Error("expected Started and Completed events on the update channel")
	}

	if string(testutil.ReadFile(t, filepath.Join(dst, "a.txt"))) != "payload" {
		t.Error("destination contents wrong")
	}

	// Copy leaves the clipboard intact for repeated pastes
	if !svc.Manager().HasContent() {
		t.Error("clipboard must keep a copy operation after paste")
	}
	if svc.Manager().IsPasteActive() {
		t.Error("no paste should be active after completion")
	}
}

func TestPaste_CutClearsClipboard(t *testing.T) {
	svc := newTestService(t)

	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	src := testutil.CreateTestFile(t, dir, "a.txt", []byte("move"))
	dst := testutil.CreateTestDir(t, dir, "dest")

	svc.Manager().Cut([]string{src})

	handle, err := svc.Paste(dst, replaceAll)
	if err != nil {
		t.Fatalf("paste failed to start: %v", err)
	}
	for range handle.Updates {
	}

	result, err := handle.Wait()
	if err != nil {
		t.Fatalf("paste failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, failures: %v", result.FailedFiles)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("cut source must be removed")
	}
	if svc.Manager().HasContent() {
		t.Error("clipboard must be cleared after a completed cut-paste")
	}
}

func TestPaste_CancelledCutKeepsClipboard(t *testing.T) {
	svc := newTestService(t)

	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	first := testutil.CreateTestFile(t, dir, "a.txt", []byte("one"))
	second := testutil.CreateTestFile(t, dir, "b.txt", []byte("two"))
	dst := testutil.CreateTestDir(t, dir, "dest")

	// A pre-existing collision makes the conflict handler run on the
	// worker, giving the test a synchronous point to cancel at
	testutil.CreateTestFile(t, dst, "a.txt", []byte("existing"))

	svc.Manager().Cut([]string{first, second})

	handler := func(source, destination string) domain.ConflictResolution {
		svc.Manager().CancelPaste()
		return domain.ResolutionSkip
	}
	handle, err := svc.Paste(dst, handler)
	if err != nil {
		t.Fatalf("paste failed to start: %v", err)
	}

	var sawCancelled bool
	for u := range handle.Updates {
		if u.Type == progress.UpdateCancelled {
			sawCancelled = true
		}
	}

	if _, err := handle.Wait(); err != nil {
		t.Fatalf("cancellation must not be an error: %v", err)
	}
	if !sawCancelled {
		t.Error("expected a Cancelled event")
	}

	if _, err := os.Stat(first); err != nil {
		t.Error("cancelled cut must keep its first source")
	}
	if _, err := os.Stat(second); err != nil {
		t.Error("cancelled cut must not reach the second source")
	}
	if !svc.Manager().HasContent() {
		t.Error("cancelled cut must keep the clipboard operation")
	}
}

func TestPaste_RecordsJournal(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	cfg := config.Default()
	cfg.Journal.Enabled = true
	cfg.Journal.Dir = filepath.Join(dir, "journal")

	svc, err := NewPasteService(cfg)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	defer svc.Close()

	src := testutil.CreateTestFile(t, dir, "a.txt", []byte("x"))
	dst := testutil.CreateTestDir(t, dir, "dest")

	svc.Manager().Copy([]string{src})
	handle, err := svc.Paste(dst, replaceAll)
	if err != nil {
		t.Fatalf("paste failed to start: %v", err)
	}
	for range handle.Updates {
	}
	if _, err := handle.Wait(); err != nil {
		t.Fatalf("paste failed: %v", err)
	}

	// The journal write happens on the worker after the result is set
	testutil.AssertEventually(t, 2*time.Second, func() bool {
		records, err := svc.Journal().History(1)
		return err == nil && len(records) == 1
	}, "journal record not written")

	records, err := svc.Journal().History(1)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if records[0].Kind != "copy" || records[0].FilesCopied != 1 {
		t.Errorf("unexpected journal record: %+v", records[0])
	}
}
