package state

import (
	"testing"
	"time"

	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/testutil"
)

func openTestJournal(t *testing.T) (*Journal, func()) {
	t.Helper()

	dir, cleanup := testutil.TempDir(t)
	journal, err := NewJournal(dir)
	if err != nil {
		cleanup()
		t.Fatalf("failed to open journal: %v", err)
	}
	return journal, func() {
		journal.Close()
		cleanup()
	}
}

func TestJournal_RecordAndHistory(t *testing.T) {
	journal, cleanup := openTestJournal(t)
	defer cleanup()

	first := TransferRecord{
		Kind:        "copy",
		Status:      StatusSuccess,
		FilesCopied: 3,
		Bytes:       4096,
		Duration:    1500 * time.Millisecond,
		StartedAt:   time.Now().Add(-time.Minute),
	}
	second := TransferRecord{
		Kind:         "cut",
		Status:       StatusPartial,
		FilesCopied:  1,
		FilesFailed:  1,
		FilesSkipped: 1,
		Bytes:        100,
		Duration:     200 * time.Millisecond,
		Error:        "read error",
		StartedAt:    time.Now(),
	}

	if err := journal.Record(first); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := journal.Record(second); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	records, err := journal.History(10)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Newest first
	if records[0].Kind != "cut" {
		t.Errorf("expected newest record first, got %s", records[0].Kind)
	}
	if records[0].Status != StatusPartial || records[0].Error != "read error" {
		t.Errorf("unexpected record: %+v", records[0])
	}
	if records[1].FilesCopied != 3 || records[1].Bytes != 4096 {
		t.Errorf("unexpected record: %+v", records[1])
	}
	if records[1].Duration != 1500*time.Millisecond {
		t.Errorf("expected duration round trip, got %v", records[1].Duration)
	}
}

func TestJournal_HistoryLimit(t *testing.T) {
	journal, cleanup := openTestJournal(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		record := TransferRecord{
			Kind:      "copy",
			Status:    StatusSuccess,
			StartedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := journal.Record(record); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	records, err := journal.History(3)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}

	if _, err := journal.History(0); err == nil {
		t.Error("expected error for non-positive limit")
	}
}

func TestJournal_LastSuccess(t *testing.T) {
	journal, cleanup := openTestJournal(t)
	defer cleanup()

	last, err := journal.LastSuccess()
	if err != nil {
		t.Fatalf("last success failed: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil with empty journal, got %+v", last)
	}

	journal.Record(TransferRecord{Kind: "copy", Status: StatusFailed, StartedAt: time.Now().Add(-2 * time.Second)})
	journal.Record(TransferRecord{Kind: "cut", Status: StatusSuccess, FilesCopied: 2, StartedAt: time.Now().Add(-1 * time.Second)})
	journal.Record(TransferRecord{Kind: "copy", Status: StatusCancelled, StartedAt: time.Now()})

	last, err = journal.LastSuccess()
	if err != nil {
		t.Fatalf("last success failed: %v", err)
	}
	if last == nil {
		t.Fatal("expected a success record")
	}
	if last.Kind != "cut" || last.FilesCopied != 2 {
		t.Errorf("unexpected last success: %+v", last)
	}
}

func TestJournal_RejectsInvalidStatus(t *testing.T) {
	journal, cleanup := openTestJournal(t)
	defer cleanup()

	err := journal.Record(TransferRecord{Kind: "copy", Status: "running", StartedAt: time.Now()})
	if err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestRecordFromResult(t *testing.T) {
	result := &domain.PasteResult{
		SuccessfulFiles:       []string{"/d/a", "/d/b"},
		SkippedFiles:          []string{"/s/c"},
		TotalBytesTransferred: 2048,
		Duration:              time.Second,
	}

	record := RecordFromResult(domain.OpCopy, result, false, time.Now())
	if record.Status != StatusSuccess {
		t.Errorf("expected success status, got %s", record.Status)
	}
	if record.Kind != "copy" || record.FilesCopied != 2 || record.FilesSkipped != 1 {
		t.Errorf("unexpected record: %+v", record)
	}

	result.FailedFiles = []domain.FileError{{Path: "/s/d", Message: "boom"}}
	record = RecordFromResult(domain.OpCut, result, false, time.Now())
	if record.Status != StatusPartial {
		t.Errorf("expected partial status, got %s", record.Status)
	}
	if record.Error != "boom" {
		t.Errorf("expected first failure message, got %q", record.Error)
	}

	record = RecordFromResult(domain.OpCut, result, true, time.Now())
	if record.Status != StatusCancelled {
		t.Errorf("expected cancelled status, got %s", record.Status)
	}

	onlyFailures := &domain.PasteResult{
		FailedFiles: []domain.FileError{{Path: "/x", Message: "nope"}},
	}
	record = RecordFromResult(domain.OpCopy, onlyFailures, false, time.Now())
	if record.Status != StatusFailed {
		t.Errorf("expected failed status, got %s", record.Status)
	}
}
