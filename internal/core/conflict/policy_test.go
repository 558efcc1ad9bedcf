package conflict

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/testutil"
)

func TestDecide_Skip(t *testing.T) {
	d := Decide(domain.ResolutionSkip, "/src/a.txt", "/dst/a.txt")

	if d.Action != ActionSkip {
		t.Errorf("expected ActionSkip, got %v", d.Action)
	}
	if d.Reason != "user chose to skip" {
		t.Errorf("unexpected reason: %q", d.Reason)
	}
}

func TestDecide_Replace(t *testing.T) {
	d := Decide(domain.ResolutionReplace, "/src/a.txt", "/dst/a.txt")

	if d.Action != ActionCopyTo {
		t.Errorf("expected ActionCopyTo, got %v", d.Action)
	}
	if d.Target != "/dst/a.txt" {
		t.Errorf("expected original destination, got %q", d.Target)
	}
	if !d.RemoveExisting {
		t.Error("replace must remove the existing destination")
	}
}

func TestDecide_KeepBoth(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	existing := testutil.CreateTestFile(t, dir, "report.txt", []byte("old"))

	d := Decide(domain.ResolutionKeepBoth, "/src/report.txt", existing)

	if d.Action != ActionCopyTo {
		t.Errorf("expected ActionCopyTo, got %v", d.Action)
	}
	if d.RemoveExisting {
		t.Error("keep-both must not remove the existing destination")
	}
	want := filepath.Join(dir, "report (1).txt")
	if d.Target != want {
		t.Errorf("expected %q, got %q", want, d.Target)
	}
}

func TestUniqueName_IncrementsCounter(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTestFile(t, dir, "report.txt", []byte("a"))
	testutil.CreateTestFile(t, dir, "report (1).txt", []byte("b"))
	testutil.CreateTestFile(t, dir, "report (2).txt", []byte("c"))

	got := UniqueName(filepath.Join(dir, "report.txt"))
	want := filepath.Join(dir, "report (3).txt")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestUniqueName_NoExtension(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTestFile(t, dir, "Makefile", []byte("a"))

	got := UniqueName(filepath.Join(dir, "Makefile"))
	want := filepath.Join(dir, "Makefile (1)")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDecide_ReplaceIfNewer_SourceNewer(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	src := testutil.CreateTestFile(t, dir, "src.txt", []byte("new"))
	dst := testutil.CreateTestFile(t, dir, "dst.txt", []byte("old"))

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(dst, old, old); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}

	d := Decide(domain.ResolutionReplaceIfNewer, src, dst)

	if d.Action != ActionCopyTo {
		t.Errorf("expected replacement when source is newer, got %v", d.Action)
	}
	if !d.RemoveExisting {
		t.Error("expected RemoveExisting for conditional replace")
	}
}

func TestDecide_ReplaceIfNewer_SourceOlder(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	src := testutil.CreateTestFile(t, dir, "src.txt", []byte("old"))
	dst := testutil.CreateTestFile(t, dir, "dst.txt", []byte("new"))

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, old, old); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}

	d := Decide(domain.ResolutionReplaceIfNewer, src, dst)

	if d.Action != ActionSkip {
		t.Errorf("expected skip when source is older, got %v", d.Action)
	}
	if d.Reason != "condition not met" {
		t.Errorf("unexpected reason: %q", d.Reason)
	}
}

func TestDecide_ReplaceIfLarger(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	big := testutil.CreateTestFile(t, dir, "big.txt", []byte("0123456789"))
	small := testutil.CreateTestFile(t, dir, "small.txt", []byte("01"))

	if d := Decide(domain.ResolutionReplaceIfLarger, big, small); d.Action != ActionCopyTo {
		t.Errorf("expected replacement when source is larger, got %v", d.Action)
	}

	if d := Decide(domain.ResolutionReplaceIfLarger, small, big); d.Action != ActionSkip {
		t.Errorf("expected skip when source is smaller, got %v", d.Action)
	}

	// Equal sizes: strictly larger is required
	other := testutil.CreateTestFile(t, dir, "other.txt", []byte("0123456789"))
	if d := Decide(domain.ResolutionReplaceIfLarger, big, other); d.Action != ActionSkip {
		t.Errorf("expected skip for equal sizes, got %v", d.Action)
	}
}

func TestDecide_MetadataFailureFailsOpen(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	dst := testutil.CreateTestFile(t, dir, "dst.txt", []byte("x"))
	missing := filepath.Join(dir, "does-not-exist")

	d := Decide(domain.ResolutionReplaceIfNewer, missing, dst)

	if d.Action != ActionCopyTo {
		t.Errorf("expected fail-open replacement on metadata error, got %v", d.Action)
	}
}
