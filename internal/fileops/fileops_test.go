package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/filepurge/filepurge/internal/config"
	"github.com/filepurge/filepurge/internal/model"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func deletable(path string) model.Result {
	return model.Result{
		FileRecord: model.FileRecord{
			Path:         path,
			SizeBytes:    100,
			AccessedDays: 400,
			ModifiedDays: 500,
		},
		Recommendation: model.Recommendation{
			Action:     model.ActionDelete,
			Confidence: 0.9,
		},
	}
}

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSimulateNeverTouchesFiles(t *testing.T) {
	path := writeTemp(t, "victim.tmp")
	p := NewPurger(testConfig(t), Simulate, false)

	out := p.Purge(deletable(path), "sess")
	if !out.Deleted || !out.Simulated {
		t.Errorf("expected simulated deletion, got %+v", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal("simulation must not remove the file")
	}
}

func TestTrashMovesFile(t *testing.T) {
	path := writeTemp(t, "victim.tmp")
	cfg := testConfig(t)
	p := NewPurger(cfg, Trash, false)

	out := p.Purge(deletable(path), "sess01")
	if !out.Deleted || out.TrashPath == "" {
		t.Fatalf("expected trash move, got %+v", out)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original file should be gone")
	}
	if _, err := os.Stat(out.TrashPath); err != nil {
		t.Errorf("trashed file missing: %v", err)
	}
	if filepath.Dir(out.TrashPath) != filepath.Join(cfg.TrashDir(), "sess01") {
		t.Errorf("unexpected trash location %q", out.TrashPath)
	}
}

func TestTrashCollisionSuffix(t *testing.T) {
	cfg := testConfig(t)
	p := NewPurger(cfg, Trash, false)

	a := writeTemp(t, "same.tmp")
	b := writeTemp(t, "same.tmp")

	outA := p.Purge(deletable(a), "sess")
	outB := p.Purge(deletable(b), "sess")

	if outA.TrashPath == outB.TrashPath {
		t.Errorf("expected distinct trash paths, both %q", outA.TrashPath)
	}
	if _, err := os.Stat(outB.TrashPath); err != nil {
		t.Errorf("second trashed file missing: %v", err)
	}
}

func TestPermanentDeletes(t *testing.T) {
	path := writeTemp(t, "victim.tmp")
	p := NewPurger(testConfig(t), Permanent, false)

	out := p.Purge(deletable(path), "sess")
	if !out.Deleted {
		t.Fatalf("expected deletion, got %+v", out)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be removed")
	}
}

func TestSafetyPolicy(t *testing.T) {
	p := NewPurger(testConfig(t), Permanent, false)

	sys := deletable("/x")
	sys.SystemFolder = true
	if got := p.Check(sys); got != SkipSystemFolder {
		t.Errorf("expected system folder skip, got %q", got)
	}

	recent := deletable("/x")
	recent.AccessedDays = 1
	if got := p.Check(recent); got != SkipRecentAccess {
		t.Errorf("expected recent access skip, got %q", got)
	}

	weak := deletable("/x")
	weak.Confidence = 0.5
	if got := p.Check(weak); got != SkipLowConfidence {
		t.Errorf("expected low confidence skip, got %q", got)
	}

	ok := deletable("/x")
	if got := p.Check(ok); got != "" {
		t.Errorf("expected no skip, got %q", got)
	}
}

func TestForceBypassesConfidenceOnly(t *testing.T) {
	p := NewPurger(testConfig(t), Permanent, true)

	weak := deletable("/x")
	weak.Confidence = 0.5
	if got := p.Check(weak); got != "" {
		t.Errorf("force should bypass confidence floor, got %q", got)
	}

	sys := deletable("/x")
	sys.SystemFolder = true
	if got := p.Check(sys); got != SkipSystemFolder {
		t.Error("force must never bypass the system folder guard")
	}
}

func TestSkippedFileUntouched(t *testing.T) {
	path := writeTemp(t, "fresh.txt")
	p := NewPurger(testConfig(t), Permanent, false)

	r := deletable(path)
	r.AccessedDays = 0
	out := p.Purge(r, "sess")

	if out.Deleted || out.Skipped != SkipRecentAccess {
		t.Errorf("expected recent-access skip, got %+v", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("skipped file must remain")
	}
}

func TestPurgeMissingFile(t *testing.T) {
	p := NewPurger(testConfig(t), Permanent, false)

	out := p.Purge(deletable(filepath.Join(t.TempDir(), "gone.tmp")), "sess")
	if out.Deleted || out.Error == "" {
		t.Errorf("expected error outcome, got %+v", out)
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		{Deleted: true, SizeBytes: 100},
		{Deleted: true, SizeBytes: 50},
		{Skipped: SkipSystemFolder},
		{Error: "permission denied"},
	}

	s := Summarize(Trash, outcomes)
	if s.Deleted != 2 || s.Skipped != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.FreedBytes != 150 {
		t.Errorf("expected 150 freed bytes, got %d", s.FreedBytes)
	}
	if s.Mode != "trash" {
		t.Errorf("expected mode trash, got %q", s.Mode)
	}
}
