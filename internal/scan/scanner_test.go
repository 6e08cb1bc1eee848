package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/filepurge/filepurge/internal/config"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanCollectsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 10)
	writeFile(t, filepath.Join(dir, "sub", "b.log"), 20)
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.pdf"), 30)

	s := NewScanner(config.Default())
	records, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if s.Stats().FilesScanned != 3 {
		t.Errorf("expected 3 files scanned, got %d", s.Stats().FilesScanned)
	}

	byName := map[string]bool{}
	for _, r := range records {
		byName[r.Name] = true
		if r.SizeBytes == 0 {
			t.Errorf("expected non-zero size for %s", r.Name)
		}
	}
	for _, want := range []string{"a.txt", "b.log", "c.pdf"} {
		if !byName[want] {
			t.Errorf("missing record for %s", want)
		}
	}
}

func TestScanSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "visible.txt"), 1)
	writeFile(t, filepath.Join(dir, ".hidden"), 1)
	writeFile(t, filepath.Join(dir, ".git", "config"), 1)
	writeFile(t, filepath.Join(dir, "$recycle", "x.tmp"), 1)

	s := NewScanner(config.Default())
	records, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 1 || records[0].Name != "visible.txt" {
		t.Fatalf("expected only visible.txt, got %v", records)
	}
}

func TestScanSkipsProtectedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.txt"), 1)
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "index.js"), 1)

	s := NewScanner(config.Default())
	records, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if s.Stats().SkippedSystem != 1 {
		t.Errorf("expected 1 skipped system folder, got %d", s.Stats().SkippedSystem)
	}
}

func TestScanRespectsFileLimit(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		writeFile(t, filepath.Join(dir, n+".txt"), 1)
	}

	cfg := config.Default()
	cfg.MaxFiles = 2
	s := NewScanner(cfg)

	records, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(records))
	}
}

func TestScanRespectsDepthLimit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.txt"), 1)
	writeFile(t, filepath.Join(dir, "l1", "l2", "l3", "deep.txt"), 1)

	cfg := config.Default()
	cfg.MaxDepth = 2
	s := NewScanner(cfg)

	records, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 1 || records[0].Name != "top.txt" {
		t.Fatalf("expected only top.txt, got %d records", len(records))
	}
}

func TestScanNonDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, 1)

	s := NewScanner(config.Default())
	if _, err := s.Scan(context.Background(), path, nil); err == nil {
		t.Error("expected error for non-directory root")
	}
	if _, err := s.Scan(context.Background(), filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestScanCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(config.Default())
	if _, err := s.Scan(ctx, dir, nil); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzerMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.PDF")
	writeFile(t, path, 2048)

	s := NewScanner(config.Default())
	records, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Extension != "pdf" {
		t.Errorf("expected extension pdf, got %q", r.Extension)
	}
	if r.Category != "documents" {
		t.Errorf("expected category documents, got %q", r.Category)
	}
	if r.SizeBytes != 2048 {
		t.Errorf("expected size 2048, got %d", r.SizeBytes)
	}
	if r.DisposableExt {
		t.Error("pdf should not be disposable")
	}
	if !r.Recent {
		t.Error("freshly written file should be recent")
	}
	if r.Depth <= 0 {
		t.Errorf("expected positive depth, got %d", r.Depth)
	}
}

func TestScanProgressCallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 1)

	var calls int
	s := NewScanner(config.Default())
	_, err := s.Scan(context.Background(), dir, func(files int, status string) {
		calls++
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	// Final completion callback always fires.
	if calls == 0 {
		t.Error("expected at least one progress callback")
	}
}
