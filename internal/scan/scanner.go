package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/filepurge/filepurge/internal/config"
	"github.com/filepurge/filepurge/internal/model"
)

// Progress is invoked periodically during a scan with the number of files
// collected so far and a status line.
type Progress func(files int, status string)

// Stats summarizes a completed (or cancelled) scan.
type Stats struct {
	FilesScanned  int
	DirsScanned   int
	SkippedSystem int
	Errors        int
}

// Scanner walks a directory tree collecting file metadata under the
// configured depth and count limits.
type Scanner struct {
	cfg      config.Config
	analyzer *Analyzer
	stats    Stats
}

// NewScanner returns a scanner for the given configuration.
func NewScanner(cfg config.Config) *Scanner {
	return &Scanner{cfg: cfg, analyzer: NewAnalyzer(cfg)}
}

// errLimitReached stops the walk once the file cap is hit.
var errLimitReached = fmt.Errorf("file limit reached")

// Scan walks root and returns one record per regular file. System-protected
// directories are never descended into. Cancel via ctx.
func (s *Scanner) Scan(ctx context.Context, root string, progress Progress) ([]model.FileRecord, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	root = filepath.Clean(root)
	rootDepth := strings.Count(filepath.ToSlash(root), "/")
	s.stats = Stats{}
	s.analyzer = NewAnalyzer(s.cfg)

	if s.cfg.IsProtected(root) {
		log.WithField("root", root).Warn("scanning a system-protected folder")
	}

	log.WithField("root", root).Info("starting scan")

	var records []model.FileRecord
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Permission errors on directories are counted, not fatal.
			log.WithField("path", path).Debugf("walk error: %v", err)
			s.stats.Errors++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = name
		}

		if d.IsDir() {
			if path != root {
				if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "$") {
					return fs.SkipDir
				}
				// Protection is judged relative to the chosen root so that
				// scanning inside /tmp or $HOME does not skip everything.
				if s.cfg.IsProtected(rel) {
					s.stats.SkippedSystem++
					return fs.SkipDir
				}
				depth := strings.Count(filepath.ToSlash(path), "/") - rootDepth
				if depth > s.cfg.MaxDepth {
					return fs.SkipDir
				}
			}
			s.stats.DirsScanned++
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "$") {
			return nil
		}

		rec, ok := s.analyzer.Analyze(path, rel, d)
		if !ok {
			return nil
		}
		records = append(records, rec)
		s.stats.FilesScanned++

		if progress != nil && s.stats.FilesScanned%config.ProgressInterval == 0 {
			progress(s.stats.FilesScanned, "scanning: "+filepath.Dir(path))
		}
		if s.stats.FilesScanned >= s.cfg.MaxFiles {
			log.WithField("max_files", s.cfg.MaxFiles).Info("file limit reached")
			return errLimitReached
		}
		return nil
	})

	if err != nil && err != errLimitReached {
		if ctx.Err() != nil {
			log.Info("scan cancelled")
			return records, ctx.Err()
		}
		return records, fmt.Errorf("walk: %w", err)
	}

	s.stats.Errors += s.analyzer.Errors

	if progress != nil {
		progress(s.stats.FilesScanned, fmt.Sprintf("scan complete: %d files", s.stats.FilesScanned))
	}
	log.WithFields(log.Fields{
		"files":   s.stats.FilesScanned,
		"dirs":    s.stats.DirsScanned,
		"skipped": s.stats.SkippedSystem,
		"errors":  s.stats.Errors,
	}).Info("scan complete")

	return records, nil
}

// Stats returns counters for the most recent scan.
func (s *Scanner) Stats() Stats {
	return s.stats
}
