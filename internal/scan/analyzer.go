// Package scan walks directory trees and extracts file metadata.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/filepurge/filepurge/internal/config"
	"github.com/filepurge/filepurge/internal/model"
)

const day = 24 * time.Hour

// Analyzer extracts metadata records from files. It never reads file
// contents.
type Analyzer struct {
	cfg config.Config
	now time.Time

	Analyzed int
	Errors   int
}

// NewAnalyzer returns an analyzer using cfg limits. The clock is fixed at
// construction so all age calculations within a scan are consistent.
func NewAnalyzer(cfg config.Config) *Analyzer {
	return &Analyzer{cfg: cfg, now: time.Now()}
}

// Analyze builds a FileRecord from a directory entry. rel is the path
// relative to the scan root; protection is judged inside the chosen root,
// not against the absolute path, so scanning inside /tmp or a home folder
// does not flag everything. Returns ok=false for files that should be
// skipped (stat errors, oversized files).
func (a *Analyzer) Analyze(path, rel string, entry fs.DirEntry) (model.FileRecord, bool) {
	info, err := entry.Info()
	if err != nil {
		log.WithField("path", path).Debugf("stat failed: %v", err)
		a.Errors++
		return model.FileRecord{}, false
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB > a.cfg.MaxFileSizeMB {
		log.WithField("path", path).Warnf("skipping oversized file (%.1f MB)", sizeMB)
		return model.FileRecord{}, false
	}

	accessed, created := statTimes(info)
	modified := info.ModTime()

	name := filepath.Base(path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

	rec := model.FileRecord{
		Path:      path,
		Name:      name,
		Directory: filepath.Dir(path),
		Extension: ext,
		Category:  config.Category(ext),

		SizeBytes: info.Size(),
		SizeMB:    sizeMB,

		CreatedAt:  created,
		ModifiedAt: modified,
		AccessedAt: accessed,

		CreatedDays:  a.daysSince(created),
		ModifiedDays: a.daysSince(modified),
		AccessedDays: a.daysSince(accessed),

		Depth:         len(strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")),
		Hidden:        strings.HasPrefix(name, "."),
		SystemFolder:  a.cfg.IsProtected(rel),
		DisposableExt: config.IsDisposable(ext),
	}

	rec.DormantDays = rec.AccessedDays - rec.ModifiedDays
	rec.AccessModifyRatio = rec.AccessedDays / maxf(rec.ModifiedDays, 0.1)
	rec.Recent = rec.AccessedDays < 7
	rec.Old = rec.ModifiedDays > 365
	rec.Large = rec.SizeMB > 100

	a.Analyzed++
	return rec, true
}

func (a *Analyzer) daysSince(t time.Time) float64 {
	d := a.now.Sub(t)
	if d < 0 {
		return 0
	}
	return float64(d) / float64(day)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
