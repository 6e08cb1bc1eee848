// Package fileops applies purge decisions to the filesystem under the
// safety policy.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/filepurge/filepurge/internal/config"
	"github.com/filepurge/filepurge/internal/model"
)

// Mode selects how a purge acts on files.
type Mode int

const (
	// Simulate reports what would happen without touching anything.
	Simulate Mode = iota
	// Trash moves files into the local trash directory.
	Trash
	// Permanent unlinks files.
	Permanent
)

func (m Mode) String() string {
	switch m {
	case Simulate:
		return "simulate"
	case Trash:
		return "trash"
	case Permanent:
		return "permanent"
	}
	return "unknown"
}

// SkipReason explains why the safety policy refused a file.
type SkipReason string

const (
	SkipSystemFolder  SkipReason = "system folder"
	SkipRecentAccess  SkipReason = "recently accessed"
	SkipLowConfidence SkipReason = "low confidence"
)

// Outcome is the per-file result of a purge.
type Outcome struct {
	Path      string     `json:"path"`
	SizeBytes int64      `json:"size_bytes"`
	Deleted   bool       `json:"deleted"`
	Simulated bool       `json:"simulated,omitempty"`
	TrashPath string     `json:"trash_path,omitempty"`
	Skipped   SkipReason `json:"skipped,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Purger applies the safety policy and performs deletions.
type Purger struct {
	cfg   config.Config
	mode  Mode
	force bool
}

// NewPurger builds a purger. force bypasses the confidence floor, never the
// system-folder or recent-access guards.
func NewPurger(cfg config.Config, mode Mode, force bool) *Purger {
	return &Purger{cfg: cfg, mode: mode, force: force}
}

// Check applies the safety policy without touching the file. An empty
// SkipReason means the file may be acted on.
func (p *Purger) Check(r model.Result) SkipReason {
	if r.SystemFolder {
		return SkipSystemFolder
	}
	if r.AccessedDays < p.cfg.ExcludeRecentDays {
		return SkipRecentAccess
	}
	if !p.force && r.Confidence < p.cfg.MinConfidence {
		return SkipLowConfidence
	}
	return ""
}

// Purge acts on one result. In Simulate mode nothing on disk changes.
func (p *Purger) Purge(r model.Result, sessionID string) Outcome {
	out := Outcome{Path: r.Path, SizeBytes: r.SizeBytes}

	if reason := p.Check(r); reason != "" {
		out.Skipped = reason
		log.WithFields(log.Fields{"path": r.Path, "reason": reason}).Debug("skipped by safety policy")
		return out
	}

	switch p.mode {
	case Simulate:
		out.Deleted = true
		out.Simulated = true
		log.WithField("path", r.Path).Info("would delete (simulation)")

	case Trash:
		dest, err := p.moveToTrash(r.Path, sessionID)
		if err != nil {
			out.Error = err.Error()
			log.WithField("path", r.Path).Errorf("trash failed: %v", err)
			return out
		}
		out.Deleted = true
		out.TrashPath = dest
		log.WithFields(log.Fields{"path": r.Path, "trash": dest}).Info("moved to trash")

	case Permanent:
		if err := os.Remove(r.Path); err != nil {
			out.Error = err.Error()
			log.WithField("path", r.Path).Errorf("delete failed: %v", err)
			return out
		}
		out.Deleted = true
		log.WithField("path", r.Path).Info("deleted")
	}

	return out
}

// moveToTrash relocates a file into <trash>/<session>/, suffixing the name
// on collision.
func (p *Purger) moveToTrash(path, sessionID string) (string, error) {
	dir := filepath.Join(p.cfg.TrashDir(), sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create trash dir: %w", err)
	}

	base := filepath.Base(path)
	dest := filepath.Join(dir, base)
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s.%d", base, i))
	}

	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move to trash: %w", err)
	}
	return dest, nil
}

// Summary aggregates purge outcomes.
type Summary struct {
	Mode       string    `json:"mode"`
	Deleted    int       `json:"deleted"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	FreedBytes int64     `json:"freed_bytes"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Summarize folds outcomes into a summary.
func Summarize(mode Mode, outcomes []Outcome) Summary {
	s := Summary{Mode: mode.String(), Outcomes: outcomes}
	for _, o := range outcomes {
		switch {
		case o.Error != "":
			s.Failed++
		case o.Skipped != "":
			s.Skipped++
		case o.Deleted:
			s.Deleted++
			s.FreedBytes += o.SizeBytes
		}
	}
	return s
}
