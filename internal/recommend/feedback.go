// Package recommend combines classifier output with learned user
// preferences to produce final recommendations.
package recommend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/filepurge/filepurge/internal/model"
)

const (
	historyLimit     = 100
	minSimilarCount  = 3
	extAdjustFactor  = 0.3
	catAdjustFactor  = 0.15
	neutralScore     = 0.5
	influenceMinimum = 0.05
)

// Choice is one recorded keep/delete decision.
type Choice struct {
	Extension     string    `json:"extension"`
	Category      string    `json:"category"`
	SizeMB        float64   `json:"size_mb"`
	AccessedDays  float64   `json:"accessed_days_ago"`
	DisposableExt bool      `json:"is_disposable_ext"`
	Kept          bool      `json:"user_kept"`
	Timestamp     time.Time `json:"timestamp"`
}

type tally struct {
	Kept    int
	Deleted int
}

// Feedback is the JSON-file-backed preference store. Not safe for
// concurrent use; the CLI is single-threaded per invocation.
type Feedback struct {
	path    string
	choices []Choice

	extStats map[string]tally
	catStats map[string]tally
}

// LoadFeedback reads the feedback file at path. A missing file yields an
// empty store.
func LoadFeedback(path string) (*Feedback, error) {
	f := &Feedback{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		f.rebuild()
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feedback: %w", err)
	}
	if err := json.Unmarshal(data, &f.choices); err != nil {
		return nil, fmt.Errorf("parse feedback %s: %w", path, err)
	}

	f.rebuild()
	log.WithField("entries", len(f.choices)).Debug("loaded feedback")
	return f, nil
}

// Save writes the choice history back to disk.
func (f *Feedback) Save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create feedback dir: %w", err)
	}
	data, err := json.MarshalIndent(f.choices, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	return os.WriteFile(f.path, data, 0o644)
}

// Record adds a decision for a file and persists the store. History is
// capped: once it grows past twice the limit it is trimmed to the most
// recent entries.
func (f *Feedback) Record(rec model.FileRecord, kept bool) error {
	f.choices = append(f.choices, Choice{
		Extension:     rec.Extension,
		Category:      rec.Category,
		SizeMB:        rec.SizeMB,
		AccessedDays:  rec.AccessedDays,
		DisposableExt: rec.DisposableExt,
		Kept:          kept,
		Timestamp:     time.Now().UTC(),
	})

	if len(f.choices) > historyLimit*2 {
		f.choices = f.choices[len(f.choices)-historyLimit:]
	}
	f.rebuild()
	return f.Save()
}

func (f *Feedback) rebuild() {
	f.extStats = make(map[string]tally)
	f.catStats = make(map[string]tally)
	for _, c := range f.choices {
		et := f.extStats[c.Extension]
		ct := f.catStats[c.Category]
		if c.Kept {
			et.Kept++
			ct.Kept++
		} else {
			et.Deleted++
			ct.Deleted++
		}
		f.extStats[c.Extension] = et
		f.catStats[c.Category] = ct
	}
}

// ExtensionPreference returns the kept ratio for an extension, 0.5 when
// nothing is known.
func (f *Feedback) ExtensionPreference(ext string) float64 {
	return preference(f.extStats[ext])
}

// CategoryPreference returns the kept ratio for a category, 0.5 when
// nothing is known.
func (f *Feedback) CategoryPreference(cat string) float64 {
	return preference(f.catStats[cat])
}

func preference(t tally) float64 {
	total := t.Kept + t.Deleted
	if total == 0 {
		return neutralScore
	}
	return float64(t.Kept) / float64(total)
}

// Len is the number of recorded choices.
func (f *Feedback) Len() int {
	return len(f.choices)
}

// Reset clears all feedback and persists the empty store.
func (f *Feedback) Reset() error {
	f.choices = nil
	f.rebuild()
	log.Info("feedback reset")
	return f.Save()
}

// Preference summarizes learned behavior for one extension.
type Preference struct {
	Extension string  `json:"extension"`
	KeepRatio float64 `json:"keep_ratio"`
	Total     int     `json:"total"`
}

// TopPreferences returns the extensions the user most keeps and most
// deletes, among those with enough history to be meaningful.
func (f *Feedback) TopPreferences(n int) (mostKept, mostDeleted []Preference) {
	var prefs []Preference
	for ext, t := range f.extStats {
		total := t.Kept + t.Deleted
		if total < minSimilarCount {
			continue
		}
		prefs = append(prefs, Preference{
			Extension: ext,
			KeepRatio: float64(t.Kept) / float64(total),
			Total:     total,
		})
	}
	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].KeepRatio != prefs[j].KeepRatio {
			return prefs[i].KeepRatio > prefs[j].KeepRatio
		}
		return prefs[i].Extension < prefs[j].Extension
	})

	if len(prefs) > n {
		mostKept = prefs[:n]
	} else {
		mostKept = prefs
	}
	if len(prefs) > n {
		rev := make([]Preference, n)
		for i := 0; i < n; i++ {
			rev[i] = prefs[len(prefs)-1-i]
		}
		mostDeleted = rev
	}
	return mostKept, mostDeleted
}

// Stats summarizes the feedback store.
type Stats struct {
	TotalChoices      int `json:"total_choices"`
	Kept              int `json:"files_kept"`
	Deleted           int `json:"files_deleted"`
	ExtensionsLearned int `json:"extensions_learned"`
	CategoriesLearned int `json:"categories_learned"`
}

// Stats returns summary counts.
func (f *Feedback) Stats() Stats {
	s := Stats{
		TotalChoices:      len(f.choices),
		ExtensionsLearned: len(f.extStats),
		CategoriesLearned: len(f.catStats),
	}
	for _, c := range f.choices {
		if c.Kept {
			s.Kept++
		} else {
			s.Deleted++
		}
	}
	return s
}
