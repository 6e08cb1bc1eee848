// Package model defines the core scan and recommendation data types.
package model

import "time"

// Action is the recommended disposition for a file.
type Action string

const (
	ActionKeep   Action = "keep"
	ActionDelete Action = "delete"
)

// FileRecord holds filesystem metadata for a single file. Classification is
// metadata-only: file contents are never read.
type FileRecord struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Directory string `json:"directory"`
	Extension string `json:"extension"`
	Category  string `json:"category"`

	SizeBytes int64   `json:"size_bytes"`
	SizeMB    float64 `json:"size_mb"`

	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	AccessedAt time.Time `json:"accessed_at"`

	CreatedDays  float64 `json:"created_days_ago"`
	ModifiedDays float64 `json:"modified_days_ago"`
	AccessedDays float64 `json:"accessed_days_ago"`

	Depth         int  `json:"depth"`
	Hidden        bool `json:"is_hidden"`
	SystemFolder  bool `json:"in_system_folder"`
	DisposableExt bool `json:"is_disposable_ext"`

	// Derived features used by the classifier.
	DormantDays       float64 `json:"dormant_days"`
	AccessModifyRatio float64 `json:"access_to_modify_ratio"`
	Recent            bool    `json:"is_recent"`
	Old               bool    `json:"is_old"`
	Large             bool    `json:"is_large"`
}

// Recommendation is the classifier + feedback verdict for a file.
type Recommendation struct {
	Action         Action  `json:"action"`
	Confidence     float64 `json:"confidence"`
	KeepScore      float64 `json:"keep_score"`
	AdjustedScore  float64 `json:"adjusted_score"`
	UserInfluenced bool    `json:"user_influenced"`

	Anomaly       bool     `json:"is_anomaly"`
	AnomalyScore  float64  `json:"anomaly_score,omitempty"`
	AnomalyReason []string `json:"anomaly_reasons,omitempty"`
}

// Decision records what the user (or the purge command) actually did.
type Decision string

const (
	DecisionNone    Decision = ""
	DecisionKept    Decision = "kept"
	DecisionDeleted Decision = "deleted"
)

// Result is a scanned file annotated with its recommendation and, once
// reviewed, the user's decision.
type Result struct {
	ID       string `json:"id"`
	PathHash uint64 `json:"path_hash"`
	FileRecord
	Recommendation
	Decision Decision `json:"decision,omitempty"`
}

// Session describes one scan run.
type Session struct {
	ID         string    `json:"id"`
	Root       string    `json:"root"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	FilesScanned  int `json:"files_scanned"`
	DirsScanned   int `json:"dirs_scanned"`
	SkippedSystem int `json:"skipped_system_folders"`
	Errors        int `json:"errors"`

	KeepCount    int `json:"keep_count"`
	DeleteCount  int `json:"delete_count"`
	AnomalyCount int `json:"anomaly_count"`
}
