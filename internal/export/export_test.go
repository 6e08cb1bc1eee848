package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"

	"github.com/filepurge/filepurge/internal/model"
)

func sampleResults() []model.Result {
	return []model.Result{
		{
			FileRecord: model.FileRecord{
				Path: "/scan/a.pdf", Name: "a.pdf", Extension: "pdf", Category: "documents",
				SizeMB: 1.5, AccessedDays: 3, ModifiedDays: 10,
			},
			Recommendation: model.Recommendation{
				Action: model.ActionKeep, Confidence: 0.9, KeepScore: 0.9, AdjustedScore: 0.9,
			},
		},
		{
			FileRecord: model.FileRecord{
				Path: "/scan/b,c.tmp", Name: "b,c.tmp", Extension: "tmp", Category: "disposable",
				SizeMB: 0.1, AccessedDays: 600, ModifiedDays: 700, DisposableExt: true,
			},
			Recommendation: model.Recommendation{
				Action: model.ActionDelete, Confidence: 0.85, KeepScore: 0.15, AdjustedScore: 0.15,
				Anomaly: true,
			},
			Decision: model.DecisionDeleted,
		},
	}
}

func TestCSVRowCountMatchesResults(t *testing.T) {
	var buf bytes.Buffer
	results := sampleResults()

	if err := CSV(&buf, results); err != nil {
		t.Fatalf("csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header plus one row per result.
	if len(rows) != len(results)+1 {
		t.Fatalf("expected %d rows, got %d", len(results)+1, len(rows))
	}
	if rows[0][0] != "path" {
		t.Errorf("expected header row, got %v", rows[0])
	}
	// Commas in names must survive quoting.
	if rows[2][1] != "b,c.tmp" {
		t.Errorf("expected quoted name to round-trip, got %q", rows[2][1])
	}
	if rows[2][7] != "delete" {
		t.Errorf("expected action delete, got %q", rows[2][7])
	}
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, nil); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleResults()); err != nil {
		t.Fatalf("json: %v", err)
	}

	var decoded []model.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 results, got %d", len(decoded))
	}
	if decoded[1].Action != model.ActionDelete || !decoded[1].Anomaly {
		t.Errorf("unexpected decoded result: %+v", decoded[1])
	}
}

func TestJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}
