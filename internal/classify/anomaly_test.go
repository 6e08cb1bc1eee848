package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filepurge/filepurge/internal/model"
)

func TestDetectAnomalyOrdinaryFile(t *testing.T) {
	res := DetectAnomaly(record(nil))

	assert.False(t, res.Anomaly)
	assert.Empty(t, res.Reasons)
	assert.Zero(t, res.Score)
}

func TestDetectAnomalyThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.FileRecord)
		reason string
	}{
		{"huge file", func(r *model.FileRecord) { r.SizeMB = 100000 }, "very large file"},
		{"ancient access", func(r *model.FileRecord) { r.AccessedDays = 2000; r.ModifiedDays = 1500 }, "not accessed"},
		{"ancient modify", func(r *model.FileRecord) { r.ModifiedDays = 2000; r.AccessedDays = 100 }, "not modified"},
		{"deep nesting", func(r *model.FileRecord) { r.Depth = 30 }, "deeply nested"},
		{"dormant", func(r *model.FileRecord) { r.AccessedDays = 1000; r.ModifiedDays = 10 }, "dormant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := DetectAnomaly(record(tt.mutate))

			assert.True(t, res.Anomaly)
			assert.Greater(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 1.0)

			found := false
			for _, r := range res.Reasons {
				if strings.HasPrefix(r, tt.reason) {
					found = true
				}
			}
			assert.True(t, found, "expected a reason starting with %q, got %v", tt.reason, res.Reasons)
		})
	}
}

func TestDetectAnomaliesBatch(t *testing.T) {
	records := []model.FileRecord{
		record(nil),
		record(func(r *model.FileRecord) { r.Depth = 40 }),
	}

	results := DetectAnomalies(records)
	assert.Len(t, results, 2)
	assert.False(t, results[0].Anomaly)
	assert.True(t, results[1].Anomaly)
}
