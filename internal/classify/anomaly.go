package classify

import (
	"fmt"
	"math"

	"github.com/filepurge/filepurge/internal/model"
)

// Anomaly thresholds. A file crossing any of these is statistically unusual
// for a personal directory tree.
const (
	anomalySizeMB       = 76800 // 75 GiB
	anomalyAccessedDays = 1277  // ~3.5 years
	anomalyModifiedDays = 1642  // ~4.5 years
	anomalyDepth        = 22
	anomalyDormantDays  = 912 // ~2.5 years between modify and access
)

// AnomalyResult carries the flag plus an explanation the review surface can
// show directly.
type AnomalyResult struct {
	Anomaly bool
	Score   float64 // 0 = unremarkable, 1 = far past a threshold
	Reasons []string
}

// DetectAnomaly applies the thresholds to one record.
func DetectAnomaly(rec model.FileRecord) AnomalyResult {
	f := FromRecord(rec)

	var res AnomalyResult
	check := func(value, threshold float64, reason string) {
		if value <= threshold {
			return
		}
		res.Anomaly = true
		res.Reasons = append(res.Reasons, reason)
		// Excess past the threshold, capped: 2x the threshold scores 1.0.
		excess := math.Min(value/threshold-1, 1)
		if excess > res.Score {
			res.Score = excess
		}
	}

	check(f.SizeMB, anomalySizeMB,
		fmt.Sprintf("very large file (%.1f MB)", f.SizeMB))
	check(f.AccessedDays, anomalyAccessedDays,
		fmt.Sprintf("not accessed in %.0f days", f.AccessedDays))
	check(f.ModifiedDays, anomalyModifiedDays,
		fmt.Sprintf("not modified in %.0f days", f.ModifiedDays))
	check(float64(f.Depth), anomalyDepth,
		fmt.Sprintf("deeply nested (depth %d)", f.Depth))
	check(f.DormantDays, anomalyDormantDays,
		fmt.Sprintf("dormant for %.0f days", f.DormantDays))

	return res
}

// DetectAnomalies applies the thresholds to a batch.
func DetectAnomalies(records []model.FileRecord) []AnomalyResult {
	results := make([]AnomalyResult, len(records))
	for i, rec := range records {
		results[i] = DetectAnomaly(rec)
	}
	return results
}
