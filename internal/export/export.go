// Package export writes scan results as CSV or JSON reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/filepurge/filepurge/internal/model"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data to export")

// csvColumns is the fixed CSV header. One row is written per result, so the
// row count always equals the result count.
var csvColumns = []string{
	"path", "name", "extension", "category",
	"size_mb", "accessed_days_ago", "modified_days_ago",
	"action", "confidence", "keep_score", "adjusted_score",
	"is_anomaly", "is_disposable_ext", "is_hidden", "decision",
}

// CSV writes results as a CSV report.
func CSV(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.Path, r.Name, r.Extension, r.Category,
			strconv.FormatFloat(r.SizeMB, 'f', 4, 64),
			strconv.FormatFloat(r.AccessedDays, 'f', 1, 64),
			strconv.FormatFloat(r.ModifiedDays, 'f', 1, 64),
			string(r.Action),
			strconv.FormatFloat(r.Confidence, 'f', 4, 64),
			strconv.FormatFloat(r.KeepScore, 'f', 4, 64),
			strconv.FormatFloat(r.AdjustedScore, 'f', 4, 64),
			strconv.FormatBool(r.Anomaly),
			strconv.FormatBool(r.DisposableExt),
			strconv.FormatBool(r.Hidden),
			string(r.Decision),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSON writes results as an indented JSON report.
func JSON(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		return ErrNoData
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
