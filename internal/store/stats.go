package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string          `json:"db_path"`
	DBSizeBytes   int64           `json:"db_size_bytes"`
	Sessions      int             `json:"sessions"`
	Results       int             `json:"results"`
	Decisions     int             `json:"decisions"`
	PendingDelete int             `json:"pending_delete"`
	Anomalies     int             `json:"anomalies"`
	Categories    []CategoryStats `json:"categories"`
}

// CategoryStats holds per-category counts across all sessions.
type CategoryStats struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	DeleteRecs int    `json:"delete_recommendations"`
	TotalBytes int64  `json:"total_bytes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&st.Sessions)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&st.Results)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&st.Decisions)
	s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM results WHERE action = 'delete' AND decision = ''`).Scan(&st.PendingDelete)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results WHERE anomaly = 1`).Scan(&st.Anomalies)

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS cnt,
		       SUM(CASE WHEN action = 'delete' THEN 1 ELSE 0 END) AS dels,
		       SUM(size_bytes) AS bytes
		FROM results GROUP BY category ORDER BY cnt DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var cs CategoryStats
		rows.Scan(&cs.Category, &cs.Count, &cs.DeleteRecs, &cs.TotalBytes)
		st.Categories = append(st.Categories, cs)
	}
	return st, rows.Err()
}
