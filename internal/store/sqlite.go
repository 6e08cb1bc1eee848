package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/zeebo/xxh3"
	_ "modernc.org/sqlite"

	"github.com/filepurge/filepurge/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates the history database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// pathHash is a stable per-file key within a session.
func pathHash(path string) uint64 {
	return xxh3.HashString(path)
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id             TEXT PRIMARY KEY,
		root           TEXT NOT NULL,
		started_at     TEXT NOT NULL,
		finished_at    TEXT NOT NULL,
		files_scanned  INTEGER NOT NULL DEFAULT 0,
		dirs_scanned   INTEGER NOT NULL DEFAULT 0,
		skipped_system INTEGER NOT NULL DEFAULT 0,
		errors         INTEGER NOT NULL DEFAULT 0,
		keep_count     INTEGER NOT NULL DEFAULT 0,
		delete_count   INTEGER NOT NULL DEFAULT 0,
		anomaly_count  INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

	CREATE TABLE IF NOT EXISTS results (
		id              TEXT PRIMARY KEY,
		session_id      TEXT NOT NULL REFERENCES sessions(id),
		path_hash       INTEGER NOT NULL,
		path            TEXT NOT NULL,
		name            TEXT NOT NULL,
		directory       TEXT NOT NULL,
		extension       TEXT NOT NULL,
		category        TEXT NOT NULL,
		size_bytes      INTEGER NOT NULL,
		created_at      TEXT NOT NULL,
		modified_at     TEXT NOT NULL,
		accessed_at     TEXT NOT NULL,
		created_days    REAL NOT NULL,
		modified_days   REAL NOT NULL,
		accessed_days   REAL NOT NULL,
		depth           INTEGER NOT NULL,
		hidden          INTEGER NOT NULL DEFAULT 0,
		system_folder   INTEGER NOT NULL DEFAULT 0,
		disposable      INTEGER NOT NULL DEFAULT 0,
		action          TEXT NOT NULL,
		confidence      REAL NOT NULL,
		keep_score      REAL NOT NULL,
		adjusted_score  REAL NOT NULL,
		user_influenced INTEGER NOT NULL DEFAULT 0,
		anomaly         INTEGER NOT NULL DEFAULT 0,
		anomaly_score   REAL NOT NULL DEFAULT 0,
		anomaly_reasons TEXT,
		decision        TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_results_session ON results(session_id);
	CREATE INDEX IF NOT EXISTS idx_results_action ON results(session_id, action);
	CREATE INDEX IF NOT EXISTS idx_results_path ON results(session_id, path_hash);

	CREATE TABLE IF NOT EXISTS decisions (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		path       TEXT NOT NULL,
		decision   TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) SaveSession(ctx context.Context, sess *model.Session, results []model.Result) error {
	if sess.ID == "" {
		sess.ID = s.newID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, root, started_at, finished_at, files_scanned, dirs_scanned,
		                       skipped_system, errors, keep_count, delete_count, anomaly_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Root,
		sess.StartedAt.UTC().Format(time.RFC3339), sess.FinishedAt.UTC().Format(time.RFC3339),
		sess.FilesScanned, sess.DirsScanned, sess.SkippedSystem, sess.Errors,
		sess.KeepCount, sess.DeleteCount, sess.AnomalyCount)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (id, session_id, path_hash, path, name, directory, extension, category,
		                      size_bytes, created_at, modified_at, accessed_at,
		                      created_days, modified_days, accessed_days, depth,
		                      hidden, system_folder, disposable,
		                      action, confidence, keep_score, adjusted_score, user_influenced,
		                      anomaly, anomaly_score, anomaly_reasons, decision)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare results: %w", err)
	}
	defer stmt.Close()

	for i := range results {
		r := &results[i]
		if r.ID == "" {
			r.ID = s.newID()
		}
		r.PathHash = pathHash(r.Path)

		var reasons *string
		if len(r.AnomalyReason) > 0 {
			b, _ := json.Marshal(r.AnomalyReason)
			str := string(b)
			reasons = &str
		}

		_, err = stmt.ExecContext(ctx,
			r.ID, sess.ID, int64(r.PathHash), r.Path, r.Name, r.Directory, r.Extension, r.Category,
			r.SizeBytes,
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.ModifiedAt.UTC().Format(time.RFC3339),
			r.AccessedAt.UTC().Format(time.RFC3339),
			r.CreatedDays, r.ModifiedDays, r.AccessedDays, r.Depth,
			boolInt(r.Hidden), boolInt(r.SystemFolder), boolInt(r.DisposableExt),
			string(r.Action), r.Confidence, r.KeepScore, r.AdjustedScore, boolInt(r.UserInfluenced),
			boolInt(r.Anomaly), r.AnomalyScore, reasons, string(r.Decision))
		if err != nil {
			return fmt.Errorf("insert result %s: %w", r.Path, err)
		}
	}

	return tx.Commit()
}

const sessionCols = `id, root, started_at, finished_at, files_scanned, dirs_scanned,
                     skipped_system, errors, keep_count, delete_count, anomaly_count`

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionCols+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SQLiteStore) LatestSession(ctx context.Context) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionCols+` FROM sessions ORDER BY started_at DESC LIMIT 1`)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no sessions recorded: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SQLiteStore) ListSessions(ctx context.Context, limit int) ([]model.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionCols+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

const resultCols = `id, path_hash, path, name, directory, extension, category,
                    size_bytes, created_at, modified_at, accessed_at,
                    created_days, modified_days, accessed_days, depth,
                    hidden, system_folder, disposable,
                    action, confidence, keep_score, adjusted_score, user_influenced,
                    anomaly, anomaly_score, anomaly_reasons, decision`

func (s *SQLiteStore) ListResults(ctx context.Context, f ResultFilter) ([]model.Result, error) {
	if f.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 1000
	}

	where := []string{"session_id = ?"}
	args := []interface{}{f.SessionID}

	if f.Action != "" {
		where = append(where, "action = ?")
		args = append(args, string(f.Action))
	}
	if f.AnomaliesOnly {
		where = append(where, "anomaly = 1")
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.MinConfidence > 0 {
		where = append(where, "confidence >= ?")
		args = append(args, f.MinConfidence)
	}

	query := `SELECT ` + resultCols + ` FROM results WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY confidence DESC, path LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) GetResult(ctx context.Context, sessionID, path string) (*model.Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+resultCols+` FROM results WHERE session_id = ? AND path_hash = ? AND path = ?`,
		sessionID, int64(pathHash(path)), path)
	r, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("result %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLiteStore) RecordDecision(ctx context.Context, sessionID, path string, d model.Decision) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE results SET decision = ? WHERE session_id = ? AND path_hash = ? AND path = ?`,
		string(d), sessionID, int64(pathHash(path)), path)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("result %s: %w", path, ErrNotFound)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO decisions (id, session_id, path, decision, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.newID(), sessionID, path, string(d), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*model.Session, error) {
	var sess model.Session
	var started, finished string

	err := row.Scan(
		&sess.ID, &sess.Root, &started, &finished,
		&sess.FilesScanned, &sess.DirsScanned, &sess.SkippedSystem, &sess.Errors,
		&sess.KeepCount, &sess.DeleteCount, &sess.AnomalyCount,
	)
	if err != nil {
		return nil, err
	}
	sess.StartedAt, _ = time.Parse(time.RFC3339, started)
	sess.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return &sess, nil
}

func scanResult(row scanner) (model.Result, error) {
	var r model.Result
	var created, modified, accessed, action, decision string
	var hidden, system, disposable, influenced, anomaly int
	var hash int64
	var reasons sql.NullString

	err := row.Scan(
		&r.ID, &hash, &r.Path, &r.Name, &r.Directory, &r.Extension, &r.Category,
		&r.SizeBytes, &created, &modified, &accessed,
		&r.CreatedDays, &r.ModifiedDays, &r.AccessedDays, &r.Depth,
		&hidden, &system, &disposable,
		&action, &r.Confidence, &r.KeepScore, &r.AdjustedScore, &influenced,
		&anomaly, &r.AnomalyScore, &reasons, &decision,
	)
	if err != nil {
		return r, err
	}

	r.PathHash = uint64(hash)
	r.SizeMB = float64(r.SizeBytes) / (1024 * 1024)
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	r.ModifiedAt, _ = time.Parse(time.RFC3339, modified)
	r.AccessedAt, _ = time.Parse(time.RFC3339, accessed)
	r.Hidden = hidden == 1
	r.SystemFolder = system == 1
	r.DisposableExt = disposable == 1
	r.UserInfluenced = influenced == 1
	r.Anomaly = anomaly == 1
	r.Action = model.Action(action)
	r.Decision = model.Decision(decision)
	if reasons.Valid {
		json.Unmarshal([]byte(reasons.String), &r.AnomalyReason)
	}

	r.DormantDays = r.AccessedDays - r.ModifiedDays
	if r.ModifiedDays > 0.1 {
		r.AccessModifyRatio = r.AccessedDays / r.ModifiedDays
	} else {
		r.AccessModifyRatio = r.AccessedDays / 0.1
	}
	r.Recent = r.AccessedDays < 7
	r.Old = r.ModifiedDays > 365
	r.Large = r.SizeMB > 100

	return r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
