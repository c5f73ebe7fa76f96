// SPDX-License-Identifier: MIT

package persist

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/errkind"
)

// ErrNoRuns is returned by LoadLatest on a store without saved runs.
var ErrNoRuns = errors.New("persist: cluster store has no runs")

const storeSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	seq        INTEGER NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	next_name  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assignments (
	run_id  TEXT NOT NULL REFERENCES runs(run_id),
	taxon   TEXT NOT NULL,
	cluster TEXT NOT NULL,
	PRIMARY KEY (run_id, taxon)
);
CREATE TABLE IF NOT EXISTS aliases (
	run_id   TEXT NOT NULL REFERENCES runs(run_id),
	absorbed TEXT NOT NULL,
	survivor TEXT NOT NULL,
	PRIMARY KEY (run_id, absorbed)
);
CREATE TABLE IF NOT EXISTS merges (
	run_id   TEXT NOT NULL REFERENCES runs(run_id),
	position INTEGER NOT NULL,
	survivor TEXT NOT NULL,
	absorbed TEXT NOT NULL
);`

// ClusterStore keeps every saved clustering in a SQLite database, one
// snapshot per run.
type ClusterStore struct {
	db *sql.DB
}

// OpenClusterStore opens (creating if needed) the store at path.
func OpenClusterStore(ctx context.Context, path string) (*ClusterStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrResourceUnavailable, "persist.OpenClusterStore", err, path)
	}
	if _, err = db.ExecContext(ctx, storeSchema); err != nil {
		_ = db.Close()
		return nil, errkind.Wrap(errkind.ErrResourceUnavailable, "persist.OpenClusterStore", err, path)
	}

	return &ClusterStore{db: db}, nil
}

// Close releases the database.
func (s *ClusterStore) Close() error { return s.db.Close() }

// SaveRun stores c, its aliases, its name counter and the run's merge events
// under runID in one transaction. runID must be a UUID; nothing is stored on
// failure.
func (s *ClusterStore) SaveRun(ctx context.Context, runID string, c *cluster.Clustering, merges []cluster.Merge) (err error) {
	const op = "persist.SaveRun"
	if _, perr := uuid.Parse(runID); perr != nil {
		return errkind.Wrap(errkind.ErrMalformedInput, op, perr, runID)
	}
	if c == nil {
		return errkind.Malformed(op, "nil clustering")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var seq int64
	if err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, seq, created_at, next_name) VALUES (?, ?, ?, ?)`,
		runID, seq, time.Now().UTC().Format(time.RFC3339Nano), c.NextName()); err != nil {
		return err
	}

	if err = insertRows(ctx, tx, `INSERT INTO assignments (run_id, taxon, cluster) VALUES (?, ?, ?)`,
		runID, c.Map()); err != nil {
		return err
	}
	if err = insertRows(ctx, tx, `INSERT INTO aliases (run_id, absorbed, survivor) VALUES (?, ?, ?)`,
		runID, c.Aliases()); err != nil {
		return err
	}

	stm, err := tx.PrepareContext(ctx, `INSERT INTO merges (run_id, position, survivor, absorbed) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stm.Close()
	for i, m := range merges {
		if _, err = stm.ExecContext(ctx, runID, i, m.Survivor, strings.Join(m.Absorbed, ",")); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, query, runID string, rows map[string]string) error {
	stm, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stm.Close()
	for k, v := range rows {
		if _, err = stm.ExecContext(ctx, runID, k, v); err != nil {
			return err
		}
	}

	return nil
}

// LoadLatest returns the most recently saved run.
func (s *ClusterStore) LoadLatest(ctx context.Context) (string, *cluster.Clustering, error) {
	var runID string
	err := s.db.QueryRowContext(ctx, `SELECT run_id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrNoRuns
	}
	if err != nil {
		return "", nil, err
	}
	c, err := s.LoadRun(ctx, runID)

	return runID, c, err
}

// LoadRun rebuilds the clustering saved under runID, name counter included.
func (s *ClusterStore) LoadRun(ctx context.Context, runID string) (*cluster.Clustering, error) {
	const op = "persist.LoadRun"

	var next string
	err := s.db.QueryRowContext(ctx, `SELECT next_name FROM runs WHERE run_id = ?`, runID).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errkind.Inconsistent(op, "unknown run", runID)
	}
	if err != nil {
		return nil, err
	}

	c := cluster.New()
	if err = scanPairs(ctx, s.db, `SELECT taxon, cluster FROM assignments WHERE run_id = ? ORDER BY taxon`, runID, c.Set); err != nil {
		return nil, err
	}
	if err = scanPairs(ctx, s.db, `SELECT absorbed, survivor FROM aliases WHERE run_id = ? ORDER BY absorbed`, runID, c.SetAlias); err != nil {
		return nil, err
	}
	if err = c.SetNextName(next); err != nil {
		return nil, err
	}

	return c, nil
}

// Merges returns the merge events recorded with runID, in order.
func (s *ClusterStore) Merges(ctx context.Context, runID string) ([]cluster.Merge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT survivor, absorbed FROM merges WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cluster.Merge
	for rows.Next() {
		var survivor, absorbed string
		if err = rows.Scan(&survivor, &absorbed); err != nil {
			return nil, err
		}
		out = append(out, cluster.Merge{Survivor: survivor, Absorbed: strings.Split(absorbed, ",")})
	}

	return out, rows.Err()
}

func scanPairs(ctx context.Context, db *sql.DB, query, runID string, apply func(a, b string) error) error {
	stm, err := db.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, runID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a, b string
		if err = rows.Scan(&a, &b); err != nil {
			return err
		}
		if err = apply(a, b); err != nil {
			return err
		}
	}

	return rows.Err()
}
