// Package history persists completed run documents in a SQLite database so
// results can be listed and aggregated across runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/abdul-hamid-achik/storyspec/packages/output"
)

// ErrNotFound is returned when a run id is not in the store.
var ErrNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	created_at       TEXT NOT NULL,
	features         INTEGER NOT NULL,
	scenarios        INTEGER NOT NULL,
	scenarios_passed INTEGER NOT NULL,
	scenarios_failed INTEGER NOT NULL,
	steps            INTEGER NOT NULL,
	steps_passed     INTEGER NOT NULL,
	steps_failed     INTEGER NOT NULL,
	steps_not_run    INTEGER NOT NULL,
	payload          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Record is one stored run, without its full payload.
type Record struct {
	ID           string
	CreatedAt    time.Time
	Summary      output.Summary
	FeatureNames []string
}

// Store is a SQLite-backed archive of run documents.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{
		db:           db,
		queryTimeout: 30 * time.Second,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores a run document and returns its generated id.
func (s *Store) Save(doc *output.Document) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding run payload: %w", err)
	}

	createdAt := doc.Time
	if createdAt == "" {
		createdAt = time.Now().Format(time.RFC3339)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	id := uuid.NewString()
	sum := doc.Summary
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, features,
			scenarios, scenarios_passed, scenarios_failed,
			steps, steps_passed, steps_failed, steps_not_run, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, sum.Features,
		sum.Scenarios, sum.ScenariosPassed, sum.ScenariosFailed,
		sum.Steps, sum.StepsPassed, sum.StepsFailed, sum.StepsNotRun,
		string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("saving run: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// means no limit.
func (s *Store) List(limit int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	query := `
		SELECT id, created_at, features,
			scenarios, scenarios_passed, scenarios_failed,
			steps, steps_passed, steps_failed, steps_not_run, payload
		FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec       Record
			createdAt string
			payload   string
		)
		if err := rows.Scan(
			&rec.ID, &createdAt, &rec.Summary.Features,
			&rec.Summary.Scenarios, &rec.Summary.ScenariosPassed, &rec.Summary.ScenariosFailed,
			&rec.Summary.Steps, &rec.Summary.StepsPassed, &rec.Summary.StepsFailed,
			&rec.Summary.StepsNotRun, &payload,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		for _, name := range gjson.Get(payload, "features.#.name").Array() {
			rec.FeatureNames = append(rec.FeatureNames, name.String())
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return records, nil
}

// Load rehydrates a stored run document.
func (s *Store) Load(id string) (*output.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM runs WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return output.ParseDocument([]byte(payload))
}

// Summary aggregates outcome counts across every stored run.
func (s *Store) Summary() (output.Summary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	var sum output.Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(features), 0),
			COALESCE(SUM(scenarios), 0), COALESCE(SUM(scenarios_passed), 0),
			COALESCE(SUM(scenarios_failed), 0), COALESCE(SUM(steps), 0),
			COALESCE(SUM(steps_passed), 0), COALESCE(SUM(steps_failed), 0),
			COALESCE(SUM(steps_not_run), 0)
		FROM runs`).Scan(
		&sum.Features,
		&sum.Scenarios, &sum.ScenariosPassed,
		&sum.ScenariosFailed, &sum.Steps,
		&sum.StepsPassed, &sum.StepsFailed,
		&sum.StepsNotRun,
	)
	if err != nil {
		return output.Summary{}, fmt.Errorf("aggregating runs: %w", err)
	}
	return sum, nil
}
