// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runstore persists Runs in a SQLite database. Runs are written
// once at submission time and never modified afterward except for their
// evaluation annotations.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sred-engine/pkg/types"
)

const dbFile = "sred.db"

// ErrNotFound is returned when no run matches the requested id.
var ErrNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dataDir/sred.db and ensures the
// schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			transcript_text TEXT NOT NULL,
			client_name TEXT,
			fiscal_year TEXT,
			meeting_type TEXT,
			context_pack_text TEXT NOT NULL,
			context_pack_name TEXT,
			context_pack_version TEXT,
			prompt_text TEXT NOT NULL,
			prompt_name TEXT,
			prompt_version TEXT,
			model_used TEXT NOT NULL,
			output TEXT,
			raw_output TEXT,
			is_structured INTEGER NOT NULL,
			evaluation TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Insert assigns the run an id and creation timestamp and writes it. The
// returned run carries the assigned fields.
func (s *Store) Insert(ctx context.Context, run *types.Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	var outputJSON sql.NullString
	if run.Output != nil {
		data, err := json.Marshal(run.Output)
		if err != nil {
			return fmt.Errorf("marshaling output: %w", err)
		}
		outputJSON = sql.NullString{String: string(data), Valid: true}
	}
	evalJSON, err := json.Marshal(run.Evaluation)
	if err != nil {
		return fmt.Errorf("marshaling evaluation: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (
			id, created_at, transcript_text, client_name, fiscal_year, meeting_type,
			context_pack_text, context_pack_name, context_pack_version,
			prompt_text, prompt_name, prompt_version,
			model_used, output, raw_output, is_structured, evaluation
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano),
		run.TranscriptText, run.ClientName, run.FiscalYear, run.MeetingType,
		run.ContextPackText, run.ContextPackName, run.ContextPackVersion,
		run.PromptText, run.PromptName, run.PromptVersion,
		run.ModelUsed, outputJSON, run.RawOutput, boolToInt(run.IsStructured),
		string(evalJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// Get loads one run by id.
func (s *Store) Get(ctx context.Context, id string) (*types.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, transcript_text, client_name, fiscal_year, meeting_type,
			context_pack_text, context_pack_name, context_pack_version,
			prompt_text, prompt_name, prompt_version,
			model_used, output, raw_output, is_structured, evaluation
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

// Summary is one row of the run history listing.
type Summary struct {
	ID           string
	CreatedAt    time.Time
	ClientName   string
	FiscalYear   string
	MeetingType  string
	ModelUsed    string
	IsStructured bool
}

// List returns run summaries newest first. History listing is a read-only
// query with no ordering dependency on in-flight submissions.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, client_name, fiscal_year, meeting_type, model_used, is_structured
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var (
			sum        Summary
			createdAt  string
			client     sql.NullString
			fiscal     sql.NullString
			meeting    sql.NullString
			structured int
		)
		if err := rows.Scan(&sum.ID, &createdAt, &client, &fiscal, &meeting, &sum.ModelUsed, &structured); err != nil {
			return nil, fmt.Errorf("scanning run summary: %w", err)
		}
		sum.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		sum.ClientName = client.String
		sum.FiscalYear = fiscal.String
		sum.MeetingType = meeting.String
		sum.IsStructured = structured != 0
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// All loads every run in full, newest first, for bulk export.
func (s *Store) All(ctx context.Context) ([]*types.Run, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	runs := make([]*types.Run, 0, len(summaries))
	for _, sum := range summaries {
		run, err := s.Get(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// UpdateEvaluation replaces a run's evaluation annotations, the only
// mutation permitted after creation. Scores must be 0 (unscored) or 1-5.
func (s *Store) UpdateEvaluation(ctx context.Context, id string, eval types.Evaluation) error {
	for _, score := range eval.Scores() {
		if score < 0 || score > 5 {
			return types.NewError(types.KindValidation, "evaluation score %d out of range 1-5", score)
		}
	}
	data, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("marshaling evaluation: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE runs SET evaluation = ? WHERE id = ?`, string(data), id)
	if err != nil {
		return fmt.Errorf("updating evaluation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a run from the history.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*types.Run, error) {
	var (
		run        types.Run
		createdAt  string
		client     sql.NullString
		fiscal     sql.NullString
		meeting    sql.NullString
		packName   sql.NullString
		packVer    sql.NullString
		pName      sql.NullString
		pVer       sql.NullString
		output     sql.NullString
		raw        sql.NullString
		structured int
		evalJSON   string
	)
	err := row.Scan(&run.ID, &createdAt, &run.TranscriptText, &client, &fiscal, &meeting,
		&run.ContextPackText, &packName, &packVer,
		&run.PromptText, &pName, &pVer,
		&run.ModelUsed, &output, &raw, &structured, &evalJSON)
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing run timestamp: %w", err)
	}
	run.ClientName = client.String
	run.FiscalYear = fiscal.String
	run.MeetingType = meeting.String
	run.ContextPackName = packName.String
	run.ContextPackVersion = packVer.String
	run.PromptName = pName.String
	run.PromptVersion = pVer.String
	run.RawOutput = raw.String
	run.IsStructured = structured != 0

	if output.Valid && output.String != "" {
		var out types.Output
		if err := json.Unmarshal([]byte(output.String), &out); err != nil {
			return nil, fmt.Errorf("parsing stored output: %w", err)
		}
		out.Normalize()
		run.Output = &out
	}
	if err := json.Unmarshal([]byte(evalJSON), &run.Evaluation); err != nil {
		return nil, fmt.Errorf("parsing stored evaluation: %w", err)
	}
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
