// Package repository persists per-file extraction outcomes for batch runs.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/procuredocs/extractor/constants"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS extract_jobs (
	id          TEXT PRIMARY KEY,
	source_path TEXT NOT NULL,
	status      TEXT NOT NULL,
	doc_type    TEXT,
	method      TEXT,
	output_json TEXT,
	error       TEXT,
	started_at  TEXT NOT NULL,
	finished_at TEXT
);`

// Job is one row of batch extraction history.
type Job struct {
	ID         uuid.UUID
	SourcePath string
	Status     constants.JobStatus
	DocType    string
	Method     string
	OutputJSON string
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// JobRepository is a sqlite-backed store for extraction jobs.
type JobRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the job store. An empty dsn selects an in-memory
// database.
func Open(dsn string, logger *slog.Logger) (*JobRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &JobRepository{db: db, logger: logger}, nil
}

func (r *JobRepository) Close() error { return r.db.Close() }

// Start inserts a RUNNING job for the given source file.
func (r *JobRepository) Start(ctx context.Context, sourcePath string) (Job, error) {
	job := Job{
		ID:         uuid.New(),
		SourcePath: sourcePath,
		Status:     constants.JobStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extract_jobs (id, source_path, status, started_at) VALUES (?, ?, ?, ?)`,
		job.ID.String(), job.SourcePath, string(job.Status), job.StartedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Job{}, fmt.Errorf("insert job: %w", err)
	}
	r.logger.Debug("job started", "job_id", job.ID, "source_path", sourcePath)
	return job, nil
}

// FinishSuccess marks a job SUCCEEDED and records its output.
func (r *JobRepository) FinishSuccess(ctx context.Context, id uuid.UUID, docType, method string, outputJSON []byte) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, doc_type = ?, method = ?, output_json = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusSucceeded), docType, method, string(outputJSON),
		time.Now().UTC().Format(time.RFC3339Nano), id.String())
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	return nil
}

// FinishFailure marks a job FAILED with an error message.
func (r *JobRepository) FinishFailure(ctx context.Context, id uuid.UUID, msg string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusFailed), msg,
		time.Now().UTC().Format(time.RFC3339Nano), id.String())
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	return nil
}

// List returns all jobs in start order.
func (r *JobRepository) List(ctx context.Context) ([]Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_path, status, COALESCE(doc_type, ''), COALESCE(method, ''),
		        COALESCE(output_json, ''), COALESCE(error, ''), started_at, COALESCE(finished_at, '')
		   FROM extract_jobs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			r.logger.Warn("close rows", "error", cerr)
		}
	}()

	var out []Job
	for rows.Next() {
		var (
			j                            Job
			idStr, startedAt, finishedAt string
		)
		if err := rows.Scan(&idStr, &j.SourcePath, (*string)(&j.Status), &j.DocType, &j.Method,
			&j.OutputJSON, &j.Error, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if j.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parse job id: %w", err)
		}
		if j.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if finishedAt != "" {
			t, err := time.Parse(time.RFC3339Nano, finishedAt)
			if err != nil {
				return nil, fmt.Errorf("parse finished_at: %w", err)
			}
			j.FinishedAt = &t
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
