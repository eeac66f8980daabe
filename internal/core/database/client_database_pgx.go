package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/delulu-meter/internal/core"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

var _ core.JobStore = (*DatabaseClient)(nil)

// DatabaseClient is a Postgres-backed job store. Transitions are single
// conditional UPDATEs, so a reader sees a row either before or after one.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, databaseURL string) (*DatabaseClient, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DatabaseClient) Put(ctx context.Context, job *models.Job) error {
	if job == nil {
		return errors.New("nil job")
	}
	result, err := encodeResult(job.Result)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO analysis_jobs (id, status, result, error_message, created_at, finished_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`
	_, err = c.db.ExecContext(ctx, q,
		job.ID, string(job.Status), result, job.ErrorMessage, job.CreatedAt, job.FinishedAt)
	return err
}

func (c *DatabaseClient) Get(ctx context.Context, id string) (*models.Job, error) {
	const q = `
		SELECT id, status, result, COALESCE(error_message, ''), created_at, finished_at
		FROM analysis_jobs
		WHERE id = $1
	`
	var (
		j      models.Job
		status string
		result []byte
	)
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&j.ID, &status, &result, &j.ErrorMessage, &j.CreatedAt, &j.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	j.Status = models.JobStatus(status)
	if len(result) > 0 {
		j.Result = &models.Bundle{}
		if err := json.Unmarshal(result, j.Result); err != nil {
			return nil, fmt.Errorf("decode result of job %s: %w", id, err)
		}
	}
	return &j, nil
}

func (c *DatabaseClient) CompareAndSwap(ctx context.Context, id string, from models.JobStatus, next *models.Job) (bool, error) {
	result, err := encodeResult(next.Result)
	if err != nil {
		return false, err
	}
	const q = `
		UPDATE analysis_jobs
		SET status = $1, result = $2, error_message = NULLIF($3, ''), finished_at = $4
		WHERE id = $5 AND status = $6
	`
	res, err := c.db.ExecContext(ctx, q,
		string(next.Status), result, next.ErrorMessage, next.FinishedAt, id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func encodeResult(b *models.Bundle) (any, error) {
	if b == nil {
		return nil, nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return string(raw), nil
}
