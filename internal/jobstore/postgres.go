package jobstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists jobs in PostgreSQL. Expected schema:
//
//	CREATE TABLE customization_jobs (
//	    id         UUID PRIMARY KEY,
//	    state      TEXT NOT NULL,
//	    error      TEXT NOT NULL DEFAULT '',
//	    result     JSONB,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore establishes a connection pool and verifies it
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Put inserts or replaces a job
func (s *PostgresStore) Put(ctx context.Context, job *Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO customization_jobs (id, state, error, result, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET state = $2, error = $3, result = $4, updated_at = $6`,
		job.ID, job.State, job.Error, job.Result, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	return nil
}

// Get returns the job or ErrNotFound
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	job := &Job{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, state, error, result, created_at, updated_at
		 FROM customization_jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.State, &job.Error, &job.Result, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	return job, nil
}

// Delete removes a job if present
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM customization_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
