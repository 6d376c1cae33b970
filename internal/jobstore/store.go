// Package jobstore persists asynchronous customization jobs across their
// processing lifecycle. Three backends share one interface: in-memory for
// tests and single-node use, PostgreSQL for durability, Redis for fast
// ephemeral storage with TTL expiry.
package jobstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobState tracks where a customization job is in its lifecycle
type JobState string

// Job lifecycle states. Transitions are processing -> complete or
// processing -> error; completed jobs never change again.
const (
	StateProcessing JobState = "processing"
	StateComplete   JobState = "complete"
	StateError      JobState = "error"
)

// ErrNotFound is returned when a job ID does not exist in the store
var ErrNotFound = errors.New("jobstore: job not found")

// Job is one asynchronous customization request. Result holds the serialized
// pipeline output once the job completes.
type Job struct {
	ID        uuid.UUID `json:"id"`
	State     JobState  `json:"state"`
	Error     string    `json:"error,omitempty"`
	Result    []byte    `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists jobs. Implementations must be safe for concurrent use.
type Store interface {
	// Put inserts or replaces a job
	Put(ctx context.Context, job *Job) error
	// Get returns the job or ErrNotFound
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	// Delete removes a job; deleting a missing job is not an error
	Delete(ctx context.Context, id uuid.UUID) error
	// Close releases backend resources
	Close() error
}

// NewJob creates a job in the processing state with a fresh ID
func NewJob() *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.New(),
		State:     StateProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete transitions the job to the complete state with its result payload
func (j *Job) Complete(result []byte) {
	j.State = StateComplete
	j.Result = result
	j.Error = ""
	j.UpdatedAt = time.Now().UTC()
}

// Fail transitions the job to the error state
func (j *Job) Fail(err error) {
	j.State = StateError
	j.Error = err.Error()
	j.UpdatedAt = time.Now().UTC()
}

// Validate rejects jobs with a missing ID or unknown state
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return fmt.Errorf("jobstore: job ID is required")
	}
	switch j.State {
	case StateProcessing, StateComplete, StateError:
		return nil
	default:
		return fmt.Errorf("jobstore: unknown state %q", j.State)
	}
}
