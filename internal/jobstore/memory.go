package jobstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps jobs in process memory. Jobs disappear on restart, which
// matches the semantics of the synchronous CLI and of tests.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[uuid.UUID]*Job)}
}

// Put inserts or replaces a job
func (s *MemoryStore) Put(_ context.Context, job *Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	stored := *job
	s.mu.Lock()
	s.jobs[job.ID] = &stored
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the job or ErrNotFound
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	found := *job
	return &found, nil
}

// Delete removes a job if present
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error { return nil }
