// Package jobstore holds analysis jobs in process memory.
package jobstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/markdave123-py/delulu-meter/internal/core"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

var _ core.JobStore = (*MemoryStore)(nil)

// MemoryStore keeps every job for the life of the process; nothing is
// evicted. Each entry is an atomic pointer to an immutable snapshot, so a
// reader always sees a whole job from before or after a transition.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*atomic.Pointer[models.Job]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*atomic.Pointer[models.Job])}
}

func (s *MemoryStore) Put(_ context.Context, job *models.Job) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	p := &atomic.Pointer[models.Job]{}
	p.Store(clone(job))
	s.jobs[job.ID] = p
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	p, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return clone(p.Load()), nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, id string, from models.JobStatus, next *models.Job) (bool, error) {
	s.mu.RLock()
	p, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("job %s not found", id)
	}
	cur := p.Load()
	if cur.Status != from {
		return false, nil
	}
	n := clone(next)
	n.ID = id
	return p.CompareAndSwap(cur, n), nil
}

// Len returns the number of jobs held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// clone copies the job header; the result bundle is shared because it is
// never modified after a job finishes.
func clone(j *models.Job) *models.Job {
	c := *j
	return &c
}
