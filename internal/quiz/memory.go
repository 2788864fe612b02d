package quiz

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory Repository. It backs tests and any
// caller that wants session or reporting behavior without a database.
type MemoryRepository struct {
	mu       sync.RWMutex
	sets     []QuestionSet
	attempts []Attempt
	stats    []QuestionStats
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) SaveQuestionSet(_ context.Context, set QuestionSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets = append(r.sets, set)
	return nil
}

func (r *MemoryRepository) QuestionSets(_ context.Context) ([]QuestionSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]QuestionSet, len(r.sets))
	copy(out, r.sets)
	return out, nil
}

func (r *MemoryRepository) SaveAttempt(_ context.Context, att Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, att)
	return nil
}

func (r *MemoryRepository) Attempts(_ context.Context) ([]Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Attempt, len(r.attempts))
	copy(out, r.attempts)
	return out, nil
}

func (r *MemoryRepository) SaveQuestionStats(_ context.Context, stats QuestionStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.stats {
		if r.stats[i].ID == stats.ID {
			r.stats[i] = stats
			return nil
		}
	}
	r.stats = append(r.stats, stats)
	return nil
}

func (r *MemoryRepository) QuestionStats(_ context.Context) ([]QuestionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]QuestionStats, len(r.stats))
	copy(out, r.stats)
	return out, nil
}
