package repository

import (
	"context"
	"sync"

	"github.com/stemsi/qboard/internal/model"
)

// MemoryRepository keeps the QuestionSet in process memory.
//
// Its contents live only as long as the process: a restart or redeploy
// starts again from an empty set. This mirrors the serverless deployment
// variant and is a known limitation, not a durability guarantee.
type MemoryRepository struct {
	mu  sync.RWMutex
	set model.QuestionSet
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{set: model.EmptyQuestionSet()}
}

func (r *MemoryRepository) Load(_ context.Context) (model.QuestionSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.set.Clone(), nil
}

func (r *MemoryRepository) Save(_ context.Context, set model.QuestionSet) error {
	r.mu.Lock()
	r.set = set.Clone()
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Driver() string { return "memory" }
