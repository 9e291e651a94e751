package store

import (
	"context"
	"slices"
	"sync"

	"github.com/divah21/stage-one-backend/internal/analyzer"
	"github.com/divah21/stage-one-backend/internal/model"
)

// MemoryStore implements Store with a map guarded by a single RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.AnalysisRecord
	order   []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.AnalysisRecord)}
}

func (s *MemoryStore) Insert(_ context.Context, rec model.AnalysisRecord) (*model.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return nil, duplicate(rec.ID)
	}
	s.records[rec.ID] = clone(rec)
	s.order = append(s.order, rec.ID)
	return &rec, nil
}

func (s *MemoryStore) GetByHash(_ context.Context, hash string) (*model.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[hash]
	if !ok {
		return nil, notFound(hash)
	}
	out := clone(rec)
	return &out, nil
}

func (s *MemoryStore) GetByValue(ctx context.Context, value string) (*model.AnalysisRecord, error) {
	return s.GetByHash(ctx, analyzer.Hash(value))
}

func (s *MemoryStore) DeleteByValue(_ context.Context, value string) error {
	hash := analyzer.Hash(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[hash]; !ok {
		return notFound(hash)
	}
	delete(s.records, hash)
	if i := slices.Index(s.order, hash); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.AnalysisRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.records[id]))
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
