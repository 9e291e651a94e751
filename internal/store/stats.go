package store

import (
	"context"
	"database/sql"

	"github.com/divah21/stage-one-backend/internal/model"
)

// Stats counts records and palindromes under the read lock.
func (s *MemoryStore) Stats(_ context.Context) (*model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &model.Stats{TotalStrings: len(s.records)}
	for _, r := range s.records {
		if r.Properties.IsPalindrome {
			st.Palindromes++
		}
	}
	return st, nil
}

// Stats counts records and palindromes in one query.
func (s *SQLiteStore) Stats(ctx context.Context) (*model.Stats, error) {
	var total int
	var palindromes sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(is_palindrome) FROM strings`).Scan(&total, &palindromes)
	if err != nil {
		return nil, err
	}
	return &model.Stats{TotalStrings: total, Palindromes: int(palindromes.Int64)}, nil
}
