package store

import (
	"context"
	"sync"
	"testing"

	"github.com/divah21/stage-one-backend/internal/analyzer"
	"github.com/divah21/stage-one-backend/internal/errors"
)

type factory func(t *testing.T) Store

func backends() map[string]factory {
	return map[string]factory{
		BackendMemory: func(t *testing.T) Store {
			t.Helper()
			return NewMemoryStore()
		},
		BackendSQLite: func(t *testing.T) Store {
			t.Helper()
			s, err := NewSQLiteStore()
			if err != nil {
				t.Fatalf("create store: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, newStore(t))
		})
	}
}

func TestInsertAndGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		rec := analyzer.Analyze("hello world")

		got, err := s.Insert(ctx, rec)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if got.ID != rec.ID {
			t.Errorf("expected id %s, got %s", rec.ID, got.ID)
		}

		byValue, err := s.GetByValue(ctx, "hello world")
		if err != nil {
			t.Fatalf("get by value: %v", err)
		}
		if byValue.Value != "hello world" {
			t.Errorf("expected 'hello world', got %q", byValue.Value)
		}
		if byValue.Properties.WordCount != 2 || byValue.Properties.Length != 11 {
			t.Errorf("properties not stored correctly: %+v", byValue.Properties)
		}
		if byValue.Properties.CharacterFrequencyMap["l"] != 3 {
			t.Errorf("expected frequency of 'l' to be 3, got %d", byValue.Properties.CharacterFrequencyMap["l"])
		}
		if !byValue.CreatedAt.Equal(rec.CreatedAt) {
			t.Errorf("expected created_at %v, got %v", rec.CreatedAt, byValue.CreatedAt)
		}

		byHash, err := s.GetByHash(ctx, rec.ID)
		if err != nil {
			t.Fatalf("get by hash: %v", err)
		}
		if byHash.Properties.SHA256Hash != rec.ID {
			t.Errorf("expected sha256_hash %s, got %s", rec.ID, byHash.Properties.SHA256Hash)
		}
	})
}

func TestInsertDuplicate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		if _, err := s.Insert(ctx, analyzer.Analyze("racecar")); err != nil {
			t.Fatalf("first insert: %v", err)
		}
		st, _ := s.Stats(ctx)
		if st.TotalStrings != 1 {
			t.Fatalf("expected 1 record after first insert, got %d", st.TotalStrings)
		}

		_, err := s.Insert(ctx, analyzer.Analyze("racecar"))
		if !errors.Is(err, errors.ErrDuplicateKey) {
			t.Fatalf("expected duplicate key error, got %v", err)
		}
		st, _ = s.Stats(ctx)
		if st.TotalStrings != 1 {
			t.Errorf("expected 1 record after duplicate insert, got %d", st.TotalStrings)
		}
	})
}

func TestConcurrentInsertSameValue(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		const workers = 32

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Insert(ctx, analyzer.Analyze("same value"))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var ok, dup int
		for err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, errors.ErrDuplicateKey):
				dup++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		if ok != 1 || dup != workers-1 {
			t.Errorf("expected 1 success and %d duplicates, got %d and %d", workers-1, ok, dup)
		}
	})
}

func TestGetMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		if _, err := s.GetByValue(ctx, "nope"); !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("expected not found by value, got %v", err)
		}
		if _, err := s.GetByHash(ctx, analyzer.Hash("nope")); !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("expected not found by hash, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		s.Insert(ctx, analyzer.Analyze("keep"))
		s.Insert(ctx, analyzer.Analyze("drop"))

		if err := s.DeleteByValue(ctx, "drop"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := s.GetByValue(ctx, "drop"); !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("expected not found after delete, got %v", err)
		}
		if err := s.DeleteByValue(ctx, "drop"); !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("expected not found on second delete, got %v", err)
		}

		st, _ := s.Stats(ctx)
		if st.TotalStrings != 1 {
			t.Errorf("expected 1 record after delete, got %d", st.TotalStrings)
		}

		// the value can be analyzed and stored again once deleted
		if _, err := s.Insert(ctx, analyzer.Analyze("drop")); err != nil {
			t.Errorf("re-insert after delete: %v", err)
		}
	})
}

func TestListInsertionOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		empty, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(empty) != 0 {
			t.Errorf("expected empty list, got %d", len(empty))
		}

		for _, v := range []string{"alpha", "beta", "gamma", "delta"} {
			s.Insert(ctx, analyzer.Analyze(v))
		}
		s.DeleteByValue(ctx, "beta")

		all, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		want := []string{"alpha", "gamma", "delta"}
		if len(all) != len(want) {
			t.Fatalf("expected %d, got %d", len(want), len(all))
		}
		for i, v := range want {
			if all[i].Value != v {
				t.Errorf("position %d: expected %q, got %q", i, v, all[i].Value)
			}
		}
	})
}

func TestStats(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		st, err := s.Stats(ctx)
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if st.TotalStrings != 0 || st.Palindromes != 0 {
			t.Errorf("expected empty stats, got %+v", st)
		}

		for _, v := range []string{"racecar", "Never odd or even", "hello", ""} {
			s.Insert(ctx, analyzer.Analyze(v))
		}
		st, _ = s.Stats(ctx)
		if st.TotalStrings != 4 || st.Palindromes != 3 {
			t.Errorf("expected 4 total / 3 palindromes, got %+v", st)
		}

		s.DeleteByValue(ctx, "racecar")
		st, _ = s.Stats(ctx)
		if st.TotalStrings != 3 || st.Palindromes != 2 {
			t.Errorf("expected 3 total / 2 palindromes, got %+v", st)
		}
	})
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		s.Insert(ctx, analyzer.Analyze("aab"))

		got, _ := s.GetByValue(ctx, "aab")
		got.Properties.CharacterFrequencyMap["a"] = 99

		again, _ := s.GetByValue(ctx, "aab")
		if again.Properties.CharacterFrequencyMap["a"] != 2 {
			t.Errorf("store record was mutated through a returned copy")
		}
	})
}

func TestSQLiteStoresAreIsolated(t *testing.T) {
	a, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer a.Close()
	b, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	a.Insert(ctx, analyzer.Analyze("only in a"))

	if _, err := b.GetByValue(ctx, "only in a"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected stores to be isolated, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	for _, backend := range []string{"", BackendMemory, BackendSQLite} {
		s, err := Open(backend)
		if err != nil {
			t.Fatalf("open %q: %v", backend, err)
		}
		s.Close()
	}

	if _, err := Open("redis"); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("expected invalid input for unknown backend, got %v", err)
	}
}
