// Package store provides the content-addressed record store and its backends.
package store

import (
	"context"
	"maps"

	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/model"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Store is a mapping from content hash to analysis record. Every method is
// atomic with respect to the others.
type Store interface {
	// Insert stores rec and returns it unchanged. It fails with
	// errors.ErrDuplicateKey if a record with the same ID exists.
	Insert(ctx context.Context, rec model.AnalysisRecord) (*model.AnalysisRecord, error)

	// GetByHash returns the record with the given ID or errors.ErrNotFound.
	GetByHash(ctx context.Context, hash string) (*model.AnalysisRecord, error)

	// GetByValue hashes value and behaves as GetByHash.
	GetByValue(ctx context.Context, value string) (*model.AnalysisRecord, error)

	// DeleteByValue removes the record for value or fails with errors.ErrNotFound.
	DeleteByValue(ctx context.Context, value string) error

	// List returns every record in insertion order.
	List(ctx context.Context) ([]model.AnalysisRecord, error)

	// Stats counts the live records at call time.
	Stats(ctx context.Context) (*model.Stats, error)

	// Close releases the store.
	Close() error
}

// Open returns a new, empty store for the named backend.
func Open(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore()
	default:
		return nil, errors.Invalidf("unknown store backend %q (valid: %s, %s)", backend, BackendMemory, BackendSQLite)
	}
}

// clone copies the frequency map so callers never share it with the store.
func clone(rec model.AnalysisRecord) model.AnalysisRecord {
	rec.Properties.CharacterFrequencyMap = maps.Clone(rec.Properties.CharacterFrequencyMap)
	if rec.Properties.CharacterFrequencyMap == nil {
		rec.Properties.CharacterFrequencyMap = map[string]int{}
	}
	return rec
}

func notFound(hash string) error {
	return errors.Wrapf(errors.ErrNotFound, "hash %s", hash)
}

func duplicate(hash string) error {
	return errors.Wrapf(errors.ErrDuplicateKey, "hash %s", hash)
}
