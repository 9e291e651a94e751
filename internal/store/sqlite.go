package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/divah21/stage-one-backend/internal/analyzer"
	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/model"
)

// SQLiteStore implements Store on a private in-memory SQLite database.
// Contents live as long as the store and are dropped on Close.
type SQLiteStore struct {
	db   *sql.DB
	name string
}

var (
	entropyMu sync.Mutex
	entropy   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func newDBName() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return "strings-" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewSQLiteStore creates an empty in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	name := newDBName()
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps the in-memory database alive and serializes access.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &SQLiteStore{db: db, name: name}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS strings (
		id                TEXT PRIMARY KEY,
		value             TEXT NOT NULL,
		length            INTEGER NOT NULL,
		is_palindrome     INTEGER NOT NULL,
		unique_characters INTEGER NOT NULL,
		word_count        INTEGER NOT NULL,
		frequency         TEXT NOT NULL,
		created_at        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_strings_palindrome ON strings(is_palindrome);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Insert(ctx context.Context, rec model.AnalysisRecord) (*model.AnalysisRecord, error) {
	freq, err := json.Marshal(rec.Properties.CharacterFrequencyMap)
	if err != nil {
		return nil, fmt.Errorf("encode frequency map: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO strings (id, value, length, is_palindrome, unique_characters, word_count, frequency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Value, rec.Properties.Length, rec.Properties.IsPalindrome,
		rec.Properties.UniqueCharacters, rec.Properties.WordCount, string(freq),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert string: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, duplicate(rec.ID)
	}
	return &rec, nil
}

func (s *SQLiteStore) GetByHash(ctx context.Context, hash string) (*model.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, value, length, is_palindrome, unique_characters, word_count, frequency, created_at
		 FROM strings WHERE id = ?`, hash)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(hash)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SQLiteStore) GetByValue(ctx context.Context, value string) (*model.AnalysisRecord, error) {
	return s.GetByHash(ctx, analyzer.Hash(value))
}

func (s *SQLiteStore) DeleteByValue(ctx context.Context, value string) error {
	hash := analyzer.Hash(value)
	res, err := s.db.ExecContext(ctx, `DELETE FROM strings WHERE id = ?`, hash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(hash)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, value, length, is_palindrome, unique_characters, word_count, frequency, created_at
		 FROM strings ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	var freq, createdAt string

	err := row.Scan(
		&rec.ID, &rec.Value, &rec.Properties.Length, &rec.Properties.IsPalindrome,
		&rec.Properties.UniqueCharacters, &rec.Properties.WordCount, &freq, &createdAt,
	)
	if err != nil {
		return rec, err
	}

	rec.Properties.SHA256Hash = rec.ID
	rec.Properties.CharacterFrequencyMap = map[string]int{}
	if err := json.Unmarshal([]byte(freq), &rec.Properties.CharacterFrequencyMap); err != nil {
		return rec, fmt.Errorf("decode frequency map: %w", err)
	}
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return rec, fmt.Errorf("parse created_at: %w", err)
	}
	return rec, nil
}
