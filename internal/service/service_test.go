package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/divah21/stage-one-backend/internal/analyzer"
	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/logger"
	"github.com/divah21/stage-one-backend/internal/model"
	"github.com/divah21/stage-one-backend/internal/store"
)

func newTestService(t *testing.T, values ...string) *Service {
	t.Helper()
	svc := New(store.NewMemoryStore(), zap.NewNop().Sugar())
	for _, v := range values {
		_, err := svc.Create(context.Background(), v)
		require.NoError(t, err)
	}
	return svc
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "hello world")
	require.NoError(t, err)
	assert.Equal(t, analyzer.Hash("hello world"), rec.ID)
	assert.Equal(t, 2, rec.Properties.WordCount)

	_, err = svc.Create(ctx, "hello world")
	assert.True(t, errors.Is(err, errors.ErrDuplicateKey))

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalStrings)
}

func TestCreateFromAnyRejectsNonString(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, v := range []any{nil, 42.0, true, []any{"a"}, map[string]any{"x": 1}} {
		_, err := svc.CreateFromAny(ctx, v)
		require.Error(t, err, "value %v", v)
		assert.Equal(t, errors.KindInvalidType, errors.Kind(err))
	}

	rec, err := svc.CreateFromAny(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", rec.Value)
}

func TestGet(t *testing.T) {
	svc := newTestService(t, "level")
	ctx := context.Background()

	rec, err := svc.GetByValue(ctx, "level")
	require.NoError(t, err)
	assert.True(t, rec.Properties.IsPalindrome)

	byHash, err := svc.GetByHash(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Value, byHash.Value)

	_, err = svc.GetByValue(ctx, "Level")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListLengthConjunction(t *testing.T) {
	svc := newTestService(t, "abc", "abcde", "abcdefg")

	res, err := svc.List(context.Background(), model.FilterSet{MinLength: model.Int(5), MaxLength: model.Int(5)})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "abcde", res.Data[0].Value)
	assert.Equal(t, 5, *res.FiltersApplied.MinLength)
	assert.Equal(t, 5, *res.FiltersApplied.MaxLength)
}

func TestListEmptyFilter(t *testing.T) {
	svc := newTestService(t, "a", "b")

	res, err := svc.List(context.Background(), model.FilterSet{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.True(t, res.FiltersApplied.IsEmpty())

	empty := newTestService(t)
	res, err = empty.List(context.Background(), model.FilterSet{})
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Equal(t, 0, res.Count)
}

func TestListConflictingFilters(t *testing.T) {
	svc := newTestService(t, "abcdefgh")

	_, err := svc.List(context.Background(), model.FilterSet{MinLength: model.Int(10), MaxLength: model.Int(5)})
	assert.True(t, errors.Is(err, errors.ErrConflictingFilters))
}

func TestListInvalidFilter(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.List(context.Background(), model.FilterSet{ContainsCharacter: model.String("ab")})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestFilterByNaturalLanguage(t *testing.T) {
	svc := newTestService(t, "racecar", "noon", "hello", "never odd or even", "a")
	ctx := context.Background()

	res, err := svc.FilterByNaturalLanguage(ctx, "single word palindromic strings")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "single word palindromic strings", res.InterpretedQuery.Original)
	assert.Equal(t, model.FilterSet{IsPalindrome: model.Bool(true), WordCount: model.Int(1)}, res.InterpretedQuery.ParsedFilters)

	var got []string
	for _, r := range res.Data {
		got = append(got, r.Value)
	}
	assert.Equal(t, []string{"racecar", "noon", "a"}, got)
}

func TestFilterByNaturalLanguageShorterThanZero(t *testing.T) {
	svc := newTestService(t, "", "a")

	res, err := svc.FilterByNaturalLanguage(context.Background(), "strings shorter than 0")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, -1, *res.InterpretedQuery.ParsedFilters.MaxLength)
}

func TestFilterByNaturalLanguageErrors(t *testing.T) {
	svc := newTestService(t, "abc")
	ctx := context.Background()

	_, err := svc.FilterByNaturalLanguage(ctx, "xyz123")
	assert.Equal(t, errors.KindUnparseableQuery, errors.Kind(err))
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = svc.FilterByNaturalLanguage(ctx, "longer than 10 and shorter than 5")
	assert.Equal(t, errors.KindConflictingFilters, errors.Kind(err))

	_, err = svc.FilterByNaturalLanguage(ctx, "   ")
	assert.Equal(t, errors.KindInvalidInput, errors.Kind(err))
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, "one", "two")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "one"))

	_, err := svc.GetByValue(ctx, "one")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalStrings)

	assert.True(t, errors.Is(svc.Delete(ctx, "one"), errors.ErrNotFound))
}

func TestServiceOverSQLiteStore(t *testing.T) {
	s, err := store.NewSQLiteStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	svc := New(s, zap.NewNop().Sugar())
	ctx := context.Background()
	for _, v := range []string{"abc", "abcde", "abcdefg"} {
		_, err := svc.Create(ctx, v)
		require.NoError(t, err)
	}

	res, err := svc.FilterByNaturalLanguage(ctx, "strings longer than 4 containing the letter e")
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, "abcde", res.Data[0].Value)
}

func TestLogsCarryRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := New(store.NewMemoryStore(), zap.New(core).Sugar())

	ctx := logger.WithRequestID(context.Background(), "req-1")
	_, err := svc.Create(ctx, "hello")
	require.NoError(t, err)
	_, _ = svc.Create(ctx, "hello")

	stored := logs.FilterMessage("string stored").All()
	require.Len(t, stored, 1)
	assert.Equal(t, "req-1", stored[0].ContextMap()[logger.FieldRequestID])
	assert.Equal(t, analyzer.Hash("hello"), stored[0].ContextMap()[logger.FieldHash])

	dup := logs.FilterMessage("string already exists").All()
	require.Len(t, dup, 1)
	assert.Equal(t, zapcore.WarnLevel, dup[0].Level)
}
