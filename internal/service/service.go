// Package service orchestrates the analyzer, the record store, the filter
// evaluator and the natural language translator.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/divah21/stage-one-backend/internal/analyzer"
	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/filter"
	"github.com/divah21/stage-one-backend/internal/logger"
	"github.com/divah21/stage-one-backend/internal/model"
	"github.com/divah21/stage-one-backend/internal/nlquery"
	"github.com/divah21/stage-one-backend/internal/store"
)

// Service serves create, lookup, list, natural language and delete requests
// over a single shared store.
type Service struct {
	store store.Store
	log   *zap.SugaredLogger
}

// New returns a Service over s. A nil log uses the global logger.
func New(s store.Store, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = logger.Logger
	}
	return &Service{store: s, log: log.With(logger.FieldComponent, "service")}
}

func (svc *Service) ctxLogger(ctx context.Context) *zap.SugaredLogger {
	return logger.FromContext(ctx, svc.log)
}

// Create analyzes value and stores the result.
func (svc *Service) Create(ctx context.Context, value string) (*model.AnalysisRecord, error) {
	log := svc.ctxLogger(ctx)
	rec := analyzer.Analyze(value)
	log.Debugw("analyzed string", logger.FieldHash, rec.ID, logger.FieldLength, rec.Properties.Length)

	stored, err := svc.store.Insert(ctx, rec)
	if err != nil {
		if errors.Is(err, errors.ErrDuplicateKey) {
			log.Warnw("string already exists", logger.FieldHash, rec.ID)
		}
		return nil, err
	}

	log.Infow("string stored", logger.FieldHash, stored.ID)
	return stored, nil
}

// CreateFromAny is Create for an untyped decoded payload. Anything other
// than a string is rejected with errors.ErrInvalidType.
func (svc *Service) CreateFromAny(ctx context.Context, v any) (*model.AnalysisRecord, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, `"value" must be a string, got %T`, v)
	}
	return svc.Create(ctx, s)
}

// GetByValue returns the stored analysis of value.
func (svc *Service) GetByValue(ctx context.Context, value string) (*model.AnalysisRecord, error) {
	rec, err := svc.store.GetByValue(ctx, value)
	if err != nil {
		svc.logNotFound(ctx, err, analyzer.Hash(value))
		return nil, err
	}
	return rec, nil
}

// GetByHash returns the stored analysis with the given content hash.
func (svc *Service) GetByHash(ctx context.Context, hash string) (*model.AnalysisRecord, error) {
	rec, err := svc.store.GetByHash(ctx, strings.ToLower(hash))
	if err != nil {
		svc.logNotFound(ctx, err, hash)
		return nil, err
	}
	return rec, nil
}

// List returns the stored analyses matching f. f is echoed verbatim in the
// result.
func (svc *Service) List(ctx context.Context, f model.FilterSet) (*model.ListResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.Conflicting() {
		return nil, conflict(f)
	}
	return svc.list(ctx, f)
}

// list is the filter path shared by List and FilterByNaturalLanguage.
// Translated filters skip Validate: "shorter than 0" yields max_length -1,
// which matches nothing.
func (svc *Service) list(ctx context.Context, f model.FilterSet) (*model.ListResult, error) {
	all, err := svc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	data := filter.Apply(all, f)

	svc.ctxLogger(ctx).Infow("listed strings",
		logger.FieldFilters, f,
		logger.FieldCount, len(data),
		logger.FieldTotalCount, len(all))

	return &model.ListResult{Data: data, Count: len(data), FiltersApplied: f}, nil
}

// FilterByNaturalLanguage translates phrase into filters and lists the
// matching analyses.
func (svc *Service) FilterByNaturalLanguage(ctx context.Context, phrase string) (*model.NaturalLanguageResult, error) {
	log := svc.ctxLogger(ctx)
	if strings.TrimSpace(phrase) == "" {
		return nil, errors.Invalidf(`missing or invalid "query" parameter`)
	}

	parsed := nlquery.Translate(phrase)
	if parsed.IsEmpty() {
		log.Warnw("natural language query not understood", logger.FieldQuery, phrase)
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrUnparseableQuery, "query %q", phrase),
			`try phrases like "single word palindromic strings" or "strings longer than 10 characters"`)
	}
	if parsed.Conflicting() {
		log.Warnw("natural language query has conflicting filters", logger.FieldQuery, phrase, logger.FieldFilters, parsed)
		return nil, conflict(parsed)
	}

	res, err := svc.list(ctx, parsed)
	if err != nil {
		return nil, err
	}

	return &model.NaturalLanguageResult{
		Data:  res.Data,
		Count: res.Count,
		InterpretedQuery: model.InterpretedQuery{
			Original:      phrase,
			ParsedFilters: parsed,
		},
	}, nil
}

// Delete removes the stored analysis of value.
func (svc *Service) Delete(ctx context.Context, value string) error {
	hash := analyzer.Hash(value)
	if err := svc.store.DeleteByValue(ctx, value); err != nil {
		svc.logNotFound(ctx, err, hash)
		return err
	}
	svc.ctxLogger(ctx).Infow("string deleted", logger.FieldHash, hash)
	return nil
}

// Stats summarizes the store at call time.
func (svc *Service) Stats(ctx context.Context) (*model.Stats, error) {
	return svc.store.Stats(ctx)
}

func (svc *Service) logNotFound(ctx context.Context, err error, hash string) {
	if errors.Is(err, errors.ErrNotFound) {
		svc.ctxLogger(ctx).Warnw("string not found", logger.FieldHash, hash)
	}
}

func conflict(f model.FilterSet) error {
	return errors.Wrapf(errors.ErrConflictingFilters, "min_length %d > max_length %d", *f.MinLength, *f.MaxLength)
}
