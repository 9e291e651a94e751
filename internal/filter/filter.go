// Package filter evaluates a model.FilterSet against analysis records.
package filter

import (
	"strings"

	"github.com/divah21/stage-one-backend/internal/model"
)

// Matches reports whether rec satisfies every predicate present in f.
func Matches(rec model.AnalysisRecord, f model.FilterSet) bool {
	p := rec.Properties
	if f.IsPalindrome != nil && p.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && p.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && p.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && p.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil && !strings.Contains(rec.Value, *f.ContainsCharacter) {
		return false
	}
	return true
}

// Apply returns the records matching f, in input order. recs is not modified.
func Apply(recs []model.AnalysisRecord, f model.FilterSet) []model.AnalysisRecord {
	out := make([]model.AnalysisRecord, 0, len(recs))
	for _, r := range recs {
		if Matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}
