package model

import (
	"unicode/utf8"

	"github.com/divah21/stage-one-backend/internal/errors"
)

// FilterSet is a partial record of optional predicates. A nil field imposes
// no constraint; the zero FilterSet matches every record.
type FilterSet struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f FilterSet) IsEmpty() bool {
	return f.IsPalindrome == nil && f.MinLength == nil && f.MaxLength == nil &&
		f.WordCount == nil && f.ContainsCharacter == nil
}

// Conflicting reports whether both length bounds are set and min exceeds max.
func (f FilterSet) Conflicting() bool {
	return f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength
}

// Validate rejects predicates a caller could not have produced from a
// well-formed request: negative counts and a contains_character that is not
// exactly one character.
func (f FilterSet) Validate() error {
	for name, v := range map[string]*int{
		"min_length": f.MinLength,
		"max_length": f.MaxLength,
		"word_count": f.WordCount,
	} {
		if v != nil && *v < 0 {
			return errors.Invalidf("invalid value for %s (must be a non-negative integer): %d", name, *v)
		}
	}
	if f.ContainsCharacter != nil && utf8.RuneCountInString(*f.ContainsCharacter) != 1 {
		return errors.Invalidf("invalid value for contains_character (must be single character): %q", *f.ContainsCharacter)
	}
	return nil
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// String returns a pointer to s.
func String(s string) *string { return &s }
