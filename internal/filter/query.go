package filter

import (
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/model"
)

// Query parameter names accepted by FromQuery.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

var validate = validator.New()

// FromQuery converts string query parameters into a FilterSet. Booleans are
// accepted only as exact "true"/"false" tokens, integers must be non-negative
// base-10 numbers and contains_character must be exactly one character.
// A parameter that is present but empty is malformed, not absent.
func FromQuery(q url.Values) (model.FilterSet, error) {
	var f model.FilterSet

	if vals, ok := q[ParamIsPalindrome]; ok {
		v := first(vals)
		if err := validate.Var(v, "required,oneof=true false"); err != nil {
			return f, errors.Invalidf("invalid value for %s (must be true or false): %q", ParamIsPalindrome, v)
		}
		f.IsPalindrome = model.Bool(v == "true")
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{ParamMinLength, &f.MinLength},
		{ParamMaxLength, &f.MaxLength},
		{ParamWordCount, &f.WordCount},
	}
	for _, p := range ints {
		vals, ok := q[p.name]
		if !ok {
			continue
		}
		n, err := nonNegativeInt(first(vals))
		if err != nil {
			return f, errors.Invalidf("invalid value for %s (must be a non-negative integer): %q", p.name, first(vals))
		}
		*p.dst = model.Int(n)
	}

	if vals, ok := q[ParamContainsCharacter]; ok {
		v := first(vals)
		if err := validate.Var(v, "len=1"); err != nil {
			return f, errors.Invalidf("invalid value for %s (must be single character): %q", ParamContainsCharacter, v)
		}
		f.ContainsCharacter = model.String(v)
	}

	return f, nil
}

// ToQuery is the inverse of FromQuery.
func ToQuery(f model.FilterSet) url.Values {
	q := url.Values{}
	if f.IsPalindrome != nil {
		q.Set(ParamIsPalindrome, strconv.FormatBool(*f.IsPalindrome))
	}
	if f.MinLength != nil {
		q.Set(ParamMinLength, strconv.Itoa(*f.MinLength))
	}
	if f.MaxLength != nil {
		q.Set(ParamMaxLength, strconv.Itoa(*f.MaxLength))
	}
	if f.WordCount != nil {
		q.Set(ParamWordCount, strconv.Itoa(*f.WordCount))
	}
	if f.ContainsCharacter != nil {
		q.Set(ParamContainsCharacter, *f.ContainsCharacter)
	}
	return q
}

func nonNegativeInt(s string) (int, error) {
	if err := validate.Var(s, "required,number"); err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
