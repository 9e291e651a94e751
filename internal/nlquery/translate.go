// Package nlquery translates a small set of English phrasings into a
// model.FilterSet.
//
// Rules run in a fixed order and independently of each other; a later rule may
// overwrite a field an earlier rule set. In particular the "first vowel" /
// "letter a" rule overrides whatever character the "contains" rule captured.
package nlquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/divah21/stage-one-backend/internal/model"
)

// Rule is one translation step. Apply receives the regexp submatches and the
// filter set built so far; it reports whether it changed anything.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Apply   func(m []string, f *model.FilterSet) bool
}

var rules = []Rule{
	{
		Name:    "palindrome",
		Pattern: regexp.MustCompile(`(?i)palindrom`),
		Apply: func(_ []string, f *model.FilterSet) bool {
			f.IsPalindrome = model.Bool(true)
			return true
		},
	},
	{
		Name:    "single_word",
		Pattern: regexp.MustCompile(`(?i)single[\s\p{Zs}-]word|one[\s\p{Zs}-]word`),
		Apply: func(_ []string, f *model.FilterSet) bool {
			f.WordCount = model.Int(1)
			return true
		},
	},
	{
		Name:    "two_words",
		Pattern: regexp.MustCompile(`(?i)two[\s\p{Zs}-]word`),
		Apply: func(_ []string, f *model.FilterSet) bool {
			// single_word takes precedence
			if f.WordCount != nil {
				return false
			}
			f.WordCount = model.Int(2)
			return true
		},
	},
	{
		Name:    "longer_than",
		Pattern: regexp.MustCompile(`(?i)longer than (\d+)`),
		Apply: func(m []string, f *model.FilterSet) bool {
			n, ok := atoi(m[1])
			if !ok {
				return false
			}
			f.MinLength = model.Int(n + 1)
			return true
		},
	},
	{
		Name:    "shorter_than",
		Pattern: regexp.MustCompile(`(?i)shorter than (\d+)`),
		Apply: func(m []string, f *model.FilterSet) bool {
			n, ok := atoi(m[1])
			if !ok {
				return false
			}
			f.MaxLength = model.Int(n - 1)
			return true
		},
	},
	{
		Name:    "contains_letter",
		Pattern: regexp.MustCompile(`(?i)contain(?:s|ing)?[\s\p{Zs}]+(?:the[\s\p{Zs}]+)?(?:letter[\s\p{Zs}]+)?([a-z])`),
		Apply: func(m []string, f *model.FilterSet) bool {
			f.ContainsCharacter = model.String(strings.ToLower(m[1]))
			return true
		},
	},
	{
		Name:    "first_vowel",
		Pattern: regexp.MustCompile(`(?i)first vowel|letter a`),
		Apply: func(_ []string, f *model.FilterSet) bool {
			f.ContainsCharacter = model.String("a")
			return true
		},
	},
}

// Result is a translation together with the rules that fired, in order.
type Result struct {
	Filters model.FilterSet `json:"parsed_filters"`
	Fired   []string        `json:"rules_fired"`
}

// Translate maps phrase to a filter set. A phrase no rule recognises yields
// an empty FilterSet; callers treat that as an unparseable query.
func Translate(phrase string) model.FilterSet {
	return Explain(phrase).Filters
}

// Explain is Translate plus the names of the rules that fired.
func Explain(phrase string) Result {
	var res Result
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(phrase)
		if m == nil {
			continue
		}
		if r.Apply(m, &res.Filters) {
			res.Fired = append(res.Fired, r.Name)
		}
	}
	return res
}

// Rules returns the rule names in evaluation order.
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
