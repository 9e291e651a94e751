package nlquery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/divah21/stage-one-backend/internal/model"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		phrase string
		want   model.FilterSet
	}{
		{
			phrase: "single word palindromic strings",
			want:   model.FilterSet{WordCount: model.Int(1), IsPalindrome: model.Bool(true)},
		},
		{
			phrase: "longer than 10",
			want:   model.FilterSet{MinLength: model.Int(11)},
		},
		{
			phrase: "strings longer than 10 characters",
			want:   model.FilterSet{MinLength: model.Int(11)},
		},
		{
			phrase: "shorter than 5",
			want:   model.FilterSet{MaxLength: model.Int(4)},
		},
		{
			phrase: "shorter than 0",
			want:   model.FilterSet{MaxLength: model.Int(-1)},
		},
		{
			phrase: "palindromic strings that contain the first vowel",
			want:   model.FilterSet{IsPalindrome: model.Bool(true), ContainsCharacter: model.String("a")},
		},
		{
			phrase: "strings containing the letter z",
			want:   model.FilterSet{ContainsCharacter: model.String("z")},
		},
		{
			phrase: "Strings Containing Letter Q",
			want:   model.FilterSet{ContainsCharacter: model.String("q")},
		},
		{
			phrase: "two-word strings",
			want:   model.FilterSet{WordCount: model.Int(2)},
		},
		{
			phrase: "one word",
			want:   model.FilterSet{WordCount: model.Int(1)},
		},
		{
			phrase: "xyz123",
			want:   model.FilterSet{},
		},
		{
			phrase: "",
			want:   model.FilterSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.phrase))
		})
	}
}

func TestTranslateLetterAOverridesContains(t *testing.T) {
	got := Translate("strings containing the letter a or z")
	assert.Equal(t, "a", *got.ContainsCharacter)

	got = Translate("contains z and the first vowel")
	assert.Equal(t, "a", *got.ContainsCharacter)
}

func TestTranslateSingleWordWinsOverTwoWords(t *testing.T) {
	res := Explain("single word or two word strings")

	assert.Equal(t, 1, *res.Filters.WordCount)
	assert.Equal(t, []string{"single_word"}, res.Fired)
}

func TestTranslateConflictingBoundsAreReturned(t *testing.T) {
	got := Translate("longer than 10 and shorter than 5")

	assert.Equal(t, 11, *got.MinLength)
	assert.Equal(t, 4, *got.MaxLength)
	assert.True(t, got.Conflicting())
}

func TestTranslateOverflowingNumberDoesNotFire(t *testing.T) {
	got := Translate("longer than 99999999999999999999999")
	assert.True(t, got.IsEmpty())
}

func TestExplainReportsRulesInOrder(t *testing.T) {
	res := Explain("palindromes longer than 3 containing the letter b")

	assert.Equal(t, []string{"palindrome", "longer_than", "contains_letter"}, res.Fired)
	assert.Equal(t, "b", *res.Filters.ContainsCharacter)
}

func TestRules(t *testing.T) {
	assert.Equal(t, []string{
		"palindrome", "single_word", "two_words", "longer_than",
		"shorter_than", "contains_letter", "first_vowel",
	}, Rules())
}

func TestTranslateUnicodeSpaces(t *testing.T) {
	assert.Equal(t, 1, *Translate("single\u00a0word strings").WordCount)
	assert.Equal(t, 2, *Translate("two\u2003word strings").WordCount)
	assert.Equal(t, "z", *Translate("strings contains\u00a0the\u00a0letter\u202fz").ContainsCharacter)
}
