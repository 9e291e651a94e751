// Package analyzer derives identity and properties from a raw string.
//
// Characters are counted as Unicode code points (Go runes): Length,
// UniqueCharacters, the keys of CharacterFrequencyMap and the palindrome
// reversal all operate on runes, so the frequency counts always sum to Length.
package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/divah21/stage-one-backend/internal/model"
)

// Hash returns the lowercase hex SHA-256 digest of value's bytes.
// It is the record identity used by every store.
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Analyze computes the full record for value. Only CreatedAt depends on
// anything other than value.
func Analyze(value string) model.AnalysisRecord {
	return analyzeAt(value, time.Now().UTC())
}

func analyzeAt(value string, now time.Time) model.AnalysisRecord {
	hash := Hash(value)
	freq := FrequencyMap(value)

	return model.AnalysisRecord{
		ID:    hash,
		Value: value,
		Properties: model.Properties{
			Length:                utf8.RuneCountInString(value),
			IsPalindrome:          IsPalindrome(value),
			UniqueCharacters:      len(freq),
			WordCount:             WordCount(value),
			SHA256Hash:            hash,
			CharacterFrequencyMap: freq,
		},
		CreatedAt: now,
	}
}

// IsPalindrome reports whether value, lowercased and with all whitespace
// removed, reads the same in both directions. The empty string is a palindrome.
func IsPalindrome(value string) bool {
	cleaned := make([]rune, 0, len(value))
	for _, r := range strings.ToLower(value) {
		if !unicode.IsSpace(r) {
			cleaned = append(cleaned, r)
		}
	}
	for i, j := 0, len(cleaned)-1; i < j; i, j = i+1, j-1 {
		if cleaned[i] != cleaned[j] {
			return false
		}
	}
	return true
}

// WordCount counts maximal runs of non-whitespace characters.
func WordCount(value string) int {
	return len(strings.Fields(value))
}

// FrequencyMap counts each distinct character of value, case-sensitive and
// including whitespace.
func FrequencyMap(value string) map[string]int {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}
	return freq
}
