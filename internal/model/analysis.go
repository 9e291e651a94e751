// Package model defines the core string analysis data types.
package model

import "time"

// AnalysisRecord is the stored result of analyzing one string.
// Records are immutable once created.
type AnalysisRecord struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Properties are the values derived from AnalysisRecord.Value.
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// Stats summarizes the live contents of a store.
type Stats struct {
	TotalStrings int `json:"total_strings"`
	Palindromes  int `json:"palindromes"`
}

// ListResult is the response to a structured list request.
type ListResult struct {
	Data           []AnalysisRecord `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied FilterSet        `json:"filters_applied"`
}

// InterpretedQuery records how a natural language query was understood.
type InterpretedQuery struct {
	Original      string    `json:"original"`
	ParsedFilters FilterSet `json:"parsed_filters"`
}

// NaturalLanguageResult is the response to a natural language filter request.
type NaturalLanguageResult struct {
	Data             []AnalysisRecord `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}
