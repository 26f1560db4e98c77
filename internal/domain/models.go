package domain

import (
	"time"
)

// UnknownPartOfSpeech is used when an entry carries no meanings
const UnknownPartOfSpeech = "Unknown"

// Meaning is one sense of a dictionary entry
type Meaning struct {
	Type         string `json:"type"`
	DefinitionTR string `json:"definition_tr"`
	ExampleEN    string `json:"example_en"`
	ExampleTR    string `json:"example_tr"`
}

// WordFamily holds morphological variants of the headword
type WordFamily struct {
	Noun      *string `json:"noun"`
	Verb      *string `json:"verb"`
	Adjective *string `json:"adjective"`
	Adverb    *string `json:"adverb"`
}

// IdiomSlang is an idiom, phrasal verb or slang usage of the headword
type IdiomSlang struct {
	Phrase    string `json:"phrase"`
	MeaningTR string `json:"meaning_tr"`
}

// DictionaryEntry is the result of a lookup
type DictionaryEntry struct {
	Word           string       `json:"word"`
	Correction     *string      `json:"correction,omitempty"`
	Pronunciation  string       `json:"pronunciation"`
	Level          string       `json:"level"`
	FrequencyScore int          `json:"frequency_score"`
	FrequencyLabel string       `json:"frequency_label"`
	WordFamily     *WordFamily  `json:"word_family,omitempty"`
	IdiomsSlang    []IdiomSlang `json:"idioms_slang,omitempty"`
	Collocations   []string     `json:"collocations"`
	Synonyms       []string     `json:"synonyms"`
	Meanings       []Meaning    `json:"meanings"`
}

// Found reports whether the entry describes a resolvable word
func (e *DictionaryEntry) Found() bool {
	return e != nil && len(e.Meanings) > 0
}

// CorrectionText returns the suggested correction, or "" when the input was not corrected
func (e *DictionaryEntry) CorrectionText() string {
	if e == nil || e.Correction == nil {
		return ""
	}
	return *e.Correction
}

// PartOfSpeech derives the part of speech from the first meaning
func (e *DictionaryEntry) PartOfSpeech() string {
	if e == nil || len(e.Meanings) == 0 || e.Meanings[0].Type == "" {
		return UnknownPartOfSpeech
	}
	return e.Meanings[0].Type
}

// HistoryItem is one entry of the lookup history
type HistoryItem struct {
	Word           string `json:"word"`
	Timestamp      int64  `json:"timestamp"` // milliseconds since the Unix epoch
	FrequencyScore int    `json:"frequency_score"`
	PartOfSpeech   string `json:"part_of_speech"`
}

// Time returns the creation instant of the history item
func (h HistoryItem) Time() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// FavoriteItem is a word the user marked as favorite
type FavoriteItem struct {
	Word           string `json:"word"`
	PartOfSpeech   string `json:"part_of_speech"`
	FrequencyScore int    `json:"frequency_score"`
}

// WordOfTheDay is the decorative daily vocabulary item
type WordOfTheDay struct {
	Word         string `json:"word"`
	DefinitionTR string `json:"definition_tr"`
	Context      string `json:"context"`
}

// FallbackWordOfTheDay is served whenever a fresh daily word cannot be produced
var FallbackWordOfTheDay = WordOfTheDay{
	Word:         "Serendipity",
	DefinitionTR: "Mutlu tesadüf",
	Context:      "Finding this app was pure serendipity.",
}

// GrammarError is one issue found by the writing coach
type GrammarError struct {
	Type        string `json:"type"`
	ErrorText   string `json:"error_text"`
	Explanation string `json:"explanation"`
	Suggestion  string `json:"suggestion"`
}

// GrammarAnalysis is the writing coach's evaluation of a text
type GrammarAnalysis struct {
	AnalysisStatus    string         `json:"analysis_status"`
	OverallSummary    string         `json:"overall_summary"`
	Tone              string         `json:"tone"`
	Errors            []GrammarError `json:"errors"`
	SuggestedRevision string         `json:"suggested_revision"`
}

// LookupRequest is the body of a lookup call
type LookupRequest struct {
	Word string `json:"word"`
}

// GrammarRequest is the body of a grammar check call
type GrammarRequest struct {
	Text string `json:"text"`
}

// GenerateRequest is the body of a free-form generation call
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse wraps free-form generated text
type GenerateResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the JSON error body returned by the backend
type ErrorResponse struct {
	Error string `json:"error"`
}
