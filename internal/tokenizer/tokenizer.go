// Package tokenizer provides the lexical normalization shared by the
// index, the ranker, and the verdict engine.
package tokenizer

import (
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// stopWords are excluded from claim/snippet overlap so that shared
// function words never count as topical agreement. Negation words are
// deliberately absent: polarity is handled by the rule table, not here.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "for": {}, "as": {}, "at": {},
	"by": {}, "with": {}, "from": {},
	"and": {}, "or": {}, "that": {}, "this": {}, "it": {}, "its": {},
}

// Tokenize converts text into lowercase tokens split on non-alphanumeric
// characters. Empty tokens are dropped.
func Tokenize(text string) []string {
	split := nonAlphanumericRegex.Split(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(split))
	for _, s := range split {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// ContentTerms returns the unique, stop-word-filtered terms of text
func ContentTerms(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		terms[tok] = struct{}{}
	}
	return terms
}

// IsStopWord reports whether the term carries no topical content
func IsStopWord(term string) bool {
	_, ok := stopWords[term]
	return ok
}
