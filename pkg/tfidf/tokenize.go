// Package tfidf builds term-weighted vectors over movie descriptions.
package tfidf

import (
	"regexp"
	"strings"

	"github.com/orsinium-labs/stopwords"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

type wordList interface {
	Contains(word string) bool
}

// Tokenizer lowercases text, extracts word tokens and drops stop words.
type Tokenizer struct {
	stop  wordList
	extra map[string]bool
}

// NewTokenizer returns a tokenizer using the English stop-word list.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		stop:  stopwords.MustGet("en"),
		extra: make(map[string]bool),
	}
}

// AddStopWord adds a custom ignored word.
func (t *Tokenizer) AddStopWord(word string) {
	t.extra[strings.ToLower(word)] = true
}

// IsStopWord reports whether word is ignored.
func (t *Tokenizer) IsStopWord(word string) bool {
	return t.extra[word] || t.stop.Contains(word)
}

// Tokenize splits text into lowercase terms in document order.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := words[:0]
	for _, w := range words {
		if !t.IsStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}
