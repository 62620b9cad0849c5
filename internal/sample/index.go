package sample

import (
	"strings"
	"unicode/utf8"
)

// Matcher reports whether a sentence contains any event mention text
type Matcher interface {
	ContainsAny(sentence string) bool
}

// LinearMatcher tests every mention text against the sentence in turn
type LinearMatcher []string

// ContainsAny stops at the first mention found
func (m LinearMatcher) ContainsAny(sentence string) bool {
	for _, text := range m {
		if strings.Contains(sentence, text) {
			return true
		}
	}
	return false
}

// MentionIndex groups distinct mention texts by their first rune. A sentence
// is probed once per position against the bucket of the rune found there,
// which answers the same question as LinearMatcher for valid UTF-8 input.
type MentionIndex struct {
	buckets  map[rune][]string
	hasEmpty bool
	size     int
}

// NewMentionIndex indexes texts; duplicates are stored once
func NewMentionIndex(texts []string) *MentionIndex {
	idx := &MentionIndex{buckets: make(map[rune][]string)}
	seen := make(map[string]struct{}, len(texts))

	for _, text := range texts {
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		idx.size++

		if text == "" {
			idx.hasEmpty = true
			continue
		}
		first, _ := utf8.DecodeRuneInString(text)
		idx.buckets[first] = append(idx.buckets[first], text)
	}

	return idx
}

// Len returns the number of distinct texts indexed
func (idx *MentionIndex) Len() int {
	return idx.size
}

// ContainsAny reports whether any indexed text occurs in sentence
func (idx *MentionIndex) ContainsAny(sentence string) bool {
	if idx.hasEmpty {
		return true
	}
	for i, r := range sentence {
		for _, text := range idx.buckets[r] {
			if strings.HasPrefix(sentence[i:], text) {
				return true
			}
		}
	}
	return false
}
