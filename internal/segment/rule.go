package segment

import (
	"context"
	"strings"
)

// RuleSegmenter cuts text after sentence-final punctuation. Closing quotes
// and brackets that follow the punctuation stay with the sentence, so
// `他说：“好。”然后` splits into `他说：“好。”` and `然后`.
type RuleSegmenter struct {
	terminators string
	closers     string
}

// NewRuleSegmenter creates a segmenter for Chinese text with embedded Latin punctuation
func NewRuleSegmenter() *RuleSegmenter {
	return &RuleSegmenter{
		terminators: "。！？!?；;…",
		closers:     "”’」』）)】》\"'",
	}
}

// Name returns "rule"
func (s *RuleSegmenter) Name() string {
	return "rule"
}

// Split segments each text independently; it never fails
func (s *RuleSegmenter) Split(ctx context.Context, texts []string) ([][]string, error) {
	out := make([][]string, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = s.SplitText(text)
	}
	return out, nil
}

// SplitText returns the sentences of text; blank pieces are dropped
func (s *RuleSegmenter) SplitText(text string) []string {
	var sentences []string
	start := 0
	atBoundary := false

	for i, r := range text {
		terminator := strings.ContainsRune(s.terminators, r)
		if atBoundary && !terminator && !strings.ContainsRune(s.closers, r) {
			sentences = appendSentence(sentences, text[start:i])
			start = i
			atBoundary = false
		}
		if terminator {
			atBoundary = true
		}
	}

	return appendSentence(sentences, text[start:])
}

func appendSentence(sentences []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentences
	}
	return append(sentences, s)
}
