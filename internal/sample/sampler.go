// Package sample generates Non-event examples from raw corpus sentences.
package sample

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"regexp"

	"github.com/ppiankov/acevents/internal/model"
	"github.com/ppiankov/acevents/internal/segment"
)

// noise matches characters that do not count towards a sentence's length:
// Latin letters, brackets, dots, underscores, slashes and curly double quotes.
var noise = regexp.MustCompile(`[A-Za-z()\[\]._/“”]`)

// StripNoise removes the noise class from s
func StripNoise(s string) string {
	return noise.ReplaceAllString(s, "")
}

// Options controls the sampler
type Options struct {
	// LinearScan tests mentions one by one instead of through a MentionIndex
	LinearScan bool

	// StoreStripped tests containment on, and stores, the noise-stripped
	// sentence rather than the sentence as segmented
	StoreStripped bool

	Logger *slog.Logger
}

// NegativeSampler turns raw documents into Non-event sentences that share no
// text with any event mention.
type NegativeSampler struct {
	segmenter segment.Segmenter
	opts      Options
	logger    *slog.Logger
}

// Stats counts what happened to the segmented sentences
type Stats struct {
	Documents int
	Sentences int
	TooShort  int // Noise-stripped length of two runes or fewer
	Contained int // Contains a mention text
	Kept      int
}

// NewNegativeSampler creates a sampler segmenting with seg
func NewNegativeSampler(seg segment.Segmenter, opts Options) *NegativeSampler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NegativeSampler{segmenter: seg, opts: opts, logger: logger}
}

// Sample walks docs in order and returns the surviving sentences in
// traversal order. The first document or segmentation error aborts the walk.
func (s *NegativeSampler) Sample(ctx context.Context, docs iter.Seq2[model.RawDocument, error], mentions []model.EventMention) ([]model.NegativeExample, Stats, error) {
	matcher := s.matcher(mentions)

	var negatives []model.NegativeExample
	var stats Stats

	for doc, err := range docs {
		if err != nil {
			return nil, stats, err
		}
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.Documents++

		if doc.Text == "" {
			continue
		}

		sentences, err := segment.SplitOne(ctx, s.segmenter, doc.Text)
		if err != nil {
			return nil, stats, fmt.Errorf("segment %s: %w", doc.Path, err)
		}

		before := len(negatives)
		negatives = s.filter(negatives, sentences, matcher, &stats)

		s.logger.Debug("document sampled",
			slog.String("path", doc.Path),
			slog.Int("sentences", len(sentences)),
			slog.Int("kept", len(negatives)-before))
	}

	return negatives, stats, nil
}

// Filter applies the length and containment rules to already segmented
// sentences
func (s *NegativeSampler) Filter(sentences []string, mentions []model.EventMention) []model.NegativeExample {
	var stats Stats
	return s.filter(nil, sentences, s.matcher(mentions), &stats)
}

func (s *NegativeSampler) filter(dst []model.NegativeExample, sentences []string, matcher Matcher, stats *Stats) []model.NegativeExample {
	for _, sentence := range sentences {
		stats.Sentences++

		stripped := StripNoise(sentence)
		if model.TextLen(stripped) <= 2 {
			stats.TooShort++
			continue
		}

		candidate := sentence
		if s.opts.StoreStripped {
			candidate = stripped
		}

		if matcher.ContainsAny(candidate) {
			stats.Contained++
			continue
		}

		stats.Kept++
		dst = append(dst, model.NegativeExample{Text: candidate})
	}
	return dst
}

func (s *NegativeSampler) matcher(mentions []model.EventMention) Matcher {
	texts := make([]string, len(mentions))
	for i, m := range mentions {
		texts[i] = m.Text
	}

	if s.opts.LinearScan {
		return LinearMatcher(texts)
	}
	return NewMentionIndex(texts)
}
