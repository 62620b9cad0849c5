package segment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/acevents/internal/cache"
)

// Cached memoises another segmenter. Only texts missing from the cache are
// forwarded, in one batch, to the wrapped backend.
type Cached struct {
	next   Segmenter
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps next with c; entries live for ttl (zero means the cache default)
func NewCached(next Segmenter, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{next: next, cache: c, ttl: ttl, logger: logger}
}

// Name returns the wrapped backend's name
func (s *Cached) Name() string {
	return s.next.Name()
}

// Split serves cached texts and segments the rest
func (s *Cached) Split(ctx context.Context, texts []string) ([][]string, error) {
	out := make([][]string, len(texts))
	keys := make([]string, len(texts))

	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		keys[i] = cache.Key(s.next.Name(), text)
		if data, found := s.cache.Get(keys[i]); found {
			var sentences []string
			if err := json.Unmarshal(data, &sentences); err == nil {
				out[i] = sentences
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	fresh, err := s.next.Split(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("%w: %d results for %d texts", ErrBadResponse, len(fresh), len(missTexts))
	}

	for j, i := range missIdx {
		out[i] = fresh[j]

		data, err := json.Marshal(fresh[j])
		if err != nil {
			continue
		}
		if err := s.cache.Set(keys[i], data, s.ttl); err != nil {
			s.logger.Warn("segmentation cache write failed", slog.Any("err", err))
		}
	}

	return out, nil
}
