// Package segment splits raw document text into sentences.
//
// The pipeline depends only on the Segmenter contract: one ordered sentence
// list per input text, every sentence derived from a substring of its input.
// Backends are chosen by configuration:
//
//	rule  punctuation-based splitting, no external service (default)
//	http  a sentence-split server such as an LTP deployment
//
// Either backend can be wrapped in Cached to memoise results across runs.
package segment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ppiankov/acevents/internal/cache"
	"github.com/ppiankov/acevents/internal/model"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrUnknownBackend indicates a segmenter.backend value with no implementation.
	ErrUnknownBackend = errors.New("segment: unknown backend")

	// ErrBadResponse indicates a backend answered with something other than one sentence list per input.
	ErrBadResponse = errors.New("segment: malformed backend response")
)

// Segmenter splits texts into sentences
type Segmenter interface {
	// Name identifies the backend; it namespaces cache entries
	Name() string

	// Split returns, for each input text, its sentences in order
	Split(ctx context.Context, texts []string) ([][]string, error)
}

// New creates the segmenter selected by cfg.Segmenter, wrapped in a layered
// cache when cfg.Cache.Enabled is set.
func New(cfg *model.Config, logger *slog.Logger) (Segmenter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var seg Segmenter
	switch strings.ToLower(cfg.Segmenter.Backend) {
	case "rule", "":
		seg = NewRuleSegmenter()

	case "http":
		s, err := NewHTTPSegmenter(cfg.Segmenter)
		if err != nil {
			return nil, err
		}
		seg = s

	default:
		return nil, fmt.Errorf("%w: %s (supported: rule, http)", ErrUnknownBackend, cfg.Segmenter.Backend)
	}

	if !cfg.Cache.Enabled {
		return seg, nil
	}

	layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	logger.Debug("segmentation cache enabled",
		slog.String("dir", cfg.Cache.Dir),
		slog.Duration("disk_ttl", cfg.Cache.DiskTTL))

	return NewCached(seg, layered, cfg.Cache.DiskTTL, logger), nil
}

// SplitOne segments a single text
func SplitOne(ctx context.Context, s Segmenter, text string) ([]string, error) {
	out, err := s.Split(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%w: %d results for 1 text", ErrBadResponse, len(out))
	}
	return out[0], nil
}

// defaultTimeout applies when the configuration leaves the HTTP timeout unset
const defaultTimeout = 30 * time.Second
