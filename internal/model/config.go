package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the complete acevents configuration.
// Keys are shared by the YAML config file, ACEVENTS_* environment variables and flags.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus" mapstructure:"corpus"`
	Segmenter SegmenterConfig `yaml:"segmenter" mapstructure:"segmenter"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Sampling  SamplingConfig  `yaml:"sampling" mapstructure:"sampling"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// CorpusConfig locates the ACE corpus on disk
type CorpusConfig struct {
	Root             string   `yaml:"root" mapstructure:"root"`                           // Directory holding one subdirectory per genre
	Genres           []string `yaml:"genres" mapstructure:"genres"`                       // Subset of bn, nw, wl
	AnnotationSuffix string   `yaml:"annotation_suffix" mapstructure:"annotation_suffix"` // Event annotation files
	RawSuffix        string   `yaml:"raw_suffix" mapstructure:"raw_suffix"`               // Raw source documents
	Encoding         string   `yaml:"encoding" mapstructure:"encoding"`                   // Charset label of raw documents
}

// SegmenterConfig selects and configures the sentence segmentation backend
type SegmenterConfig struct {
	Backend           string        `yaml:"backend" mapstructure:"backend"` // rule or http
	URL               string        `yaml:"url,omitempty" mapstructure:"url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls memoisation of segmentation results across runs
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// SamplingConfig controls negative sampling and shuffling
type SamplingConfig struct {
	NegativeCap   int    `yaml:"negative_cap" mapstructure:"negative_cap"`
	Seed          *int64 `yaml:"seed,omitempty" mapstructure:"seed"`     // nil draws a fresh seed per run
	LinearScan    bool   `yaml:"linear_scan" mapstructure:"linear_scan"` // Skip the mention index
	StoreStripped bool   `yaml:"store_stripped" mapstructure:"store_stripped"`
}

// OutputConfig controls where and how the dataset is written
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Manifest bool   `yaml:"manifest" mapstructure:"manifest"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the configuration of the reference run:
// corpus under raw/Chinese, 400 negatives, splits written to data/.
func DefaultConfig() *Config {
	cacheDir := filepath.Join(".acevents", "cache")
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "acevents")
	}

	return &Config{
		Corpus: CorpusConfig{
			Root:             filepath.Join("raw", "Chinese"),
			Genres:           []string{string(GenreBroadcastNews), string(GenreNewswire), string(GenreWeblog)},
			AnnotationSuffix: ".apf.xml",
			RawSuffix:        ".sgm",
			Encoding:         "utf-8",
		},
		Segmenter: SegmenterConfig{
			Backend:           "rule",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
			UserAgent:         "acevents/0.1",
		},
		Cache: CacheConfig{
			Enabled:   false, // Opt-in: a rerun recomputes every segmentation
			Dir:       cacheDir,
			MemoryTTL: time.Hour,
			DiskTTL:   30 * 24 * time.Hour,
		},
		Sampling: SamplingConfig{
			NegativeCap: 400,
		},
		Output: OutputConfig{
			Dir:      "data",
			Manifest: true,
		},
	}
}

// Validate checks the fields the pipeline cannot run without
func (c *Config) Validate() error {
	if c.Corpus.Root == "" {
		return fmt.Errorf("corpus.root must be set")
	}
	if len(c.Corpus.Genres) == 0 {
		return fmt.Errorf("corpus.genres must name at least one genre")
	}
	for _, g := range c.Corpus.Genres {
		if _, err := ParseGenre(g); err != nil {
			return fmt.Errorf("corpus.genres: %w", err)
		}
	}
	if c.Corpus.AnnotationSuffix == "" || c.Corpus.RawSuffix == "" {
		return fmt.Errorf("corpus.annotation_suffix and corpus.raw_suffix must be set")
	}
	if c.Sampling.NegativeCap < 0 {
		return fmt.Errorf("sampling.negative_cap cannot be negative")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must be set")
	}
	return nil
}

// GenreList returns the configured genres as typed values.
// Call Config.Validate first; unparseable entries are skipped.
func (c CorpusConfig) GenreList() []Genre {
	genres := make([]Genre, 0, len(c.Genres))
	for _, g := range c.Genres {
		if parsed, err := ParseGenre(g); err == nil {
			genres = append(genres, parsed)
		}
	}
	return genres
}
