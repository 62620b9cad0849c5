// Package pipeline wires discovery, extraction, sampling and assembly into
// one dataset build.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/acevents/internal/corpus"
	"github.com/ppiankov/acevents/internal/dataset"
	"github.com/ppiankov/acevents/internal/extract"
	"github.com/ppiankov/acevents/internal/model"
	"github.com/ppiankov/acevents/internal/sample"
	"github.com/ppiankov/acevents/internal/segment"
)

// ManifestFile is written next to the split files when output.manifest is set
const ManifestFile = "manifest.json"

// Pipeline orchestrates a complete dataset build
type Pipeline struct {
	config      *model.Config
	layout      corpus.Layout
	annotations *extract.AnnotationExtractor
	loader      *extract.RawTextLoader
	segmenter   segment.Segmenter
	sampler     *sample.NegativeSampler
	assembler   *dataset.Assembler
	writer      *dataset.Writer
	renderer    *Renderer
	logger      *slog.Logger
}

// NewPipeline creates a pipeline using the segmenter selected by cfg
func NewPipeline(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	seg, err := segment.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create segmenter: %w", err)
	}

	return NewPipelineWithSegmenter(cfg, seg, os.Stdout, logger), nil
}

// NewPipelineWithSegmenter creates a pipeline around an existing segmenter,
// printing its summary to out
func NewPipelineWithSegmenter(cfg *model.Config, seg segment.Segmenter, out io.Writer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		config:      cfg,
		layout:      corpus.LayoutFromConfig(cfg.Corpus),
		annotations: extract.NewAnnotationExtractor(),
		loader:      extract.NewRawTextLoader(cfg.Corpus.Encoding, logger),
		segmenter:   seg,
		sampler: sample.NewNegativeSampler(seg, sample.Options{
			LinearScan:    cfg.Sampling.LinearScan,
			StoreStripped: cfg.Sampling.StoreStripped,
			Logger:        logger,
		}),
		assembler: dataset.NewAssembler(cfg.Sampling.NegativeCap, cfg.Sampling.Seed),
		writer:    dataset.NewWriter(cfg.Output.Dir),
		renderer:  NewRenderer(out),
		logger:    logger,
	}
}

// Result contains the outcome of a build
type Result struct {
	Dataset      *model.Dataset
	Summary      *model.Summary
	ManifestPath string // Empty when no manifest was written
}

// Run builds and writes the dataset. Nothing is written unless every step
// before the write succeeds.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	// 1. Extract event mentions from every genre
	mentions, err := p.ExtractMentions(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract mentions: %w", err)
	}

	// 2. Drop short mention values corpus-wide
	mentions, dropped := extract.FilterShort(mentions)
	p.logger.Info("mentions extracted",
		slog.Int("kept", len(mentions)),
		slog.Int("dropped_short", dropped))

	// 3. Sample negatives from the raw documents
	negatives, stats, err := p.sampler.Sample(ctx, p.Documents(), mentions)
	if err != nil {
		return nil, fmt.Errorf("sample negatives: %w", err)
	}
	p.logger.Info("negatives sampled",
		slog.Int("documents", stats.Documents),
		slog.Int("sentences", stats.Sentences),
		slog.Int("too_short", stats.TooShort),
		slog.Int("contain_mention", stats.Contained),
		slog.Int("kept", stats.Kept))

	mentionCount, candidates := len(mentions), len(negatives)

	// 4. Shuffle, cap, merge and split
	ds := p.assembler.Assemble(mentions, negatives)

	// 5. Summarise
	summary := p.summarize(ds, mentionCount, dropped, candidates)
	result := &Result{Dataset: ds, Summary: summary}

	var extras []dataset.Extra
	if p.config.Output.Manifest {
		data, err := p.renderer.Manifest(summary)
		if err != nil {
			return nil, err
		}
		extras = append(extras, dataset.Extra{Name: ManifestFile, Data: data})
	}

	// 6. Persist the splits and the manifest together
	if err := p.writer.Write(ds, extras...); err != nil {
		return nil, fmt.Errorf("write dataset: %w", err)
	}
	if len(extras) > 0 {
		result.ManifestPath = filepath.Join(p.config.Output.Dir, ManifestFile)
	}

	p.renderer.RenderSummary(summary)
	p.logger.Debug("build finished", slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// ExtractMentions reads every annotation file of every configured genre, in
// genre order then lexical path order
func (p *Pipeline) ExtractMentions(ctx context.Context) ([]model.EventMention, error) {
	var mentions []model.EventMention

	for _, genre := range p.layout.Genres {
		files := 0
		for path, err := range p.layout.Annotations(genre) {
			if err != nil {
				return nil, err
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			found, err := p.annotations.Extract(path)
			if err != nil {
				return nil, err
			}
			mentions = append(mentions, found...)
			files++
		}

		p.logger.Debug("annotations read",
			slog.String("genre", string(genre)),
			slog.Int("files", files))
	}

	return mentions, nil
}

// Documents lazily loads the raw documents of every configured genre
func (p *Pipeline) Documents() iter.Seq2[model.RawDocument, error] {
	return func(yield func(model.RawDocument, error) bool) {
		for _, genre := range p.layout.Genres {
			for path, err := range p.layout.RawDocuments(genre) {
				if err != nil {
					yield(model.RawDocument{}, err)
					return
				}

				doc, err := p.loader.LoadDocument(path, genre)
				if !yield(doc, err) || err != nil {
					return
				}
			}
		}
	}
}

func (p *Pipeline) summarize(ds *model.Dataset, mentions, dropped, candidates int) *model.Summary {
	counts := model.CountTypes(ds.Train, ds.Dev, ds.Test)
	typeCount := make(map[string]int, len(counts))
	for _, et := range model.AllEventTypes() {
		typeCount[et.String()] = counts[et]
	}

	return &model.Summary{
		RunID:      uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Seed:       p.assembler.Seed(),
		CorpusDir:  p.config.Corpus.Root,
		OutputDir:  p.config.Output.Dir,
		Segmenter:  p.segmenter.Name(),
		Mentions:   mentions,
		Dropped:    dropped,
		Candidates: candidates,
		Negatives:  counts[model.NonEvent],
		Total:      ds.Len(),
		TypeCount:  typeCount,
		Splits:     ds.Sizes(),
	}
}
