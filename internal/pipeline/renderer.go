package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ppiankov/acevents/internal/model"
)

// Renderer prints build summaries and renders run manifests
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer printing to out
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = io.Discard
	}
	return &Renderer{out: out}
}

// RenderSummary prints the total, the per-type counts and the split sizes
func (r *Renderer) RenderSummary(s *model.Summary) {
	fmt.Fprintln(r.out, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(r.out, "  Dataset: %d records\n", s.Total)
	fmt.Fprintln(r.out, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(r.out, "Mentions:   %d (%d short dropped)\n", s.Mentions, s.Dropped)
	fmt.Fprintf(r.out, "Negatives:  %d of %d candidates\n", s.Negatives, s.Candidates)
	fmt.Fprintln(r.out)

	r.renderCounts(s.TypeCount)

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "train: %d\n", s.Splits.Train)
	fmt.Fprintf(r.out, "dev:   %d\n", s.Splits.Dev)
	fmt.Fprintf(r.out, "test:  %d\n", s.Splits.Test)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "✓ Wrote splits to %s (seed %d, segmenter %s)\n", s.OutputDir, s.Seed, s.Segmenter)
}

// RenderCounts prints per-type counts of a set of records under a title
func (r *Renderer) RenderCounts(title string, records []model.LabeledRecord) {
	counts := model.CountTypes(records)
	byName := make(map[string]int, len(counts))
	for _, et := range model.AllEventTypes() {
		byName[et.String()] = counts[et]
	}

	fmt.Fprintf(r.out, "%s: %d records\n", title, len(records))
	r.renderCounts(byName)
}

func (r *Renderer) renderCounts(byName map[string]int) {
	for _, et := range model.AllEventTypes() {
		fmt.Fprintf(r.out, "  %d %-12s %d\n", et.Code(), et.String(), byName[et.String()])
	}
}

// Manifest renders the summary as indented JSON
func (r *Renderer) Manifest(s *model.Summary) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
