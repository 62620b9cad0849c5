package model

import "time"

// Summary describes one dataset build.
// It is printed after every run and written as manifest.json next to the splits.
type Summary struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      int64     `json:"seed"`       // Seed of both shuffles, reuse with --seed to reproduce
	CorpusDir string    `json:"corpus_dir"` // Root the corpus was read from
	OutputDir string    `json:"output_dir"` // Directory holding the split files
	Segmenter string    `json:"segmenter"`  // Segmentation backend name

	Mentions   int `json:"mentions"`            // Positive records after the length filter
	Dropped    int `json:"dropped_short"`       // Mentions removed by the length filter
	Candidates int `json:"negative_candidates"` // Sentences that survived negative filtering
	Negatives  int `json:"negatives"`           // Negatives kept after the cap

	Total     int            `json:"total"`
	TypeCount map[string]int `json:"type_count"` // Keyed by EventType name
	Splits    SplitSizes     `json:"splits"`
}

// SplitSizes holds the record count of each split
type SplitSizes struct {
	Train int `json:"train"`
	Dev   int `json:"dev"`
	Test  int `json:"test"`
}

// Dataset is the shuffled pool partitioned into train, dev and test
type Dataset struct {
	Train []LabeledRecord
	Dev   []LabeledRecord
	Test  []LabeledRecord
}

// Len returns the number of records across all splits
func (d *Dataset) Len() int {
	return len(d.Train) + len(d.Dev) + len(d.Test)
}

// Sizes returns the per-split record counts
func (d *Dataset) Sizes() SplitSizes {
	return SplitSizes{Train: len(d.Train), Dev: len(d.Dev), Test: len(d.Test)}
}

// CountTypes tallies records by event type, in code order
func CountTypes(records ...[]LabeledRecord) []int {
	counts := make([]int, len(eventTypeNames))
	for _, split := range records {
		for _, r := range split {
			if r.Type.Valid() {
				counts[r.Type]++
			}
		}
	}
	return counts
}
