// Package dataset assembles labeled records into shuffled train, dev and test splits.
package dataset

import (
	"math/rand/v2"

	"github.com/ppiankov/acevents/internal/model"
)

// DefaultNegativeCap is the number of negatives kept when no cap is configured
const DefaultNegativeCap = 400

// Assembler merges positives with a capped share of negatives and splits the
// shuffled pool 80/10/10. Both shuffles draw from one generator, so a given
// seed always produces the same dataset.
type Assembler struct {
	negativeCap int
	seed        int64
	rng         *rand.Rand
}

// NewAssembler creates an assembler keeping at most negativeCap negatives.
// A nil seed draws a random one; Seed reports it either way.
func NewAssembler(negativeCap int, seed *int64) *Assembler {
	if negativeCap < 0 {
		negativeCap = DefaultNegativeCap
	}

	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = rand.Int64()
	}

	return &Assembler{
		negativeCap: negativeCap,
		seed:        s,
		rng:         rand.New(rand.NewPCG(uint64(s), uint64(s)^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed both shuffles derive from
func (a *Assembler) Seed() int64 {
	return a.seed
}

// Assemble shuffles the negatives, keeps the first negativeCap of them,
// appends them to the mentions, shuffles the pool and splits it.
// It takes ownership of both slices.
func (a *Assembler) Assemble(mentions []model.EventMention, negatives []model.NegativeExample) *model.Dataset {
	a.rng.Shuffle(len(negatives), func(i, j int) {
		negatives[i], negatives[j] = negatives[j], negatives[i]
	})
	if len(negatives) > a.negativeCap {
		negatives = negatives[:a.negativeCap]
	}

	pool := make([]model.LabeledRecord, 0, len(mentions)+len(negatives))
	for _, m := range mentions {
		pool = append(pool, m.Record())
	}
	for _, n := range negatives {
		pool = append(pool, n.Record())
	}

	a.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	return Split(pool)
}

// Split partitions pool in place: dev and test get a tenth each (rounded
// down), train keeps the rest.
func Split(pool []model.LabeledRecord) *model.Dataset {
	total := len(pool)
	tenth := total / 10

	return &model.Dataset{
		Train: pool[:total-2*tenth],
		Dev:   pool[total-2*tenth : total-tenth],
		Test:  pool[total-tenth:],
	}
}
