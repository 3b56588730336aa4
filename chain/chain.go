package chain

import (
	"iter"
	"slices"

	"github.com/arloliu/mixmc/internal/hash"
	"github.com/arloliu/mixmc/model"
)

// Acceptance counts the proposals evaluated for one update block and how
// many of them were accepted.
type Acceptance struct {
	Proposed int
	Accepted int
}

// Rate returns Accepted/Proposed, or 0 when nothing was proposed.
func (a Acceptance) Rate() float64 {
	if a.Proposed == 0 {
		return 0
	}

	return float64(a.Accepted) / float64(a.Proposed)
}

// Chain is the ordered sequence of parameter states recorded by one engine
// run. It is immutable once built.
type Chain struct {
	engine     string
	seed       uint64
	samples    []model.Params
	acceptance map[string]Acceptance
	blocks     []string
}

// New builds a chain directly from samples, copying the slice. It is used by
// readers that restore a chain from storage.
func New(engine string, seed uint64, samples []model.Params) *Chain {
	return &Chain{
		engine:     engine,
		seed:       seed,
		samples:    slices.Clone(samples),
		acceptance: map[string]Acceptance{},
	}
}

// Engine returns the name of the engine that produced the chain.
func (c *Chain) Engine() string {
	return c.engine
}

// Seed returns the seed of the run that produced the chain.
func (c *Chain) Seed() uint64 {
	return c.seed
}

// Len returns the number of recorded samples.
func (c *Chain) Len() int {
	return len(c.samples)
}

// At returns the i-th sample.
func (c *Chain) At(i int) model.Params {
	return c.samples[i]
}

// All iterates over the samples in order.
func (c *Chain) All() iter.Seq2[int, model.Params] {
	return func(yield func(int, model.Params) bool) {
		for i, p := range c.samples {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Samples returns a copy of the samples.
func (c *Chain) Samples() []model.Params {
	return slices.Clone(c.samples)
}

// Column returns the values of the parameter at vector index idx
// (see model.ParamNames) across the chain.
func (c *Chain) Column(idx int) []float64 {
	return c.ColumnInto(idx, make([]float64, len(c.samples)))
}

// ColumnInto is Column writing into dst, which must hold Len values.
func (c *Chain) ColumnInto(idx int, dst []float64) []float64 {
	dst = dst[:len(c.samples)]
	for i, p := range c.samples {
		dst[i] = p.Vector()[idx]
	}

	return dst
}

// Blocks returns the names of the update blocks with recorded acceptance, in
// the order they were first recorded.
func (c *Chain) Blocks() []string {
	return slices.Clone(c.blocks)
}

// Acceptance returns the acceptance counts for block.
func (c *Chain) Acceptance(block string) (Acceptance, bool) {
	a, ok := c.acceptance[block]
	return a, ok
}

// AcceptanceRates returns the acceptance rate of every block.
func (c *Chain) AcceptanceRates() map[string]float64 {
	rates := make(map[string]float64, len(c.acceptance))
	for block, a := range c.acceptance {
		rates[block] = a.Rate()
	}

	return rates
}

// Fingerprint returns an xxHash64 digest of every sample's bit pattern.
// Two chains share a fingerprint only if they are bit-for-bit identical.
func (c *Chain) Fingerprint() uint64 {
	h := hash.NewHasher()
	for _, p := range c.samples {
		for _, v := range p.Vector() {
			h.AddFloat64(v)
		}
	}

	return h.Sum64()
}

// Builder accumulates samples and acceptance counts during a run.
type Builder struct {
	c *Chain
}

// NewBuilder creates a Builder with room for capacity samples.
func NewBuilder(engine string, seed uint64, capacity int) *Builder {
	return &Builder{c: &Chain{
		engine:     engine,
		seed:       seed,
		samples:    make([]model.Params, 0, capacity),
		acceptance: map[string]Acceptance{},
	}}
}

// Append records p as the next sample.
func (b *Builder) Append(p model.Params) {
	b.c.samples = append(b.c.samples, p)
}

// Record counts one proposal for block.
func (b *Builder) Record(block string, accepted bool) {
	a, ok := b.c.acceptance[block]
	if !ok {
		b.c.blocks = append(b.c.blocks, block)
	}
	a.Proposed++
	if accepted {
		a.Accepted++
	}
	b.c.acceptance[block] = a
}

// Build returns the finished chain. The Builder must not be used afterwards.
func (b *Builder) Build() *Chain {
	c := b.c
	b.c = nil

	return c
}
