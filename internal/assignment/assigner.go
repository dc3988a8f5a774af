// Package assignment decides which taxonomy a new participant receives, keeping
// sample sizes even across taxonomies under a core quota.
package assignment

import (
	"math/rand/v2"
	"sync"

	"github.com/jonathan/assessment-engine/internal/types"
)

// DefaultCoreQuota is the per-core-taxonomy sample size filled before
// exploratory taxonomies are offered.
const DefaultCoreQuota = 50

// Phase is the assignment phase derived from counts on every call.
type Phase string

// Phases
const (
	PhaseCoreFilling Phase = "core_filling"
	PhaseOpen        Phase = "open"
)

// Assigner implements the two-phase least-assigned selection. The selection is
// pure given counts and the random source.
type Assigner struct {
	quota       int
	core        []types.Taxonomy
	exploratory []types.Taxonomy

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures an Assigner.
type Option func(*Assigner)

// WithRand sets the random source used to break ties.
func WithRand(rng *rand.Rand) Option {
	return func(a *Assigner) { a.rng = rng }
}

// WithTaxonomies overrides the core and exploratory pools.
func WithTaxonomies(core, exploratory []types.Taxonomy) Option {
	return func(a *Assigner) {
		a.core = core
		a.exploratory = exploratory
	}
}

// NewAssigner creates an assigner with the given core quota. A non-positive
// quota falls back to DefaultCoreQuota.
func NewAssigner(quota int, opts ...Option) *Assigner {
	if quota <= 0 {
		quota = DefaultCoreQuota
	}
	a := &Assigner{
		quota:       quota,
		core:        types.CoreTaxonomies,
		exploratory: types.ExploratoryTaxonomies,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Quota returns the core quota.
func (a *Assigner) Quota() int {
	return a.quota
}

// Phase reports whether any core taxonomy is still below quota. Taxonomies
// missing from counts count as zero.
func (a *Assigner) Phase(counts map[types.Taxonomy]int) Phase {
	for _, t := range a.core {
		if counts[t] < a.quota {
			return PhaseCoreFilling
		}
	}
	return PhaseOpen
}

// Pool returns the candidate pool for the current phase.
func (a *Assigner) Pool(counts map[types.Taxonomy]int) []types.Taxonomy {
	if a.Phase(counts) == PhaseCoreFilling {
		return append([]types.Taxonomy(nil), a.core...)
	}
	pool := make([]types.Taxonomy, 0, len(a.core)+len(a.exploratory))
	pool = append(pool, a.core...)
	pool = append(pool, a.exploratory...)
	return pool
}

// Candidates returns the pool members sharing the minimum count.
func (a *Assigner) Candidates(counts map[types.Taxonomy]int) []types.Taxonomy {
	pool := a.Pool(counts)
	if len(pool) == 0 {
		return nil
	}

	minCount := counts[pool[0]]
	for _, t := range pool[1:] {
		if c := counts[t]; c < minCount {
			minCount = c
		}
	}

	candidates := make([]types.Taxonomy, 0, len(pool))
	for _, t := range pool {
		if counts[t] == minCount {
			candidates = append(candidates, t)
		}
	}
	return candidates
}

// Choose picks uniformly at random among the least-assigned pool members.
func (a *Assigner) Choose(counts map[types.Taxonomy]int) types.Taxonomy {
	candidates := a.Candidates(counts)
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}

	a.mu.Lock()
	i := a.rng.IntN(len(candidates))
	a.mu.Unlock()
	return candidates[i]
}
