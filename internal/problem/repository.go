package problem

import (
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
)

// Repository holds the static problem pools, one per type. It is read-only
// after construction and safe for concurrent reads when no shared *rand.Rand
// is injected.
type Repository struct {
	pools  map[Type][]Problem
	byID   map[Type]map[string]int
	rng    *rand.Rand
	logger *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithRand sets the random source used by Sample.
func WithRand(r *rand.Rand) Option {
	return func(repo *Repository) { repo.rng = r }
}

// WithLogger sets the logger used to report unavailable pools.
func WithLogger(l *zap.Logger) Option {
	return func(repo *Repository) {
		if l != nil {
			repo.logger = l
		}
	}
}

// NewRepository builds a repository from per-type pools. The slices are
// copied, so later changes by the caller do not leak in.
func NewRepository(pools map[Type][]Problem, opts ...Option) *Repository {
	r := &Repository{
		pools:  make(map[Type][]Problem, len(pools)),
		byID:   make(map[Type]map[string]int, len(pools)),
		logger: zap.NewNop(),
	}
	for t, pool := range pools {
		r.pools[t] = slices.Clone(pool)
		idx := make(map[string]int, len(pool))
		for i, p := range pool {
			idx[p.ID] = i
		}
		r.byID[t] = idx
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sample returns up to count distinct problems of type t in random order.
// An empty or missing pool yields an empty slice and a PoolUnavailable
// warning in the log; it is not an error so callers can offer a retry.
func (r *Repository) Sample(t Type, count int) []Problem {
	pool := r.pools[t]
	if len(pool) == 0 {
		r.logger.Warn("PoolUnavailable",
			zap.String("type", string(t)),
			zap.Int("requested", count),
		)
		return []Problem{}
	}
	if count <= 0 {
		return []Problem{}
	}

	// Fisher-Yates over an index array; only the first n positions are needed.
	n := min(count, len(pool))
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + r.intN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	out := make([]Problem, n)
	for i := 0; i < n; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

// FindByID looks up a problem by type and ID.
func (r *Repository) FindByID(t Type, id string) (Problem, bool) {
	i, ok := r.byID[t][id]
	if !ok {
		return Problem{}, false
	}
	return r.pools[t][i], true
}

// Size returns the number of problems in the pool for t.
func (r *Repository) Size(t Type) int {
	return len(r.pools[t])
}

// Types returns the types that have a non-empty pool, in display order.
func (r *Repository) Types() []Type {
	var out []Type
	for _, t := range AllTypes() {
		if len(r.pools[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

func (r *Repository) intN(n int) int {
	if r.rng != nil {
		return r.rng.IntN(n)
	}
	return rand.IntN(n)
}
