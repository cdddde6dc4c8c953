// Package index exposes nearest-neighbor product search with optional hard
// predicates over a pluggable backing store.
package index

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/recsys"
	"github.com/namhkse/recomending-system/pkg/store"
)

// DefaultPoolRetries bounds how many times the candidate pool doubles when
// a predicate starves the result set.
const DefaultPoolRetries = 3

// Predicate is a hard filter. Nil pointer / empty fields are unconstrained.
type Predicate struct {
	Category     catalog.Category
	Brands       []string
	PriceMin     *float64
	PriceMax     *float64
	RequiredTags []string
}

// FromConstraints builds the hard predicate of a constraint set. Preferred
// tags are soft and never appear here.
func FromConstraints(cs store.ConstraintSet) *Predicate {
	if cs.IsEmpty() {
		return nil
	}
	return &Predicate{
		Category:     cs.Category,
		Brands:       cs.Brands,
		PriceMin:     cs.PriceMin,
		PriceMax:     cs.PriceMax,
		RequiredTags: cs.RequiredTags,
	}
}

// Matches reports whether a product satisfies every hard constraint.
func (p *Predicate) Matches(prod catalog.Product) bool {
	if p == nil {
		return true
	}
	if p.Category != "" && prod.Category != p.Category {
		return false
	}
	if p.PriceMin != nil && prod.Price < *p.PriceMin {
		return false
	}
	if p.PriceMax != nil && prod.Price > *p.PriceMax {
		return false
	}
	if len(p.Brands) > 0 {
		found := false
		for _, b := range p.Brands {
			if strings.EqualFold(prod.Brand, b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, tag := range p.RequiredTags {
		if !prod.HasTag(tag) {
			return false
		}
	}
	return true
}

// Scored pairs a product with its normalized similarity score in [0,1].
type Scored struct {
	Product    catalog.Product
	Similarity float64
}

// Backend is the storage contract behind the index. A backend may apply the
// predicate itself (pre-filter) or ignore it; Query re-checks either way.
type Backend interface {
	// Search returns up to limit candidates ordered by similarity desc.
	Search(ctx context.Context, vector []float32, limit int, pred *Predicate) ([]Scored, error)

	// Filter returns up to limit candidates matching the predicate with
	// zero similarity, ordered by price asc then id. Used when semantic
	// scoring is unavailable (degraded mode).
	Filter(ctx context.Context, pred *Predicate, limit int) ([]Scored, error)

	// Replace atomically swaps in a full catalog snapshot.
	Replace(ctx context.Context, products []catalog.Product) error

	// Upsert atomically replaces one product's entry.
	Upsert(ctx context.Context, product catalog.Product) error
}

// Index wraps a backend with predicate-correctness: if fewer than k
// candidates satisfy the predicate, the candidate pool doubles and the
// search retries, bounded by maxRetries. It never returns a product that
// violates the predicate.
type Index struct {
	backend    Backend
	maxRetries int
	logger     *log.Logger
}

// New creates an index over a backend. retries <= 0 uses the default bound.
func New(backend Backend, retries int, logger *log.Logger) *Index {
	if retries <= 0 {
		retries = DefaultPoolRetries
	}
	return &Index{backend: backend, maxRetries: retries, logger: logger}
}

// Query returns up to k products nearest to vector that satisfy pred.
// Fewer than k results is not an error; zero results is an empty slice.
func (ix *Index) Query(ctx context.Context, vector []float32, pred *Predicate, k int) ([]Scored, error) {
	if k <= 0 {
		k = 5
	}

	pool := k
	for attempt := 0; ; attempt++ {
		raw, err := ix.backend.Search(ctx, vector, pool, pred)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", recsys.ErrIndexUnavailable, err)
		}

		satisfying := raw[:0:0]
		for _, s := range raw {
			if pred.Matches(s.Product) {
				satisfying = append(satisfying, s)
			}
		}

		if len(satisfying) >= k {
			return satisfying[:k], nil
		}
		// backend exhausted: a larger pool cannot surface anything new
		if len(raw) < pool || attempt >= ix.maxRetries {
			if attempt > 0 {
				ix.logger.Printf("[INDEX] Pool expansion stopped after %d attempt(s), %d/%d candidates", attempt+1, len(satisfying), k)
			}
			return satisfying, nil
		}

		pool *= 2
		ix.logger.Printf("[INDEX] Predicate starved results (%d/%d), expanding pool to %d", len(satisfying), k, pool)
	}
}

// FilterOnly returns predicate-matching products without semantic scoring,
// for degraded turns where no query embedding is available.
func (ix *Index) FilterOnly(ctx context.Context, pred *Predicate, k int) ([]Scored, error) {
	if k <= 0 {
		k = 5
	}
	res, err := ix.backend.Filter(ctx, pred, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", recsys.ErrIndexUnavailable, err)
	}
	satisfying := res[:0:0]
	for _, s := range res {
		if pred.Matches(s.Product) {
			satisfying = append(satisfying, s)
		}
	}
	return satisfying, nil
}

// Replace swaps the whole catalog.
func (ix *Index) Replace(ctx context.Context, products []catalog.Product) error {
	if err := ix.backend.Replace(ctx, products); err != nil {
		return fmt.Errorf("%w: %v", recsys.ErrIndexUnavailable, err)
	}
	ix.logger.Printf("[INDEX] Catalog replaced with %d products", len(products))
	return nil
}

// Upsert replaces a single product entry.
func (ix *Index) Upsert(ctx context.Context, product catalog.Product) error {
	if err := ix.backend.Upsert(ctx, product); err != nil {
		return fmt.Errorf("%w: %v", recsys.ErrIndexUnavailable, err)
	}
	return nil
}
