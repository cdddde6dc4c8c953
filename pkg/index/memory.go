package index

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/namhkse/recomending-system/pkg/catalog"
)

// snapshot is an immutable catalog view. Readers grab the pointer once and
// never see a half-updated catalog.
type snapshot struct {
	products []catalog.Product
}

// MemoryBackend is an in-process brute-force vector index. The catalog
// lives behind an atomic pointer; Replace/Upsert build a fresh snapshot and
// swap it in, so queries are pure reads with no locking.
type MemoryBackend struct {
	snap atomic.Pointer[snapshot]
	// serializes writers only; readers never take it
	mu sync.Mutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	b := &MemoryBackend{}
	b.snap.Store(&snapshot{})
	return b
}

// Len returns the current product count.
func (b *MemoryBackend) Len() int {
	return len(b.snap.Load().products)
}

// Products returns the current snapshot's records. The slice is shared and
// must not be mutated.
func (b *MemoryBackend) Products() []catalog.Product {
	return b.snap.Load().products
}

// Search scores every product in the snapshot against the query vector and
// returns the top candidates. The predicate is applied before scoring.
func (b *MemoryBackend) Search(ctx context.Context, vector []float32, limit int, pred *Predicate) ([]Scored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := b.snap.Load()

	scored := make([]Scored, 0, limit)
	for _, p := range snap.products {
		if !pred.Matches(p) {
			continue
		}
		scored = append(scored, Scored{Product: p, Similarity: CosineSimilarity(vector, p.Embedding)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Product.Id < scored[j].Product.Id
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// Filter returns predicate matches ordered by price asc then id, with zero
// similarity. Used for degraded, non-semantic turns.
func (b *MemoryBackend) Filter(ctx context.Context, pred *Predicate, limit int) ([]Scored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := b.snap.Load()

	var out []Scored
	for _, p := range snap.products {
		if pred.Matches(p) {
			out = append(out, Scored{Product: p})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Product.Price != out[j].Product.Price {
			return out[i].Product.Price < out[j].Product.Price
		}
		return out[i].Product.Id < out[j].Product.Id
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Replace swaps in a whole new catalog snapshot.
func (b *MemoryBackend) Replace(_ context.Context, products []catalog.Product) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.Store(&snapshot{products: append([]catalog.Product(nil), products...)})
	return nil
}

// Upsert copies the snapshot with one entry replaced (or appended) and
// swaps it in atomically.
func (b *MemoryBackend) Upsert(_ context.Context, product catalog.Product) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.snap.Load().products
	next := make([]catalog.Product, 0, len(old)+1)
	replaced := false
	for _, p := range old {
		if p.Id == product.Id {
			next = append(next, product)
			replaced = true
		} else {
			next = append(next, p)
		}
	}
	if !replaced {
		next = append(next, product)
	}
	b.snap.Store(&snapshot{products: next})
	return nil
}

// CosineSimilarity returns the cosine between two vectors mapped to [0,1]:
// 1 means identical direction, 0.5 orthogonal, 0 opposite. Mismatched or
// empty vectors score zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}
