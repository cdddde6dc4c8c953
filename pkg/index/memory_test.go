package index

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/recsys"
)

func f(v float64) *float64 { return &v }

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func testCatalog() []catalog.Product {
	return []catalog.Product{
		{Id: "p1", Category: catalog.CategoryPhone, Brand: "Apple", Price: 999, Tags: []string{"camera", "premium"}, Embedding: []float32{1, 0, 0}},
		{Id: "p2", Category: catalog.CategoryPhone, Brand: "Samsung", Price: 1999, Tags: []string{"gaming"}, Embedding: []float32{0.9, 0.1, 0}},
		{Id: "l1", Category: catalog.CategoryLaptop, Brand: "Lenovo", Price: 1400, Tags: []string{"business"}, Embedding: []float32{0, 1, 0}},
		{Id: "t1", Category: catalog.CategoryTablet, Brand: "Apple", Price: 599, Tags: []string{"drawing"}, Embedding: []float32{0, 0, 1}},
	}
}

func newTestBackend(t *testing.T) *MemoryBackend {
	t.Helper()
	b := NewMemoryBackend()
	if err := b.Replace(context.Background(), testCatalog()); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 0.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.5},
		{"mismatched dims", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
		{"empty", nil, nil, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if got < tc.want-1e-9 || got > tc.want+1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSearchOrdersBySimilarity(t *testing.T) {
	b := newTestBackend(t)
	res, err := b.Search(context.Background(), []float32{1, 0, 0}, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 4 {
		t.Fatalf("len = %d, want 4", len(res))
	}
	if res[0].Product.Id != "p1" {
		t.Errorf("top = %s, want p1 (exact direction match)", res[0].Product.Id)
	}
	for i := 1; i < len(res); i++ {
		if res[i].Similarity > res[i-1].Similarity {
			t.Errorf("similarity not descending at %d: %v > %v", i, res[i].Similarity, res[i-1].Similarity)
		}
	}
}

func TestSearchPredicateCorrectness(t *testing.T) {
	b := newTestBackend(t)
	pred := &Predicate{Category: catalog.CategoryPhone, PriceMax: f(1200)}

	res, err := b.Search(context.Background(), []float32{1, 0, 0}, 10, pred)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Product.Id != "p1" {
		t.Fatalf("res = %v, want only p1", res)
	}
	for _, s := range res {
		if !pred.Matches(s.Product) {
			t.Errorf("product %s violates the predicate", s.Product.Id)
		}
	}
}

func TestFilterPriceAscending(t *testing.T) {
	b := newTestBackend(t)
	res, err := b.Filter(context.Background(), nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res); i++ {
		if res[i].Product.Price < res[i-1].Product.Price {
			t.Errorf("price not ascending at %d", i)
		}
	}
	for _, s := range res {
		if s.Similarity != 0 {
			t.Errorf("filter result carries similarity %v, want 0", s.Similarity)
		}
	}
}

func TestReplaceIsAtomic(t *testing.T) {
	b := newTestBackend(t)
	prods := b.Products()

	next := []catalog.Product{{Id: "only", Category: catalog.CategoryPhone, Price: 100}}
	if err := b.Replace(context.Background(), next); err != nil {
		t.Fatal(err)
	}

	// the snapshot grabbed before the swap is untouched
	if len(prods) != 4 {
		t.Errorf("old snapshot mutated: len = %d, want 4", len(prods))
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1 after replace", b.Len())
	}
}

func TestUpsertReplacesAndAppends(t *testing.T) {
	b := newTestBackend(t)

	if err := b.Upsert(context.Background(), catalog.Product{Id: "p1", Category: catalog.CategoryPhone, Price: 899}); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 4 {
		t.Fatalf("Len = %d, want 4 (replace in place)", b.Len())
	}
	for _, p := range b.Products() {
		if p.Id == "p1" && p.Price != 899 {
			t.Errorf("p1 price = %v, want 899", p.Price)
		}
	}

	if err := b.Upsert(context.Background(), catalog.Product{Id: "new", Category: catalog.CategoryTablet, Price: 300}); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 5 {
		t.Errorf("Len = %d, want 5 after appending upsert", b.Len())
	}
}

// starvingBackend ignores the predicate, forcing Query to re-check and
// expand the pool. Mimics an ANN store with post-filtering.
type starvingBackend struct {
	inner *MemoryBackend
	calls []int
}

func (s *starvingBackend) Search(ctx context.Context, vector []float32, limit int, _ *Predicate) ([]Scored, error) {
	s.calls = append(s.calls, limit)
	return s.inner.Search(ctx, vector, limit, nil)
}

func (s *starvingBackend) Filter(ctx context.Context, pred *Predicate, limit int) ([]Scored, error) {
	return s.inner.Filter(ctx, pred, limit)
}

func (s *starvingBackend) Replace(ctx context.Context, products []catalog.Product) error {
	return s.inner.Replace(ctx, products)
}

func (s *starvingBackend) Upsert(ctx context.Context, product catalog.Product) error {
	return s.inner.Upsert(ctx, product)
}

func TestQueryExpandsPoolWhenStarved(t *testing.T) {
	// 3 phones outrank the lone tablet on similarity, so a tablet predicate
	// starves the initial pool of 1.
	var prods []catalog.Product
	for i := 0; i < 3; i++ {
		prods = append(prods, catalog.Product{
			Id:        "p" + string(rune('a'+i)),
			Category:  catalog.CategoryPhone,
			Price:     500,
			Embedding: []float32{1, 0},
		})
	}
	prods = append(prods, catalog.Product{Id: "tab", Category: catalog.CategoryTablet, Price: 400, Embedding: []float32{0.5, 0.5}})

	inner := NewMemoryBackend()
	if err := inner.Replace(context.Background(), prods); err != nil {
		t.Fatal(err)
	}
	sb := &starvingBackend{inner: inner}
	ix := New(sb, DefaultPoolRetries, testLogger())

	res, err := ix.Query(context.Background(), []float32{1, 0}, &Predicate{Category: catalog.CategoryTablet}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Product.Id != "tab" {
		t.Fatalf("res = %v, want the tablet", res)
	}
	if len(sb.calls) < 2 {
		t.Errorf("expected pool expansion, backend called with limits %v", sb.calls)
	}
	for i := 1; i < len(sb.calls); i++ {
		if sb.calls[i] != sb.calls[i-1]*2 {
			t.Errorf("pool did not double: %v", sb.calls)
		}
	}
}

func TestQueryStopsWhenBackendExhausted(t *testing.T) {
	inner := NewMemoryBackend()
	if err := inner.Replace(context.Background(), testCatalog()); err != nil {
		t.Fatal(err)
	}
	sb := &starvingBackend{inner: inner}
	ix := New(sb, DefaultPoolRetries, testLogger())

	// nothing matches: must terminate with an empty result, not spin
	res, err := ix.Query(context.Background(), []float32{1, 0, 0}, &Predicate{Category: catalog.CategoryPhone, PriceMax: f(10)}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Fatalf("res = %v, want empty", res)
	}
	if len(sb.calls) > DefaultPoolRetries+1 {
		t.Errorf("backend called %d times, bound is %d", len(sb.calls), DefaultPoolRetries+1)
	}
}

type failingBackend struct{}

func (failingBackend) Search(context.Context, []float32, int, *Predicate) ([]Scored, error) {
	return nil, errors.New("connection refused")
}
func (failingBackend) Filter(context.Context, *Predicate, int) ([]Scored, error) {
	return nil, errors.New("connection refused")
}
func (failingBackend) Replace(context.Context, []catalog.Product) error {
	return errors.New("connection refused")
}
func (failingBackend) Upsert(context.Context, catalog.Product) error {
	return errors.New("connection refused")
}

func TestBackendErrorsWrapIndexUnavailable(t *testing.T) {
	ix := New(failingBackend{}, 0, testLogger())

	if _, err := ix.Query(context.Background(), []float32{1}, nil, 5); !errors.Is(err, recsys.ErrIndexUnavailable) {
		t.Errorf("Query err = %v, want ErrIndexUnavailable", err)
	}
	if _, err := ix.FilterOnly(context.Background(), nil, 5); !errors.Is(err, recsys.ErrIndexUnavailable) {
		t.Errorf("FilterOnly err = %v, want ErrIndexUnavailable", err)
	}
	if err := ix.Replace(context.Background(), nil); !errors.Is(err, recsys.ErrIndexUnavailable) {
		t.Errorf("Replace err = %v, want ErrIndexUnavailable", err)
	}
}
