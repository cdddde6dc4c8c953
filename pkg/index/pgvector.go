package index

import (
	"context"

	"github.com/namhkse/recomending-system/internal/repository/contract"
	"github.com/namhkse/recomending-system/internal/repository/specification"
	"github.com/namhkse/recomending-system/pkg/catalog"
)

// PgvectorBackend serves the index from Postgres. Hard constraints are
// pushed into SQL so the distance scan never ranks rows the predicate
// would discard.
type PgvectorBackend struct {
	repo contract.ProductRepository
}

func NewPgvectorBackend(repo contract.ProductRepository) *PgvectorBackend {
	return &PgvectorBackend{repo: repo}
}

// FromPredicate expands an index predicate into its equivalent
// specifications so hard constraints run inside the database.
func FromPredicate(pred *Predicate) []specification.Specification {
	if pred == nil {
		return nil
	}
	var specs []specification.Specification
	if pred.Category != "" {
		specs = append(specs, specification.ByCategory{Category: string(pred.Category)})
	}
	if len(pred.Brands) > 0 {
		specs = append(specs, specification.ByBrandIn{Brands: pred.Brands})
	}
	if pred.PriceMin != nil {
		specs = append(specs, specification.PriceAtLeast{Min: *pred.PriceMin})
	}
	if pred.PriceMax != nil {
		specs = append(specs, specification.PriceAtMost{Max: *pred.PriceMax})
	}
	if len(pred.RequiredTags) > 0 {
		specs = append(specs, specification.HasAllTags{Tags: pred.RequiredTags})
	}
	return specs
}

func (b *PgvectorBackend) Search(ctx context.Context, vector []float32, limit int, pred *Predicate) ([]Scored, error) {
	specs := FromPredicate(pred)
	scored, err := b.repo.SearchSimilarWithScore(ctx, vector, limit, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Product == nil {
			continue
		}
		out = append(out, Scored{Product: *s.Product, Similarity: s.Similarity})
	}
	return out, nil
}

func (b *PgvectorBackend) Filter(ctx context.Context, pred *Predicate, limit int) ([]Scored, error) {
	specs := FromPredicate(pred)
	specs = append(specs,
		specification.OrderBy{Field: "price"},
		specification.Pagination{Limit: limit},
	)
	products, err := b.repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]Scored, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		out = append(out, Scored{Product: *p})
	}
	return out, nil
}

func (b *PgvectorBackend) Replace(ctx context.Context, products []catalog.Product) error {
	if err := b.repo.DeleteAll(ctx); err != nil {
		return err
	}
	refs := make([]*catalog.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	return b.repo.CreateBulk(ctx, refs)
}

func (b *PgvectorBackend) Upsert(ctx context.Context, product catalog.Product) error {
	return b.repo.Upsert(ctx, &product)
}
