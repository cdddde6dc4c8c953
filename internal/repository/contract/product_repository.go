package contract

import (
	"context"

	"github.com/namhkse/recomending-system/internal/repository/specification"
	"github.com/namhkse/recomending-system/pkg/catalog"
)

// ScoredProduct wraps a product with its similarity score in [0,1].
type ScoredProduct struct {
	Product    *catalog.Product
	Similarity float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *catalog.Product) error
	CreateBulk(ctx context.Context, products []*catalog.Product) error
	Upsert(ctx context.Context, product *catalog.Product) error
	DeleteAll(ctx context.Context) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*catalog.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*catalog.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore orders by vector distance to the query
	// embedding and returns normalized similarity scores alongside.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*ScoredProduct, error)
}
