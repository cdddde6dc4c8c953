package implementation

import (
	"context"
	"errors"

	"github.com/namhkse/recomending-system/internal/mapper"
	"github.com/namhkse/recomending-system/internal/model"
	"github.com/namhkse/recomending-system/internal/repository/contract"
	"github.com/namhkse/recomending-system/internal/repository/specification"
	"github.com/namhkse/recomending-system/pkg/catalog"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *catalog.Product) error {
	m := r.mapper.ToModel(product)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ProductRepositoryImpl) CreateBulk(ctx context.Context, products []*catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	models := r.mapper.ToModels(products)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *ProductRepositoryImpl) Upsert(ctx context.Context, product *catalog.Product) error {
	m := r.mapper.ToModel(product)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *ProductRepositoryImpl) DeleteAll(ctx context.Context) error {
	// Hard delete: a catalog reload replaces everything.
	return r.db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&model.Product{}).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*catalog.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToDomain(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*catalog.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToDomains(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Product{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore runs the nearest-neighbor query inside Postgres.
// pgvector's <=> operator is cosine distance in [0,2]; (2 - distance) / 2
// maps it onto the [0,1] similarity scale used everywhere else.
func (r *ProductRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*contract.ScoredProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Product
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("products").
		Select("products.*, (2 - (embedding <=> ?)) / 2 AS similarity", queryVector).
		Where("deleted_at IS NULL")
	query = r.applySpecifications(query, specs...)

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredProduct, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredProduct{
			Product:    r.mapper.ToDomain(&res.Product),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
