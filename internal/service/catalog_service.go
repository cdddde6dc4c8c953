package service

import (
	"context"
	"fmt"

	"github.com/namhkse/recomending-system/internal/dto"
	"github.com/namhkse/recomending-system/internal/pkg/logger"
	"github.com/namhkse/recomending-system/internal/repository/contract"
	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/embedding"
	"github.com/namhkse/recomending-system/pkg/index"
	"github.com/namhkse/recomending-system/pkg/recsys"
)

type ICatalogService interface {
	GetAll(ctx context.Context) (*dto.GetCatalogResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertProductRequest) error
	Seed(ctx context.Context, products []catalog.Product) error
	Reload(ctx context.Context) error
}

// catalogService manages the product catalog behind the serving index.
// With a database configured, embedding happens asynchronously through the
// publisher/consumer pair; without one, products are embedded inline.
type catalogService struct {
	productRepo       contract.ProductRepository // nil when running without a database
	idx               *index.Index
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	sysLogger         logger.ILogger
}

func NewCatalogService(
	productRepo contract.ProductRepository,
	idx *index.Index,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	sysLogger logger.ILogger,
) ICatalogService {
	return &catalogService{
		productRepo:       productRepo,
		idx:               idx,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		sysLogger:         sysLogger,
	}
}

func (s *catalogService) GetAll(ctx context.Context) (*dto.GetCatalogResponse, error) {
	// the filter path with no predicate lists the whole catalog, cheapest
	// first, on any backend
	scored, err := s.idx.FilterOnly(ctx, nil, 1000)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductDTO, len(scored))
	for i, sp := range scored {
		p := sp.Product
		products[i] = dto.ProductDTO{
			Id:          p.Id,
			Name:        p.Name,
			Category:    string(p.Category),
			Brand:       p.Brand,
			Price:       p.Price,
			Description: p.Description,
			Specs:       p.Specs,
			Features:    p.Features,
			Tags:        p.Tags,
		}
	}

	return &dto.GetCatalogResponse{
		Count:    len(products),
		Products: products,
	}, nil
}

func (s *catalogService) Upsert(ctx context.Context, req *dto.UpsertProductRequest) error {
	category, ok := catalog.ParseCategory(req.Category)
	if !ok {
		return fmt.Errorf("%w: unknown category %q", recsys.ErrInvalidConstraint, req.Category)
	}

	product := catalog.Product{
		Id:          req.Id,
		Name:        req.Name,
		Category:    category,
		Brand:       req.Brand,
		Price:       req.Price,
		Description: req.Description,
		Specs:       req.Specs,
		Features:    req.Features,
		Tags:        req.Tags,
	}

	if s.productRepo != nil {
		if err := s.productRepo.Upsert(ctx, &product); err != nil {
			return fmt.Errorf("failed to store product %s: %w", product.Id, err)
		}
		// embedding happens off the request path; the consumer refreshes
		// the index once the vector lands
		return s.publisherService.PublishEmbedProduct(ctx, product.Id)
	}

	return s.embedAndIndex(ctx, product)
}

// Seed loads a full catalog, replacing whatever is indexed.
func (s *catalogService) Seed(ctx context.Context, products []catalog.Product) error {
	if s.productRepo != nil {
		if err := s.productRepo.DeleteAll(ctx); err != nil {
			return err
		}
		refs := make([]*catalog.Product, len(products))
		for i := range products {
			refs[i] = &products[i]
		}
		if err := s.productRepo.CreateBulk(ctx, refs); err != nil {
			return err
		}
		for _, p := range products {
			if err := s.publisherService.PublishEmbedProduct(ctx, p.Id); err != nil {
				return err
			}
		}
		s.sysLogger.Info("catalog", "Seeded catalog, embeddings queued", map[string]interface{}{
			"products": len(products),
		})
		return nil
	}

	embedded := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		res, err := s.embeddingProvider.Generate(ctx, p.EmbedText(), embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("failed to embed product %s: %w", p.Id, err)
		}
		p.Embedding = res.Embedding.Values
		embedded = append(embedded, p)
	}
	if err := s.idx.Replace(ctx, embedded); err != nil {
		return err
	}
	s.sysLogger.Info("catalog", "Seeded in-memory catalog", map[string]interface{}{
		"products": len(embedded),
	})
	return nil
}

// Reload rebuilds the in-memory serving index from the database. Called on
// startup and whenever another instance broadcasts a reindex.
func (s *catalogService) Reload(ctx context.Context) error {
	if s.productRepo == nil {
		return nil
	}
	stored, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	products := make([]catalog.Product, 0, len(stored))
	for _, p := range stored {
		if p != nil {
			products = append(products, *p)
		}
	}
	if err := s.idx.Replace(ctx, products); err != nil {
		return err
	}
	s.sysLogger.Info("catalog", "Index reloaded from store", map[string]interface{}{
		"products": len(products),
	})
	return nil
}

func (s *catalogService) embedAndIndex(ctx context.Context, product catalog.Product) error {
	res, err := s.embeddingProvider.Generate(ctx, product.EmbedText(), embedding.TaskRetrievalDocument)
	if err != nil {
		return fmt.Errorf("failed to embed product %s: %w", product.Id, err)
	}
	product.Embedding = res.Embedding.Values
	return s.idx.Upsert(ctx, product)
}
