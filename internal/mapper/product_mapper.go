package mapper

import (
	"encoding/json"
	"log"

	"github.com/namhkse/recomending-system/internal/model"
	"github.com/namhkse/recomending-system/pkg/catalog"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToDomain(e *model.Product) *catalog.Product {
	if e == nil {
		return nil
	}

	var specs map[string]string
	if len(e.Specs) > 0 {
		if err := json.Unmarshal(e.Specs, &specs); err != nil {
			log.Printf("[WARN] Product %s has malformed specs json: %v", e.Id, err)
		}
	}
	var features []string
	if len(e.Features) > 0 {
		if err := json.Unmarshal(e.Features, &features); err != nil {
			log.Printf("[WARN] Product %s has malformed features json: %v", e.Id, err)
		}
	}
	var tags []string
	if len(e.Tags) > 0 {
		if err := json.Unmarshal(e.Tags, &tags); err != nil {
			log.Printf("[WARN] Product %s has malformed tags json: %v", e.Id, err)
		}
	}

	return &catalog.Product{
		Id:          e.Id,
		Name:        e.Name,
		Category:    catalog.Category(e.Category),
		Brand:       e.Brand,
		Price:       e.Price,
		Description: e.Description,
		Specs:       specs,
		Features:    features,
		Tags:        tags,
		Embedding:   e.Embedding.Slice(),
	}
}

func (m *ProductMapper) ToModel(p *catalog.Product) *model.Product {
	if p == nil {
		return nil
	}

	specs, _ := json.Marshal(p.Specs)
	features, _ := json.Marshal(p.Features)
	tags, _ := json.Marshal(p.Tags)

	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Category:    string(p.Category),
		Brand:       p.Brand,
		Price:       p.Price,
		Description: p.Description,
		Specs:       datatypes.JSON(specs),
		Features:    datatypes.JSON(features),
		Tags:        datatypes.JSON(tags),
		Embedding:   pgvector.NewVector(p.Embedding),
	}
}

func (m *ProductMapper) ToDomains(models []*model.Product) []*catalog.Product {
	out := make([]*catalog.Product, len(models))
	for i, e := range models {
		out[i] = m.ToDomain(e)
	}
	return out
}

func (m *ProductMapper) ToModels(products []*catalog.Product) []*model.Product {
	out := make([]*model.Product, len(products))
	for i, p := range products {
		out[i] = m.ToModel(p)
	}
	return out
}
