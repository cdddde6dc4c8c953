package dto

type UpsertProductRequest struct {
	Id          string            `json:"id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Category    string            `json:"category" validate:"required,oneof=phone laptop tablet"`
	Brand       string            `json:"brand" validate:"required"`
	Price       float64           `json:"price" validate:"required,gt=0"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs"`
	Features    []string          `json:"features"`
	Tags        []string          `json:"tags"`
}

type GetCatalogResponse struct {
	Count    int          `json:"count"`
	Products []ProductDTO `json:"products"`
}

// PublishEmbedProductMessage is the payload of the embed-product topic.
// The consumer re-fetches the product so a stale message never clobbers a
// newer edit.
type PublishEmbedProductMessage struct {
	ProductId string `json:"product_id"`
}
