package events

import "time"

const (
	// CatalogReindexed fires after a product's embedding lands in the
	// store. API instances reload their in-memory index on it.
	CatalogReindexed = "CATALOG_REINDEXED"
)

// NewCatalogReindexedEvent reports one reindexed product.
func NewCatalogReindexedEvent(productID string) Event {
	return BaseEvent{
		Type: CatalogReindexed,
		Data: map[string]interface{}{
			"product_id": productID,
		},
		OccurredAt: time.Now(),
	}
}
