package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/namhkse/recomending-system/internal/dto"
	"github.com/namhkse/recomending-system/internal/repository/contract"
	"github.com/namhkse/recomending-system/internal/repository/specification"
	"github.com/namhkse/recomending-system/pkg/embedding"
	"github.com/namhkse/recomending-system/pkg/events"
	"github.com/namhkse/recomending-system/pkg/index"
	pktNats "github.com/namhkse/recomending-system/pkg/nats"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds products off the request path. It re-reads the
// product, generates the document embedding, persists it, refreshes the
// serving index, and broadcasts the reindex so other instances reload.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	productRepo       contract.ProductRepository
	embeddingProvider embedding.EmbeddingProvider
	idx               *index.Index
	natsPub           *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	productRepo contract.ProductRepository,
	embeddingProvider embedding.EmbeddingProvider,
	idx *index.Index,
	natsPub *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		productRepo:       productRepo,
		embeddingProvider: embeddingProvider,
		idx:               idx,
		natsPub:           natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedProductMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for product %s", payload.ProductId)

	product, err := cs.productRepo.FindOne(ctx, specification.ByID{ID: payload.ProductId})
	if err != nil {
		log.Printf("[ERROR] Failed to get product %s: %v", payload.ProductId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if product == nil {
		log.Printf("[ERROR] Product not found: %s", payload.ProductId)
		msg.Ack() // Deleted in the meantime? Ack.
		return
	}

	res, err := cs.embeddingProvider.Generate(ctx, product.EmbedText(), embedding.TaskRetrievalDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}
	product.Embedding = res.Embedding.Values

	if err := cs.productRepo.Upsert(ctx, product); err != nil {
		log.Printf("[ERROR] Failed to persist embedding for product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}

	if err := cs.idx.Upsert(ctx, *product); err != nil {
		log.Printf("[ERROR] Failed to refresh index for product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}

	if cs.natsPub != nil {
		if err := cs.natsPub.Publish(ctx, events.NewCatalogReindexedEvent(product.Id)); err != nil {
			// Broadcast failure is not worth a redelivery; the local
			// instance is already up to date.
			log.Printf("[WARN] Failed to broadcast reindex of product %s: %v", product.Id, err)
		}
	}

	log.Printf("[SUCCESS] Product reindexed: %s", payload.ProductId)
	msg.Ack()
}
