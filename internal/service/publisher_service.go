package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/namhkse/recomending-system/internal/dto"
)

type IPublisherService interface {
	PublishEmbedProduct(ctx context.Context, productId string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) PublishEmbedProduct(ctx context.Context, productId string) error {
	payload, err := json.Marshal(dto.PublishEmbedProductMessage{ProductId: productId})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		return err
	}

	log.Printf("[INFO] Published embed request for product %s", productId)
	return nil
}
