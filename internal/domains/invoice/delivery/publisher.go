package delivery

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelos/config"
	"hotelos/infras/kafka"
	"hotelos/internal/domains/invoice/model/dto"
)

// Publisher puts invoice events on Kafka, keyed by invoice id so every event
// of one invoice lands on the same partition.
type Publisher interface {
	Finalized(ctx context.Context, event dto.Finalized) error
	RequestDelivery(ctx context.Context, event dto.DeliveryRequested) error
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
}

func NewPublisher(client kafka.Client, cfg *config.Config) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
	}
}

func (p *publisherImpl) Finalized(ctx context.Context, event dto.Finalized) error {
	err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.InvoiceFinalized, kafka.Message{Key: event.InvoiceID, Value: event})
	if err != nil {
		return fmt.Errorf("failed to publish invoice finalized event: %w", err)
	}

	return nil
}

func (p *publisherImpl) RequestDelivery(ctx context.Context, event dto.DeliveryRequested) error {
	err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.InvoiceDeliveryRetry, kafka.Message{Key: event.InvoiceID, Value: event})
	if err != nil {
		return fmt.Errorf("failed to publish invoice delivery request: %w", err)
	}

	return nil
}
