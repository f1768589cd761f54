// Package event runs the Kafka consumers of the worker process.
package event

import (
	"context"
	"sync"
	"time"

	"hotelos/config"
	"hotelos/infras/kafka"
	"hotelos/infras/otel"
	"hotelos/internal/domains/invoice/model/dto"
	invoiceService "hotelos/internal/domains/invoice/service"
	"hotelos/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Consumer struct {
	client  kafka.Client
	invoice invoiceService.Invoice
	cfg     *config.Config
	otel    otel.Otel
}

func New(client kafka.Client, invoice invoiceService.Invoice, cfg *config.Config, otel otel.Otel) *Consumer {
	return &Consumer{
		client:  client,
		invoice: invoice,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		c.client.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.Topics.InvoiceDeliveryRetry, c.HandleDeliveryRetry)
	}()

	log.Info().Str("topic", c.cfg.Kafka.Topics.InvoiceDeliveryRetry).Msg("Invoice delivery consumer started.")

	wg.Wait()

	if err := c.client.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client.")
	}
}

// HandleDeliveryRetry waits attempt times the retry interval, then hands
// the request to the invoice service.
func (c *Consumer) HandleDeliveryRetry(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".HandleDeliveryRetry")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := kafka.Decode[dto.DeliveryRequested](message)
	if err != nil {
		// A payload that cannot be decoded never will be, so commit past it.
		return nil
	}

	delay := time.Duration(c.cfg.Hotel.Delivery.RetryIntervalMs*max(event.Attempt-1, 0)) * time.Millisecond

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
	}

	return c.invoice.HandleDeliveryRequest(ctx, event)
}
