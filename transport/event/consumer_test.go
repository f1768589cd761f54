package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hotelos/config"
	kafkaMocks "hotelos/infras/kafka/mocks"
	otelMocks "hotelos/infras/otel/mocks"
	"hotelos/internal/domains/invoice/model/dto"
	invoiceService "hotelos/internal/domains/invoice/service"
	"hotelos/transport/event"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// invoiceFake only serves delivery requests; other methods panic.
type invoiceFake struct {
	invoiceService.Invoice
	handle func(context.Context, dto.DeliveryRequested) error
}

func (f *invoiceFake) HandleDeliveryRequest(ctx context.Context, req dto.DeliveryRequested) error {
	return f.handle(ctx, req)
}

func message(t *testing.T, value any) kafka.Message {
	t.Helper()

	payload, err := json.Marshal(value)
	require.NoError(t, err)

	return kafka.Message{Topic: "invoice.delivery.retry", Value: payload}
}

func newConsumer(t *testing.T, handle func(context.Context, dto.DeliveryRequested) error) *event.Consumer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Hotel.Delivery.RetryIntervalMs = 1

	client := kafkaMocks.NewMockClient(gomock.NewController(t))

	return event.New(client, &invoiceFake{handle: handle}, cfg, otelMocks.NewOtel())
}

func TestHandleDeliveryRetry(t *testing.T) {
	var got dto.DeliveryRequested

	consumer := newConsumer(t, func(_ context.Context, req dto.DeliveryRequested) error {
		got = req

		return nil
	})

	err := consumer.HandleDeliveryRetry(context.Background(), message(t, dto.DeliveryRequested{
		InvoiceID:     "inv-1",
		InvoiceNumber: "INV-2024-000001",
		Attempt:       2,
	}))

	require.NoError(t, err)
	assert.Equal(t, "inv-1", got.InvoiceID)
	assert.Equal(t, 2, got.Attempt)
}

func TestHandleDeliveryRetry_ServiceError(t *testing.T) {
	consumer := newConsumer(t, func(context.Context, dto.DeliveryRequested) error {
		return errors.New("kafka down")
	})

	err := consumer.HandleDeliveryRetry(context.Background(), message(t, dto.DeliveryRequested{InvoiceID: "inv-1", Attempt: 1}))

	assert.Error(t, err)
}

func TestHandleDeliveryRetry_BadPayload(t *testing.T) {
	called := false

	consumer := newConsumer(t, func(context.Context, dto.DeliveryRequested) error {
		called = true

		return nil
	})

	err := consumer.HandleDeliveryRetry(context.Background(), kafka.Message{Value: []byte("not json")})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestHandleDeliveryRetry_Cancelled(t *testing.T) {
	consumer := newConsumer(t, func(context.Context, dto.DeliveryRequested) error {
		t.Fatal("handler must not run after cancellation")

		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := consumer.HandleDeliveryRetry(ctx, message(t, dto.DeliveryRequested{InvoiceID: "inv-1", Attempt: 3}))

	assert.ErrorIs(t, err, context.Canceled)
}
