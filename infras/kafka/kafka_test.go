package kafka_test

import (
	"testing"

	"hotelos/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceEvent struct {
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:   "inv-1",
		Value: invoiceEvent{InvoiceID: "inv-1", InvoiceNumber: "INV-2024-000001"},
	}

	raw, err := msg.ToKafkaMessage("invoice.finalized")
	require.NoError(t, err)

	assert.Equal(t, "invoice.finalized", raw.Topic)
	assert.Equal(t, []byte("inv-1"), raw.Key)
	assert.JSONEq(t, `{"invoice_id":"inv-1","invoice_number":"INV-2024-000001"}`, string(raw.Value))

	decoded, err := kafka.Decode[invoiceEvent](raw)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-000001", decoded.InvoiceNumber)
}

func TestMessage_Errors(t *testing.T) {
	bad := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := bad.ToKafkaMessage("t")
	assert.Error(t, err)

	_, err = kafka.Decode[invoiceEvent](kafkaGo.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}
