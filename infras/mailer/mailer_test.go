package mailer_test

import (
	"context"
	"testing"

	"hotelos/config"
	"hotelos/infras/mailer"
	"hotelos/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
)

func TestSend_NotConfigured(t *testing.T) {
	m := mailer.New(&config.Config{}, mocks.NewOtel())

	id, err := m.Send(context.Background(), mailer.Email{To: "guest@example.com", Subject: "Invoice", HTML: "<p>hi</p>"})

	assert.ErrorIs(t, err, mailer.ErrNotConfigured)
	assert.Empty(t, id)
}

func TestSend_EmptyRecipient(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Email.ResendAPIKey = "re_test"

	m := mailer.New(cfg, mocks.NewOtel())

	_, err := m.Send(context.Background(), mailer.Email{Subject: "Invoice"})

	assert.Error(t, err)
}
