package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotelos/config"
	"hotelos/infras/otel"
	"hotelos/shared/constant"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

var ErrNotConfigured = errors.New("email provider is not configured")

type Email struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) (messageID string, err error)
}

type resendImpl struct {
	client *resend.Client
	from   string
	otel   otel.Otel
}

// New returns a Resend backed mailer. Without an API key every Send fails
// with ErrNotConfigured so callers can record the delivery as pending.
func New(config *config.Config, otel otel.Otel) Mailer {
	var client *resend.Client

	if config.External.Email.ResendAPIKey != "" {
		client = resend.NewClient(config.External.Email.ResendAPIKey)
	} else {
		log.Warn().Msg("Resend API key not set, outgoing email is disabled")
	}

	return &resendImpl{
		client: client,
		from:   config.External.Email.From,
		otel:   otel,
	}
}

func (m *resendImpl) Send(ctx context.Context, email Email) (messageID string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if m.client == nil {
		return constant.Empty, ErrNotConfigured
	}

	if email.To == "" {
		return constant.Empty, errors.New("recipient address is empty")
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		log.Error().Err(err).Str("to", email.To).Msg("failed to send email")

		return constant.Empty, fmt.Errorf("failed to send email: %w", err)
	}

	scope.SetAttribute("message_id", sent.Id)

	return sent.Id, nil
}
