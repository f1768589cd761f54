// Package delivery stores invoice documents and emails them to guests.
// Both steps run after checkout has committed. Failures become warnings on
// the result and never touch booking, room or invoice amounts.
package delivery

//go:generate go run go.uber.org/mock/mockgen -source=./delivery.go -destination=../mocks/delivery_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelos/config"
	"hotelos/infras/mailer"
	"hotelos/infras/otel"
	"hotelos/infras/s3"
	"hotelos/internal/domains/invoice/document"
	"hotelos/internal/domains/invoice/model"
	"hotelos/internal/domains/invoice/model/dto"
	"hotelos/internal/domains/invoice/repository"
	"hotelos/shared"
	"hotelos/shared/constant"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

type Result struct {
	DocumentURL *string
	EmailSent   bool
	Warnings    []string
}

// Done reports whether nothing is left to retry.
func (r Result) Done() bool {
	return len(r.Warnings) == 0
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type Dispatcher interface {
	Deliver(ctx context.Context, invoice model.Invoice, items []model.Item) Result
}

type dispatcherImpl struct {
	repo    repository.Invoice
	storage s3.S3
	mailer  mailer.Mailer
	cfg     *config.Config
	otel    otel.Otel
}

func New(repo repository.Invoice, storage s3.S3, mailer mailer.Mailer, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		repo:    repo,
		storage: storage,
		mailer:  mailer,
		cfg:     cfg,
		otel:    otel,
	}
}

// Deliver skips whatever an earlier run already finished, so it is safe to
// call again for the same invoice.
func (d *dispatcherImpl) Deliver(ctx context.Context, invoice model.Invoice, items []model.Item) (res Result) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deliver")
	defer scope.End()

	scope.SetAttribute("invoice_number", invoice.InvoiceNumber)

	res.DocumentURL = invoice.DocumentURL
	res.EmailSent = invoice.EmailSent

	body, err := document.Render(invoice, items)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("failed to render invoice document")
		res.warn("invoice document could not be rendered: %v", err)

		return res
	}

	if res.DocumentURL == nil {
		d.store(ctx, invoice, body, &res)
	}

	if !res.EmailSent && invoice.GuestEmail != nil && *invoice.GuestEmail != constant.Empty {
		d.email(ctx, invoice, body, &res)
	}

	if !res.Done() {
		scope.AddEvent("delivery incomplete")
	}

	return res
}

func (d *dispatcherImpl) store(ctx context.Context, invoice model.Invoice, body []byte, res *Result) {
	url, err := retry(ctx, d.cfg, "store invoice document", invoice.ID, func() (string, error) {
		return d.storage.UploadFileBytes(ctx, constant.Empty, d.cfg.External.S3.InvoiceDirectory,
			document.FileName(invoice), constant.ContentTypeHTML, body)
	})
	if err != nil {
		res.warn("invoice document could not be stored: %v", err)

		return
	}

	if err = d.save(ctx, invoice.ID, dto.DeliveryUpdate{DocumentURL: &url}); err != nil {
		res.warn("invoice document stored but its url was not saved: %v", err)

		return
	}

	res.DocumentURL = &url
}

func (d *dispatcherImpl) email(ctx context.Context, invoice model.Invoice, body []byte, res *Result) {
	message := mailer.Email{
		To:      *invoice.GuestEmail,
		Subject: fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, invoice.IssuerName),
		HTML:    string(body),
	}

	_, err := retry(ctx, d.cfg, "email invoice", invoice.ID, func() (string, error) {
		id, err := d.mailer.Send(ctx, message)
		if errors.Is(err, mailer.ErrNotConfigured) {
			return id, backoff.Permanent(err)
		}

		return id, err //nolint:wrapcheck
	})
	if err != nil {
		res.warn("invoice email could not be sent: %v", err)

		return
	}

	if err = d.save(ctx, invoice.ID, dto.DeliveryUpdate{EmailSent: true}); err != nil {
		res.warn("invoice email sent but email_sent was not saved: %v", err)

		return
	}

	res.EmailSent = true
}

func (d *dispatcherImpl) save(ctx context.Context, invoiceID string, update dto.DeliveryUpdate) error {
	err := d.repo.Update(ctx, shared.TransformFields(update, constant.ContextSystem),
		shared.FilterByID(invoiceID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("invoice_id", invoiceID).Msg("failed to save invoice delivery state")

		return fmt.Errorf("failed to save invoice delivery state: %w", err)
	}

	return nil
}

func retry[T any](ctx context.Context, cfg *config.Config, step, invoiceID string, op backoff.Operation[T]) (T, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Duration(max(cfg.Hotel.Delivery.RetryIntervalMs, 1)) * time.Millisecond

	attempt := 0

	return backoff.Retry(ctx, op, //nolint:wrapcheck
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(max(cfg.Hotel.Delivery.MaxAttempts, 1))),
		backoff.WithNotify(func(err error, wait time.Duration) {
			attempt++
			log.Warn().Err(err).
				Str("invoice_id", invoiceID).
				Str("step", step).
				Int("attempt", attempt).
				Dur("retry_in", wait).
				Msg("invoice delivery attempt failed")
		}),
	)
}

// Response reports the result to API callers.
func (r Result) Response(invoiceID string) dto.DeliveryResponse {
	status := dto.DeliveryDelivered
	if !r.Done() {
		status = dto.DeliveryFailed
	}

	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return dto.DeliveryResponse{
		InvoiceID:   invoiceID,
		DocumentURL: r.DocumentURL,
		EmailSent:   r.EmailSent,
		Status:      status,
		Warnings:    warnings,
	}
}
