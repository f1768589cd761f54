package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelos/config"
	"hotelos/infras/otel"
	bookingModel "hotelos/internal/domains/booking/model"
	bookingDto "hotelos/internal/domains/booking/model/dto"
	bookingRepo "hotelos/internal/domains/booking/repository"
	bookingService "hotelos/internal/domains/booking/service"
	"hotelos/internal/domains/checkout"
	"hotelos/internal/domains/checkout/model/dto"
	guestModel "hotelos/internal/domains/guest/model"
	guestDto "hotelos/internal/domains/guest/model/dto"
	guestRepo "hotelos/internal/domains/guest/repository"
	guestService "hotelos/internal/domains/guest/service"
	"hotelos/internal/domains/invoice/delivery"
	invoiceModel "hotelos/internal/domains/invoice/model"
	invoiceDto "hotelos/internal/domains/invoice/model/dto"
	invoiceRepo "hotelos/internal/domains/invoice/repository"
	invoiceService "hotelos/internal/domains/invoice/service"
	ledgerModel "hotelos/internal/domains/ledger/model"
	ledgerRepo "hotelos/internal/domains/ledger/repository"
	ledgerService "hotelos/internal/domains/ledger/service"
	roomModel "hotelos/internal/domains/room/model"
	roomDto "hotelos/internal/domains/room/model/dto"
	roomRepo "hotelos/internal/domains/room/repository"
	roomService "hotelos/internal/domains/room/service"
	"hotelos/shared"
	"hotelos/shared/cache"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"
	gModel "hotelos/shared/model"
	gRepo "hotelos/shared/repository"
	"hotelos/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Checkout interface {
	FinalizeCheckout(ctx context.Context, req dto.FinalizeCheckoutRequest) (dto.FinalizeCheckoutResponse, error)
}

// Repositories groups the stores a checkout writes to in one transaction.
type Repositories struct {
	Booking    bookingRepo.Booking
	Room       roomRepo.Room
	ServiceLog roomRepo.ServiceLog
	Guest      guestRepo.Guest
	Charge     ledgerRepo.Charge
	Payment    ledgerRepo.Payment
	Invoice    invoiceRepo.Invoice
	Item       invoiceRepo.Item
	Sequence   invoiceRepo.Sequence
}

type serviceImpl struct {
	repos      Repositories
	tx         gRepo.Transactor
	dispatcher delivery.Dispatcher
	publisher  delivery.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repos Repositories,
	tx gRepo.Transactor,
	dispatcher delivery.Dispatcher,
	publisher delivery.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Checkout {
	return &serviceImpl{
		repos:      repos,
		tx:         tx,
		dispatcher: dispatcher,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// settlement is everything the transaction produced that delivery needs.
type settlement struct {
	invoice    invoiceModel.Invoice
	items      []invoiceModel.Item
	payments   []ledgerModel.Payment
	bookingIDs []string
	roomIDs    []string
}

// FinalizeCheckout settles a group of checked-in bookings for one guest into
// a single invoice. Bookings, rooms, ledger snapshot, settlement payments,
// invoice number, invoice rows and guest totals are committed together or not
// at all. Storage and
// email run after commit and only ever add warnings to the response.
func (s *serviceImpl) FinalizeCheckout(ctx context.Context, req dto.FinalizeCheckoutRequest) (res dto.FinalizeCheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FinalizeCheckout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ids := checkout.Unique(req.BookingIDs)
	if len(ids) == 0 {
		return res, failure.BadRequestFromString("at least one booking is required")
	}

	policy, err := checkout.NewTaxPolicy(s.cfg.Hotel.TaxRatePercent, s.cfg.Hotel.TaxLabels)
	if err != nil {
		log.Error().Err(err).Msg("invalid tax configuration")

		return res, fmt.Errorf("failed to load tax policy: %w", err)
	}

	var result settlement

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err = s.settle(ctx, tx, ids, req, policy, user)

		return err
	})
	if err != nil {
		log.Error().Err(err).Strs("booking_ids", ids).Msg("failed to finalize checkout")

		return res, fmt.Errorf("failed to finalize checkout: %w", err)
	}

	log.Info().
		Str("invoice_number", result.invoice.InvoiceNumber).
		Strs("booking_ids", ids).
		Str("total", result.invoice.TotalAmount.String()).
		Msg("checkout finalized")

	s.invalidate(ctx, result)
	s.announce(ctx, result.invoice)

	res.Delivery = s.deliver(ctx, result)

	result.invoice.DocumentURL = res.Delivery.DocumentURL
	result.invoice.EmailSent = res.Delivery.EmailSent

	res.Invoice.FromModel(result.invoice)
	res.Invoice.WithItems(result.items)

	return res, nil
}

func (s *serviceImpl) settle(
	ctx context.Context,
	tx *sqlx.Tx,
	ids []string,
	req dto.FinalizeCheckoutRequest,
	policy checkout.TaxPolicy,
	user string,
) (res settlement, err error) {
	bookings, err := s.repos.Booking.GetAllTx(ctx, tx,
		gDto.QueryParams{SortBy: bookingModel.FieldID, SortDir: gDto.SortDirAsc},
		shared.FilterByIDs(ids, bookingModel.FieldID, bookingModel.TableName),
		gRepo.LockForUpdate)
	if err != nil {
		return res, fmt.Errorf("failed to lock bookings: %w", err)
	}

	guestID, err := checkout.Validate(ids, bookings)
	if err != nil {
		return res, groupFailure(err)
	}

	createdAsc := gDto.QueryParams{SortBy: ledgerModel.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	charges, err := s.repos.Charge.GetAllTx(ctx, tx, createdAsc,
		shared.FilterByIDs(ids, ledgerModel.FieldBookingID, ledgerModel.ChargeTableName), gRepo.LockNone)
	if err != nil {
		return res, fmt.Errorf("failed to read charges: %w", err)
	}

	payments, err := s.repos.Payment.GetAllTx(ctx, tx, createdAsc,
		shared.FilterByIDs(ids, ledgerModel.FieldBookingID, ledgerModel.PaymentTableName), gRepo.LockNone)
	if err != nil {
		return res, fmt.Errorf("failed to read payments: %w", err)
	}

	res.roomIDs = roomIDs(bookings)
	roomFilter := shared.FilterByIDs(res.roomIDs, roomModel.FieldID, roomModel.TableName)

	rooms, err := s.repos.Room.GetAllTx(ctx, tx,
		gDto.QueryParams{SortBy: roomModel.FieldID, SortDir: gDto.SortDirAsc}, roomFilter, gRepo.LockForUpdate)
	if err != nil {
		return res, fmt.Errorf("failed to lock rooms: %w", err)
	}

	guestFilter := shared.FilterByID(guestID, guestModel.FieldID, guestModel.TableName)

	guest, err := s.repos.Guest.GetTx(ctx, tx, guestFilter, gRepo.LockForUpdate)
	if err != nil {
		return res, fmt.Errorf("failed to lock guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest not found")
	}

	totals := checkout.Settle(bookings, charges, payments, policy)
	now := timezone.Now()

	sequence, err := s.repos.Sequence.NextTx(ctx, tx, now.Year())
	if err != nil {
		return res, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	res.invoice = s.newInvoice(req, guest, ids, totals, policy, now, sequence, user)
	res.payments = checkout.SettlementPayments(bookings, charges, payments, res.invoice.PaymentMode, res.invoice.InvoiceNumber, user, now)
	res.items = checkout.BuildItems(res.invoice.ID, bookings, byID(rooms), charges)
	res.bookingIDs = ids

	if err := s.repos.Booking.UpdateTx(ctx, tx,
		shared.TransformFields(bookingDto.StatusUpdate{Status: bookingModel.StatusCheckedOut}, user),
		shared.FilterByIDs(ids, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		return res, fmt.Errorf("failed to check out bookings: %w", err)
	}

	if err := s.repos.Room.UpdateTx(ctx, tx,
		shared.TransformFields(roomDto.StatusUpdate{Status: roomModel.StatusNeedsService}, user), roomFilter); err != nil {
		return res, fmt.Errorf("failed to release rooms: %w", err)
	}

	logs := make([]roomModel.ServiceLog, len(bookings))
	for i, booking := range bookings {
		logs[i] = roomDto.NewServiceLog(booking.RoomID, booking.ID, roomModel.ServiceTypeCheckout,
			"Guest checked out, invoice "+res.invoice.InvoiceNumber, user)
	}

	if err := s.repos.ServiceLog.InsertBulkTx(ctx, tx, logs); err != nil {
		return res, fmt.Errorf("failed to write service logs: %w", err)
	}

	for _, payment := range res.payments {
		if err := s.repos.Payment.InsertTx(ctx, tx, payment); err != nil {
			return res, fmt.Errorf("failed to record settlement payment: %w", err)
		}
	}

	if err := s.repos.Invoice.InsertTx(ctx, tx, res.invoice); err != nil {
		return res, failure.FromDatabase(fmt.Errorf("failed to insert invoice: %w", err), "invoice number already issued")
	}

	if err := s.repos.Item.InsertBulkTx(ctx, tx, res.items); err != nil {
		return res, fmt.Errorf("failed to insert invoice items: %w", err)
	}

	if err := s.repos.Guest.UpdateTx(ctx, tx,
		shared.TransformFields(guestDto.TotalsUpdate{
			TotalVisits: guest.TotalVisits + 1,
			TotalSpent:  guest.TotalSpent.Add(totals.Total),
		}, user), guestFilter); err != nil {
		return res, fmt.Errorf("failed to update guest totals: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) newInvoice(
	req dto.FinalizeCheckoutRequest,
	guest guestModel.Guest,
	bookingIDs []string,
	totals checkout.Totals,
	policy checkout.TaxPolicy,
	now time.Time,
	sequence int64,
	user string,
) invoiceModel.Invoice {
	paymentMode := req.PaymentMode
	if paymentMode == constant.Empty {
		paymentMode = s.cfg.Hotel.DefaultPaymentMode
	}

	return invoiceModel.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: invoiceModel.FormatNumber(s.cfg.Hotel.InvoicePrefix, now.Year(), sequence),
		InvoiceDate:   timezone.Date(now),
		BookingIDs:    pq.StringArray(bookingIDs),
		GuestID:       guest.ID,
		GuestName:     guest.FullName,
		GuestEmail:    guest.Email,
		CompanyName:   req.CompanyName,
		CompanyTaxID:  req.CompanyTaxID,
		IssuerName:    s.cfg.Hotel.Name,
		IssuerTaxID:   s.cfg.Hotel.TaxID,
		Currency:      s.cfg.Hotel.Currency,
		GrossAmount:   totals.Gross,
		PriorPayments: totals.PriorPayments,
		BaseAmount:    totals.Base,
		TaxRate:       policy.Rate,
		TaxOneLabel:   policy.Labels[0],
		TaxOneAmount:  totals.TaxOne,
		TaxTwoLabel:   policy.Labels[1],
		TaxTwoAmount:  totals.TaxTwo,
		TotalAmount:   totals.Total,
		PaymentMode:   paymentMode,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, result settlement) {
	bookingService.InvalidateCaches(ctx, s.cache, result.bookingIDs...)
	roomService.InvalidateCaches(ctx, s.cache, result.roomIDs...)
	guestService.InvalidateCaches(ctx, s.cache, result.invoice.GuestID)
	ledgerService.InvalidateCaches(ctx, s.cache, result.bookingIDs...)
	invoiceService.InvalidateCaches(ctx, s.cache)
}

func (s *serviceImpl) announce(ctx context.Context, invoice invoiceModel.Invoice) {
	event := invoiceDto.Finalized{
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		GuestID:       invoice.GuestID,
		BookingIDs:    []string(invoice.BookingIDs),
		TotalAmount:   invoice.TotalAmount,
		FinalizedAt:   timezone.Format(invoice.CreatedAt, constant.DateFormat),
	}

	if err := s.publisher.Finalized(context.WithoutCancel(ctx), event); err != nil {
		log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("failed to publish invoice finalized event")
	}
}

// deliver stores and emails the invoice inline, or hands it to the worker when
// delivery is async. An incomplete inline delivery is also queued for retry.
func (s *serviceImpl) deliver(ctx context.Context, result settlement) invoiceDto.DeliveryResponse {
	ctx = context.WithoutCancel(ctx)
	request := invoiceDto.DeliveryRequested{
		InvoiceID:     result.invoice.ID,
		InvoiceNumber: result.invoice.InvoiceNumber,
		Attempt:       1,
	}

	if s.cfg.Hotel.Delivery.Async {
		res := invoiceDto.DeliveryResponse{
			InvoiceID: result.invoice.ID,
			Status:    invoiceDto.DeliveryQueued,
			Warnings:  []string{},
		}

		if err := s.publisher.RequestDelivery(ctx, request); err != nil {
			log.Error().Err(err).Str("invoice_id", result.invoice.ID).Msg("failed to queue invoice delivery")

			res.Status = invoiceDto.DeliveryFailed
			res.Warnings = append(res.Warnings, "invoice delivery could not be queued, use redeliver")
		}

		return res
	}

	res := s.dispatcher.Deliver(ctx, result.invoice, result.items).Response(result.invoice.ID)
	if res.Status == invoiceDto.DeliveryDelivered {
		return res
	}

	request.Attempt = 2

	if err := s.publisher.RequestDelivery(ctx, request); err != nil {
		log.Error().Err(err).Str("invoice_id", result.invoice.ID).Msg("failed to queue invoice delivery retry")
	}

	return res
}

func groupFailure(err error) error {
	var groupErr *checkout.GroupError
	if !errors.As(err, &groupErr) {
		return err
	}

	if groupErr.Kind == checkout.ErrMissing {
		return failure.NotFound(groupErr.Error())
	}

	return failure.Conflict(groupErr.Error())
}

func roomIDs(bookings []bookingModel.Booking) []string {
	ids := make([]string, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.RoomID
	}

	return checkout.Unique(ids)
}

func byID(rooms []roomModel.Room) map[string]roomModel.Room {
	out := make(map[string]roomModel.Room, len(rooms))
	for _, room := range rooms {
		out[room.ID] = room
	}

	return out
}
