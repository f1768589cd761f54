package service

import (
	"context"
	"fmt"

	"hotelos/config"
	"hotelos/infras/otel"
	bookingModel "hotelos/internal/domains/booking/model"
	bookingRepo "hotelos/internal/domains/booking/repository"
	"hotelos/internal/domains/ledger/model"
	"hotelos/internal/domains/ledger/model/dto"
	"hotelos/internal/domains/ledger/repository"
	"hotelos/shared"
	"hotelos/shared/cache"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"
	gRepo "hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Ledger interface {
	AddCharge(ctx context.Context, bookingID string, req dto.AddChargeRequest) (dto.ChargeResponse, error)
	AddPayment(ctx context.Context, bookingID string, req dto.AddPaymentRequest) (dto.PaymentResponse, error)
	GetLedger(ctx context.Context, bookingID string) (dto.LedgerResponse, error)
}

type serviceImpl struct {
	chargeRepo  repository.Charge
	paymentRepo repository.Payment
	bookingRepo bookingRepo.Booking
	tx          gRepo.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	chargeRepo repository.Charge,
	paymentRepo repository.Payment,
	bookingRepo bookingRepo.Booking,
	tx gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Ledger {
	return &serviceImpl{
		chargeRepo:  chargeRepo,
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		tx:          tx,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// InvalidateCaches drops the cached ledgers of the given bookings before
// returning, so a read that follows a write sees the new balance.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, bookingIDs ...string) {
	c := context.WithoutCancel(ctx)

	for _, id := range bookingIDs {
		if err := redisCache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to delete ledger cache")
		}
	}
}

func (s *serviceImpl) AddCharge(ctx context.Context, bookingID string, req dto.AddChargeRequest) (res dto.ChargeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddCharge")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	charge := req.ToModel(bookingID, user)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.lockOpenBooking(ctx, tx, bookingID); err != nil {
			return err
		}

		if err := s.chargeRepo.InsertTx(ctx, tx, charge); err != nil {
			return failure.FromDatabase(fmt.Errorf("failed to insert charge: %w", err), "charge already recorded")
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to add charge")

		return res, fmt.Errorf("failed to add charge: %w", err)
	}

	InvalidateCaches(ctx, s.cache, bookingID)

	res.FromModel(charge)

	return res, nil
}

func (s *serviceImpl) AddPayment(ctx context.Context, bookingID string, req dto.AddPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	payment := req.ToModel(bookingID, user)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.lockOpenBooking(ctx, tx, bookingID); err != nil {
			return err
		}

		if err := s.paymentRepo.InsertTx(ctx, tx, payment); err != nil {
			return failure.FromDatabase(fmt.Errorf("failed to insert payment: %w", err), "payment already recorded")
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to add payment")

		return res, fmt.Errorf("failed to add payment: %w", err)
	}

	InvalidateCaches(ctx, s.cache, bookingID)

	res.FromModel(payment)

	return res, nil
}

// lockOpenBooking takes a share lock on the booking. Checkout needs an
// exclusive lock on the same row, so an entry either lands before checkout
// reads the ledger or sees the booking already checked out.
func (s *serviceImpl) lockOpenBooking(ctx context.Context, tx *sqlx.Tx, bookingID string) error {
	booking, err := s.bookingRepo.GetTx(ctx, tx,
		shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName),
		gRepo.LockForShare, bookingModel.FieldID, bookingModel.FieldStatus)
	if err != nil {
		return fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found")
	}

	if !bookingModel.IsActive(booking.Status) {
		return failure.Conflict(fmt.Sprintf("booking is %s, its ledger is closed", booking.Status))
	}

	return nil
}

func (s *serviceImpl) GetLedger(ctx context.Context, bookingID string) (res dto.LedgerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetLedger")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, bookingID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	byBooking := shared.FilterByID(bookingID, model.FieldBookingID, constant.Empty)
	oldestFirst := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	charges, err := s.chargeRepo.GetAll(ctx, oldestFirst, byBooking)
	if err != nil {
		log.Error().Err(err).Msg("failed to get charges")

		return res, fmt.Errorf("failed to get charges: %w", err)
	}

	payments, err := s.paymentRepo.GetAll(ctx, oldestFirst, byBooking)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(booking.ID, booking.Status, booking.TotalAmount, charges, payments)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save ledger to cache")
		}
	}()

	return res, nil
}
