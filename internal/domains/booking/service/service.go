package service

import (
	"context"
	"fmt"

	"hotelos/config"
	"hotelos/infras/otel"
	"hotelos/internal/domains/availability"
	"hotelos/internal/domains/booking/model"
	"hotelos/internal/domains/booking/model/dto"
	"hotelos/internal/domains/booking/repository"
	guestModel "hotelos/internal/domains/guest/model"
	guestRepo "hotelos/internal/domains/guest/repository"
	guestService "hotelos/internal/domains/guest/service"
	roomModel "hotelos/internal/domains/room/model"
	roomDto "hotelos/internal/domains/room/model/dto"
	roomRepo "hotelos/internal/domains/room/repository"
	roomService "hotelos/internal/domains/room/service"
	"hotelos/shared"
	"hotelos/shared/cache"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"
	"hotelos/shared/money"
	gRepo "hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) (dto.CheckInResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	MarkNoShow(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo           repository.Booking
	roomRepo       roomRepo.Room
	serviceLogRepo roomRepo.ServiceLog
	guestRepo      guestRepo.Guest
	tx             gRepo.Transactor
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	serviceLogRepo roomRepo.ServiceLog,
	guestRepo guestRepo.Guest,
	tx gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:           repo,
		roomRepo:       roomRepo,
		serviceLogRepo: serviceLogRepo,
		guestRepo:      guestRepo,
		tx:             tx,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

// InvalidateCaches drops cached reads of the given bookings and every booking list.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := redisCache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}

		shared.InvalidateCaches(c, redisCache, model.CacheGetAll)
		shared.InvalidateCaches(c, redisCache, model.CacheCount)
	}()
}

// Create books a room. The room row is locked for the whole transaction, so
// concurrent requests for the same room run the overlap check one at a time.
// The exclusion constraint on bookings backs this up.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.GuestID == constant.Empty && req.Guest == nil {
		return res, failure.BadRequestFromString("guest_id or guest is required")
	}

	stay, err := availability.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	var (
		booking      model.Booking
		guestCreated bool
	)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName), gRepo.LockForUpdate)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		guestID, err := s.resolveGuest(ctx, tx, req, user)
		if err != nil {
			return err
		}

		guestCreated = req.GuestID == constant.Empty

		taken, err := s.repo.ExistTx(ctx, tx, availability.OverlapFilter(stay, room.ID, constant.Empty))
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}

		if taken {
			return failure.Conflict(fmt.Sprintf("room %s is already booked between %s and %s",
				room.RoomNumber, req.CheckIn, req.CheckOut))
		}

		total := money.Round(room.RatePerNight.Mul(decimal.NewFromInt(int64(stay.Nights))))
		booking = req.ToModel(guestID, stay, total, user)

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return failure.FromDatabase(err, fmt.Sprintf("room %s is already booked for these dates", room.RoomNumber))
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	InvalidateCaches(ctx, s.cache)

	if guestCreated {
		guestService.InvalidateCaches(ctx, s.cache)
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) resolveGuest(ctx context.Context, tx *sqlx.Tx, req dto.CreateBookingRequest, user string) (string, error) {
	if req.GuestID != constant.Empty {
		guest, err := s.guestRepo.GetTx(ctx, tx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName), gRepo.LockNone, guestModel.FieldID)
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to get guest: %w", err)
		}

		if guest.ID == constant.Empty {
			return constant.Empty, failure.NotFound("guest not found")
		}

		return guest.ID, nil
	}

	guest := req.Guest.ToModel(user)
	if err := s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
		return constant.Empty, fmt.Errorf("failed to create guest: %w", err)
	}

	return guest.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// CheckIn moves a confirmed booking to checked_in and its room to occupied
// in one transaction. A room that is already occupied is refused.
func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.CheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		booking model.Booking
		room    roomModel.Room
	)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockForTransition(ctx, tx, id, model.StatusCheckedIn)
		if err != nil {
			return err
		}

		roomFilter := shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)

		room, err = s.roomRepo.GetTx(ctx, tx, roomFilter, gRepo.LockForUpdate)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.Status == roomModel.StatusOccupied {
			return failure.Conflict(fmt.Sprintf("room %s is still occupied", room.RoomNumber))
		}

		if err := s.repo.UpdateTx(ctx, tx,
			shared.TransformFields(dto.StatusUpdate{Status: model.StatusCheckedIn}, user),
			shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		if err := s.roomRepo.UpdateTx(ctx, tx,
			shared.TransformFields(roomDto.StatusUpdate{Status: roomModel.StatusOccupied}, user), roomFilter); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		entry := roomDto.NewServiceLog(room.ID, booking.ID, roomModel.ServiceTypeCheckIn, "Guest checked in", user)
		if err := s.serviceLogRepo.InsertTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to write service log: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to check in booking")

		return res, fmt.Errorf("failed to check in booking: %w", err)
	}

	booking.Status = model.StatusCheckedIn
	room.Status = roomModel.StatusOccupied

	InvalidateCaches(ctx, s.cache, booking.ID)
	roomService.InvalidateCaches(ctx, s.cache, room.ID)

	res.Booking.FromModel(booking)
	res.Room.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusCancelled)
}

func (s *serviceImpl) MarkNoShow(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkNoShow")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusNoShow)
}

func (s *serviceImpl) transition(ctx context.Context, id, to string) (res dto.BookingResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockForTransition(ctx, tx, id, to)
		if err != nil {
			return err
		}

		if err := s.repo.UpdateTx(ctx, tx,
			shared.TransformFields(dto.StatusUpdate{Status: to}, user),
			shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Str("status", to).Msg("failed to change booking status")

		return res, fmt.Errorf("failed to change booking status: %w", err)
	}

	booking.Status = to

	InvalidateCaches(ctx, s.cache, booking.ID)

	res.FromModel(booking)

	return res, nil
}

// lockForTransition reads the booking FOR UPDATE and checks it may move to status.
func (s *serviceImpl) lockForTransition(ctx context.Context, tx *sqlx.Tx, id, status string) (model.Booking, error) {
	booking, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName), gRepo.LockForUpdate)
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	if !model.CanTransition(booking.Status, status) {
		return booking, failure.Conflict(fmt.Sprintf("booking is %s and cannot become %s", booking.Status, status))
	}

	return booking, nil
}
