package service

import (
	"context"
	"fmt"

	"hotelos/infras/otel"
	"hotelos/internal/domains/availability"
	"hotelos/internal/domains/availability/model/dto"
	bookingModel "hotelos/internal/domains/booking/model"
	bookingRepo "hotelos/internal/domains/booking/repository"
	roomModel "hotelos/internal/domains/room/model"
	roomRepo "hotelos/internal/domains/room/repository"
	"hotelos/shared"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"

	"github.com/rs/zerolog/log"
)

// Availability only reads. Results are never cached since any booking write
// can change them.
type Availability interface {
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.AvailabilityResponse, error)
	ListAvailableRooms(ctx context.Context, req dto.ListAvailableRoomsRequest) (dto.AvailableRoomsResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, otel otel.Otel) Availability {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		otel:        otel,
	}
}

var overlapColumns = []string{
	bookingModel.FieldID,
	bookingModel.FieldRoomID,
	bookingModel.FieldCheckIn,
	bookingModel.FieldCheckOut,
	bookingModel.FieldStatus,
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := availability.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName), roomModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found")
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{},
		availability.OverlapFilter(stay, room.ID, req.ExcludeBookingID), overlapColumns...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	res.FromStay(room.ID, stay, availability.IsFree(bookings, stay, req.ExcludeBookingID))

	return res, nil
}

func (s *serviceImpl) ListAvailableRooms(ctx context.Context, req dto.ListAvailableRoomsRequest) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := availability.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	busy, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{},
		availability.OverlapFilter(stay, constant.Empty, constant.Empty), bookingModel.FieldRoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(stay, availability.FreeRooms(rooms, busy))

	return res, nil
}
