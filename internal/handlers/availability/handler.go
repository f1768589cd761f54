package availability

import (
	"net/http"

	"hotelos/infras/otel"
	"hotelos/internal/domains/availability/model/dto"
	"hotelos/internal/domains/availability/service"
	"hotelos/shared/constant"
	"hotelos/shared/validator"
	"hotelos/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/rooms", handler.ListAvailableRooms)
		routerGroup.Get("/rooms/{id}", handler.CheckAvailability)
	})
}

// CheckAvailability reports whether a room is free for a stay.
// @Summary Check room availability
// @Description A stay is free when no confirmed or checked-in booking of the room overlaps [check_in, check_out).
// @Tags Availability
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param exclude_booking_id query string false "Booking to ignore, e.g. when moving a stay"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/rooms/{id} [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := r.URL.Query()
	req := dto.CheckAvailabilityRequest{
		RoomID:           chi.URLParam(r, constant.RequestParamID),
		CheckIn:          query.Get(constant.RequestParamCheckIn),
		CheckOut:         query.Get(constant.RequestParamCheckOut),
		ExcludeBookingID: query.Get(constant.RequestParamExcludeBookingID),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ListAvailableRooms lists rooms free for a whole stay.
// @Summary List available rooms
// @Tags Availability
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailableRoomsResponse] "Rooms ordered by room number"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/rooms [get]
func (handler *Handler) ListAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListAvailableRooms")
	defer scope.End()

	query := r.URL.Query()
	req := dto.ListAvailableRoomsRequest{
		CheckIn:  query.Get(constant.RequestParamCheckIn),
		CheckOut: query.Get(constant.RequestParamCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListAvailableRooms(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list available rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
