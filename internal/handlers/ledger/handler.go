package ledger

import (
	"net/http"

	"hotelos/infras/otel"
	"hotelos/internal/domains/ledger/model/dto"
	"hotelos/internal/domains/ledger/service"
	"hotelos/shared/constant"
	"hotelos/shared/validator"
	"hotelos/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// BookingRoutes registers the ledger under a booking group.
func (handler *Handler) BookingRoutes(routerGroup chi.Router) {
	routerGroup.Get("/{id}/ledger", handler.GetLedger)
	routerGroup.Post("/{id}/charges", handler.AddCharge)
	routerGroup.Post("/{id}/payments", handler.AddPayment)
}

// GetLedger returns the charges, payments and balance of a booking.
// @Summary Get booking ledger
// @Description balance = booking total + charges - payments. Negative means overpaid.
// @Tags Ledger
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.LedgerResponse] "Ledger"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/ledger [get]
// @Security BearerAuth
func (handler *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLedger")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetLedger(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ledger")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddCharge appends a charge to an open booking.
// @Summary Add a charge
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AddChargeRequest true "Add Charge Request"
// @Success 201 {object} response.Data[dto.ChargeResponse] "Charge recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/charges [post]
// @Security BearerAuth
func (handler *Handler) AddCharge(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddCharge")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.AddChargeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddCharge(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add charge")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Charge recorded")

	response.WithJSON(w, http.StatusCreated, res)
}

// AddPayment appends a payment to an open booking.
// @Summary Add a payment
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AddPaymentRequest true "Add Payment Request"
// @Success 201 {object} response.Data[dto.PaymentResponse] "Payment recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/payments [post]
// @Security BearerAuth
func (handler *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.AddPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddPayment(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment recorded")

	response.WithJSON(w, http.StatusCreated, res)
}
