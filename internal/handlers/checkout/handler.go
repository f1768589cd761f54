package checkout

import (
	"net/http"

	"hotelos/infras/otel"
	"hotelos/internal/domains/checkout/model/dto"
	"hotelos/internal/domains/checkout/service"
	"hotelos/shared/constant"
	"hotelos/shared/validator"
	"hotelos/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Checkout
	otel    otel.Otel
}

func New(service service.Checkout, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/checkout", handler.FinalizeCheckout)
}

// FinalizeCheckout settles a group of checked-in bookings into one invoice.
// @Summary Finalize checkout
// @Description All bookings must be checked in and belong to one guest. Storage and email failures come back as warnings.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.FinalizeCheckoutRequest true "Finalize Checkout Request"
// @Success 201 {object} response.Data[dto.FinalizeCheckoutResponse] "Invoice and delivery status"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkout [post]
// @Security BearerAuth
func (handler *Handler) FinalizeCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinalizeCheckout")
	defer scope.End()

	req := dto.FinalizeCheckoutRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.FinalizeCheckout(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Strs("booking_ids", req.BookingIDs).Msg("failed to finalize checkout")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Invoice " + res.Invoice.InvoiceNumber + " issued by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}
