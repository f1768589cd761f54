package invoice

import (
	"net/http"

	"hotelos/infras/otel"
	"hotelos/internal/domains/invoice/model"
	"hotelos/internal/domains/invoice/service"
	"hotelos/shared"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/validator"
	"hotelos/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
		routerGroup.Get("/{id}/document", handler.GetDocument)
		routerGroup.Post("/{id}/redeliver", handler.Redeliver)
	})
}

// GetInvoices lists issued invoices.
// @Summary Get all invoices
// @Tags Invoice
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param guest_id query string false "Filter by guest"
// @Param email_sent query bool false "false lists invoices still waiting for email delivery"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse] "List of invoices"
// @Failure 500 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.FieldInvoiceNumber, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if guestID := r.URL.Query().Get(constant.RequestParamGuestID); guestID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldGuestID,
			Operator: gDto.FilterOperatorEq,
			Value:    guestID,
			Table:    model.TableName,
		})
	}

	if emailSent := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamEmailSent)); emailSent != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmailSent,
			Operator: gDto.FilterOperatorEq,
			Value:    *emailSent,
			Table:    model.TableName,
		})
	}

	invoices, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetInvoiceByID returns an invoice with its line items.
// @Summary Get an invoice by ID
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// GetDocument renders the invoice page from the stored invoice.
// @Summary Get invoice document
// @Tags Invoice
// @Produce html
// @Param id path string true "Invoice ID"
// @Success 200 {string} string "Invoice HTML"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id}/document [get]
// @Security BearerAuth
func (handler *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	body, name, err := handler.service.Document(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render invoice document")

		response.WithError(w, err)

		return
	}

	response.WithDocument(w, constant.ContentTypeHTML, name, body)
}

// Redeliver retries document storage and email for an invoice.
// @Summary Redeliver an invoice
// @Description Steps that already succeeded are skipped.
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[dto.DeliveryResponse] "Delivery status"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id}/redeliver [post]
// @Security BearerAuth
func (handler *Handler) Redeliver(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Redeliver")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Redeliver(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to redeliver invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
