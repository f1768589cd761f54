package dto

import (
	"hotelos/internal/domains/invoice/model"
	"hotelos/shared"
	gDto "hotelos/shared/dto"
	"hotelos/shared/timezone"

	"github.com/shopspring/decimal"
)

// DeliveryUpdate is the only write an invoice accepts after checkout.
type DeliveryUpdate struct {
	DocumentURL *string `db:"document_url"`
	EmailSent   bool    `db:"email_sent"`
}

type ItemResponse struct {
	Position    int             `json:"position"`
	BookingID   string          `json:"booking_id"`
	RoomNumber  string          `json:"room_number"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"      swaggertype:"string"`
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.Position = model.Position
	r.BookingID = model.BookingID
	r.RoomNumber = model.RoomNumber
	r.Description = model.Description
	r.Amount = model.Amount
}

type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	BookingIDs    []string        `json:"booking_ids"`
	GuestID       string          `json:"guest_id"`
	GuestName     string          `json:"guest_name"`
	CompanyName   *string         `json:"company_name,omitempty"`
	CompanyTaxID  *string         `json:"company_tax_id,omitempty"`
	IssuerName    string          `json:"issuer_name"`
	IssuerTaxID   string          `json:"issuer_tax_id"`
	Currency      string          `json:"currency"`
	GrossAmount   decimal.Decimal `json:"gross_amount"   swaggertype:"string"`
	PriorPayments decimal.Decimal `json:"prior_payments" swaggertype:"string"`
	BaseAmount    decimal.Decimal `json:"base_amount"    swaggertype:"string"`
	TaxRate       decimal.Decimal `json:"tax_rate"       swaggertype:"string"`
	TaxOneLabel   string          `json:"tax_one_label"`
	TaxOneAmount  decimal.Decimal `json:"tax_one_amount" swaggertype:"string"`
	TaxTwoLabel   string          `json:"tax_two_label"`
	TaxTwoAmount  decimal.Decimal `json:"tax_two_amount" swaggertype:"string"`
	TotalAmount   decimal.Decimal `json:"total_amount"   swaggertype:"string"`
	PaymentMode   string          `json:"payment_mode"`
	DocumentURL   *string         `json:"document_url"`
	EmailSent     bool            `json:"email_sent"`
	Items         []ItemResponse  `json:"items,omitempty"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.InvoiceNumber = model.InvoiceNumber
	r.InvoiceDate = timezone.FormatDate(model.InvoiceDate)
	r.BookingIDs = []string(model.BookingIDs)
	r.GuestID = model.GuestID
	r.GuestName = model.GuestName
	r.CompanyName = model.CompanyName
	r.CompanyTaxID = model.CompanyTaxID
	r.IssuerName = model.IssuerName
	r.IssuerTaxID = model.IssuerTaxID
	r.Currency = model.Currency
	r.GrossAmount = model.GrossAmount
	r.PriorPayments = model.PriorPayments
	r.BaseAmount = model.BaseAmount
	r.TaxRate = model.TaxRate
	r.TaxOneLabel = model.TaxOneLabel
	r.TaxOneAmount = model.TaxOneAmount
	r.TaxTwoLabel = model.TaxTwoLabel
	r.TaxTwoAmount = model.TaxTwoAmount
	r.TotalAmount = model.TotalAmount
	r.PaymentMode = model.PaymentMode
	r.DocumentURL = model.DocumentURL
	r.EmailSent = model.EmailSent
	r.Metadata.FromModel(model.Metadata)
}

func (r *InvoiceResponse) WithItems(items []model.Item) {
	r.Items = make([]ItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}

const (
	DeliveryDelivered = "delivered"
	DeliveryQueued    = "queued"
	DeliveryFailed    = "failed"
)

type DeliveryResponse struct {
	InvoiceID   string   `json:"invoice_id"`
	DocumentURL *string  `json:"document_url"`
	EmailSent   bool     `json:"email_sent"`
	Status      string   `json:"delivery_status"`
	Warnings    []string `json:"warnings"`
}

// DeliveryRequested asks the worker to store and email an invoice.
type DeliveryRequested struct {
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	Attempt       int    `json:"attempt"`
}

// Finalized is published once per committed checkout.
type Finalized struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	GuestID       string          `json:"guest_id"`
	BookingIDs    []string        `json:"booking_ids"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	FinalizedAt   string          `json:"finalized_at"`
}
