package dto

import (
	invoiceDto "hotelos/internal/domains/invoice/model/dto"
)

type FinalizeCheckoutRequest struct {
	BookingIDs   []string `json:"booking_ids"    validate:"required,min=1,unique,dive,uuid"`
	CompanyName  *string  `json:"company_name"   validate:"omitempty,max=150"`
	CompanyTaxID *string  `json:"company_tax_id" validate:"omitempty,max=50"`
	PaymentMode  string   `json:"payment_mode"   validate:"omitempty,oneof=cash credit_card debit_card bank_transfer online"`
}

type FinalizeCheckoutResponse struct {
	Invoice  invoiceDto.InvoiceResponse  `json:"invoice"`
	Delivery invoiceDto.DeliveryResponse `json:"delivery"`
}
