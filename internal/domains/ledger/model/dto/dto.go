package dto

import (
	"hotelos/internal/domains/ledger"
	"hotelos/internal/domains/ledger/model"
	"hotelos/shared/constant"
	"hotelos/shared/money"
	"hotelos/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddChargeRequest struct {
	Description string          `json:"description" validate:"required,max=255"`
	Category    string          `json:"category"    validate:"required,oneof=room food minibar laundry spa other"`
	Amount      decimal.Decimal `json:"amount"      validate:"gte=0"                                             swaggertype:"string"`
}

func (c *AddChargeRequest) ToModel(bookingID, user string) model.Charge {
	return model.Charge{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		Description: c.Description,
		Category:    c.Category,
		Amount:      money.Round(c.Amount),
		CreatedAt:   timezone.Now(),
		CreatedBy:   user,
	}
}

type AddPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"    validate:"gte=0"                                                  swaggertype:"string"`
	Method    string          `json:"method"    validate:"required,oneof=cash credit_card debit_card bank_transfer online"`
	Reference *string         `json:"reference" validate:"omitempty,max=100"`
}

func (c *AddPaymentRequest) ToModel(bookingID, user string) model.Payment {
	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Amount:    money.Round(c.Amount),
		Method:    c.Method,
		Reference: c.Reference,
		CreatedAt: timezone.Now(),
		CreatedBy: user,
	}
}

type ChargeResponse struct {
	ID          string          `json:"id"`
	BookingID   string          `json:"booking_id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"      swaggertype:"string"`
	CreatedAt   string          `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
}

func (r *ChargeResponse) FromModel(model model.Charge) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Description = model.Description
	r.Category = model.Category
	r.Amount = model.Amount
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	r.CreatedBy = model.CreatedBy
}

type PaymentResponse struct {
	ID        string          `json:"id"`
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"              swaggertype:"string"`
	Method    string          `json:"method"`
	Reference *string         `json:"reference,omitempty"`
	CreatedAt string          `json:"created_at"`
	CreatedBy string          `json:"created_by"`
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Method = model.Method
	r.Reference = model.Reference
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	r.CreatedBy = model.CreatedBy
}

type LedgerResponse struct {
	BookingID     string            `json:"booking_id"`
	BookingStatus string            `json:"booking_status"`
	RoomTotal     decimal.Decimal   `json:"room_total"     swaggertype:"string"`
	TotalCharges  decimal.Decimal   `json:"total_charges"  swaggertype:"string"`
	TotalPayments decimal.Decimal   `json:"total_payments" swaggertype:"string"`
	Balance       decimal.Decimal   `json:"balance"        swaggertype:"string"`
	Charges       []ChargeResponse  `json:"charges"`
	Payments      []PaymentResponse `json:"payments"`
}

func (r *LedgerResponse) FromModels(bookingID, status string, roomTotal decimal.Decimal, charges []model.Charge, payments []model.Payment) {
	r.BookingID = bookingID
	r.BookingStatus = status
	r.RoomTotal = roomTotal
	r.TotalCharges = ledger.SumCharges(charges)
	r.TotalPayments = ledger.SumPayments(payments)
	r.Balance = ledger.Balance(roomTotal, charges, payments)

	r.Charges = make([]ChargeResponse, len(charges))
	for i, mod := range charges {
		r.Charges[i].FromModel(mod)
	}

	r.Payments = make([]PaymentResponse, len(payments))
	for i, mod := range payments {
		r.Payments[i].FromModel(mod)
	}
}
