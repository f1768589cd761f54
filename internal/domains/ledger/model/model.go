package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ChargeTableName  = "charges"
	ChargeEntityName = "charge"

	PaymentTableName  = "payments"
	PaymentEntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldCreatedAt = "created_at"
)

const (
	CategoryRoom    = "room"
	CategoryFood    = "food"
	CategoryMinibar = "minibar"
	CategoryLaundry = "laundry"
	CategorySpa     = "spa"
	CategoryOther   = "other"
)

const (
	MethodCash         = "cash"
	MethodCreditCard   = "credit_card"
	MethodDebitCard    = "debit_card"
	MethodBankTransfer = "bank_transfer"
	MethodOnline       = "online"
)

const (
	CacheGet = "ledger:get"
)

// Charge and Payment rows are append-only. Corrections are new rows.
type Charge struct {
	ID          string          `db:"id"`
	BookingID   string          `db:"booking_id"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	CreatedAt   time.Time       `db:"created_at"`
	CreatedBy   string          `db:"created_by"`
}

type Payment struct {
	ID        string          `db:"id"`
	BookingID string          `db:"booking_id"`
	Amount    decimal.Decimal `db:"amount"`
	Method    string          `db:"method"`
	Reference *string         `db:"reference"`
	CreatedAt time.Time       `db:"created_at"`
	CreatedBy string          `db:"created_by"`
}
