package model

import (
	"fmt"
	"time"

	"hotelos/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	ItemTableName  = "invoice_items"
	ItemEntityName = "invoice_item"

	FieldID            = "id"
	FieldInvoiceNumber = "invoice_number"
	FieldGuestID       = "guest_id"
	FieldDocumentURL   = "document_url"
	FieldEmailSent     = "email_sent"
	FieldInvoiceID     = "invoice_id"
	FieldPosition      = "position"
)

const (
	CacheGet    = "invoice:get"
	CacheGetAll = "invoice:gets"
	CacheCount  = "invoice:count"
)

// Invoice is written once by checkout. Only DocumentURL and EmailSent change
// afterwards. Issuer, tax and guest fields are copies taken at checkout so the
// document can be rebuilt from this row alone.
type Invoice struct {
	ID            string          `db:"id"`
	InvoiceNumber string          `db:"invoice_number"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	BookingIDs    pq.StringArray  `db:"booking_ids"`
	GuestID       string          `db:"guest_id"`
	GuestName     string          `db:"guest_name"`
	GuestEmail    *string         `db:"guest_email"`
	CompanyName   *string         `db:"company_name"`
	CompanyTaxID  *string         `db:"company_tax_id"`
	IssuerName    string          `db:"issuer_name"`
	IssuerTaxID   string          `db:"issuer_tax_id"`
	Currency      string          `db:"currency"`
	GrossAmount   decimal.Decimal `db:"gross_amount"`
	PriorPayments decimal.Decimal `db:"prior_payments"`
	BaseAmount    decimal.Decimal `db:"base_amount"`
	TaxRate       decimal.Decimal `db:"tax_rate"` // combined, split evenly across the two lines
	TaxOneLabel   string          `db:"tax_one_label"`
	TaxOneAmount  decimal.Decimal `db:"tax_one_amount"`
	TaxTwoLabel   string          `db:"tax_two_label"`
	TaxTwoAmount  decimal.Decimal `db:"tax_two_amount"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentMode   string          `db:"payment_mode"`
	DocumentURL   *string         `db:"document_url"`
	EmailSent     bool            `db:"email_sent"`
	model.Metadata
}

// ComponentTaxRate is the percentage printed on each of the two tax lines.
func (i Invoice) ComponentTaxRate() decimal.Decimal {
	return i.TaxRate.Div(decimal.NewFromInt(2))
}

// Item is one printed line: a room stay or a ledger charge.
type Item struct {
	ID          string          `db:"id"`
	InvoiceID   string          `db:"invoice_id"`
	Position    int             `db:"position"`
	BookingID   string          `db:"booking_id"`
	RoomNumber  string          `db:"room_number"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
}

// FormatNumber renders e.g. INV-2024-000042.
func FormatNumber(prefix string, year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, sequence)
}
