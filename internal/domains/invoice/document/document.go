// Package document renders stored invoices as static HTML.
//
// Render reads nothing but its arguments, so the same invoice row and items
// always produce the same bytes. A lost document can be rebuilt at any time.
package document

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"hotelos/internal/domains/invoice/model"
	"hotelos/shared/money"
	"hotelos/shared/timezone"
)

const FileExtension = ".html"

//go:embed invoice.html
var layout string

var page = template.Must(template.New("invoice").Parse(layout))

type line struct {
	Position    int
	RoomNumber  string
	Description string
	Amount      string
}

type view struct {
	IssuerName    string
	IssuerTaxID   string
	Number        string
	Date          string
	GuestName     string
	CompanyName   string
	CompanyTaxID  string
	Items         []line
	GrossAmount   string
	PriorPayments string
	BaseAmount    string
	TaxRate       string
	TaxOneLabel   string
	TaxOneAmount  string
	TaxTwoLabel   string
	TaxTwoAmount  string
	TotalAmount   string
	PaymentMode   string
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

func newView(invoice model.Invoice, items []model.Item) view {
	v := view{
		IssuerName:   invoice.IssuerName,
		IssuerTaxID:  invoice.IssuerTaxID,
		Number:       invoice.InvoiceNumber,
		Date:         timezone.FormatDate(invoice.InvoiceDate),
		GuestName:    invoice.GuestName,
		CompanyName:  deref(invoice.CompanyName),
		CompanyTaxID: deref(invoice.CompanyTaxID),
		GrossAmount:  money.Format(invoice.Currency, invoice.GrossAmount),
		BaseAmount:   money.Format(invoice.Currency, invoice.BaseAmount),
		TaxRate:      invoice.ComponentTaxRate().String(),
		TaxOneLabel:  invoice.TaxOneLabel,
		TaxOneAmount: money.Format(invoice.Currency, invoice.TaxOneAmount),
		TaxTwoLabel:  invoice.TaxTwoLabel,
		TaxTwoAmount: money.Format(invoice.Currency, invoice.TaxTwoAmount),
		TotalAmount:  money.Format(invoice.Currency, invoice.TotalAmount),
		PaymentMode:  strings.ReplaceAll(invoice.PaymentMode, "_", " "),
	}

	if invoice.PriorPayments.IsPositive() {
		v.PriorPayments = money.Format(invoice.Currency, invoice.PriorPayments)
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b model.Item) int { return a.Position - b.Position })

	v.Items = make([]line, len(sorted))
	for i, item := range sorted {
		v.Items[i] = line{
			Position:    item.Position,
			RoomNumber:  item.RoomNumber,
			Description: item.Description,
			Amount:      money.Format(invoice.Currency, item.Amount),
		}
	}

	return v
}

func Render(invoice model.Invoice, items []model.Item) ([]byte, error) {
	var buf bytes.Buffer

	if err := page.Execute(&buf, newView(invoice, items)); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", invoice.InvoiceNumber, err)
	}

	return buf.Bytes(), nil
}

// FileName is the object name the document is stored under.
func FileName(invoice model.Invoice) string {
	return invoice.InvoiceNumber + FileExtension
}
