package document_test

import (
	"strings"
	"testing"
	"time"

	"hotelos/internal/domains/invoice/document"
	"hotelos/internal/domains/invoice/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sample() (model.Invoice, []model.Item) {
	company := "Acme & Sons <Pvt> Ltd"
	companyTaxID := "27AAACA1234A1Z5"

	invoice := model.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-2024-000042",
		InvoiceDate:   time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		BookingIDs:    pq.StringArray{"b-1", "b-2"},
		GuestName:     "Meera Iyer",
		CompanyName:   &company,
		CompanyTaxID:  &companyTaxID,
		IssuerName:    "HotelOS Residency",
		IssuerTaxID:   "29ABCDE1234F1Z5",
		Currency:      "₹",
		GrossAmount:   d("12450"),
		PriorPayments: d("2000"),
		BaseAmount:    d("10450"),
		TaxRate:       d("5"),
		TaxOneLabel:   "CGST",
		TaxOneAmount:  d("261.25"),
		TaxTwoLabel:   "SGST",
		TaxTwoAmount:  d("261.25"),
		TotalAmount:   d("10972.50"),
		PaymentMode:   "credit_card",
	}

	items := []model.Item{
		{Position: 3, RoomNumber: "204", Description: "Minibar", Amount: d("450")},
		{Position: 1, RoomNumber: "204", Description: "Deluxe room, 3 nights", Amount: d("7500")},
		{Position: 2, RoomNumber: "305", Description: "Standard room, 3 nights", Amount: d("4500")},
	}

	return invoice, items
}

func TestRender_Deterministic(t *testing.T) {
	invoice, items := sample()

	first, err := document.Render(invoice, items)
	require.NoError(t, err)

	second, err := document.Render(invoice, items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_Layout(t *testing.T) {
	invoice, items := sample()

	out, err := document.Render(invoice, items)
	require.NoError(t, err)

	html := string(out)

	for _, want := range []string{
		"HotelOS Residency",
		"TAX INVOICE",
		"Invoice No: INV-2024-000042",
		"Date: 2024-06-11",
		"Meera Iyer",
		"Acme &amp; Sons &lt;Pvt&gt; Ltd",
		"Tax ID: 27AAACA1234A1Z5",
		"Less payments received",
		"₹12,450.00",
		"CGST @ 2.5%",
		"SGST @ 2.5%",
		"₹10,972.50",
		"Payment mode: credit card",
	} {
		assert.Contains(t, html, want)
	}

	assert.Less(t, strings.Index(html, "Deluxe room"), strings.Index(html, "Standard room"))
	assert.Less(t, strings.Index(html, "Standard room"), strings.Index(html, "Minibar"))
}

func TestRender_PrintsComponentRate(t *testing.T) {
	invoice, items := sample()
	invoice.TaxRate = d("18")

	out, err := document.Render(invoice, items)
	require.NoError(t, err)

	html := string(out)

	assert.Contains(t, html, "CGST @ 9%")
	assert.Contains(t, html, "SGST @ 9%")
	assert.NotContains(t, html, "@ 18%")
}

func TestRender_WithoutOptionalBlocks(t *testing.T) {
	invoice, items := sample()
	invoice.CompanyName = nil
	invoice.CompanyTaxID = nil
	invoice.PriorPayments = decimal.Zero

	out, err := document.Render(invoice, items)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "Less payments received")
	assert.NotContains(t, string(out), "Acme")
}

func TestFileName(t *testing.T) {
	invoice, _ := sample()

	assert.Equal(t, "INV-2024-000042.html", document.FileName(invoice))
}
