// Package ledger derives balances from the charges and payments of bookings.
package ledger

import (
	"hotelos/internal/domains/ledger/model"
	"hotelos/shared/money"

	"github.com/shopspring/decimal"
)

func SumCharges(charges []model.Charge) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(charges))
	for i, charge := range charges {
		amounts[i] = charge.Amount
	}

	return money.Sum(amounts...)
}

func SumPayments(payments []model.Payment) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(payments))
	for i, payment := range payments {
		amounts[i] = payment.Amount
	}

	return money.Sum(amounts...)
}

// Balance is total + charges - payments. Negative means the guest overpaid.
func Balance(total decimal.Decimal, charges []model.Charge, payments []model.Payment) decimal.Decimal {
	return total.Add(SumCharges(charges)).Sub(SumPayments(payments))
}

// ByBooking groups entries by booking id.
func ByBooking[T any](entries []T, bookingID func(T) string) map[string][]T {
	grouped := make(map[string][]T)
	for _, entry := range entries {
		id := bookingID(entry)
		grouped[id] = append(grouped[id], entry)
	}

	return grouped
}
