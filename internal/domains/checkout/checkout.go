// Package checkout settles a group of checked-in bookings into one invoice.
package checkout

import (
	"fmt"
	"sort"
	"strings"
	"time"

	bookingModel "hotelos/internal/domains/booking/model"
	invoiceModel "hotelos/internal/domains/invoice/model"
	"hotelos/internal/domains/ledger"
	ledgerModel "hotelos/internal/domains/ledger/model"
	roomModel "hotelos/internal/domains/room/model"
	"hotelos/shared/money"
	"hotelos/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var defaultTaxLabels = [2]string{"Tax 1", "Tax 2"}

// TaxPolicy splits a combined rate into two equal components.
type TaxPolicy struct {
	Rate   decimal.Decimal
	Labels [2]string
}

func NewTaxPolicy(ratePercent string, labels []string) (TaxPolicy, error) {
	rate, err := decimal.NewFromString(ratePercent)
	if err != nil {
		return TaxPolicy{}, fmt.Errorf("invalid tax rate %q: %w", ratePercent, err)
	}

	if rate.IsNegative() {
		return TaxPolicy{}, fmt.Errorf("invalid tax rate %q: must not be negative", ratePercent)
	}

	policy := TaxPolicy{Rate: rate, Labels: defaultTaxLabels}
	for i := 0; i < len(labels) && i < len(policy.Labels); i++ {
		if label := strings.TrimSpace(labels[i]); label != "" {
			policy.Labels[i] = label
		}
	}

	return policy, nil
}

// ComponentRate is the percentage applied by each of the two tax lines.
func (p TaxPolicy) ComponentRate() decimal.Decimal {
	return p.Rate.Div(decimal.NewFromInt(2))
}

type Totals struct {
	Gross         decimal.Decimal
	PriorPayments decimal.Decimal
	Base          decimal.Decimal
	TaxOne        decimal.Decimal
	TaxTwo        decimal.Decimal
	Total         decimal.Decimal
}

// Settle computes what the group owes now. Prior payments reduce the base,
// which never goes below zero.
func Settle(bookings []bookingModel.Booking, charges []ledgerModel.Charge, payments []ledgerModel.Payment, policy TaxPolicy) Totals {
	var t Totals

	for _, booking := range bookings {
		t.Gross = t.Gross.Add(booking.TotalAmount)
	}

	t.Gross = money.Round(t.Gross.Add(ledger.SumCharges(charges)))
	t.PriorPayments = money.Round(ledger.SumPayments(payments))

	t.Base = t.Gross.Sub(t.PriorPayments)
	if t.Base.IsNegative() {
		t.Base = decimal.Zero
	}

	t.TaxOne = money.Percent(t.Base, policy.ComponentRate())
	t.TaxTwo = money.Percent(t.Base, policy.ComponentRate())
	t.Total = money.Sum(t.Base, t.TaxOne, t.TaxTwo)

	return t
}

// BuildItems lists one room line per booking followed by that booking's
// charges. Bookings keep the order given, charges keep theirs.
func BuildItems(invoiceID string, bookings []bookingModel.Booking, rooms map[string]roomModel.Room, charges []ledgerModel.Charge) []invoiceModel.Item {
	byBooking := ledger.ByBooking(charges, func(c ledgerModel.Charge) string { return c.BookingID })

	var items []invoiceModel.Item

	add := func(bookingID, roomNumber, description string, amount decimal.Decimal) {
		items = append(items, invoiceModel.Item{
			ID:          uuid.NewString(),
			InvoiceID:   invoiceID,
			Position:    len(items) + 1,
			BookingID:   bookingID,
			RoomNumber:  roomNumber,
			Description: description,
			Amount:      money.Round(amount),
		})
	}

	for _, booking := range bookings {
		room := rooms[booking.RoomID]

		add(booking.ID, room.RoomNumber, roomLine(room.RoomType, timezone.Nights(booking.CheckIn, booking.CheckOut)), booking.TotalAmount)

		for _, charge := range byBooking[booking.ID] {
			add(booking.ID, room.RoomNumber, charge.Description, charge.Amount)
		}
	}

	return items
}

// SettlementPayments settles each booking that still owes money with one
// payment for exactly its outstanding balance. Overpaid and settled bookings
// get nothing.
func SettlementPayments(
	bookings []bookingModel.Booking,
	charges []ledgerModel.Charge,
	payments []ledgerModel.Payment,
	method, reference, user string,
	at time.Time,
) []ledgerModel.Payment {
	chargesOf := ledger.ByBooking(charges, func(c ledgerModel.Charge) string { return c.BookingID })
	paymentsOf := ledger.ByBooking(payments, func(p ledgerModel.Payment) string { return p.BookingID })

	var settled []ledgerModel.Payment

	for _, booking := range bookings {
		outstanding := money.Round(ledger.Balance(booking.TotalAmount, chargesOf[booking.ID], paymentsOf[booking.ID]))
		if !outstanding.IsPositive() {
			continue
		}

		settled = append(settled, ledgerModel.Payment{
			ID:        uuid.NewString(),
			BookingID: booking.ID,
			Amount:    outstanding,
			Method:    method,
			Reference: &reference,
			CreatedAt: at,
			CreatedBy: user,
		})
	}

	return settled
}

func roomLine(roomType string, nights int) string {
	label := "Room"
	if roomType != "" {
		label = strings.ToUpper(roomType[:1]) + roomType[1:] + " room"
	}

	unit := "nights"
	if nights == 1 {
		unit = "night"
	}

	return fmt.Sprintf("%s, %d %s", label, nights, unit)
}

// Validate checks the locked group before anything is written. It returns
// the single guest the group belongs to.
func Validate(requested []string, bookings []bookingModel.Booking) (guestID string, err error) {
	found := make(map[string]bookingModel.Booking, len(bookings))
	for _, booking := range bookings {
		found[booking.ID] = booking
	}

	var missing []string
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return "", &GroupError{Kind: ErrMissing, IDs: missing}
	}

	var notCheckedIn []string
	for _, booking := range bookings {
		if booking.Status != bookingModel.StatusCheckedIn {
			notCheckedIn = append(notCheckedIn, fmt.Sprintf("%s (%s)", booking.ID, booking.Status))
		}
	}

	if len(notCheckedIn) > 0 {
		return "", &GroupError{Kind: ErrNotCheckedIn, IDs: notCheckedIn}
	}

	guestID = bookings[0].GuestID
	for _, booking := range bookings[1:] {
		if booking.GuestID != guestID {
			return "", &GroupError{Kind: ErrMixedGuests}
		}
	}

	return guestID, nil
}

// Unique drops repeated ids and sorts the rest, the order rows are locked in.
func Unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	sort.Strings(out)

	return out
}
