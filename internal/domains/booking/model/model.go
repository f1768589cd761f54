package model

import (
	"time"

	"hotelos/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldGuestID     = "guest_id"
	FieldRoomID      = "room_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldTotalAmount = "total_amount"
)

const (
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

const (
	CacheGet    = "booking:get"
	CacheGetAll = "booking:gets"
	CacheCount  = "booking:count"
)

// ActiveStatuses hold a room. Only these take part in overlap checks.
var ActiveStatuses = []string{StatusConfirmed, StatusCheckedIn}

// Stay dates are calendar days; the stay covers [CheckIn, CheckOut).
// TotalAmount is fixed when the booking is created.
type Booking struct {
	ID          string          `db:"id"`
	GuestID     string          `db:"guest_id"`
	RoomID      string          `db:"room_id"`
	CheckIn     time.Time       `db:"check_in"`
	CheckOut    time.Time       `db:"check_out"`
	Status      string          `db:"status"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Notes       *string         `db:"notes"`
	model.Metadata
}

// transitions excludes checked_in -> checked_out, which only checkout performs.
var transitions = map[string][]string{
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

func IsActive(status string) bool {
	return status == StatusConfirmed || status == StatusCheckedIn
}
