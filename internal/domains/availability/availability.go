// Package availability decides whether rooms are free over a stay. Stays are
// half-open day ranges [check_in, check_out), so a stay ending on a day does
// not collide with one starting that day.
package availability

import (
	"errors"
	"slices"
	"strings"
	"time"

	bookingModel "hotelos/internal/domains/booking/model"
	roomModel "hotelos/internal/domains/room/model"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"
	"hotelos/shared/timezone"
)

var ErrInvalidRange = errors.New("check_out must be after check_in")

const (
	argStayCheckIn  = "stay_check_in"
	argStayCheckOut = "stay_check_out"
	argExcludeID    = "exclude_booking_id"
)

type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
}

// NewStay normalises both ends to calendar days and rejects zero or negative
// night counts.
func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	stay := Stay{
		CheckIn:  timezone.Date(checkIn),
		CheckOut: timezone.Date(checkOut),
	}

	stay.Nights = timezone.Nights(stay.CheckIn, stay.CheckOut)
	if stay.Nights <= 0 {
		return Stay{}, ErrInvalidRange
	}

	return stay, nil
}

// ParseStay parses YYYY-MM-DD values. Every error is a bad request.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return Stay{}, failure.BadRequest(err)
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return Stay{}, failure.BadRequest(err)
	}

	stay, err := NewStay(in, out)
	if err != nil {
		return Stay{}, failure.BadRequest(err)
	}

	return stay, nil
}

func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (s Stay) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlaps(s.CheckIn, s.CheckOut, timezone.Date(checkIn), timezone.Date(checkOut))
}

// IsFree reports whether none of bookings holds the room during stay.
// Inactive bookings and excludeID are ignored.
func IsFree(bookings []bookingModel.Booking, stay Stay, excludeID string) bool {
	for _, booking := range bookings {
		if booking.ID == excludeID || !bookingModel.IsActive(booking.Status) {
			continue
		}

		if stay.Overlaps(booking.CheckIn, booking.CheckOut) {
			return false
		}
	}

	return true
}

// OverlapFilter matches active bookings that intersect stay. An empty roomID
// matches every room.
func OverlapFilter(stay Stay, roomID, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Value:    bookingModel.ActiveStatuses,
			Operator: gDto.FilterOperatorIn,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			ArgName:  argStayCheckOut,
			Field:    bookingModel.FieldCheckIn,
			Value:    stay.CheckOut,
			Operator: gDto.FilterOperatorLess,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			ArgName:  argStayCheckIn,
			Field:    bookingModel.FieldCheckOut,
			Value:    stay.CheckIn,
			Operator: gDto.FilterOperatorGreater,
			Table:    bookingModel.TableName,
		},
	}

	if roomID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    bookingModel.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    bookingModel.TableName,
		})
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  argExcludeID,
			Field:    bookingModel.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    bookingModel.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

// FreeRooms drops every room held by one of busy and orders the rest by room number.
func FreeRooms(rooms []roomModel.Room, busy []bookingModel.Booking) []roomModel.Room {
	held := make(map[string]struct{}, len(busy))
	for _, booking := range busy {
		held[booking.RoomID] = struct{}{}
	}

	free := make([]roomModel.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, ok := held[room.ID]; !ok {
			free = append(free, room)
		}
	}

	slices.SortStableFunc(free, func(a, b roomModel.Room) int {
		return strings.Compare(a.RoomNumber, b.RoomNumber)
	})

	return free
}
