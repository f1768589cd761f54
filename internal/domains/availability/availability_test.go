package availability_test

import (
	"testing"
	"time"

	"hotelos/internal/domains/availability"
	bookingModel "hotelos/internal/domains/booking/model"
	roomModel "hotelos/internal/domains/room/model"
	"hotelos/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

func booking(id, roomID, in, out, status string) bookingModel.Booking {
	return bookingModel.Booking{ID: id, RoomID: roomID, CheckIn: day(in), CheckOut: day(out), Status: status}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                 string
		aIn, aOut, bIn, bOut string
		want                 bool
	}{
		{"identical", "2024-06-08", "2024-06-10", "2024-06-08", "2024-06-10", true},
		{"contained", "2024-06-01", "2024-06-30", "2024-06-10", "2024-06-12", true},
		{"partial start", "2024-06-08", "2024-06-10", "2024-06-09", "2024-06-11", true},
		{"back to back", "2024-06-08", "2024-06-10", "2024-06-10", "2024-06-12", false},
		{"back to back reversed", "2024-06-10", "2024-06-12", "2024-06-08", "2024-06-10", false},
		{"disjoint", "2024-06-01", "2024-06-02", "2024-06-05", "2024-06-06", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availability.Overlaps(day(tt.aIn), day(tt.aOut), day(tt.bIn), day(tt.bOut))

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStay(t *testing.T) {
	stay, err := availability.ParseStay("2024-06-08", "2024-06-11")
	require.NoError(t, err)
	assert.Equal(t, 3, stay.Nights)

	tests := []struct {
		name    string
		in, out string
	}{
		{"zero night", "2024-06-10", "2024-06-10"},
		{"negative", "2024-06-10", "2024-06-09"},
		{"malformed", "10/06/2024", "2024-06-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := availability.ParseStay(tt.in, tt.out)

			assert.True(t, failure.IsBadRequest(err))
		})
	}
}

func TestIsFree(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking("b-1", "r-1", "2024-06-08", "2024-06-10", bookingModel.StatusConfirmed),
		booking("b-2", "r-1", "2024-06-12", "2024-06-15", bookingModel.StatusCancelled),
		booking("b-3", "r-1", "2024-06-20", "2024-06-22", bookingModel.StatusCheckedIn),
	}

	tests := []struct {
		name      string
		in, out   string
		excludeID string
		want      bool
	}{
		{name: "overlaps confirmed", in: "2024-06-09", out: "2024-06-11", want: false},
		{name: "starts on checkout day", in: "2024-06-10", out: "2024-06-12", want: true},
		{name: "cancelled booking ignored", in: "2024-06-12", out: "2024-06-14", want: true},
		{name: "overlaps checked in", in: "2024-06-21", out: "2024-06-23", want: false},
		{name: "excluded booking ignored", in: "2024-06-08", out: "2024-06-10", excludeID: "b-1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := availability.ParseStay(tt.in, tt.out)
			require.NoError(t, err)

			assert.Equal(t, tt.want, availability.IsFree(bookings, stay, tt.excludeID))
		})
	}
}

func TestOverlapFilter(t *testing.T) {
	stay, err := availability.ParseStay("2024-06-08", "2024-06-10")
	require.NoError(t, err)

	filter := availability.OverlapFilter(stay, "r-1", "b-9")
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.check_in < :stay_check_out")
	assert.Contains(t, where, "bookings.check_out > :stay_check_in")
	assert.Contains(t, where, "bookings.room_id = :room_id")
	assert.Contains(t, where, "bookings.id != :exclude_booking_id")
	assert.Equal(t, bookingModel.StatusConfirmed, args["status_0"])
	assert.Equal(t, bookingModel.StatusCheckedIn, args["status_1"])
	assert.Equal(t, stay.CheckOut, args["stay_check_out"])

	anyRoom := availability.OverlapFilter(stay, "", "")
	where, args = anyRoom.GetWhereClause()

	assert.NotContains(t, where, "room_id")
	assert.NotContains(t, args, "exclude_booking_id")
}

func TestFreeRooms(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: "r-3", RoomNumber: "301"},
		{ID: "r-1", RoomNumber: "101"},
		{ID: "r-2", RoomNumber: "201"},
	}
	busy := []bookingModel.Booking{{RoomID: "r-2"}}

	free := availability.FreeRooms(rooms, busy)

	require.Len(t, free, 2)
	assert.Equal(t, "101", free[0].RoomNumber)
	assert.Equal(t, "301", free[1].RoomNumber)
}
