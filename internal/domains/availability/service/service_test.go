package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	otelMocks "hotelos/infras/otel/mocks"
	"hotelos/internal/domains/availability/model/dto"
	"hotelos/internal/domains/availability/service"
	bookingMocks "hotelos/internal/domains/booking/mocks"
	bookingModel "hotelos/internal/domains/booking/model"
	roomMocks "hotelos/internal/domains/room/mocks"
	roomModel "hotelos/internal/domains/room/model"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "0b6c2d1e-8f3a-4d5b-9c7e-1a2b3c4d5e6f"

func newService(t *testing.T) (*bookingMocks.MockBooking, *roomMocks.MockRoom, service.Availability) {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	roomRepo := roomMocks.NewMockRoom(ctrl)

	return bookingRepo, roomRepo, service.New(bookingRepo, roomRepo, otelMocks.NewOtel())
}

func TestAvailabilityService_CheckAvailability(t *testing.T) {
	tests := []struct {
		name      string
		bookings  []bookingModel.Booking
		excludeID string
		want      bool
	}{
		{name: "no bookings", want: true},
		{
			name: "overlapping confirmed booking",
			bookings: []bookingModel.Booking{
				{ID: "b-1", RoomID: roomID, CheckIn: date("2024-06-09"), CheckOut: date("2024-06-12"), Status: bookingModel.StatusConfirmed},
			},
			want: false,
		},
		{
			name: "only the excluded booking overlaps",
			bookings: []bookingModel.Booking{
				{ID: "b-1", RoomID: roomID, CheckIn: date("2024-06-09"), CheckOut: date("2024-06-12"), Status: bookingModel.StatusCheckedIn},
			},
			excludeID: "b-1",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookingRepo, roomRepo, svc := newService(t)

			roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), roomModel.FieldID).Return(roomModel.Room{ID: roomID}, nil)
			bookingRepo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any(), gomock.Any()).Return(tt.bookings, nil)

			res, err := svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
				RoomID:           roomID,
				CheckIn:          "2024-06-10",
				CheckOut:         "2024-06-11",
				ExcludeBookingID: tt.excludeID,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Available)
			assert.Equal(t, 1, res.Nights)
		})
	}
}

func TestAvailabilityService_CheckAvailability_Errors(t *testing.T) {
	t.Run("zero night range is rejected before any read", func(t *testing.T) {
		_, _, svc := newService(t)

		_, err := svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
			RoomID: roomID, CheckIn: "2024-06-10", CheckOut: "2024-06-10",
		})

		assert.True(t, failure.IsBadRequest(err))
	})

	t.Run("unknown room", func(t *testing.T) {
		_, roomRepo, svc := newService(t)

		roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), roomModel.FieldID).Return(roomModel.Room{}, nil)

		_, err := svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
			RoomID: roomID, CheckIn: "2024-06-10", CheckOut: "2024-06-12",
		})

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("repository error", func(t *testing.T) {
		bookingRepo, roomRepo, svc := newService(t)

		dbErr := errors.New("connection refused")

		roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), roomModel.FieldID).Return(roomModel.Room{ID: roomID}, nil)
		bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, dbErr)

		_, err := svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
			RoomID: roomID, CheckIn: "2024-06-10", CheckOut: "2024-06-12",
		})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAvailabilityService_ListAvailableRooms(t *testing.T) {
	bookingRepo, roomRepo, svc := newService(t)

	bookingRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any(), bookingModel.FieldRoomID).
		Return([]bookingModel.Booking{{RoomID: "r-102"}}, nil)
	roomRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{}).
		Return([]roomModel.Room{
			{ID: "r-101", RoomNumber: "101"},
			{ID: "r-102", RoomNumber: "102"},
			{ID: "r-201", RoomNumber: "201"},
		}, nil)

	res, err := svc.ListAvailableRooms(context.Background(), dto.ListAvailableRoomsRequest{CheckIn: "2024-06-10", CheckOut: "2024-06-12"})

	require.NoError(t, err)
	require.Len(t, res.Rooms, 2)
	assert.Equal(t, "101", res.Rooms[0].RoomNumber)
	assert.Equal(t, "201", res.Rooms[1].RoomNumber)
	assert.Equal(t, 2, res.Nights)
}

func date(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}
