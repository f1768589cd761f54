package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotelos/config"
	otelMocks "hotelos/infras/otel/mocks"
	"hotelos/internal/domains/availability"
	"hotelos/internal/domains/booking/mocks"
	"hotelos/internal/domains/booking/model"
	"hotelos/internal/domains/booking/model/dto"
	"hotelos/internal/domains/booking/service"
	guestMocks "hotelos/internal/domains/guest/mocks"
	guestModel "hotelos/internal/domains/guest/model"
	guestDto "hotelos/internal/domains/guest/model/dto"
	roomMocks "hotelos/internal/domains/room/mocks"
	roomModel "hotelos/internal/domains/room/model"
	"hotelos/shared/cache"
	cacheMocks "hotelos/shared/cache/mocks"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"
	gRepo "hotelos/shared/repository"
	txMocks "hotelos/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	roomID  = "7d4f2b8e-3c1a-4e59-9a0b-2f6c8d1e5a30"
	guestID = "c1e9a7d2-5b3f-4a8c-8e6d-0f2b4c6a8e10"
)

type fixture struct {
	repo           *mocks.MockBooking
	roomRepo       *roomMocks.MockRoom
	serviceLogRepo *roomMocks.MockServiceLog
	guestRepo      *guestMocks.MockGuest
	tx             *txMocks.Transactor
	svc            service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := fixture{
		repo:           mocks.NewMockBooking(ctrl),
		roomRepo:       roomMocks.NewMockRoom(ctrl),
		serviceLogRepo: roomMocks.NewMockServiceLog(ctrl),
		guestRepo:      guestMocks.NewMockGuest(ctrl),
		tx:             txMocks.NewTransactor(),
	}
	f.svc = service.New(f.repo, f.roomRepo, f.serviceLogRepo, f.guestRepo, f.tx, &config.Config{}, mockCache, otelMocks.NewOtel())

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "front-desk")
}

func deluxe() roomModel.Room {
	return roomModel.Room{ID: roomID, RoomNumber: "204", RatePerNight: decimal.RequireFromString("2500.00"), Status: roomModel.StatusAvailable}
}

func request(in, out string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{GuestID: guestID, RoomID: roomID, CheckIn: in, CheckOut: out}
}

// bookingStore answers overlap checks from the bookings inserted so far, the
// way the database would inside the locked transaction.
type bookingStore struct {
	mu       sync.Mutex
	bookings []model.Booking
}

func (b *bookingStore) exist(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
	_, args := filter.GetWhereClause()

	stay, err := availability.NewStay(args["stay_check_in"].(time.Time), args["stay_check_out"].(time.Time))
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var sameRoom []model.Booking
	for _, booking := range b.bookings {
		if booking.RoomID == args[model.FieldRoomID] {
			sameRoom = append(sameRoom, booking)
		}
	}

	return !availability.IsFree(sameRoom, stay, constant.Empty), nil
}

func (b *bookingStore) insert(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bookings = append(b.bookings, booking)

	return nil
}

func (f fixture) expectBookable(store *bookingStore) {
	f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(deluxe(), nil).AnyTimes()
	f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone, guestModel.FieldID).
		Return(guestModel.Guest{ID: guestID}, nil).AnyTimes()
	f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(store.exist).AnyTimes()
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(store.insert).AnyTimes()
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	store := &bookingStore{}
	f.expectBookable(store)

	res, err := f.svc.Create(userCtx(), request("2024-06-08", "2024-06-11"))

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, 3, res.Nights)
	assert.True(t, decimal.RequireFromString("7500").Equal(res.TotalAmount))
	assert.Equal(t, "2024-06-08", res.CheckIn)
	assert.Equal(t, "front-desk", res.CreatedBy)
	assert.Equal(t, 1, f.tx.Commits())
}

func TestBookingService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateBookingRequest
	}{
		{name: "zero night", req: request("2024-06-10", "2024-06-10")},
		{name: "check out before check in", req: request("2024-06-10", "2024-06-08")},
		{name: "no guest", req: dto.CreateBookingRequest{RoomID: roomID, CheckIn: "2024-06-08", CheckOut: "2024-06-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Create(userCtx(), tt.req)

			assert.True(t, failure.IsBadRequest(err))
			assert.Equal(t, 0, f.tx.Commits()+f.tx.Rollbacks())
		})
	}
}

func TestBookingService_Create_Overlap(t *testing.T) {
	f := newFixture(t)
	store := &bookingStore{}
	f.expectBookable(store)

	_, err := f.svc.Create(userCtx(), request("2024-06-08", "2024-06-10"))
	require.NoError(t, err)

	_, err = f.svc.Create(userCtx(), request("2024-06-09", "2024-06-12"))
	assert.True(t, failure.IsConflict(err))

	_, err = f.svc.Create(userCtx(), request("2024-06-10", "2024-06-12"))
	assert.NoError(t, err, "back-to-back stays share the turnover day")

	_, err = f.svc.Create(userCtx(), request("2024-06-06", "2024-06-08"))
	assert.NoError(t, err)

	assert.Len(t, store.bookings, 3)
	assertNoOverlaps(t, store.bookings)
}

func TestBookingService_Create_Concurrent(t *testing.T) {
	f := newFixture(t)
	store := &bookingStore{}
	f.expectBookable(store)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.svc.Create(userCtx(), request("2024-06-08", "2024-06-11"))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case failure.IsConflict(err):
				conflicts++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assertNoOverlaps(t, store.bookings)
}

func TestBookingService_Create_ExclusionViolation(t *testing.T) {
	f := newFixture(t)

	f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(deluxe(), nil)
	f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone, guestModel.FieldID).Return(guestModel.Guest{ID: guestID}, nil)
	f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeExclusionViolation})

	_, err := f.svc.Create(userCtx(), request("2024-06-08", "2024-06-11"))

	assert.True(t, failure.IsConflict(err))
	assert.Equal(t, 1, f.tx.Rollbacks())
}

func TestBookingService_Create_NotFound(t *testing.T) {
	t.Run("room", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(userCtx(), request("2024-06-08", "2024-06-11"))

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("guest", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(deluxe(), nil)
		f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockNone, guestModel.FieldID).Return(guestModel.Guest{}, nil)

		_, err := f.svc.Create(userCtx(), request("2024-06-08", "2024-06-11"))

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestBookingService_Create_InlineGuest(t *testing.T) {
	f := newFixture(t)

	var created guestModel.Guest

	f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(deluxe(), nil)
	f.guestRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, guest guestModel.Guest) error {
			created = guest

			return nil
		})
	f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	req := dto.CreateBookingRequest{
		Guest:    &guestDto.CreateGuestRequest{FullName: "Arjun Rao"},
		RoomID:   roomID,
		CheckIn:  "2024-06-08",
		CheckOut: "2024-06-09",
	}

	res, err := f.svc.Create(userCtx(), req)

	require.NoError(t, err)
	assert.Equal(t, "Arjun Rao", created.FullName)
	assert.Equal(t, created.ID, res.GuestID)
}

func TestBookingService_CheckIn(t *testing.T) {
	f := newFixture(t)

	booking := model.Booking{ID: "b-1", RoomID: roomID, Status: model.StatusConfirmed}

	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(booking, nil)
	f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(deluxe(), nil)
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])

			return nil
		})
	f.roomRepo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

			return nil
		})
	f.serviceLogRepo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, entry roomModel.ServiceLog) error {
			assert.Equal(t, roomModel.ServiceTypeCheckIn, entry.ServiceType)
			require.NotNil(t, entry.BookingID)
			assert.Equal(t, "b-1", *entry.BookingID)

			return nil
		})

	res, err := f.svc.CheckIn(userCtx(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, res.Booking.Status)
	assert.Equal(t, roomModel.StatusOccupied, res.Room.Status)
	assert.Equal(t, 1, f.tx.Commits())
}

func TestBookingService_CheckIn_Rejected(t *testing.T) {
	t.Run("not confirmed", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
			Return(model.Booking{ID: "b-1", RoomID: roomID, Status: model.StatusCancelled}, nil)

		_, err := f.svc.CheckIn(userCtx(), "b-1")

		assert.True(t, failure.IsConflict(err))
	})

	t.Run("room still occupied", func(t *testing.T) {
		f := newFixture(t)

		occupied := deluxe()
		occupied.Status = roomModel.StatusOccupied

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
			Return(model.Booking{ID: "b-1", RoomID: roomID, Status: model.StatusConfirmed}, nil)
		f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(occupied, nil)

		_, err := f.svc.CheckIn(userCtx(), "b-1")

		assert.True(t, failure.IsConflict(err))
		assert.Equal(t, 1, f.tx.Rollbacks())
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).Return(model.Booking{}, nil)

		_, err := f.svc.CheckIn(userCtx(), "b-1")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus string
		wantErr    bool
	}{
		{name: "confirmed", status: model.StatusConfirmed, wantStatus: model.StatusCancelled},
		{name: "checked in", status: model.StatusCheckedIn, wantErr: true},
		{name: "already cancelled", status: model.StatusCancelled, wantErr: true},
		{name: "checked out", status: model.StatusCheckedOut, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
				Return(model.Booking{ID: "b-1", Status: tt.status}, nil)

			if !tt.wantErr {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			res, err := f.svc.Cancel(userCtx(), "b-1")

			if tt.wantErr {
				assert.True(t, failure.IsConflict(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestBookingService_MarkNoShow(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdate).
		Return(model.Booking{ID: "b-1", Status: model.StatusConfirmed}, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.MarkNoShow(userCtx(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusNoShow, res.Status)
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.Get(userCtx(), "b-1")

	assert.True(t, failure.IsNotFound(err))
}

func assertNoOverlaps(t *testing.T, bookings []model.Booking) {
	t.Helper()

	for i := range bookings {
		for j := i + 1; j < len(bookings); j++ {
			a, b := bookings[i], bookings[j]
			if a.RoomID != b.RoomID {
				continue
			}

			assert.False(t, availability.Overlaps(a.CheckIn, a.CheckOut, b.CheckIn, b.CheckOut),
				"bookings %s and %s overlap", a.ID, b.ID)
		}
	}
}
