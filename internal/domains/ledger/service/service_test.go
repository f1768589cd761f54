package service_test

import (
	"context"
	"net/http"
	"testing"

	"hotelos/config"
	otelMocks "hotelos/infras/otel/mocks"
	bookingMocks "hotelos/internal/domains/booking/mocks"
	bookingModel "hotelos/internal/domains/booking/model"
	"hotelos/internal/domains/ledger/mocks"
	"hotelos/internal/domains/ledger/model"
	"hotelos/internal/domains/ledger/model/dto"
	"hotelos/internal/domains/ledger/service"
	"hotelos/shared/cache"
	cacheMocks "hotelos/shared/cache/mocks"
	"hotelos/shared/constant"
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

type fixture struct {
	chargeRepo  *mocks.MockCharge
	paymentRepo *mocks.MockPayment
	bookingRepo *bookingMocks.MockBooking
	tx          *txMocks.Transactor
	svc         service.Ledger
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := fixture{
		chargeRepo:  mocks.NewMockCharge(ctrl),
		paymentRepo: mocks.NewMockPayment(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		tx:          txMocks.NewTransactor(),
	}
	f.svc = service.New(f.chargeRepo, f.paymentRepo, f.bookingRepo, f.tx, &config.Config{}, mockCache, otelMocks.NewOtel())

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "front-desk")
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f fixture) expectBooking(status string) {
	f.bookingRepo.EXPECT().
		GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForShare, bookingModel.FieldID, bookingModel.FieldStatus).
		Return(bookingModel.Booking{ID: "b-1", Status: status}, nil)
}

func TestLedgerService_AddCharge(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr func(error) bool
	}{
		{name: "confirmed", status: bookingModel.StatusConfirmed},
		{name: "checked in", status: bookingModel.StatusCheckedIn},
		{name: "checked out", status: bookingModel.StatusCheckedOut, wantErr: failure.IsConflict},
		{name: "cancelled", status: bookingModel.StatusCancelled, wantErr: failure.IsConflict},
		{name: "missing", status: "", wantErr: failure.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.status == "" {
				f.bookingRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForShare, gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			} else {
				f.expectBooking(tt.status)
			}

			if tt.wantErr == nil {
				f.chargeRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, charge model.Charge) error {
						assert.Equal(t, "b-1", charge.BookingID)
						assert.True(t, d("450.50").Equal(charge.Amount))
						assert.Equal(t, "front-desk", charge.CreatedBy)

						return nil
					})
			}

			res, err := f.svc.AddCharge(userCtx(), "b-1", dto.AddChargeRequest{
				Description: "Room service dinner",
				Category:    model.CategoryFood,
				Amount:      d("450.499"),
			})

			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				assert.Equal(t, 1, f.tx.Rollbacks())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.CategoryFood, res.Category)
			assert.Equal(t, 1, f.tx.Commits())
		})
	}
}

func TestLedgerService_AddPayment(t *testing.T) {
	f := newFixture(t)
	ref := "UPI-88213"

	f.expectBooking(bookingModel.StatusCheckedIn)
	f.paymentRepo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, payment model.Payment) error {
			assert.Equal(t, model.MethodOnline, payment.Method)
			require.NotNil(t, payment.Reference)
			assert.Equal(t, ref, *payment.Reference)

			return nil
		})

	res, err := f.svc.AddPayment(userCtx(), "b-1", dto.AddPaymentRequest{Amount: d("2000"), Method: model.MethodOnline, Reference: &ref})

	require.NoError(t, err)
	assert.True(t, d("2000").Equal(res.Amount))
}

func TestLedgerService_AddPayment_AfterCheckout(t *testing.T) {
	f := newFixture(t)

	f.expectBooking(bookingModel.StatusCheckedOut)

	_, err := f.svc.AddPayment(userCtx(), "b-1", dto.AddPaymentRequest{Amount: d("10"), Method: model.MethodCash})

	assert.True(t, failure.IsConflict(err))
}

func TestLedgerService_GetLedger(t *testing.T) {
	f := newFixture(t)

	f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(bookingModel.Booking{ID: "b-1", Status: bookingModel.StatusCheckedIn, TotalAmount: d("100")}, nil)
	f.chargeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Charge{{ID: "c-1", BookingID: "b-1", Amount: d("25")}}, nil)
	f.paymentRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Payment{{ID: "p-1", BookingID: "b-1", Amount: d("60")}}, nil)

	res, err := f.svc.GetLedger(userCtx(), "b-1")

	require.NoError(t, err)
	assert.True(t, d("65").Equal(res.Balance), "balance %s", res.Balance)
	assert.True(t, d("25").Equal(res.TotalCharges))
	assert.True(t, d("60").Equal(res.TotalPayments))
	assert.Len(t, res.Charges, 1)
	assert.Len(t, res.Payments, 1)
}

func TestLedgerService_GetLedger_NotFound(t *testing.T) {
	f := newFixture(t)

	f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

	_, err := f.svc.GetLedger(userCtx(), "b-1")

	assert.True(t, failure.IsNotFound(err))
}

func TestLedgerService_AddCharge_ZeroAmount(t *testing.T) {
	f := newFixture(t)

	f.expectBooking(bookingModel.StatusCheckedIn)
	f.chargeRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, charge model.Charge) error {
			assert.True(t, charge.Amount.IsZero())

			return nil
		})

	_, err := f.svc.AddCharge(userCtx(), "b-1", dto.AddChargeRequest{
		Description: "Complimentary breakfast",
		Category:    model.CategoryFood,
		Amount:      decimal.Zero,
	})

	require.NoError(t, err)
}

func TestLedgerService_AddPayment_CheckViolation(t *testing.T) {
	f := newFixture(t)

	f.expectBooking(bookingModel.StatusCheckedIn)
	f.paymentRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&pq.Error{Code: "23514", Constraint: "payments_amount_check"})

	_, err := f.svc.AddPayment(userCtx(), "b-1", dto.AddPaymentRequest{Amount: d("-1"), Method: model.MethodCash})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, 1, f.tx.Rollbacks())
}

func TestLedgerService_AddCharge_InvalidatesBeforeReturning(t *testing.T) {
	ctrl := gomock.NewController(t)

	var deleted []string

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			deleted = append(deleted, key)

			return nil
		})

	f := fixture{
		chargeRepo:  mocks.NewMockCharge(ctrl),
		paymentRepo: mocks.NewMockPayment(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		tx:          txMocks.NewTransactor(),
	}
	f.svc = service.New(f.chargeRepo, f.paymentRepo, f.bookingRepo, f.tx, &config.Config{}, mockCache, otelMocks.NewOtel())

	f.expectBooking(bookingModel.StatusCheckedIn)
	f.chargeRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.AddCharge(userCtx(), "b-1", dto.AddChargeRequest{
		Description: "Laundry",
		Category:    model.CategoryLaundry,
		Amount:      d("120"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{model.CacheGet + ":b-1"}, deleted)
}
