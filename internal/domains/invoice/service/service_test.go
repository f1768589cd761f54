package service_test

import (
	"context"
	"errors"
	"testing"

	"hotelos/config"
	otelMocks "hotelos/infras/otel/mocks"
	"hotelos/internal/domains/invoice/delivery"
	"hotelos/internal/domains/invoice/mocks"
	"hotelos/internal/domains/invoice/model"
	"hotelos/internal/domains/invoice/model/dto"
	"hotelos/internal/domains/invoice/service"
	"hotelos/shared/cache"
	cacheMocks "hotelos/shared/cache/mocks"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo       *mocks.MockInvoice
	itemRepo   *mocks.MockItem
	dispatcher *mocks.MockDispatcher
	publisher  *mocks.MockPublisher
	svc        service.Invoice
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Hotel.Delivery.MaxAttempts = 3

	f := fixture{
		repo:       mocks.NewMockInvoice(ctrl),
		itemRepo:   mocks.NewMockItem(ctrl),
		dispatcher: mocks.NewMockDispatcher(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, f.itemRepo, f.dispatcher, f.publisher, cfg, mockCache, otelMocks.NewOtel())

	return f
}

func stored() (model.Invoice, []model.Item) {
	invoice := model.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-2024-000001",
		GuestID:       "g-1",
		GuestName:     "Meera Iyer",
		IssuerName:    "HotelOS",
		Currency:      "₹",
		BaseAmount:    decimal.RequireFromString("5000"),
		TaxOneLabel:   "CGST",
		TaxOneAmount:  decimal.RequireFromString("125"),
		TaxTwoLabel:   "SGST",
		TaxTwoAmount:  decimal.RequireFromString("125"),
		TotalAmount:   decimal.RequireFromString("5250"),
		PaymentMode:   "card",
	}

	items := []model.Item{
		{ID: "it-1", InvoiceID: "inv-1", Position: 1, BookingID: "b-1", RoomNumber: "101", Description: "Deluxe room, 2 nights", Amount: decimal.RequireFromString("4000")},
		{ID: "it-2", InvoiceID: "inv-1", Position: 2, BookingID: "b-1", RoomNumber: "101", Description: "Laundry", Amount: decimal.RequireFromString("1000")},
	}

	return invoice, items
}

func (f fixture) expectStored() {
	invoice, items := stored()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(invoice, nil)
	f.itemRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc}, gomock.Any()).
		Return(items, nil)
}

func TestInvoiceService_Get(t *testing.T) {
	f := newFixture(t)
	f.expectStored()

	res, err := f.svc.Get(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-000001", res.InvoiceNumber)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Deluxe room, 2 nights", res.Items[0].Description)
}

func TestInvoiceService_GetNotFound(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")
	assert.True(t, failure.IsNotFound(err))
}

func TestInvoiceService_GetAll(t *testing.T) {
	f := newFixture(t)
	invoice, _ := stored()

	params := gDto.QueryParams{Page: 1, Limit: 10}
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Invoice{invoice}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, res.Invoices, 1)
	assert.Equal(t, "inv-1", res.Invoices[0].ID)
}

func TestInvoiceService_Document(t *testing.T) {
	f := newFixture(t)
	f.expectStored()

	body, name, err := f.svc.Document(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-000001.html", name)
	assert.Contains(t, string(body), "INV-2024-000001")
	assert.Contains(t, string(body), "Laundry")
}

func TestInvoiceService_Redeliver(t *testing.T) {
	url := "https://files.example.com/invoices/INV-2024-000001.html"

	tests := []struct {
		name       string
		result     delivery.Result
		wantStatus string
	}{
		{
			name:       "delivered",
			result:     delivery.Result{DocumentURL: &url, EmailSent: true},
			wantStatus: dto.DeliveryDelivered,
		},
		{
			name:       "email failed",
			result:     delivery.Result{DocumentURL: &url, Warnings: []string{"email delivery failed"}},
			wantStatus: dto.DeliveryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.expectStored()
			f.dispatcher.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Len(2)).Return(tt.result)

			res, err := f.svc.Redeliver(context.Background(), "inv-1")
			require.NoError(t, err)

			assert.Equal(t, "inv-1", res.InvoiceID)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.result.EmailSent, res.EmailSent)
		})
	}
}

func TestInvoiceService_HandleDeliveryRequest(t *testing.T) {
	url := "https://files.example.com/invoices/INV-2024-000001.html"
	incomplete := delivery.Result{DocumentURL: &url, Warnings: []string{"email delivery failed"}}

	tests := []struct {
		name        string
		attempt     int
		result      delivery.Result
		wantRequeue bool
		publishErr  error
		wantErr     bool
	}{
		{name: "delivered", attempt: 1, result: delivery.Result{DocumentURL: &url, EmailSent: true}},
		{name: "incomplete is requeued", attempt: 1, result: incomplete, wantRequeue: true},
		{name: "last attempt is dropped", attempt: 3, result: incomplete},
		{name: "requeue failure", attempt: 2, result: incomplete, wantRequeue: true, publishErr: errors.New("broker down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.expectStored()
			f.dispatcher.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.result)

			if tt.wantRequeue {
				f.publisher.EXPECT().
					RequestDelivery(gomock.Any(), dto.DeliveryRequested{InvoiceID: "inv-1", InvoiceNumber: "INV-2024-000001", Attempt: tt.attempt + 1}).
					Return(tt.publishErr)
			}

			err := f.svc.HandleDeliveryRequest(context.Background(), dto.DeliveryRequested{
				InvoiceID:     "inv-1",
				InvoiceNumber: "INV-2024-000001",
				Attempt:       tt.attempt,
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestInvoiceService_HandleDeliveryRequestUnknownInvoice(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

	err := f.svc.HandleDeliveryRequest(context.Background(), dto.DeliveryRequested{InvoiceID: "gone", Attempt: 1})
	assert.NoError(t, err)
}
