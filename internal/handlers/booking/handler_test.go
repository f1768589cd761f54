package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "hotelos/infras/otel/mocks"
	"hotelos/internal/domains/booking/model/dto"
	"hotelos/internal/domains/booking/service"
	"hotelos/internal/handlers/booking"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	service.Booking

	gets []string
}

func (s *stubService) Get(_ context.Context, id string) (dto.BookingResponse, error) {
	s.gets = append(s.gets, id)

	return dto.BookingResponse{ID: id}, nil
}

func serve(t *testing.T, svc *stubService, method, target string) (int, string) {
	t.Helper()

	handler := booking.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var body struct {
		Error string `json:"error"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body.Error
}

func TestHandler_GetBookingByID_RejectsNonUUID(t *testing.T) {
	svc := &stubService{}

	code, message := serve(t, svc, http.MethodGet, "/bookings/101")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "id must be a valid UUID", message)
	assert.Empty(t, svc.gets)
}

func TestHandler_CheckIn_RejectsNonUUID(t *testing.T) {
	// CheckIn is not stubbed; reaching the service would panic.
	code, _ := serve(t, &stubService{}, http.MethodPost, "/bookings/not-a-uuid/check-in")

	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_GetBookingByID_PassesUUID(t *testing.T) {
	svc := &stubService{}
	id := "5f0c3b1e-8a57-4c2a-9d1b-2f4e6a7c8d90"

	code, _ := serve(t, svc, http.MethodGet, "/bookings/"+id)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{id}, svc.gets)
}
