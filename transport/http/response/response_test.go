package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelos/shared/constant"
	"hotelos/shared/failure"
	"hotelos/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body response.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return *body.Error
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "conflict is shown",
			err:         fmt.Errorf("create booking: %w", failure.Conflict("room is already booked for these dates")),
			wantCode:    http.StatusConflict,
			wantMessage: "room is already booked for these dates",
		},
		{
			name:        "wrap prefixes stay internal",
			err:         fmt.Errorf("failed to add charge: %w", fmt.Errorf("in tx: %w", failure.NotFound("booking not found"))),
			wantCode:    http.StatusNotFound,
			wantMessage: "booking not found",
		},
		{
			name:        "unclassified error is masked",
			err:         errors.New(`pq: relation "bookings" does not exist`),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
		{
			name:        "deliberate internal error keeps its message",
			err:         failure.InternalError(errors.New("invoice sequence exhausted")),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "invoice sequence exhausted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
			assert.Equal(t, tt.wantMessage, decodeError(t, rec))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"invoice_number": "INV-000001"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"invoice_number":"INV-000001"}}`, rec.Body.String())
}

func TestWithDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithDocument(rec, constant.ContentTypeHTML, "INV-000001.html", []byte("<html></html>"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeHTML, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, `inline; filename="INV-000001.html"`, rec.Header().Get(constant.ResponseHeaderContentDisposition))
	assert.Equal(t, "<html></html>", rec.Body.String())
}
