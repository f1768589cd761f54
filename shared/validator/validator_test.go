package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"hotelos/shared/failure"
	"hotelos/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stayRequest struct {
	RoomID   string          `json:"room_id"   validate:"required"`
	CheckIn  string          `json:"check_in"  validate:"required,date"`
	CheckOut string          `json:"check_out" validate:"required,date"`
	Email    string          `json:"email"     validate:"omitempty,email"`
	Method   string          `json:"method"    validate:"omitempty,oneof=cash credit_card"`
	Amount   decimal.Decimal `json:"amount"    validate:"gte=0"`
}

func validStay() stayRequest {
	return stayRequest{
		RoomID:   "r-1",
		CheckIn:  "2024-06-08",
		CheckOut: "2024-06-10",
		Email:    "guest@example.com",
		Method:   "cash",
		Amount:   decimal.RequireFromString("25.50"),
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *stayRequest) {}},
		{name: "missing room", mutate: func(r *stayRequest) { r.RoomID = "" }, wantErr: "room_id is required"},
		{name: "bad date", mutate: func(r *stayRequest) { r.CheckIn = "08/06/2024" }, wantErr: "check_in must be a date in YYYY-MM-DD format"},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = "nope" }, wantErr: "email must be a valid email address"},
		{name: "bad method", mutate: func(r *stayRequest) { r.Method = "cheque" }, wantErr: "method must be one of cash credit_card"},
		{name: "negative amount", mutate: func(r *stayRequest) { r.Amount = decimal.NewFromInt(-1) }, wantErr: "amount must be greater than or equal to 0"},
		{name: "zero amount allowed", mutate: func(r *stayRequest) { r.Amount = decimal.Zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid date", field: "2024-02-29", tag: "date"},
		{name: "invalid calendar date", field: "2023-02-29", tag: "date", expectError: true},
		{name: "valid oneof", field: "deluxe", tag: "oneof=standard deluxe suite presidential"},
		{name: "invalid oneof", field: "penthouse", tag: "oneof=standard deluxe suite presidential", expectError: true},
		{name: "empty required", field: "", tag: "required", expectError: true},
		{name: "valid uuid", field: "0a1b2c3d-0000-4000-8000-00000000000a", tag: "uuid"},
		{name: "invalid uuid", field: "101", tag: "uuid", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid body",
			jsonBody: `{"room_id":"r-1","check_in":"2024-06-08","check_out":"2024-06-10","amount":"12.00"}`,
		},
		{
			name:     "numeric amount",
			jsonBody: `{"room_id":"r-1","check_in":"2024-06-08","check_out":"2024-06-10","amount":12.5}`,
		},
		{
			name:        "malformed body",
			jsonBody:    `{"room_id":`,
			expectError: true,
		},
		{
			name:        "empty body fails required",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data stayRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_LengthMessages(t *testing.T) {
	type registerRequest struct {
		Password string   `json:"password" validate:"min=8"`
		Nights   []string `json:"nights"   validate:"max=2"`
	}

	err := validator.ValidateStruct(&registerRequest{Password: "short"})
	assert.EqualError(t, err, "password must be at least 8 characters")

	err = validator.ValidateStruct(&registerRequest{Password: "long-enough", Nights: []string{"a", "b", "c"}})
	assert.EqualError(t, err, "nights must be less than or equal to 2")
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validator.ValidateID("id", "5f0c3b1e-8a57-4c2a-9d1b-2f4e6a7c8d90"))

	for _, value := range []string{"", "101", "5f0c3b1e-8a57"} {
		err := validator.ValidateID("id", value)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), value)
		assert.Equal(t, "id must be a valid UUID", failure.GetMessage(err), value)
	}
}
