package password_test

import (
	"strings"
	"testing"

	"hotelos/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: password.ErrEmptyPassword},
		{name: "too short", input: "desk123", wantErr: password.ErrWeakPassword},
		{name: "minimum length", input: "desk1234"},
		{name: "multibyte counted as characters", input: "ñandú-rñ"},
		{name: "too long", input: strings.Repeat("a", password.MaxBytes+1), wantErr: password.ErrTooLongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.CheckPolicy(tt.input)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHash(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)

	first, err := password.Hash("frontdesk-2024")
	require.NoError(t, err)

	second, err := password.Hash("frontdesk-2024")
	require.NoError(t, err)

	assert.NotEqual(t, "frontdesk-2024", first)
	assert.NotEqual(t, first, second, "salted hashes differ")
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("frontdesk-2024")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "frontdesk-2024", hash: hash},
		{name: "mismatch", password: "frontdesk-2025", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "frontdesk-2024", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "corrupt hash", password: "frontdesk-2024", hash: "not-a-bcrypt-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
