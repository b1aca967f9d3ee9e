package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_001", "Final amount exceeds reserved amount", http.StatusBadRequest),
			expected: "[PAY_001] Final amount exceeds reserved amount",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, fmt.Errorf("disk full")),
			expected: "[SYS_001] Internal server error: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))

	plain := New("PROTO_001", "test", http.StatusBadRequest)
	assert.Nil(t, plain.Unwrap())
}

func TestProtocolErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"ProtocolMismatch", ErrProtocolMismatch("detail"), "PROTO_001", 400},
		{"SchemaViolation", ErrSchemaViolation("detail"), "PROTO_002", 400},
		{"KeyBindingViolation", ErrKeyBindingViolation(), "SIG_001", 400},
		{"UntrustedSigner", ErrUntrustedSigner(nil), "SIG_002", 403},
		{"HashMismatch", ErrHashMismatch("requestHash"), "SIG_003", 400},
		{"SigningServiceUnavailable", ErrSigningServiceUnavailable(nil), "SIG_004", 503},
		{"InvalidSignature", ErrInvalidSignature(nil), "SIG_005", 400},
		{"AmountExceedsReservation", ErrAmountExceedsReservation(), "PAY_001", 400},
		{"AmountExceedsRequest", ErrAmountExceedsRequest(), "PAY_002", 400},
		{"UnknownCurrency", ErrUnknownCurrency("XXX"), "LOOKUP_001", 400},
		{"UnknownAccountType", ErrUnknownAccountType("https://x"), "LOOKUP_002", 400},
		{"UnknownPayee", ErrUnknownPayee("86344"), "LOOKUP_003", 404},
		{"DecryptionFailed", ErrDecryptionFailed(nil), "ENC_001", 400},
		{"EncryptionFailure", ErrEncryptionFailure(nil), "ENC_002", 500},
		{"Internal", InternalError(nil), "SYS_001", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestErrorMessagesCarryDetail(t *testing.T) {
	assert.Contains(t, ErrProtocolMismatch("direct debits cannot expire").Message, "direct debits cannot expire")
	assert.Contains(t, ErrHashMismatch("requestHash").Message, "requestHash")
	assert.Contains(t, ErrUnknownPayee("86344").Message, "86344")
	assert.Contains(t, ErrUnknownCurrency("XYZ").Message, "XYZ")
}
