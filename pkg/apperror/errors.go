package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Protocol & Schema (PROTO) ----

func ErrProtocolMismatch(detail string) *AppError {
	return New("PROTO_001", fmt.Sprintf("Protocol mismatch: %s", detail), http.StatusBadRequest)
}

func ErrSchemaViolation(detail string) *AppError {
	return New("PROTO_002", fmt.Sprintf("Schema violation: %s", detail), http.StatusBadRequest)
}

// ---- Signatures & Trust (SIG) ----

func ErrKeyBindingViolation() *AppError {
	return New("SIG_001", "Outer and inner signer public keys differ", http.StatusBadRequest)
}

func ErrUntrustedSigner(err error) *AppError {
	return Wrap("SIG_002", "Certificate path does not chain to a trusted root", http.StatusForbidden, err)
}

func ErrHashMismatch(label string) *AppError {
	return New("SIG_003", fmt.Sprintf("Non-matching %q value", label), http.StatusBadRequest)
}

func ErrSigningServiceUnavailable(err error) *AppError {
	return Wrap("SIG_004", "Signing service unavailable", http.StatusServiceUnavailable, err)
}

func ErrInvalidSignature(err error) *AppError {
	return Wrap("SIG_005", "Signature verification failed", http.StatusBadRequest, err)
}

// ---- Amounts (PAY) ----

func ErrAmountExceedsReservation() *AppError {
	return New("PAY_001", "Final amount exceeds reserved amount", http.StatusBadRequest)
}

func ErrAmountExceedsRequest() *AppError {
	return New("PAY_002", "Actual amount exceeds requested amount", http.StatusBadRequest)
}

// ---- Closed-set lookups (LOOKUP) ----

func ErrUnknownCurrency(code string) *AppError {
	return New("LOOKUP_001", fmt.Sprintf("Unknown currency: %s", code), http.StatusBadRequest)
}

func ErrUnknownAccountType(typeURI string) *AppError {
	return New("LOOKUP_002", fmt.Sprintf("Unknown account type: %s", typeURI), http.StatusBadRequest)
}

func ErrUnknownPayee(id string) *AppError {
	return New("LOOKUP_003", fmt.Sprintf("Unknown payee: %s", id), http.StatusNotFound)
}

// ---- Encryption (ENC) ----

func ErrDecryptionFailed(err error) *AppError {
	return Wrap("ENC_001", "Decryption failed with the supplied keyring", http.StatusBadRequest, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("ENC_002", "Encryption failure", http.StatusInternalServerError, err)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
