package domain

import "fmt"

// ErrorCode enumerates business failures related to the payer's account.
// These are not protocol errors: they travel as valid, signed response
// payloads replacing the success payload.
type ErrorCode int

const (
	ErrorInsufficientFunds ErrorCode = iota
	ErrorExpiredCredential
	ErrorExpiredReservation
	ErrorBlockedAccount
	ErrorNotAuthorized
	ErrorOther

	errorCodeCount
)

var errorClearTexts = [...]string{
	"Insufficient Funds",
	"Expired Credential",
	"Expired Fund Reservation",
	"Account is blocked",
	"Not Authorized",
	"Other Error",
}

// ErrorReturn is the business-failure payload substituted for a success
// payload at any response layer.
type ErrorReturn struct {
	Code        ErrorCode
	Description string // optional
}

// NewErrorReturn validates the code against the closed enumeration.
func NewErrorReturn(code ErrorCode, description string) (*ErrorReturn, error) {
	if code < 0 || code >= errorCodeCount {
		return nil, fmt.Errorf("error code out of range: %d", code)
	}
	return &ErrorReturn{Code: code, Description: description}, nil
}

// ClearText returns the fixed human-readable text for the code.
func (e *ErrorReturn) ClearText() string {
	return errorClearTexts[e.Code]
}
