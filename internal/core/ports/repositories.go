package ports

import (
	"time"

	"saturn-payment-network/internal/core/domain"
)

// AccountLedger is the issuing bank's account book. Business declines come
// back as *domain.ErrorReturn values, not errors: a decline is a valid,
// signable protocol outcome. The error return is only for internal faults.
type AccountLedger interface {
	// Lookup resolves a payer account by its credential identifier.
	Lookup(accountID string) (*domain.Account, error)
	// Debit withdraws amount immediately.
	Debit(accountID string, amount domain.Amount) (*domain.ErrorReturn, error)
	// Reserve places a hold that Finalize may later convert, wholly or
	// partially, into a withdrawal.
	Reserve(reservationID, accountID string, amount domain.Amount, expires time.Time) (*domain.ErrorReturn, error)
	// Finalize converts a hold into a withdrawal of amount and releases the
	// remainder.
	Finalize(reservationID string, amount domain.Amount, now time.Time) (*domain.ErrorReturn, error)
}
