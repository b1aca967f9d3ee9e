// Package memory provides the in-process account ledger the bank runs on.
// Persistence is deliberately absent; state lives for the process lifetime.
package memory

import (
	"fmt"
	"sync"
	"time"

	"saturn-payment-network/internal/core/domain"
)

// AccountLedger implements ports.AccountLedger with a mutex-guarded map.
type AccountLedger struct {
	mu           sync.Mutex
	accounts     map[string]*domain.Account
	reservations map[string]*domain.Reservation
}

// NewAccountLedger creates a ledger preloaded with the given accounts.
func NewAccountLedger(accounts []domain.Account) *AccountLedger {
	l := &AccountLedger{
		accounts:     make(map[string]*domain.Account, len(accounts)),
		reservations: make(map[string]*domain.Reservation),
	}
	for i := range accounts {
		a := accounts[i]
		l.accounts[a.ID] = &a
	}
	return l
}

// Lookup resolves a payer account by its credential identifier.
func (l *AccountLedger) Lookup(accountID string) (*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, ok := l.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("no such account %q", accountID)
	}
	copied := *account
	return &copied, nil
}

func (l *AccountLedger) check(accountID string, amount domain.Amount) (*domain.Account, *domain.ErrorReturn) {
	account, ok := l.accounts[accountID]
	if !ok {
		return nil, &domain.ErrorReturn{Code: domain.ErrorNotAuthorized}
	}
	if account.Blocked {
		return nil, &domain.ErrorReturn{Code: domain.ErrorBlockedAccount}
	}
	if account.Balance < amount {
		return nil, &domain.ErrorReturn{Code: domain.ErrorInsufficientFunds}
	}
	return account, nil
}

// Debit withdraws amount immediately.
func (l *AccountLedger) Debit(accountID string, amount domain.Amount) (*domain.ErrorReturn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, decline := l.check(accountID, amount)
	if decline != nil {
		return decline, nil
	}
	account.Balance -= amount
	return nil, nil
}

// Reserve places a hold on the account. The held amount is withdrawn from the
// available balance until Finalize or expiry.
func (l *AccountLedger) Reserve(reservationID, accountID string, amount domain.Amount, expires time.Time) (*domain.ErrorReturn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.reservations[reservationID]; exists {
		return nil, fmt.Errorf("duplicate reservation %q", reservationID)
	}
	account, decline := l.check(accountID, amount)
	if decline != nil {
		return decline, nil
	}
	account.Balance -= amount
	l.reservations[reservationID] = &domain.Reservation{
		ID:        reservationID,
		AccountID: accountID,
		Amount:    amount,
		Expires:   expires,
	}
	return nil, nil
}

// Finalize converts a hold into a withdrawal of amount, releasing the rest.
func (l *AccountLedger) Finalize(reservationID string, amount domain.Amount, now time.Time) (*domain.ErrorReturn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	reservation, ok := l.reservations[reservationID]
	if !ok || reservation.Finalized {
		return &domain.ErrorReturn{Code: domain.ErrorNotAuthorized}, nil
	}
	if now.After(reservation.Expires) {
		return &domain.ErrorReturn{Code: domain.ErrorExpiredReservation}, nil
	}
	if amount > reservation.Amount {
		return nil, fmt.Errorf("finalize amount exceeds reservation %q", reservationID)
	}
	reservation.Finalized = true
	if account, ok := l.accounts[reservation.AccountID]; ok {
		account.Balance += reservation.Amount - amount
	}
	return nil, nil
}
