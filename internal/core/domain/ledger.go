package domain

import "time"

// Account is a payer account as the issuing bank sees it. CredentialExpires
// bounds the payment credential (card expiry for the card variant), not the
// account itself.
type Account struct {
	ID                string
	Type              AccountTypeURI
	Holder            string
	SecurityCode      string
	CredentialExpires time.Time
	Balance           Amount
	Blocked           bool
}

// Reservation is a two-phase hold on an account, finalized or expired later.
type Reservation struct {
	ID        string
	AccountID string
	Amount    Amount
	Currency  Currency
	Expires   time.Time
	Finalized bool
}
