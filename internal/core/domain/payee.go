package domain

import "crypto"

// Payee identifies the merchant inside a PaymentRequest.
type Payee struct {
	CommonName string
	ID         string
}

// SignatureParameter is one accepted signing key for a payee, as published in
// its PayeeAuthority document.
type SignatureParameter struct {
	Algorithm string
	PublicKey crypto.PublicKey
}

// PayeeRecord is a payee registry entry, loaded once at startup from the
// flat-file payee database.
type PayeeRecord struct {
	HomePage            string
	CommonName          string
	ID                  string
	SignatureParameters []SignatureParameter
}

// AcceptsKey reports whether key is one of the payee's registered signing keys.
func (r *PayeeRecord) AcceptsKey(key crypto.PublicKey) bool {
	for _, p := range r.SignatureParameters {
		if PublicKeysEqual(p.PublicKey, key) {
			return true
		}
	}
	return false
}

// PublicKeysEqual compares two public keys of any supported type.
func PublicKeysEqual(a, b crypto.PublicKey) bool {
	if a == nil || b == nil {
		return false
	}
	type equaler interface {
		Equal(crypto.PublicKey) bool
	}
	if ae, ok := a.(equaler); ok {
		return ae.Equal(b)
	}
	return false
}
