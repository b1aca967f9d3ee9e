package domain

import "saturn-payment-network/pkg/apperror"

// AccountTypeURI discriminates decrypted account-data variants. The set is
// closed; decoding fails on anything else.
type AccountTypeURI string

const (
	AccountTypeSEPA      AccountTypeURI = "https://sepa.payments.org/saturn/v3#account"
	AccountTypeSuperCard AccountTypeURI = "https://supercard.com/saturn/v3#account"
	AccountTypeBankGiro  AccountTypeURI = "https://bankgirot.se/saturn/v3#account"
)

// PayerAccountType is a payment method a payer may authorize with.
type PayerAccountType struct {
	CardPayment bool
	TypeURI     string
	CommonName  string
}

var payerAccountTypes = []PayerAccountType{
	{CardPayment: true, TypeURI: "https://supercard.com", CommonName: "SuperCard"},
	{CardPayment: false, TypeURI: "https://bankdirect.net", CommonName: "Bank Direct"},
	{CardPayment: false, TypeURI: "https://unusualcard.com", CommonName: "UnusualCard"},
}

// PayerAccountTypes returns the closed payment-method set.
func PayerAccountTypes() []PayerAccountType {
	out := make([]PayerAccountType, len(payerAccountTypes))
	copy(out, payerAccountTypes)
	return out
}

// PayerAccountTypeFromURI resolves a payment method URI against the closed set.
func PayerAccountTypeFromURI(typeURI string) (PayerAccountType, error) {
	for _, t := range payerAccountTypes {
		if t.TypeURI == typeURI {
			return t, nil
		}
	}
	return PayerAccountType{}, apperror.ErrUnknownAccountType(typeURI)
}

// AccountDescriptor is a non-secret reference to a payee receive account.
type AccountDescriptor struct {
	Type string
	ID   string
}

// MaskedReference formats an account identifier for display: everything but
// the last four characters replaced by asterisks (card-format masking).
func MaskedReference(accountID string) string {
	const visible = 4
	if len(accountID) <= visible {
		return accountID
	}
	masked := make([]byte, len(accountID))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(accountID)-visible:], accountID[len(accountID)-visible:])
	return string(masked)
}
