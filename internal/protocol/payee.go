package protocol

import (
	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/jsonutil"
)

// EncodePayee writes the merchant identification object.
func EncodePayee(p domain.Payee) *jsonutil.ObjectWriter {
	return jsonutil.NewObjectWriter().
		SetString(commonNameJSON, p.CommonName).
		SetString(idJSON, p.ID)
}

// ParsePayee reads a payee object.
func ParsePayee(rd *jsonutil.ObjectReader) (domain.Payee, error) {
	var p domain.Payee
	var err error
	if p.CommonName, err = rd.GetString(commonNameJSON); err != nil {
		return domain.Payee{}, err
	}
	if p.ID, err = rd.GetString(idJSON); err != nil {
		return domain.Payee{}, err
	}
	return p, nil
}

// EncodeAccountDescriptor writes a payee receive-account reference.
func EncodeAccountDescriptor(a domain.AccountDescriptor) *jsonutil.ObjectWriter {
	return jsonutil.NewObjectWriter().
		SetString(typeJSON, a.Type).
		SetString(idJSON, a.ID)
}

// ParseAccountDescriptor reads a payee receive-account reference.
func ParseAccountDescriptor(rd *jsonutil.ObjectReader) (domain.AccountDescriptor, error) {
	var a domain.AccountDescriptor
	var err error
	if a.Type, err = rd.GetString(typeJSON); err != nil {
		return domain.AccountDescriptor{}, err
	}
	if a.ID, err = rd.GetString(idJSON); err != nil {
		return domain.AccountDescriptor{}, err
	}
	return a, nil
}
