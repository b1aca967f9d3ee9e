// Package file loads the flat-file payee database. The registry is read at
// startup and immutable afterwards; merchant onboarding happens out of band.
package file

import (
	"fmt"
	"os"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// PayeeRegistry implements ports.PayeeRegistry over an in-memory map built
// from the payee database file.
type PayeeRegistry struct {
	records map[string]*domain.PayeeRecord
}

// LoadPayeeRegistry reads and validates the payee database at path. The file
// holds one object: {"payees": [{commonName, id, homePage?,
// signatureParameters: [{algorithm, publicKey}]}]}.
func LoadPayeeRegistry(path string) (*PayeeRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payee database: %w", err)
	}
	rd, err := jsonutil.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing payee database %s: %w", path, err)
	}
	payees, err := rd.GetArray("payees")
	if err != nil {
		return nil, fmt.Errorf("parsing payee database %s: %w", path, err)
	}
	registry := &PayeeRegistry{records: make(map[string]*domain.PayeeRecord)}
	for payees.More() {
		sub, err := payees.GetObject()
		if err != nil {
			return nil, fmt.Errorf("parsing payee database %s: %w", path, err)
		}
		record, err := parseRecord(sub)
		if err != nil {
			return nil, fmt.Errorf("parsing payee database %s: %w", path, err)
		}
		if _, dup := registry.records[record.ID]; dup {
			return nil, fmt.Errorf("duplicate payee id %q in %s", record.ID, path)
		}
		registry.records[record.ID] = record
	}
	if err := rd.CheckForUnread(); err != nil {
		return nil, fmt.Errorf("parsing payee database %s: %w", path, err)
	}
	if len(registry.records) == 0 {
		return nil, fmt.Errorf("payee database %s is empty", path)
	}
	return registry, nil
}

func parseRecord(rd *jsonutil.ObjectReader) (*domain.PayeeRecord, error) {
	record := &domain.PayeeRecord{}
	var err error
	if record.CommonName, err = rd.GetString("commonName"); err != nil {
		return nil, err
	}
	if record.ID, err = rd.GetString("id"); err != nil {
		return nil, err
	}
	if record.HomePage, _, err = rd.GetStringConditional("homePage"); err != nil {
		return nil, err
	}
	params, err := rd.GetArray("signatureParameters")
	if err != nil {
		return nil, err
	}
	for params.More() {
		sub, err := params.GetObject()
		if err != nil {
			return nil, err
		}
		var p domain.SignatureParameter
		if p.Algorithm, err = sub.GetString("algorithm"); err != nil {
			return nil, err
		}
		if p.PublicKey, err = sub.GetPublicKey("publicKey"); err != nil {
			return nil, err
		}
		record.SignatureParameters = append(record.SignatureParameters, p)
	}
	if len(record.SignatureParameters) == 0 {
		return nil, fmt.Errorf("payee %q has no signature parameters", record.ID)
	}
	return record, nil
}

// Lookup resolves a merchant ID.
func (r *PayeeRegistry) Lookup(payeeID string) (*domain.PayeeRecord, error) {
	record, ok := r.records[payeeID]
	if !ok {
		return nil, apperror.ErrUnknownPayee(payeeID)
	}
	return record, nil
}

// IDs returns all registered payee IDs, for authority pre-publication.
func (r *PayeeRegistry) IDs() []string {
	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	return ids
}
