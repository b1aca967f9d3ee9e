package protocol

import (
	"fmt"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// WriteErrorReturn appends the business-failure fields to a response
// envelope in place of the success payload.
func WriteErrorReturn(wr *jsonutil.ObjectWriter, e *domain.ErrorReturn) *jsonutil.ObjectWriter {
	wr.SetInt(errorCodeJSON, int(e.Code))
	if e.Description != "" {
		wr.SetString(descriptionJSON, e.Description)
	}
	return wr
}

// HasErrorReturn reports whether a response envelope carries a business
// failure instead of a success payload.
func HasErrorReturn(rd *jsonutil.ObjectReader) bool {
	return rd.Has(errorCodeJSON)
}

// ParseErrorReturn reads the business-failure fields of a response envelope.
func ParseErrorReturn(rd *jsonutil.ObjectReader) (*domain.ErrorReturn, error) {
	code, err := rd.GetInt(errorCodeJSON)
	if err != nil {
		return nil, err
	}
	description, _, err := rd.GetStringConditional(descriptionJSON)
	if err != nil {
		return nil, err
	}
	e, err := domain.NewErrorReturn(domain.ErrorCode(code), description)
	if err != nil {
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("bad error return: %v", err))
	}
	return e, nil
}
