package protocol

import (
	"fmt"
	"strings"

	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// ContextURI is the protocol's fixed namespace. Every message starts with it.
const ContextURI = "https://saturn.network/payments/v3"

// MessageType is the @qualifier value naming a message type.
type MessageType string

const (
	MsgAuthorizationRequest  MessageType = "AuthorizationRequest"
	MsgAuthorizationResponse MessageType = "AuthorizationResponse"
	MsgTransactionRequest    MessageType = "TransactionRequest"
	MsgTransactionResponse   MessageType = "TransactionResponse"
	MsgReserveFundsRequest   MessageType = "ReserveFundsRequest"
	MsgReserveFundsResponse  MessageType = "ReserveFundsResponse"
	MsgDirectDebitRequest    MessageType = "DirectDebitRequest"
	MsgDirectDebitResponse   MessageType = "DirectDebitResponse"
	MsgFinalizeRequest       MessageType = "FinalizeRequest"
	MsgFinalizeResponse      MessageType = "FinalizeResponse"
	MsgProviderAuthority     MessageType = "ProviderAuthority"
	MsgPayeeAuthority        MessageType = "PayeeAuthority"
)

// NewMessage starts an envelope writer with the context and qualifier
// preloaded.
func NewMessage(t MessageType) *jsonutil.ObjectWriter {
	return jsonutil.NewObjectWriter().
		SetString(contextJSON, ContextURI).
		SetString(qualifierJSON, string(t))
}

// ParseMessage validates the envelope header before any field is read, so a
// wrong-typed payload is rejected uniformly and early.
func ParseMessage(expected MessageType, rd *jsonutil.ObjectReader) error {
	ctx, err := rd.GetString(contextJSON)
	if err != nil {
		return err
	}
	if ctx != ContextURI {
		return apperror.ErrProtocolMismatch(fmt.Sprintf("unknown context %q", ctx))
	}
	qualifier, err := rd.GetString(qualifierJSON)
	if err != nil {
		return err
	}
	if qualifier != string(expected) {
		return apperror.ErrProtocolMismatch(
			fmt.Sprintf("unexpected qualifier %q, expected %q", qualifier, expected))
	}
	return nil
}

// ParseMessageOneOf validates the envelope header against a pair of
// qualifiers (the reserve/debit messages share a layout) and returns the one
// found.
func ParseMessageOneOf(rd *jsonutil.ObjectReader, candidates ...MessageType) (MessageType, error) {
	qualifier, err := rd.PeekString(qualifierJSON)
	if err != nil {
		return "", err
	}
	for _, t := range candidates {
		if qualifier == string(t) {
			return t, ParseMessage(t, rd)
		}
	}
	return "", apperror.ErrProtocolMismatch(fmt.Sprintf("unexpected qualifier %q", qualifier))
}

// PeekQualifier reads the qualifier without consuming it, for handler
// dispatch ahead of the real decode.
func PeekQualifier(rd *jsonutil.ObjectReader) (MessageType, error) {
	qualifier, err := rd.PeekString(qualifierJSON)
	if err != nil {
		return "", err
	}
	return MessageType(qualifier), nil
}

// EmbeddedName is the field name a nested message of the given type lives
// under: the lower-camel-case form of its qualifier.
func EmbeddedName(t MessageType) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
