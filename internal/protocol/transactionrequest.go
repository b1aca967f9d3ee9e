package protocol

import (
	"crypto/x509"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// TransactionRequest is the payee's settlement order to the acquirer, built
// on a bank-certified authorization response. The actual amount may be lower
// than the originally requested amount but never higher.
type TransactionRequest struct {
	Root                  *jsonutil.ObjectReader
	AuthorizationResponse *AuthorizationResponse
	RecipientURL          string
	Amount                domain.Amount
	ReferenceID           string
	TimeStamp             time.Time
	Software              domain.Software
	RequestSignature      *Signature
}

// EncodeTransactionRequest builds and signs a settlement order.
func EncodeTransactionRequest(
	response *AuthorizationResponse,
	recipientURL string,
	actualAmount domain.Amount,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	currency := response.PaymentRequest().Currency
	wr := NewMessage(MsgTransactionRequest).
		SetRaw(EmbeddedName(MsgAuthorizationResponse), response.Root.Normalized()).
		SetString(recipientURLJSON, recipientURL).
		SetAmount(amountJSON, actualAmount, currency).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwarePayee))
	if err := Sign(wr, svc, identity, RequestSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseTransactionRequest decodes and verifies a settlement order: the full
// embedded chain, the amount ceiling and the payee key binding.
func ParseTransactionRequest(rd *jsonutil.ObjectReader, svc ports.SigningService) (*TransactionRequest, error) {
	if err := ParseMessage(MsgTransactionRequest, rd); err != nil {
		return nil, err
	}
	t := &TransactionRequest{Root: rd}
	inner, err := rd.GetObject(EmbeddedName(MsgAuthorizationResponse))
	if err != nil {
		return nil, err
	}
	if t.AuthorizationResponse, err = ParseAuthorizationResponse(inner, svc); err != nil {
		return nil, err
	}
	if !t.AuthorizationResponse.Success() {
		return nil, apperror.ErrProtocolMismatch("cannot settle a declined authorization")
	}
	if t.RecipientURL, err = rd.GetString(recipientURLJSON); err != nil {
		return nil, err
	}
	paymentRequest := t.PaymentRequest()
	if t.Amount, err = rd.GetAmount(amountJSON, paymentRequest.Currency); err != nil {
		return nil, err
	}
	if t.Amount > paymentRequest.Amount {
		return nil, apperror.ErrAmountExceedsRequest()
	}
	if t.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if t.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if t.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if t.RequestSignature, err = ParseSignature(rd, RequestSignatureLabel); err != nil {
		return nil, err
	}
	if err = t.RequestSignature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if err = CompareKeyBinding(t.RequestSignature.PublicKey(), paymentRequest.PublicKey()); err != nil {
		return nil, err
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return t, nil
}

// PaymentRequest returns the chain's root message.
func (t *TransactionRequest) PaymentRequest() *PaymentRequest {
	return t.AuthorizationResponse.PaymentRequest()
}

// VerifyIssuerTrust checks that the embedded authorization response was
// signed under one of the given trust roots.
func (t *TransactionRequest) VerifyIssuerTrust(svc ports.SigningService, trustRoots *x509.CertPool) error {
	return t.AuthorizationResponse.IssuerSignature.VerifyTrust(svc, trustRoots)
}
