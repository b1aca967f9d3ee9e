package protocol

import (
	"crypto"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// PaymentRequest is the payee-signed root of every payment chain. It carries
// no envelope header of its own: it only ever travels embedded in a request.
type PaymentRequest struct {
	Root        *jsonutil.ObjectReader
	Payee       domain.Payee
	Amount      domain.Amount
	Currency    domain.Currency
	ReferenceID string
	TimeStamp   time.Time
	Expires     time.Time
	Software    domain.Software
	Signature   *Signature
}

// EncodePaymentRequest builds and signs a payment request.
func EncodePaymentRequest(
	payee domain.Payee,
	amount domain.Amount,
	currency domain.Currency,
	referenceID string,
	now time.Time,
	expires time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := jsonutil.NewObjectWriter().
		SetObject(payeeJSON, EncodePayee(payee)).
		SetAmount(amountJSON, amount, currency).
		SetString(currencyJSON, currency.Code).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetDateTime(expiresJSON, expires).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwarePayee))
	if err := Sign(wr, svc, identity, SignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParsePaymentRequest decodes and verifies a payment request.
func ParsePaymentRequest(rd *jsonutil.ObjectReader, svc ports.SigningService) (*PaymentRequest, error) {
	p := &PaymentRequest{Root: rd}
	payeeObj, err := rd.GetObject(payeeJSON)
	if err != nil {
		return nil, err
	}
	if p.Payee, err = ParsePayee(payeeObj); err != nil {
		return nil, err
	}
	code, err := rd.GetString(currencyJSON)
	if err != nil {
		return nil, err
	}
	if p.Currency, err = domain.CurrencyFromCode(code); err != nil {
		return nil, err
	}
	if p.Amount, err = rd.GetAmount(amountJSON, p.Currency); err != nil {
		return nil, err
	}
	if p.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if p.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if p.Expires, err = rd.GetDateTime(expiresJSON); err != nil {
		return nil, err
	}
	if !p.Expires.After(p.TimeStamp) {
		return nil, apperror.ErrProtocolMismatch("expires must be after timeStamp")
	}
	if p.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if p.Signature, err = ParseSignature(rd, SignatureLabel); err != nil {
		return nil, err
	}
	if err = p.Signature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return p, nil
}

// PublicKey returns the payee's signing key, the anchor of the chain's
// key-binding checks.
func (p *PaymentRequest) PublicKey() crypto.PublicKey {
	return p.Signature.PublicKey()
}

// RequestHash computes the digest that payer authorizations and finalize
// receipts bind to.
func (p *PaymentRequest) RequestHash() []byte {
	return RequestHash(p.Root)
}
