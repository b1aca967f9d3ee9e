package protocol

import (
	"bytes"
	"errors"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// FinalizeRequest converts a funds reservation into an actual transfer. The
// final amount may undershoot the reservation but never exceed it.
type FinalizeRequest struct {
	Root                  *jsonutil.ObjectReader
	Amount                domain.Amount
	ProviderAuthorization *ReserveOrDebitResponse
	ReferenceID           string
	TimeStamp             time.Time
	Software              domain.Software
	Signature             *Signature
}

// EncodeFinalizeRequest builds and signs a finalize request over a successful
// reservation.
func EncodeFinalizeRequest(
	reservation *ReserveOrDebitResponse,
	actualAmount domain.Amount,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	currency := reservation.PaymentRequest.Currency
	wr := NewMessage(MsgFinalizeRequest).
		SetAmount(amountJSON, actualAmount, currency).
		SetRaw(providerAuthorizationJSON, reservation.Root.Normalized()).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwarePayee))
	if err := Sign(wr, svc, identity, SignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseFinalizeRequest decodes and verifies a finalize request, including the
// reservation ceiling and the payee key binding.
func ParseFinalizeRequest(rd *jsonutil.ObjectReader, svc ports.SigningService) (*FinalizeRequest, error) {
	if err := ParseMessage(MsgFinalizeRequest, rd); err != nil {
		return nil, err
	}
	f := &FinalizeRequest{Root: rd}
	inner, err := rd.GetObject(providerAuthorizationJSON)
	if err != nil {
		return nil, err
	}
	if f.ProviderAuthorization, err = ParseReserveOrDebitResponse(inner, svc); err != nil {
		return nil, err
	}
	if f.ProviderAuthorization.DirectDebit {
		return nil, apperror.ErrProtocolMismatch("direct debits cannot be finalized")
	}
	if !f.ProviderAuthorization.Success() {
		return nil, apperror.ErrProtocolMismatch("cannot finalize a declined reservation")
	}
	paymentRequest := f.ProviderAuthorization.PaymentRequest
	if f.Amount, err = rd.GetAmount(amountJSON, paymentRequest.Currency); err != nil {
		return nil, err
	}
	if f.Amount > paymentRequest.Amount {
		return nil, apperror.ErrAmountExceedsReservation()
	}
	if f.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if f.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if f.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if f.Signature, err = ParseSignature(rd, SignatureLabel); err != nil {
		return nil, err
	}
	if err = f.Signature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if err = CompareKeyBinding(f.Signature.PublicKey(), paymentRequest.PublicKey()); err != nil {
		return nil, err
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return f, nil
}

// RequestHash computes the digest a finalize receipt must echo.
func (f *FinalizeRequest) RequestHash() []byte {
	return RequestHash(f.Root)
}

// FinalizeResponse is the receipt for a finalize request. On success it
// echoes the hash of the request it settles; on decline it carries an error
// return instead.
type FinalizeResponse struct {
	Root            *jsonutil.ObjectReader
	ErrorReturn     *domain.ErrorReturn
	RequestHash     []byte
	ReferenceID     string
	TimeStamp       time.Time
	Software        domain.Software
	IssuerSignature *Signature
}

// Success reports whether the finalize was honored.
func (f *FinalizeResponse) Success() bool {
	return f.ErrorReturn == nil
}

// EncodeFinalizeError builds a signed decline.
func EncodeFinalizeError(
	e *domain.ErrorReturn,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := WriteErrorReturn(NewMessage(MsgFinalizeResponse), e).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareProvider))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// EncodeFinalizeResponse builds a certificate-signed receipt bound to the
// request by hash.
func EncodeFinalizeResponse(
	request *FinalizeRequest,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := NewMessage(MsgFinalizeResponse).
		SetObject(requestHashJSON, EncodeRequestHash(request.RequestHash())).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareProvider))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseFinalizeResponse decodes either the receipt or the decline form.
func ParseFinalizeResponse(rd *jsonutil.ObjectReader, svc ports.SigningService) (*FinalizeResponse, error) {
	if err := ParseMessage(MsgFinalizeResponse, rd); err != nil {
		return nil, err
	}
	f := &FinalizeResponse{Root: rd}
	var err error
	if HasErrorReturn(rd) {
		if f.ErrorReturn, err = ParseErrorReturn(rd); err != nil {
			return nil, err
		}
	} else {
		if f.RequestHash, err = ParseRequestHash(rd); err != nil {
			return nil, err
		}
	}
	if f.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if f.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if f.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if f.IssuerSignature, err = ParseSignature(rd, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	if err = f.IssuerSignature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if len(f.IssuerSignature.Block.CertificatePath) == 0 {
		return nil, apperror.ErrUntrustedSigner(errors.New("finalize response requires a certificate path"))
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return f, nil
}

// VerifyRequestHash checks the receipt against the request it claims to
// settle.
func (f *FinalizeResponse) VerifyRequestHash(request *FinalizeRequest) error {
	if !f.Success() {
		return apperror.ErrProtocolMismatch("declined finalize carries no request hash")
	}
	if !bytes.Equal(f.RequestHash, request.RequestHash()) {
		return apperror.ErrHashMismatch(requestHashJSON)
	}
	return nil
}
