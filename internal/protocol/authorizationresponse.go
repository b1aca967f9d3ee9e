package protocol

import (
	"errors"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// AuthorizationResponse is the payer bank's certified answer to an
// authorization request. On approval it wraps the full request and adds the
// opaque account reference plus account data re-encrypted for the acquirer;
// a decline carries an error return in place of the success fields.
type AuthorizationResponse struct {
	Root                 *jsonutil.ObjectReader
	ErrorReturn          *domain.ErrorReturn
	AuthorizationRequest *AuthorizationRequest
	AccountReference     string
	EncryptedAccountData *ports.CipherBlock
	ReferenceID          string
	LogData              string
	TimeStamp            time.Time
	Software             domain.Software
	IssuerSignature      *Signature
}

// Success reports whether the request was honored.
func (a *AuthorizationResponse) Success() bool {
	return a.ErrorReturn == nil
}

// EncodeAuthorizationError builds a signed decline.
func EncodeAuthorizationError(
	e *domain.ErrorReturn,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := WriteErrorReturn(NewMessage(MsgAuthorizationResponse), e).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareProvider))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// EncodeAuthorizationResponse wraps a verified authorization request in a
// certificate-signed response.
func EncodeAuthorizationResponse(
	request *AuthorizationRequest,
	accountReference string,
	encryptedAccountData *ports.CipherBlock,
	referenceID string,
	logData string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := NewMessage(MsgAuthorizationResponse).
		SetRaw(EmbeddedName(MsgAuthorizationRequest), request.Root.Normalized()).
		SetString(accountReferenceJSON, accountReference)
	cipher, err := EncodeCipherBlock(encryptedAccountData)
	if err != nil {
		return nil, err
	}
	wr.SetObject(encryptedAccountDataJSON, cipher).
		SetString(referenceIDJSON, referenceID)
	if logData != "" {
		wr.SetString(logDataJSON, logData)
	}
	wr.SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareProvider))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseAuthorizationResponse decodes and verifies an authorization response,
// including the embedded request chain.
func ParseAuthorizationResponse(rd *jsonutil.ObjectReader, svc ports.SigningService) (*AuthorizationResponse, error) {
	if err := ParseMessage(MsgAuthorizationResponse, rd); err != nil {
		return nil, err
	}
	a := &AuthorizationResponse{Root: rd}
	var err error
	if HasErrorReturn(rd) {
		if a.ErrorReturn, err = ParseErrorReturn(rd); err != nil {
			return nil, err
		}
	} else {
		inner, err := rd.GetObject(EmbeddedName(MsgAuthorizationRequest))
		if err != nil {
			return nil, err
		}
		if a.AuthorizationRequest, err = ParseAuthorizationRequest(inner, svc); err != nil {
			return nil, err
		}
		if a.AccountReference, err = rd.GetString(accountReferenceJSON); err != nil {
			return nil, err
		}
		if a.EncryptedAccountData, err = ParseCipherBlock(rd, encryptedAccountDataJSON); err != nil {
			return nil, err
		}
	}
	if a.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if a.LogData, _, err = rd.GetStringConditional(logDataJSON); err != nil {
		return nil, err
	}
	if a.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if a.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if a.IssuerSignature, err = ParseSignature(rd, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	if err = a.IssuerSignature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if len(a.IssuerSignature.Block.CertificatePath) == 0 {
		return nil, apperror.ErrUntrustedSigner(errors.New("authorization response requires a certificate path"))
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return a, nil
}

// PaymentRequest returns the chain's root message.
func (a *AuthorizationResponse) PaymentRequest() *PaymentRequest {
	return a.AuthorizationRequest.PaymentRequest
}
