package protocol

import (
	"errors"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// ReserveOrDebitRequest covers the two-phase and immediate settlement
// variants, which share one layout under distinct qualifiers. The expires and
// acquirerAuthorityUrl fields belong to the reservation variant only.
type ReserveOrDebitRequest struct {
	Root                   *jsonutil.ObjectReader
	DirectDebit            bool
	PayerAccountType       domain.PayerAccountType
	EncryptedAuthorization *ports.CipherBlock
	ClientIPAddress        string
	PaymentRequest         *PaymentRequest
	Expires                time.Time
	AcquirerAuthorityURL   string
	PayeeReceiveAccount    *domain.AccountDescriptor
	ReferenceID            string
	TimeStamp              time.Time
	Software               domain.Software
	Signature              *Signature
}

// ReserveOrDebitRequestSpec carries the encoder inputs that vary per call.
type ReserveOrDebitRequestSpec struct {
	DirectDebit            bool
	PaymentMethod          string
	EncryptedAuthorization *ports.CipherBlock
	ClientIPAddress        string
	PaymentRequest         []byte // serialized, already signed
	Expires                time.Time
	AcquirerAuthorityURL   string
	PayeeReceiveAccount    *domain.AccountDescriptor
	ReferenceID            string
}

// EncodeReserveOrDebitRequest builds and signs a reserve-funds or
// direct-debit request.
func EncodeReserveOrDebitRequest(
	spec ReserveOrDebitRequestSpec,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	qualifier := MsgReserveFundsRequest
	if spec.DirectDebit {
		qualifier = MsgDirectDebitRequest
	}
	wr := NewMessage(qualifier).SetString(paymentMethodJSON, spec.PaymentMethod)
	cipher, err := EncodeCipherBlock(spec.EncryptedAuthorization)
	if err != nil {
		return nil, err
	}
	wr.SetObject(encryptedAuthorizationJSON, cipher).
		SetString(clientIPAddressJSON, spec.ClientIPAddress).
		SetRaw(paymentRequestJSON, spec.PaymentRequest)
	if !spec.DirectDebit {
		wr.SetDateTime(expiresJSON, spec.Expires)
		if spec.AcquirerAuthorityURL != "" {
			wr.SetString(acquirerAuthorityURLJSON, spec.AcquirerAuthorityURL)
		}
	}
	if spec.PayeeReceiveAccount != nil {
		wr.SetObject(payeeReceiveAccountJSON, EncodeAccountDescriptor(*spec.PayeeReceiveAccount))
	}
	wr.SetString(referenceIDJSON, spec.ReferenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwarePayee))
	if err := Sign(wr, svc, identity, SignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseReserveOrDebitRequest decodes either settlement variant, rejecting
// reservation-only fields on the direct-debit form.
func ParseReserveOrDebitRequest(rd *jsonutil.ObjectReader, svc ports.SigningService) (*ReserveOrDebitRequest, error) {
	qualifier, err := ParseMessageOneOf(rd, MsgReserveFundsRequest, MsgDirectDebitRequest)
	if err != nil {
		return nil, err
	}
	r := &ReserveOrDebitRequest{Root: rd, DirectDebit: qualifier == MsgDirectDebitRequest}
	if r.DirectDebit {
		if rd.Has(expiresJSON) {
			return nil, apperror.ErrProtocolMismatch("expires is only valid for reservations")
		}
		if rd.Has(acquirerAuthorityURLJSON) {
			return nil, apperror.ErrProtocolMismatch("acquirerAuthorityUrl is only valid for reservations")
		}
	}
	methodURI, err := rd.GetString(paymentMethodJSON)
	if err != nil {
		return nil, err
	}
	if r.PayerAccountType, err = domain.PayerAccountTypeFromURI(methodURI); err != nil {
		return nil, err
	}
	if r.EncryptedAuthorization, err = ParseCipherBlock(rd, encryptedAuthorizationJSON); err != nil {
		return nil, err
	}
	if r.ClientIPAddress, err = rd.GetString(clientIPAddressJSON); err != nil {
		return nil, err
	}
	inner, err := rd.GetObject(paymentRequestJSON)
	if err != nil {
		return nil, err
	}
	if r.PaymentRequest, err = ParsePaymentRequest(inner, svc); err != nil {
		return nil, err
	}
	if !r.DirectDebit {
		if r.Expires, err = rd.GetDateTime(expiresJSON); err != nil {
			return nil, err
		}
		if r.AcquirerAuthorityURL, _, err = rd.GetStringConditional(acquirerAuthorityURLJSON); err != nil {
			return nil, err
		}
	}
	if rd.Has(payeeReceiveAccountJSON) {
		sub, err := rd.GetObject(payeeReceiveAccountJSON)
		if err != nil {
			return nil, err
		}
		account, err := ParseAccountDescriptor(sub)
		if err != nil {
			return nil, err
		}
		r.PayeeReceiveAccount = &account
	}
	if r.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if r.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if r.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if r.Signature, err = ParseSignature(rd, SignatureLabel); err != nil {
		return nil, err
	}
	if err = r.Signature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if err = CompareKeyBinding(r.Signature.PublicKey(), r.PaymentRequest.PublicKey()); err != nil {
		return nil, err
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return r, nil
}

// DecryptAuthorization opens the consent blob and binds it to the embedded
// payment request.
func (r *ReserveOrDebitRequest) DecryptAuthorization(
	cipher ports.CipherService,
	keyring *ports.Keyring,
) (*AuthorizationData, error) {
	helper := &AuthorizationRequest{
		PayerAccountType:       r.PayerAccountType,
		PaymentRequest:         r.PaymentRequest,
		EncryptedAuthorization: r.EncryptedAuthorization,
	}
	return helper.DecryptAuthorization(cipher, keyring)
}

// ReserveOrDebitResponse answers a settlement request. A declined request is
// still a well-formed, signed response carrying an error return in place of
// the success fields.
type ReserveOrDebitResponse struct {
	Root                *jsonutil.ObjectReader
	DirectDebit         bool
	ErrorReturn         *domain.ErrorReturn
	PaymentRequest      *PaymentRequest
	PaymentMethod       string
	AccountReference    string
	PayeeReceiveAccount *domain.AccountDescriptor
	ReferenceID         string
	Expires             time.Time
	TimeStamp           time.Time
	Software            domain.Software
	IssuerSignature     *Signature
}

// Success reports whether the request was honored.
func (r *ReserveOrDebitResponse) Success() bool {
	return r.ErrorReturn == nil
}

// EncodeReserveOrDebitError builds a signed decline for either variant.
func EncodeReserveOrDebitError(
	directDebit bool,
	e *domain.ErrorReturn,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	qualifier := MsgReserveFundsResponse
	if directDebit {
		qualifier = MsgDirectDebitResponse
	}
	wr := WriteErrorReturn(NewMessage(qualifier), e).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareProvider))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// EncodeReserveOrDebitResponse builds a certificate-signed approval.
func EncodeReserveOrDebitResponse(
	request *ReserveOrDebitRequest,
	accountReference string,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	qualifier := MsgReserveFundsResponse
	if request.DirectDebit {
		qualifier = MsgDirectDebitResponse
	}
	wr := NewMessage(qualifier).
		SetRaw(paymentRequestJSON, request.PaymentRequest.Root.Normalized()).
		SetString(paymentMethodJSON, request.PayerAccountType.TypeURI).
		SetString(accountReferenceJSON, accountReference)
	if request.PayeeReceiveAccount != nil {
		wr.SetObject(payeeReceiveAccountJSON, EncodeAccountDescriptor(*request.PayeeReceiveAccount))
	}
	wr.SetString(referenceIDJSON, referenceID)
	if !request.DirectDebit {
		wr.SetDateTime(expiresJSON, request.Expires)
	}
	wr.SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareProvider))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseReserveOrDebitResponse decodes either the approval or the decline form.
func ParseReserveOrDebitResponse(rd *jsonutil.ObjectReader, svc ports.SigningService) (*ReserveOrDebitResponse, error) {
	qualifier, err := ParseMessageOneOf(rd, MsgReserveFundsResponse, MsgDirectDebitResponse)
	if err != nil {
		return nil, err
	}
	r := &ReserveOrDebitResponse{Root: rd, DirectDebit: qualifier == MsgDirectDebitResponse}
	if HasErrorReturn(rd) {
		if r.ErrorReturn, err = ParseErrorReturn(rd); err != nil {
			return nil, err
		}
	} else {
		inner, err := rd.GetObject(paymentRequestJSON)
		if err != nil {
			return nil, err
		}
		if r.PaymentRequest, err = ParsePaymentRequest(inner, svc); err != nil {
			return nil, err
		}
		if r.PaymentMethod, err = rd.GetString(paymentMethodJSON); err != nil {
			return nil, err
		}
		if _, err = domain.PayerAccountTypeFromURI(r.PaymentMethod); err != nil {
			return nil, err
		}
		if r.AccountReference, err = rd.GetString(accountReferenceJSON); err != nil {
			return nil, err
		}
		if rd.Has(payeeReceiveAccountJSON) {
			sub, err := rd.GetObject(payeeReceiveAccountJSON)
			if err != nil {
				return nil, err
			}
			account, err := ParseAccountDescriptor(sub)
			if err != nil {
				return nil, err
			}
			r.PayeeReceiveAccount = &account
		}
	}
	if r.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if !r.DirectDebit && r.Success() {
		if r.Expires, err = rd.GetDateTime(expiresJSON); err != nil {
			return nil, err
		}
	}
	if r.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if r.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if r.IssuerSignature, err = ParseSignature(rd, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	if err = r.IssuerSignature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if len(r.IssuerSignature.Block.CertificatePath) == 0 {
		return nil, apperror.ErrUntrustedSigner(errors.New("settlement response requires a certificate path"))
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return r, nil
}
