package protocol

import (
	"bytes"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// AuthorizationRequest is the payee's opening message to the payer's bank.
// Its signer must be the same key that signed the embedded payment request.
type AuthorizationRequest struct {
	Root                   *jsonutil.ObjectReader
	TestMode               bool
	PayeeAuthorityURL      string
	PayerAccountType       domain.PayerAccountType
	PaymentRequest         *PaymentRequest
	EncryptedAuthorization *ports.CipherBlock
	PayeeReceiveAccount    *domain.AccountDescriptor
	ReferenceID            string
	ClientIPAddress        string
	TimeStamp              time.Time
	Software               domain.Software
	Signature              *Signature
}

// AuthorizationRequestSpec carries the encoder inputs that vary per call.
type AuthorizationRequestSpec struct {
	TestMode               bool
	PayeeAuthorityURL      string
	PaymentMethod          string
	PaymentRequest         []byte // serialized, already signed
	EncryptedAuthorization *ports.CipherBlock
	PayeeReceiveAccount    *domain.AccountDescriptor
	ReferenceID            string
	ClientIPAddress        string
}

// EncodeAuthorizationRequest builds and signs an authorization request around
// an already signed payment request.
func EncodeAuthorizationRequest(
	spec AuthorizationRequestSpec,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := NewMessage(MsgAuthorizationRequest)
	if spec.TestMode {
		wr.SetBoolean(testModeJSON, true)
	}
	wr.SetString(authorityURLJSON, spec.PayeeAuthorityURL).
		SetString(paymentMethodJSON, spec.PaymentMethod).
		SetRaw(paymentRequestJSON, spec.PaymentRequest)
	cipher, err := EncodeCipherBlock(spec.EncryptedAuthorization)
	if err != nil {
		return nil, err
	}
	wr.SetObject(encryptedAuthorizationJSON, cipher)
	if spec.PayeeReceiveAccount != nil {
		wr.SetObject(payeeReceiveAccountJSON, EncodeAccountDescriptor(*spec.PayeeReceiveAccount))
	}
	wr.SetString(referenceIDJSON, spec.ReferenceID).
		SetString(clientIPAddressJSON, spec.ClientIPAddress).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwarePayee))
	if err := Sign(wr, svc, identity, SignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseAuthorizationRequest decodes, verifies and key-binds an authorization
// request.
func ParseAuthorizationRequest(rd *jsonutil.ObjectReader, svc ports.SigningService) (*AuthorizationRequest, error) {
	if err := ParseMessage(MsgAuthorizationRequest, rd); err != nil {
		return nil, err
	}
	a := &AuthorizationRequest{Root: rd}
	var err error
	if a.TestMode, err = rd.GetBooleanConditional(testModeJSON); err != nil {
		return nil, err
	}
	if a.PayeeAuthorityURL, err = rd.GetString(authorityURLJSON); err != nil {
		return nil, err
	}
	methodURI, err := rd.GetString(paymentMethodJSON)
	if err != nil {
		return nil, err
	}
	if a.PayerAccountType, err = domain.PayerAccountTypeFromURI(methodURI); err != nil {
		return nil, err
	}
	inner, err := rd.GetObject(paymentRequestJSON)
	if err != nil {
		return nil, err
	}
	if a.PaymentRequest, err = ParsePaymentRequest(inner, svc); err != nil {
		return nil, err
	}
	if a.EncryptedAuthorization, err = ParseCipherBlock(rd, encryptedAuthorizationJSON); err != nil {
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
		a.PayeeReceiveAccount = &account
	}
	if a.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if a.ClientIPAddress, err = rd.GetString(clientIPAddressJSON); err != nil {
		return nil, err
	}
	if a.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if a.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if a.Signature, err = ParseSignature(rd, SignatureLabel); err != nil {
		return nil, err
	}
	if err = a.Signature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if err = CompareKeyBinding(a.Signature.PublicKey(), a.PaymentRequest.PublicKey()); err != nil {
		return nil, err
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return a, nil
}

// DecryptAuthorization opens the consent blob with one of the bank's
// decryption keys and binds it to the embedded payment request.
func (a *AuthorizationRequest) DecryptAuthorization(
	cipher ports.CipherService,
	keyring *ports.Keyring,
) (*AuthorizationData, error) {
	plain, err := cipher.Decrypt(a.EncryptedAuthorization, keyring)
	if err != nil {
		return nil, err
	}
	rd, err := jsonutil.Parse(plain)
	if err != nil {
		return nil, err
	}
	data, err := ParseAuthorizationData(rd)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(data.RequestHash, a.PaymentRequest.RequestHash()) {
		return nil, apperror.ErrHashMismatch(requestHashJSON)
	}
	if data.PaymentMethod != a.PayerAccountType.TypeURI {
		return nil, apperror.ErrProtocolMismatch("payment method differs from authorized method")
	}
	return data, nil
}
