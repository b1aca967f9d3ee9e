package protocol

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// HTTPVersion is the transport version advertised in authority objects.
const HTTPVersion = "HTTP/1.1"

// KeyEncryptionAlgorithmFor picks the key-wrapping algorithm matching the
// recipient's key type.
func KeyEncryptionAlgorithmFor(key crypto.PublicKey) (string, error) {
	switch key.(type) {
	case *ecdsa.PublicKey:
		return KeyEncryptionECDHES, nil
	case *rsa.PublicKey:
		return KeyEncryptionRSAOAEP256, nil
	default:
		return "", fmt.Errorf("unsupported encryption key type %T", key)
	}
}

// ProviderAuthority is a provider's self-published, periodically reissued
// service description: endpoints, capabilities and the current encryption key.
type ProviderAuthority struct {
	Root                    *jsonutil.ObjectReader
	HTTPVersion             string
	AuthorityURL            string
	HomePage                string
	ServiceURL              string
	SupportedPaymentMethods []string
	SignatureProfiles       []string
	DataEncryptionAlgorithm string
	KeyEncryptionAlgorithm  string
	EncryptionKey           crypto.PublicKey
	TimeStamp               time.Time
	Expires                 time.Time
	IssuerSignature         *Signature
}

// ProviderAuthoritySpec carries the static half of a provider authority; the
// timestamps are stamped at (re)issue time.
type ProviderAuthoritySpec struct {
	AuthorityURL            string
	HomePage                string
	ServiceURL              string
	SupportedPaymentMethods []string
	SignatureProfiles       []string
	DataEncryptionAlgorithm string
	EncryptionKey           crypto.PublicKey
}

// EncodeProviderAuthority issues a signed provider authority valid for the
// given lifetime.
func EncodeProviderAuthority(
	spec ProviderAuthoritySpec,
	now time.Time,
	lifetime time.Duration,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	keyAlgorithm, err := KeyEncryptionAlgorithmFor(spec.EncryptionKey)
	if err != nil {
		return nil, err
	}
	encryptionKey, err := jsonutil.EncodePublicKey(spec.EncryptionKey)
	if err != nil {
		return nil, err
	}
	methods := jsonutil.NewArrayWriter()
	for _, m := range spec.SupportedPaymentMethods {
		methods.SetString(m)
	}
	profiles := jsonutil.NewArrayWriter()
	for _, p := range spec.SignatureProfiles {
		profiles.SetString(p)
	}
	wr := NewMessage(MsgProviderAuthority).
		SetString(httpVersionJSON, HTTPVersion).
		SetString(authorityURLJSON, spec.AuthorityURL)
	if spec.HomePage != "" {
		wr.SetString(homePageJSON, spec.HomePage)
	}
	wr.SetString(serviceURLJSON, spec.ServiceURL).
		SetArray(supportedPaymentMethodsJSON, methods).
		SetArray(signatureProfilesJSON, profiles).
		SetObject(encryptionParametersJSON, jsonutil.NewObjectWriter().
			SetString(dataEncryptionAlgJSON, spec.DataEncryptionAlgorithm).
			SetString(keyEncryptionAlgJSON, keyAlgorithm).
			SetObject(publicKeyJSON, encryptionKey)).
		SetDateTime(timeStampJSON, now).
		SetDateTime(expiresJSON, now.Add(lifetime))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseProviderAuthority decodes and verifies a provider authority.
func ParseProviderAuthority(rd *jsonutil.ObjectReader, svc ports.SigningService) (*ProviderAuthority, error) {
	if err := ParseMessage(MsgProviderAuthority, rd); err != nil {
		return nil, err
	}
	a := &ProviderAuthority{Root: rd}
	var err error
	if a.HTTPVersion, err = rd.GetString(httpVersionJSON); err != nil {
		return nil, err
	}
	if a.AuthorityURL, err = rd.GetString(authorityURLJSON); err != nil {
		return nil, err
	}
	if a.HomePage, _, err = rd.GetStringConditional(homePageJSON); err != nil {
		return nil, err
	}
	if a.ServiceURL, err = rd.GetString(serviceURLJSON); err != nil {
		return nil, err
	}
	methods, err := rd.GetArray(supportedPaymentMethodsJSON)
	if err != nil {
		return nil, err
	}
	for methods.More() {
		m, err := methods.GetString()
		if err != nil {
			return nil, err
		}
		a.SupportedPaymentMethods = append(a.SupportedPaymentMethods, m)
	}
	profiles, err := rd.GetArray(signatureProfilesJSON)
	if err != nil {
		return nil, err
	}
	for profiles.More() {
		p, err := profiles.GetString()
		if err != nil {
			return nil, err
		}
		a.SignatureProfiles = append(a.SignatureProfiles, p)
	}
	enc, err := rd.GetObject(encryptionParametersJSON)
	if err != nil {
		return nil, err
	}
	if a.DataEncryptionAlgorithm, err = enc.GetString(dataEncryptionAlgJSON); err != nil {
		return nil, err
	}
	if a.KeyEncryptionAlgorithm, err = enc.GetString(keyEncryptionAlgJSON); err != nil {
		return nil, err
	}
	if a.EncryptionKey, err = enc.GetPublicKey(publicKeyJSON); err != nil {
		return nil, err
	}
	expected, err := KeyEncryptionAlgorithmFor(a.EncryptionKey)
	if err != nil {
		return nil, apperror.ErrSchemaViolation(err.Error())
	}
	if a.KeyEncryptionAlgorithm != expected {
		return nil, apperror.ErrSchemaViolation(
			fmt.Sprintf("key encryption algorithm %q does not match key type", a.KeyEncryptionAlgorithm))
	}
	if a.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if a.Expires, err = rd.GetDateTime(expiresJSON); err != nil {
		return nil, err
	}
	if !a.Expires.After(a.TimeStamp) {
		return nil, apperror.ErrProtocolMismatch("expires must be after timeStamp")
	}
	if a.IssuerSignature, err = ParseSignature(rd, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	if err = a.IssuerSignature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if len(a.IssuerSignature.Block.CertificatePath) == 0 {
		return nil, apperror.ErrUntrustedSigner(errors.New("provider authority requires a certificate path"))
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return a, nil
}

// SupportsPaymentMethod reports whether the provider accepts the given
// payment method URI.
func (a *ProviderAuthority) SupportsPaymentMethod(typeURI string) bool {
	for _, m := range a.SupportedPaymentMethods {
		if m == typeURI {
			return true
		}
	}
	return false
}

// PayeeAuthority is a provider-attested merchant description, one per
// registered payee, reissued on the same schedule as the provider authority.
type PayeeAuthority struct {
	Root                 *jsonutil.ObjectReader
	AuthorityURL         string
	ProviderAuthorityURL string
	HomePage             string
	CommonName           string
	ID                   string
	SignatureParameters  []domain.SignatureParameter
	TimeStamp            time.Time
	Expires              time.Time
	IssuerSignature      *Signature
}

// EncodePayeeAuthority issues a signed payee authority for a registered
// merchant, valid for the given lifetime.
func EncodePayeeAuthority(
	authorityURL string,
	providerAuthorityURL string,
	record *domain.PayeeRecord,
	now time.Time,
	lifetime time.Duration,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := NewMessage(MsgPayeeAuthority).
		SetString(authorityURLJSON, authorityURL).
		SetString(providerAuthorityURLJSON, providerAuthorityURL)
	if record.HomePage != "" {
		wr.SetString(homePageJSON, record.HomePage)
	}
	wr.SetString(commonNameJSON, record.CommonName).
		SetString(idJSON, record.ID)
	params := jsonutil.NewArrayWriter()
	for _, p := range record.SignatureParameters {
		pk, err := jsonutil.EncodePublicKey(p.PublicKey)
		if err != nil {
			return nil, err
		}
		params.SetObject(jsonutil.NewObjectWriter().
			SetString(algorithmJSON, p.Algorithm).
			SetObject(publicKeyJSON, pk))
	}
	wr.SetArray(signatureParametersJSON, params).
		SetDateTime(timeStampJSON, now).
		SetDateTime(expiresJSON, now.Add(lifetime))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParsePayeeAuthority decodes and verifies a payee authority.
func ParsePayeeAuthority(rd *jsonutil.ObjectReader, svc ports.SigningService) (*PayeeAuthority, error) {
	if err := ParseMessage(MsgPayeeAuthority, rd); err != nil {
		return nil, err
	}
	a := &PayeeAuthority{Root: rd}
	var err error
	if a.AuthorityURL, err = rd.GetString(authorityURLJSON); err != nil {
		return nil, err
	}
	if a.ProviderAuthorityURL, err = rd.GetString(providerAuthorityURLJSON); err != nil {
		return nil, err
	}
	if a.HomePage, _, err = rd.GetStringConditional(homePageJSON); err != nil {
		return nil, err
	}
	if a.CommonName, err = rd.GetString(commonNameJSON); err != nil {
		return nil, err
	}
	if a.ID, err = rd.GetString(idJSON); err != nil {
		return nil, err
	}
	params, err := rd.GetArray(signatureParametersJSON)
	if err != nil {
		return nil, err
	}
	for params.More() {
		sub, err := params.GetObject()
		if err != nil {
			return nil, err
		}
		var p domain.SignatureParameter
		if p.Algorithm, err = sub.GetString(algorithmJSON); err != nil {
			return nil, err
		}
		if p.PublicKey, err = sub.GetPublicKey(publicKeyJSON); err != nil {
			return nil, err
		}
		a.SignatureParameters = append(a.SignatureParameters, p)
	}
	if len(a.SignatureParameters) == 0 {
		return nil, apperror.ErrSchemaViolation("payee authority carries no signature parameters")
	}
	if a.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if a.Expires, err = rd.GetDateTime(expiresJSON); err != nil {
		return nil, err
	}
	if !a.Expires.After(a.TimeStamp) {
		return nil, apperror.ErrProtocolMismatch("expires must be after timeStamp")
	}
	if a.IssuerSignature, err = ParseSignature(rd, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	if err = a.IssuerSignature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if len(a.IssuerSignature.Block.CertificatePath) == 0 {
		return nil, apperror.ErrUntrustedSigner(errors.New("payee authority requires a certificate path"))
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return a, nil
}

// AcceptsKey reports whether the attested merchant signs with the given key.
func (a *PayeeAuthority) AcceptsKey(key crypto.PublicKey) bool {
	for _, p := range a.SignatureParameters {
		if domain.PublicKeysEqual(p.PublicKey, key) {
			return true
		}
	}
	return false
}
