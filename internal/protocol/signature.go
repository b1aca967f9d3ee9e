package protocol

import (
	"crypto"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// Sign serializes the envelope as constructed so far, obtains a signature
// block from the signing service and appends it under label. Fields added
// after this call would not be covered, so the signature must be the last
// field appended.
func Sign(wr *jsonutil.ObjectWriter, svc ports.SigningService, identity ports.SigningIdentity, label string) error {
	block, err := svc.Sign(wr.Serialize(), identity)
	if err != nil {
		return apperror.ErrSigningServiceUnavailable(err)
	}
	sub, err := encodeSignatureBlock(block)
	if err != nil {
		return apperror.ErrSigningServiceUnavailable(err)
	}
	wr.SetObject(label, sub)
	return nil
}

func encodeSignatureBlock(block *ports.SignatureBlock) (*jsonutil.ObjectWriter, error) {
	wr := jsonutil.NewObjectWriter().SetString(algorithmJSON, block.Algorithm)
	if len(block.CertificatePath) > 0 {
		path := jsonutil.NewArrayWriter()
		for _, cert := range block.CertificatePath {
			path.SetString(base64.RawURLEncoding.EncodeToString(cert.Raw))
		}
		wr.SetArray(certificatePathJSON, path)
	} else {
		pk, err := jsonutil.EncodePublicKey(block.PublicKey)
		if err != nil {
			return nil, err
		}
		wr.SetObject(publicKeyJSON, pk)
	}
	return wr.SetBinary(valueJSON, block.Value), nil
}

// Signature is a decoded signature block together with the exact bytes it
// covers (the enclosing object minus the signature field, in declaration
// order).
type Signature struct {
	Block       *ports.SignatureBlock
	SignedBytes []byte
}

// ParseSignature decodes the signature under label and captures the covered
// bytes. It does not verify; VerifyWith does.
func ParseSignature(rd *jsonutil.ObjectReader, label string) (*Signature, error) {
	sub, err := rd.GetObject(label)
	if err != nil {
		return nil, err
	}
	block := &ports.SignatureBlock{}
	if block.Algorithm, err = sub.GetString(algorithmJSON); err != nil {
		return nil, err
	}
	if sub.Has(certificatePathJSON) {
		arr, err := sub.GetArray(certificatePathJSON)
		if err != nil {
			return nil, err
		}
		for arr.More() {
			encoded, err := arr.GetString()
			if err != nil {
				return nil, err
			}
			der, err := base64.RawURLEncoding.DecodeString(encoded)
			if err != nil {
				return nil, apperror.ErrSchemaViolation("certificate path entry is not base64url")
			}
			cert, err := x509.ParseCertificate(der)
			if err != nil {
				return nil, apperror.ErrSchemaViolation(fmt.Sprintf("malformed certificate: %v", err))
			}
			block.CertificatePath = append(block.CertificatePath, cert)
		}
		if len(block.CertificatePath) == 0 {
			return nil, apperror.ErrSchemaViolation("empty certificate path")
		}
		block.PublicKey = block.CertificatePath[0].PublicKey
	} else {
		if block.PublicKey, err = sub.GetPublicKey(publicKeyJSON); err != nil {
			return nil, err
		}
	}
	if block.Value, err = sub.GetBinary(valueJSON); err != nil {
		return nil, err
	}
	return &Signature{
		Block:       block,
		SignedBytes: rd.NormalizedExcept(label),
	}, nil
}

// VerifyWith checks the signature value against the covered bytes.
func (s *Signature) VerifyWith(svc ports.SigningService) error {
	if err := svc.Verify(s.SignedBytes, s.Block); err != nil {
		return apperror.ErrInvalidSignature(err)
	}
	return nil
}

// PublicKey returns the signer's public key (the leaf certificate's key for
// X509 signatures).
func (s *Signature) PublicKey() crypto.PublicKey {
	return s.Block.PublicKey
}

// VerifyTrust requires a certificate path chaining to one of the trust roots.
// Plain-key signatures always fail this check.
func (s *Signature) VerifyTrust(svc ports.SigningService, trustRoots *x509.CertPool) error {
	if len(s.Block.CertificatePath) == 0 {
		return apperror.ErrUntrustedSigner(errors.New("signature carries no certificate path"))
	}
	if err := svc.VerifyTrust(s.Block.CertificatePath, trustRoots); err != nil {
		return apperror.ErrUntrustedSigner(err)
	}
	return nil
}

// CompareKeyBinding enforces outer/inner signer key equality, the protocol's
// anti-substitution invariant.
func CompareKeyBinding(outer, inner crypto.PublicKey) error {
	if !domain.PublicKeysEqual(outer, inner) {
		return apperror.ErrKeyBindingViolation()
	}
	return nil
}
