package service

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"saturn-payment-network/internal/core/ports"
)

// JOSESigningService implements ports.SigningService on the JWS algorithm
// suite (ES256, RS256). Signature values are raw JOSE signatures over the
// canonical payload bytes, not JWT compact serializations.
type JOSESigningService struct{}

// NewJOSESigningService creates a new JOSE signing service.
func NewJOSESigningService() *JOSESigningService {
	return &JOSESigningService{}
}

// Sign produces a signature block over payload with the given identity.
func (s *JOSESigningService) Sign(payload []byte, identity ports.SigningIdentity) (*ports.SignatureBlock, error) {
	method := jwt.GetSigningMethod(identity.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signature algorithm %q", identity.Algorithm)
	}
	value, err := method.Sign(string(payload), identity.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("signing with %s: %w", identity.Algorithm, err)
	}
	block := &ports.SignatureBlock{
		Algorithm: identity.Algorithm,
		Value:     value,
	}
	if len(identity.CertificatePath) > 0 {
		block.CertificatePath = identity.CertificatePath
		block.PublicKey = identity.CertificatePath[0].PublicKey
	} else {
		block.PublicKey = identity.PrivateKey.Public()
	}
	return block, nil
}

// Verify checks the signature value against payload. The declared algorithm
// must match the signer's key type, which blocks algorithm-substitution.
func (s *JOSESigningService) Verify(payload []byte, block *ports.SignatureBlock) error {
	if err := checkAlgorithmBinding(block); err != nil {
		return err
	}
	method := jwt.GetSigningMethod(block.Algorithm)
	if method == nil {
		return fmt.Errorf("unsupported signature algorithm %q", block.Algorithm)
	}
	if err := method.Verify(string(payload), block.Value, block.PublicKey); err != nil {
		return fmt.Errorf("verifying %s signature: %w", block.Algorithm, err)
	}
	return nil
}

func checkAlgorithmBinding(block *ports.SignatureBlock) error {
	switch key := block.PublicKey.(type) {
	case *ecdsa.PublicKey:
		if block.Algorithm != "ES256" {
			return fmt.Errorf("algorithm %q does not match EC key", block.Algorithm)
		}
		if key.Curve != elliptic.P256() {
			return fmt.Errorf("ES256 requires curve P-256, got %s", key.Curve.Params().Name)
		}
	case *rsa.PublicKey:
		if block.Algorithm != "RS256" {
			return fmt.Errorf("algorithm %q does not match RSA key", block.Algorithm)
		}
	default:
		return fmt.Errorf("unsupported public key type %T", block.PublicKey)
	}
	return nil
}

// VerifyTrust checks that certificatePath chains, leaf first, to one of the
// supplied trust roots.
func (s *JOSESigningService) VerifyTrust(certificatePath []*x509.Certificate, trustRoots *x509.CertPool) error {
	if len(certificatePath) == 0 {
		return fmt.Errorf("empty certificate path")
	}
	intermediates := x509.NewCertPool()
	for _, cert := range certificatePath[1:] {
		intermediates.AddCert(cert)
	}
	_, err := certificatePath[0].Verify(x509.VerifyOptions{
		Roots:         trustRoots,
		Intermediates: intermediates,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	if err != nil {
		return fmt.Errorf("certificate path does not chain to a trust root: %w", err)
	}
	return nil
}
