package file

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"saturn-payment-network/internal/core/ports"
)

// LoadPrivateKey reads a PEM private key (PKCS#8, SEC 1 or PKCS#1).
func LoadPrivateKey(path string) (crypto.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	switch block.Type {
	case "PRIVATE KEY":
		return x509.ParsePKCS8PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(block.Bytes)
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	}
	return nil, fmt.Errorf("%s: unsupported PEM block %q", path, block.Type)
}

// LoadPublicKey reads a PEM PKIX public key.
func LoadPublicKey(path string) (crypto.PublicKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	if block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("%s: unsupported PEM block %q", path, block.Type)
	}
	return x509.ParsePKIXPublicKey(block.Bytes)
}

// LoadCertificates reads a PEM certificate chain, leaf first.
func LoadCertificates(path string) ([]*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var certs []*x509.Certificate
	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing certificate in %s: %w", path, err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, fmt.Errorf("%s holds no certificates", path)
	}
	return certs, nil
}

// LoadCertPool reads PEM trust roots into a pool.
func LoadCertPool(path string) (*x509.CertPool, error) {
	certs, err := LoadCertificates(path)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	for _, cert := range certs {
		pool.AddCert(cert)
	}
	return pool, nil
}

// LoadSigningIdentity assembles a signing identity from a private key and an
// optional certificate chain. The algorithm follows the key type.
func LoadSigningIdentity(keyPath, chainPath string) (ports.SigningIdentity, error) {
	key, err := LoadPrivateKey(keyPath)
	if err != nil {
		return ports.SigningIdentity{}, err
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return ports.SigningIdentity{}, fmt.Errorf("%s: key type %T cannot sign", keyPath, key)
	}
	identity := ports.SigningIdentity{PrivateKey: signer}
	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		if k.Curve != elliptic.P256() {
			return ports.SigningIdentity{}, fmt.Errorf("%s: signing requires curve P-256", keyPath)
		}
		identity.Algorithm = "ES256"
	case *rsa.PrivateKey:
		identity.Algorithm = "RS256"
	default:
		return ports.SigningIdentity{}, fmt.Errorf("%s: unsupported key type %T", keyPath, key)
	}
	if chainPath != "" {
		if identity.CertificatePath, err = LoadCertificates(chainPath); err != nil {
			return ports.SigningIdentity{}, err
		}
	}
	return identity, nil
}

func readPEM(path string) (*pem.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%s holds no PEM data", path)
	}
	return block, nil
}
