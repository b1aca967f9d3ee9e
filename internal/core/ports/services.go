package ports

import (
	"crypto"
	"crypto/x509"

	"saturn-payment-network/internal/core/domain"
)

// SignatureBlock is the Signing Service's view of a signature: the algorithm,
// the signer's key material (a plain public key or a certificate path) and
// the signature value over the canonical payload bytes.
type SignatureBlock struct {
	Algorithm       string
	PublicKey       crypto.PublicKey    // simple-key signatures
	CertificatePath []*x509.Certificate // X509 signatures, leaf first
	Value           []byte
}

// SigningIdentity holds what a party signs with. CertificatePath is set for
// provider/bank/acquirer identities and empty for plain-key signers.
type SigningIdentity struct {
	Algorithm       string
	PrivateKey      crypto.Signer
	CertificatePath []*x509.Certificate
}

// SigningService performs the cryptographic half of message signing. The
// protocol layer owns policy (which key must match which); this service owns
// the byte-level operations.
type SigningService interface {
	// Sign produces a signature block over the canonical payload bytes.
	Sign(payload []byte, identity SigningIdentity) (*SignatureBlock, error)
	// Verify checks the signature value against the payload.
	Verify(payload []byte, block *SignatureBlock) error
	// VerifyTrust checks that a certificate path chains to one of the
	// supplied trust roots.
	VerifyTrust(certificatePath []*x509.Certificate, trustRoots *x509.CertPool) error
}

// CipherBlock is an encrypted payload plus the key-wrapping material needed
// to open it.
type CipherBlock struct {
	DataAlgorithm string
	KeyAlgorithm  string
	EphemeralKey  crypto.PublicKey // ECDH-ES
	EncryptedKey  []byte           // RSA-OAEP-256
	IV            []byte
	Tag           []byte
	CipherText    []byte
}

// Keyring is a small ordered set of asymmetric private keys covering the
// key-encryption algorithms a party supports.
type Keyring struct {
	Keys []crypto.PrivateKey
}

// CipherService encrypts and decrypts protected payloads (account data,
// payer authorizations).
type CipherService interface {
	Encrypt(plaintext []byte, recipientKey crypto.PublicKey, dataAlgorithm, keyAlgorithm string) (*CipherBlock, error)
	Decrypt(block *CipherBlock, keyring *Keyring) ([]byte, error)
}

// PayeeRegistry resolves merchant IDs against the flat-file payee database.
// Read-only after startup.
type PayeeRegistry interface {
	Lookup(payeeID string) (*domain.PayeeRecord, error)
}
