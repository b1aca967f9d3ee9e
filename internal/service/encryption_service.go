package service

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/protocol"
	"saturn-payment-network/pkg/apperror"
)

const (
	cekLength = 32 // A128CBC-HS256: 16 bytes HMAC key + 16 bytes AES key
	ivLength  = 16
	tagLength = 16
)

// JOSECipherService implements ports.CipherService with A128CBC-HS256
// content encryption and ECDH-ES or RSA-OAEP-256 key management, matching
// the algorithms authority objects advertise.
type JOSECipherService struct {
	random io.Reader
}

// NewJOSECipherService creates a new cipher service.
func NewJOSECipherService() *JOSECipherService {
	return &JOSECipherService{random: rand.Reader}
}

// Encrypt seals plaintext for recipientKey.
func (s *JOSECipherService) Encrypt(
	plaintext []byte,
	recipientKey crypto.PublicKey,
	dataAlgorithm, keyAlgorithm string,
) (*ports.CipherBlock, error) {
	if dataAlgorithm != protocol.DataEncryptionA128CBCHS256 {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("unsupported data algorithm %q", dataAlgorithm))
	}
	block := &ports.CipherBlock{
		DataAlgorithm: dataAlgorithm,
		KeyAlgorithm:  keyAlgorithm,
	}
	var cek []byte
	switch keyAlgorithm {
	case protocol.KeyEncryptionECDHES:
		pub, ok := recipientKey.(*ecdsa.PublicKey)
		if !ok {
			return nil, apperror.ErrEncryptionFailure(fmt.Errorf("ECDH-ES requires an EC key, got %T", recipientKey))
		}
		ecdhPub, err := pub.ECDH()
		if err != nil {
			return nil, apperror.ErrEncryptionFailure(err)
		}
		ephemeral, err := ecdhPub.Curve().GenerateKey(s.random)
		if err != nil {
			return nil, apperror.ErrEncryptionFailure(err)
		}
		shared, err := ephemeral.ECDH(ecdhPub)
		if err != nil {
			return nil, apperror.ErrEncryptionFailure(err)
		}
		if cek, err = deriveCEK(shared, dataAlgorithm); err != nil {
			return nil, apperror.ErrEncryptionFailure(err)
		}
		ephemeralECDSA, err := ecdhToECDSA(ephemeral.PublicKey())
		if err != nil {
			return nil, apperror.ErrEncryptionFailure(err)
		}
		block.EphemeralKey = ephemeralECDSA
	case protocol.KeyEncryptionRSAOAEP256:
		pub, ok := recipientKey.(*rsa.PublicKey)
		if !ok {
			return nil, apperror.ErrEncryptionFailure(fmt.Errorf("RSA-OAEP-256 requires an RSA key, got %T", recipientKey))
		}
		cek = make([]byte, cekLength)
		if _, err := io.ReadFull(s.random, cek); err != nil {
			return nil, apperror.ErrEncryptionFailure(err)
		}
		wrapped, err := rsa.EncryptOAEP(sha256.New(), s.random, pub, cek, nil)
		if err != nil {
			return nil, apperror.ErrEncryptionFailure(err)
		}
		block.EncryptedKey = wrapped
	default:
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("unsupported key algorithm %q", keyAlgorithm))
	}

	iv := make([]byte, ivLength)
	if _, err := io.ReadFull(s.random, iv); err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}
	cipherText, err := cbcEncrypt(cek[tagLength:], iv, plaintext)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}
	block.IV = iv
	block.CipherText = cipherText
	block.Tag = computeTag(cek[:tagLength], iv, cipherText)
	return block, nil
}

// Decrypt opens a cipher block with the first keyring key that matches its
// key algorithm.
func (s *JOSECipherService) Decrypt(block *ports.CipherBlock, keyring *ports.Keyring) ([]byte, error) {
	if block.DataAlgorithm != protocol.DataEncryptionA128CBCHS256 {
		return nil, apperror.ErrDecryptionFailed(fmt.Errorf("unsupported data algorithm %q", block.DataAlgorithm))
	}
	if len(block.IV) != ivLength || len(block.Tag) != tagLength {
		return nil, apperror.ErrDecryptionFailed(fmt.Errorf("malformed iv or tag"))
	}
	cek, err := s.unwrapCEK(block, keyring)
	if err != nil {
		return nil, err
	}
	if !hmac.Equal(block.Tag, computeTag(cek[:tagLength], block.IV, block.CipherText)) {
		return nil, apperror.ErrDecryptionFailed(fmt.Errorf("authentication tag mismatch"))
	}
	plaintext, err := cbcDecrypt(cek[tagLength:], block.IV, block.CipherText)
	if err != nil {
		return nil, apperror.ErrDecryptionFailed(err)
	}
	return plaintext, nil
}

func (s *JOSECipherService) unwrapCEK(block *ports.CipherBlock, keyring *ports.Keyring) ([]byte, error) {
	switch block.KeyAlgorithm {
	case protocol.KeyEncryptionECDHES:
		ephemeral, ok := block.EphemeralKey.(*ecdsa.PublicKey)
		if !ok {
			return nil, apperror.ErrDecryptionFailed(fmt.Errorf("ECDH-ES requires an EC ephemeral key"))
		}
		ecdhEphemeral, err := ephemeral.ECDH()
		if err != nil {
			return nil, apperror.ErrDecryptionFailed(err)
		}
		for _, key := range keyring.Keys {
			priv, ok := key.(*ecdsa.PrivateKey)
			if !ok || priv.Curve != ephemeral.Curve {
				continue
			}
			ecdhPriv, err := priv.ECDH()
			if err != nil {
				continue
			}
			shared, err := ecdhPriv.ECDH(ecdhEphemeral)
			if err != nil {
				continue
			}
			cek, err := deriveCEK(shared, block.DataAlgorithm)
			if err != nil {
				return nil, apperror.ErrDecryptionFailed(err)
			}
			return cek, nil
		}
	case protocol.KeyEncryptionRSAOAEP256:
		for _, key := range keyring.Keys {
			priv, ok := key.(*rsa.PrivateKey)
			if !ok {
				continue
			}
			cek, err := rsa.DecryptOAEP(sha256.New(), nil, priv, block.EncryptedKey, nil)
			if err != nil {
				continue
			}
			if len(cek) != cekLength {
				return nil, apperror.ErrDecryptionFailed(fmt.Errorf("unwrapped key has wrong length"))
			}
			return cek, nil
		}
	default:
		return nil, apperror.ErrDecryptionFailed(fmt.Errorf("unsupported key algorithm %q", block.KeyAlgorithm))
	}
	return nil, apperror.ErrDecryptionFailed(fmt.Errorf("no matching decryption key"))
}

// deriveCEK expands the ECDH shared secret into a content encryption key,
// bound to the data algorithm name.
func deriveCEK(shared []byte, dataAlgorithm string) ([]byte, error) {
	cek := make([]byte, cekLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, nil, []byte(dataAlgorithm)), cek); err != nil {
		return nil, fmt.Errorf("deriving content encryption key: %w", err)
	}
	return cek, nil
}

// computeTag authenticates iv plus ciphertext, truncated per A128CBC-HS256.
func computeTag(macKey, iv, cipherText []byte) []byte {
	mac := hmac.New(sha256.New, macKey)
	mac.Write(iv)
	mac.Write(cipherText)
	return mac.Sum(nil)[:tagLength]
}

func cbcEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

func cbcDecrypt(key, iv, cipherText []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(cipherText) == 0 || len(cipherText)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("ciphertext is not block aligned")
	}
	out := make([]byte, len(cipherText))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, cipherText)
	return pkcs7Unpad(out, block.BlockSize())
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("bad padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("bad padding")
		}
	}
	return data[:len(data)-n], nil
}

func ecdhToECDSA(pub *ecdh.PublicKey) (*ecdsa.PublicKey, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, err
	}
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	ecdsaPub, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected key type %T", parsed)
	}
	return ecdsaPub, nil
}
