package service

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/protocol"
)

func TestJOSECipherService_ECDHESRoundTrip(t *testing.T) {
	svc := NewJOSECipherService()
	recipient, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	plaintext := []byte(`{"accountId":"8645-7800239403"}`)

	block, err := svc.Encrypt(plaintext, &recipient.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	require.NoError(t, err)
	assert.Equal(t, protocol.KeyEncryptionECDHES, block.KeyAlgorithm)
	assert.NotNil(t, block.EphemeralKey)
	assert.Nil(t, block.EncryptedKey)
	assert.Len(t, block.IV, 16)
	assert.Len(t, block.Tag, 16)
	assert.NotContains(t, string(block.CipherText), "8645")

	opened, err := svc.Decrypt(block, &ports.Keyring{Keys: []crypto.PrivateKey{recipient}})
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestJOSECipherService_RSAOAEPRoundTrip(t *testing.T) {
	svc := NewJOSECipherService()
	recipient, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	plaintext := []byte("secret")

	block, err := svc.Encrypt(plaintext, &recipient.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionRSAOAEP256)
	require.NoError(t, err)
	assert.Nil(t, block.EphemeralKey)
	assert.NotEmpty(t, block.EncryptedKey)

	opened, err := svc.Decrypt(block, &ports.Keyring{Keys: []crypto.PrivateKey{recipient}})
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestJOSECipherService_KeyringSelectsMatchingKey(t *testing.T) {
	svc := NewJOSECipherService()
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyring := &ports.Keyring{Keys: []crypto.PrivateKey{rsaKey, ecKey}}

	block, err := svc.Encrypt([]byte("payload"), &ecKey.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	require.NoError(t, err)

	opened, err := svc.Decrypt(block, keyring)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), opened)
}

func TestJOSECipherService_DecryptFails_WrongKey(t *testing.T) {
	svc := NewJOSECipherService()
	recipient, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	stranger, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	block, err := svc.Encrypt([]byte("payload"), &recipient.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	require.NoError(t, err)

	_, err = svc.Decrypt(block, &ports.Keyring{Keys: []crypto.PrivateKey{stranger}})
	assert.Error(t, err)
}

func TestJOSECipherService_DecryptFails_TamperedCiphertext(t *testing.T) {
	svc := NewJOSECipherService()
	recipient, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	keyring := &ports.Keyring{Keys: []crypto.PrivateKey{recipient}}

	block, err := svc.Encrypt([]byte("payload"), &recipient.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	require.NoError(t, err)

	block.CipherText[0] ^= 0x01
	_, err = svc.Decrypt(block, keyring)
	assert.Error(t, err, "tag must catch ciphertext tampering")

	block.CipherText[0] ^= 0x01
	block.Tag[0] ^= 0x01
	_, err = svc.Decrypt(block, keyring)
	assert.Error(t, err, "tampered tag must fail")
}

func TestJOSECipherService_RejectsUnknownAlgorithms(t *testing.T) {
	svc := NewJOSECipherService()
	recipient, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	_, err = svc.Encrypt([]byte("x"), &recipient.PublicKey, "A256GCM", protocol.KeyEncryptionECDHES)
	assert.Error(t, err)

	_, err = svc.Encrypt([]byte("x"), &recipient.PublicKey, protocol.DataEncryptionA128CBCHS256, "A128KW")
	assert.Error(t, err)

	_, err = svc.Decrypt(&ports.CipherBlock{DataAlgorithm: "A256GCM"}, &ports.Keyring{})
	assert.Error(t, err)
}

func TestJOSECipherService_KeyTypeMismatch(t *testing.T) {
	svc := NewJOSECipherService()
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = svc.Encrypt([]byte("x"), &rsaKey.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	assert.Error(t, err)

	_, err = svc.Encrypt([]byte("x"), &ecKey.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionRSAOAEP256)
	assert.Error(t, err)
}
