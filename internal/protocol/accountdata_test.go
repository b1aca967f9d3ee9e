package protocol_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/protocol"
	"saturn-payment-network/internal/service"
)

func TestAccountData_CardVariant(t *testing.T) {
	nonce := make([]byte, 32)
	_, err := rand.Read(nonce)
	require.NoError(t, err)

	wr, err := protocol.EncodeAccountData(&protocol.AccountData{
		Context:      domain.AccountTypeSuperCard,
		AccountID:    "6875056745552109",
		CardHolder:   "Luke Skywalker",
		Expires:      testTime.AddDate(2, 0, 0),
		SecurityCode: "943",
		Nonce:        nonce,
	})
	require.NoError(t, err)

	parsed, err := protocol.ParseAccountData(mustReader(t, wr.Serialize()))
	require.NoError(t, err)
	assert.True(t, parsed.CardAccount())
	assert.Equal(t, "6875056745552109", parsed.AccountID)
	assert.Equal(t, "Luke Skywalker", parsed.CardHolder)
	assert.Equal(t, "943", parsed.SecurityCode)
	assert.Equal(t, nonce, parsed.Nonce)
}

func TestAccountData_AccountVariants(t *testing.T) {
	for _, tc := range []struct {
		context   domain.AccountTypeURI
		accountID string
	}{
		{domain.AccountTypeSEPA, "FR7630002111110020050014382"},
		{domain.AccountTypeBankGiro, "640-5040"},
	} {
		wr, err := protocol.EncodeAccountData(&protocol.AccountData{
			Context:   tc.context,
			AccountID: tc.accountID,
		})
		require.NoError(t, err)

		parsed, err := protocol.ParseAccountData(mustReader(t, wr.Serialize()))
		require.NoError(t, err)
		assert.False(t, parsed.CardAccount())
		assert.Equal(t, tc.accountID, parsed.AccountID)
		assert.Empty(t, parsed.CardHolder)
	}
}

func TestAccountData_UnknownContext(t *testing.T) {
	_, err := protocol.ParseAccountData(mustReader(t,
		[]byte(`{"@context":"https://bogus.example/v1#account","iban":"X"}`)))
	require.Error(t, err)
	assert.Equal(t, "LOOKUP_002", appCode(t, err))
}

func TestAccountData_BadNonceLength(t *testing.T) {
	_, err := protocol.ParseAccountData(mustReader(t,
		[]byte(`{"@context":"https://sepa.payments.org/saturn/v3#account","iban":"X","nonce":"AAAA"}`)))
	require.Error(t, err)
	assert.Equal(t, "PROTO_002", appCode(t, err))
}

func TestAccountData_CheckAccountTypes(t *testing.T) {
	data := &protocol.AccountData{Context: domain.AccountTypeSEPA, AccountID: "X"}

	assert.NoError(t, data.CheckAccountTypes(domain.AccountTypeSEPA, domain.AccountTypeBankGiro))

	err := data.CheckAccountTypes(domain.AccountTypeSuperCard)
	require.Error(t, err)
	assert.Equal(t, "LOOKUP_002", appCode(t, err))
}

func TestAccountData_EncryptedRoundTrip(t *testing.T) {
	cipherSvc := service.NewJOSECipherService()
	recipient, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	wr, err := protocol.EncodeAccountData(&protocol.AccountData{
		Context:   domain.AccountTypeSEPA,
		AccountID: "FR7630002111110020050014382",
	})
	require.NoError(t, err)

	block, err := cipherSvc.Encrypt(wr.Serialize(), &recipient.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	require.NoError(t, err)

	parsed, err := protocol.DecryptAccountData(block, cipherSvc,
		&ports.Keyring{Keys: []crypto.PrivateKey{recipient}})
	require.NoError(t, err)
	assert.Equal(t, "FR7630002111110020050014382", parsed.AccountID)
}
