package domain

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_ExactScale(t *testing.T) {
	usd, err := CurrencyFromCode("USD")
	require.NoError(t, err)

	amount, err := ParseAmount("10.00", usd)
	require.NoError(t, err)
	assert.Equal(t, Amount(1000), amount)
	assert.Equal(t, "10.00", amount.Format(usd))
	assert.Equal(t, "$10.00", amount.DisplayString(usd))
}

func TestParseAmount_RejectsWrongScale(t *testing.T) {
	usd, _ := CurrencyFromCode("USD")

	cases := []string{"10", "10.0", "10.000", "1O.00", "-5.00", ".50", "10."}
	for _, in := range cases {
		_, err := ParseAmount(in, usd)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseAmount_Boundary(t *testing.T) {
	usd, _ := CurrencyFromCode("USD")

	amount, err := ParseAmount("0.01", usd)
	require.NoError(t, err)
	assert.Equal(t, Amount(1), amount)

	amount, err = ParseAmount("0.00", usd)
	require.NoError(t, err)
	assert.Equal(t, Amount(0), amount)

	// Largest minor-unit value representable in an int64.
	amount, err = ParseAmount("92233720368547758.07", usd)
	require.NoError(t, err)
	assert.Equal(t, Amount(9223372036854775807), amount)
}

func TestParseAmount_RejectsOutOfRange(t *testing.T) {
	usd, _ := CurrencyFromCode("USD")

	// One past the int64 ceiling and a grossly oversized value. Neither may
	// wrap into a positive or negative amount.
	cases := []string{"92233720368547758.08", "999999999999999999999.99"}
	for _, in := range cases {
		amount, err := ParseAmount(in, usd)
		require.Error(t, err, "input %q", in)
		assert.Equal(t, Amount(0), amount, "input %q", in)
	}
}

func TestCurrencyFromCode_Unknown(t *testing.T) {
	_, err := CurrencyFromCode("XYZ")
	assert.Error(t, err)
}

func TestPayerAccountTypeFromURI(t *testing.T) {
	card, err := PayerAccountTypeFromURI("https://supercard.com")
	require.NoError(t, err)
	assert.True(t, card.CardPayment)
	assert.Equal(t, "SuperCard", card.CommonName)

	bank, err := PayerAccountTypeFromURI("https://bankdirect.net")
	require.NoError(t, err)
	assert.False(t, bank.CardPayment)

	_, err = PayerAccountTypeFromURI("https://unknown.example")
	assert.Error(t, err)
}

func TestMaskedReference(t *testing.T) {
	assert.Equal(t, "************2109", MaskedReference("6875056745552109"))
	assert.Equal(t, "123", MaskedReference("123"))
	assert.Equal(t, "1234", MaskedReference("1234"))
}

func TestNewErrorReturn_ValidatesCode(t *testing.T) {
	e, err := NewErrorReturn(ErrorInsufficientFunds, "")
	require.NoError(t, err)
	assert.Equal(t, "Insufficient Funds", e.ClearText())

	_, err = NewErrorReturn(ErrorCode(99), "")
	assert.Error(t, err)

	_, err = NewErrorReturn(ErrorCode(-1), "")
	assert.Error(t, err)
}

func TestPublicKeysEqual(t *testing.T) {
	a, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	b, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	assert.True(t, PublicKeysEqual(&a.PublicKey, &a.PublicKey))
	assert.False(t, PublicKeysEqual(&a.PublicKey, &b.PublicKey))
	assert.False(t, PublicKeysEqual(nil, &a.PublicKey))
}

func TestPayeeRecordAcceptsKey(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	record := &PayeeRecord{
		ID:         "86344",
		CommonName: "Space Shop",
		SignatureParameters: []SignatureParameter{
			{Algorithm: "ES256", PublicKey: &key.PublicKey},
		},
	}
	assert.True(t, record.AcceptsKey(&key.PublicKey))
	assert.False(t, record.AcceptsKey(&other.PublicKey))
}
