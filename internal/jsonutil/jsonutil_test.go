package jsonutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/pkg/apperror"
)

func TestObjectWriter_RoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	wr := NewObjectWriter().
		SetString("name", "value").
		SetInt("count", 42).
		SetBoolean("flag", true).
		SetDateTime("timeStamp", ts).
		SetBinary("blob", []byte{0xde, 0xad, 0xbe, 0xef})

	rd, err := Parse(wr.Serialize())
	require.NoError(t, err)

	name, err := rd.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "value", name)

	count, err := rd.GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 42, count)

	flag, err := rd.GetBooleanConditional("flag")
	require.NoError(t, err)
	assert.True(t, flag)

	got, err := rd.GetDateTime("timeStamp")
	require.NoError(t, err)
	assert.True(t, got.Equal(ts))

	blob, err := rd.GetBinary("blob")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, blob)

	assert.NoError(t, rd.CheckForUnread())
}

func TestParse_RejectsDuplicateFields(t *testing.T) {
	_, err := Parse([]byte(`{"a":1,"a":2}`))
	assert.Error(t, err)
}

func TestParse_RejectsNonObjectTopLevel(t *testing.T) {
	_, err := Parse([]byte(`[1,2,3]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"a":1} trailing`))
	assert.Error(t, err)
}

func TestCheckForUnread_FlagsLeftoverFields(t *testing.T) {
	rd, err := Parse([]byte(`{"known":"x","extra":"y"}`))
	require.NoError(t, err)

	_, err = rd.GetString("known")
	require.NoError(t, err)

	err = rd.CheckForUnread()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")
}

func TestCheckForUnread_DescendsIntoNestedObjects(t *testing.T) {
	rd, err := Parse([]byte(`{"outer":{"used":"a","unused":"b"}}`))
	require.NoError(t, err)

	sub, err := rd.GetObject("outer")
	require.NoError(t, err)
	_, err = sub.GetString("used")
	require.NoError(t, err)

	assert.Error(t, rd.CheckForUnread())
}

func TestNormalized_PreservesDeclarationOrderAndNumberForm(t *testing.T) {
	raw := []byte(`{"z":"last","a":"first","n":1.50,"sub":{"y":2,"x":1}}`)
	rd, err := Parse(raw)
	require.NoError(t, err)

	// Re-serialization must reproduce byte-exact canonical form: same field
	// order, same number literals.
	assert.Equal(t, `{"z":"last","a":"first","n":1.50,"sub":{"y":2,"x":1}}`, string(rd.Normalized()))
}

func TestNormalizedExcept_SkipsOnlyNamedField(t *testing.T) {
	rd, err := Parse([]byte(`{"a":"1","signature":{"value":"x"},"b":"2"}`))
	require.NoError(t, err)

	assert.Equal(t, `{"a":"1","b":"2"}`, string(rd.NormalizedExcept("signature")))
}

func TestPeekString_DoesNotConsume(t *testing.T) {
	rd, err := Parse([]byte(`{"@qualifier":"AuthorizationRequest"}`))
	require.NoError(t, err)

	q, err := rd.PeekString("@qualifier")
	require.NoError(t, err)
	assert.Equal(t, "AuthorizationRequest", q)

	// Still unread: the real decode path must consume it.
	assert.Error(t, rd.CheckForUnread())
}

func TestScanAll_MarksNestedFieldsRead(t *testing.T) {
	rd, err := Parse([]byte(`{"outer":{"inner":{"deep":"v"}},"arr":[{"e":"1"}]}`))
	require.NoError(t, err)

	rd.ScanAll()
	assert.NoError(t, rd.CheckForUnread())
}

func TestGetAmount_EnforcesCurrencyScale(t *testing.T) {
	usd, err := domain.CurrencyFromCode("USD")
	require.NoError(t, err)

	rd, err := Parse([]byte(`{"amount":"10.00"}`))
	require.NoError(t, err)
	amount, err := rd.GetAmount("amount", usd)
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(1000), amount)

	rd, err = Parse([]byte(`{"amount":"10.0"}`))
	require.NoError(t, err)
	_, err = rd.GetAmount("amount", usd)
	assert.Error(t, err, "one decimal is not enough for USD")
}

func TestPublicKey_RoundTripEC(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	wr, err := EncodePublicKey(&priv.PublicKey)
	require.NoError(t, err)

	rd, err := Parse(NewObjectWriter().SetObject("publicKey", wr).Serialize())
	require.NoError(t, err)
	key, err := rd.GetPublicKey("publicKey")
	require.NoError(t, err)

	parsed, ok := key.(*ecdsa.PublicKey)
	require.True(t, ok)
	assert.True(t, priv.PublicKey.Equal(parsed))
}

func TestPublicKey_RejectsOffCurvePoint(t *testing.T) {
	// (1, 1) does not satisfy the P-256 curve equation.
	wr := NewObjectWriter().
		SetString("kty", "EC").
		SetString("crv", "P-256").
		SetBinary("x", []byte{1}).
		SetBinary("y", []byte{1})

	rd, err := Parse(NewObjectWriter().SetObject("publicKey", wr).Serialize())
	require.NoError(t, err)
	_, err = rd.GetPublicKey("publicKey")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PROTO_002", appErr.Code)
}

func TestPublicKey_RoundTripRSA(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	wr, err := EncodePublicKey(&priv.PublicKey)
	require.NoError(t, err)

	rd, err := Parse(NewObjectWriter().SetObject("publicKey", wr).Serialize())
	require.NoError(t, err)
	key, err := rd.GetPublicKey("publicKey")
	require.NoError(t, err)

	parsed, ok := key.(*rsa.PublicKey)
	require.True(t, ok)
	assert.True(t, priv.PublicKey.Equal(parsed))
}
