package service

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"saturn-payment-network/internal/adapter/storage/memory"
	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/core/ports/mocks"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/internal/protocol"
	"saturn-payment-network/pkg/apperror"
)

var fixedNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func mustParse(t *testing.T, data []byte) *jsonutil.ObjectReader {
	t.Helper()
	rd, err := jsonutil.Parse(data)
	require.NoError(t, err)
	return rd
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func testCurrency(t *testing.T) domain.Currency {
	t.Helper()
	c, err := domain.CurrencyFromCode("USD")
	require.NoError(t, err)
	return c
}

// providerFixture wires a bank-side service against an in-memory ledger, a
// mocked payee registry and real crypto services.
type providerFixture struct {
	svc           *ProviderService
	signSvc       ports.SigningService
	cipherSvc     ports.CipherService
	payeeIdentity ports.SigningIdentity
	bankKey       *ecdsa.PrivateKey
	acquirerKey   *ecdsa.PrivateKey
	ledger        *memory.AccountLedger
}

func newProviderFixture(t *testing.T) *providerFixture {
	t.Helper()
	signSvc := NewJOSESigningService()
	cipherSvc := NewJOSECipherService()

	chain, leafKey, _ := newCertChain(t)
	bankIdentity := ports.SigningIdentity{
		Algorithm:       "ES256",
		PrivateKey:      leafKey,
		CertificatePath: chain,
	}
	bankKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	acquirerKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	payeeKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	payeeIdentity := ports.SigningIdentity{Algorithm: "ES256", PrivateKey: payeeKey}

	ctrl := gomock.NewController(t)
	registry := mocks.NewMockPayeeRegistry(ctrl)
	registry.EXPECT().Lookup("86344").Return(&domain.PayeeRecord{
		CommonName: "Space Shop",
		ID:         "86344",
		SignatureParameters: []domain.SignatureParameter{
			{Algorithm: "ES256", PublicKey: &payeeKey.PublicKey},
		},
	}, nil).AnyTimes()

	ledger := memory.NewAccountLedger([]domain.Account{
		{
			ID:                "6875056745552109",
			Type:              domain.AccountTypeSuperCard,
			Holder:            "Luke Skywalker",
			SecurityCode:      "943",
			CredentialExpires: fixedNow.AddDate(2, 0, 0),
			Balance:           domain.Amount(500000),
		},
		{
			ID:                "8645-7800239403",
			Type:              domain.AccountTypeSEPA,
			CredentialExpires: fixedNow.AddDate(2, 0, 0),
			Balance:           domain.Amount(500000),
		},
		{
			ID:                "1111-0000000001",
			Type:              domain.AccountTypeSEPA,
			CredentialExpires: fixedNow.AddDate(2, 0, 0),
			Balance:           domain.Amount(1000),
		},
		{
			ID:                "2222-0000000002",
			Type:              domain.AccountTypeSEPA,
			CredentialExpires: fixedNow.AddDate(2, 0, 0),
			Balance:           domain.Amount(500000),
			Blocked:           true,
		},
	})

	svc := NewProviderService(
		signSvc, cipherSvc, bankIdentity,
		&ports.Keyring{Keys: []crypto.PrivateKey{bankKey}},
		ledger, registry, &acquirerKey.PublicKey,
		nil, zerolog.Nop(),
		func() time.Time { return fixedNow },
	)
	return &providerFixture{
		svc:           svc,
		signSvc:       signSvc,
		cipherSvc:     cipherSvc,
		payeeIdentity: payeeIdentity,
		bankKey:       bankKey,
		acquirerKey:   acquirerKey,
		ledger:        ledger,
	}
}

func (f *providerFixture) paymentRequest(t *testing.T, identity ports.SigningIdentity, amount domain.Amount) []byte {
	t.Helper()
	wr, err := protocol.EncodePaymentRequest(
		domain.Payee{CommonName: "Space Shop", ID: "86344"},
		amount, testCurrency(t), "#1000006",
		fixedNow, fixedNow.Add(30*time.Minute),
		f.signSvc, identity)
	require.NoError(t, err)
	return wr.Serialize()
}

func (f *providerFixture) authorizationRequest(
	t *testing.T, identity ports.SigningIdentity, method, accountID string, amount domain.Amount,
) []byte {
	t.Helper()
	prBytes := f.paymentRequest(t, identity, amount)
	pr, err := protocol.ParsePaymentRequest(mustParse(t, prBytes), f.signSvc)
	require.NoError(t, err)

	authData := protocol.EncodeAuthorizationData(pr.RequestHash(), method, accountID, fixedNow)
	encrypted, err := f.cipherSvc.Encrypt(authData.Serialize(), &f.bankKey.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	require.NoError(t, err)

	wr, err := protocol.EncodeAuthorizationRequest(protocol.AuthorizationRequestSpec{
		PayeeAuthorityURL:      "https://bank.example/payees/86344",
		PaymentMethod:          method,
		PaymentRequest:         prBytes,
		EncryptedAuthorization: encrypted,
		ReferenceID:            "#1000006",
		ClientIPAddress:        "203.0.113.10",
	}, fixedNow, f.signSvc, identity)
	require.NoError(t, err)
	return wr.Serialize()
}

func (f *providerFixture) settlementRequest(
	t *testing.T, accountID string, amount domain.Amount, directDebit bool,
) []byte {
	t.Helper()
	prBytes := f.paymentRequest(t, f.payeeIdentity, amount)
	pr, err := protocol.ParsePaymentRequest(mustParse(t, prBytes), f.signSvc)
	require.NoError(t, err)

	authData := protocol.EncodeAuthorizationData(
		pr.RequestHash(), "https://bankdirect.net", accountID, fixedNow)
	encrypted, err := f.cipherSvc.Encrypt(authData.Serialize(), &f.bankKey.PublicKey,
		protocol.DataEncryptionA128CBCHS256, protocol.KeyEncryptionECDHES)
	require.NoError(t, err)

	wr, err := protocol.EncodeReserveOrDebitRequest(protocol.ReserveOrDebitRequestSpec{
		DirectDebit:            directDebit,
		PaymentMethod:          "https://bankdirect.net",
		EncryptedAuthorization: encrypted,
		ClientIPAddress:        "203.0.113.10",
		PaymentRequest:         prBytes,
		Expires:                fixedNow.Add(time.Hour),
		ReferenceID:            "#1000006",
	}, fixedNow, f.signSvc, f.payeeIdentity)
	require.NoError(t, err)
	return wr.Serialize()
}

func TestProviderService_Authorize_ApprovesCardPayment(t *testing.T) {
	f := newProviderFixture(t)
	data := f.authorizationRequest(t, f.payeeIdentity,
		"https://supercard.com", "6875056745552109", domain.Amount(32000))

	out, err := f.svc.Authorize(context.Background(), mustParse(t, data))
	require.NoError(t, err)

	response, err := protocol.ParseAuthorizationResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	require.True(t, response.Success())
	assert.Equal(t, "************2109", response.AccountReference)
	assert.NotEmpty(t, response.ReferenceID)

	// The bank re-encrypts the full card data for the acquirer only.
	accountData, err := protocol.DecryptAccountData(response.EncryptedAccountData,
		f.cipherSvc, &ports.Keyring{Keys: []crypto.PrivateKey{f.acquirerKey}})
	require.NoError(t, err)
	assert.Equal(t, "6875056745552109", accountData.AccountID)
	assert.Equal(t, "Luke Skywalker", accountData.CardHolder)
	assert.Equal(t, "943", accountData.SecurityCode)
	assert.Len(t, accountData.Nonce, 32)
}

func TestProviderService_Authorize_DeclinesUnknownAccount(t *testing.T) {
	f := newProviderFixture(t)
	data := f.authorizationRequest(t, f.payeeIdentity,
		"https://supercard.com", "0000000000000000", domain.Amount(32000))

	out, err := f.svc.Authorize(context.Background(), mustParse(t, data))
	require.NoError(t, err)

	response, err := protocol.ParseAuthorizationResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	assert.False(t, response.Success())
	assert.Equal(t, domain.ErrorNotAuthorized, response.ErrorReturn.Code)
	assert.Nil(t, response.AuthorizationRequest)
}

func TestProviderService_Authorize_DeclinesRailMismatch(t *testing.T) {
	f := newProviderFixture(t)
	// A card-rail request naming an account-rail credential must not pass.
	data := f.authorizationRequest(t, f.payeeIdentity,
		"https://supercard.com", "8645-7800239403", domain.Amount(32000))

	out, err := f.svc.Authorize(context.Background(), mustParse(t, data))
	require.NoError(t, err)

	response, err := protocol.ParseAuthorizationResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	assert.False(t, response.Success())
	assert.Equal(t, domain.ErrorNotAuthorized, response.ErrorReturn.Code)
}

func TestProviderService_Authorize_RejectsUnregisteredPayeeKey(t *testing.T) {
	f := newProviderFixture(t)
	strangerKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	stranger := ports.SigningIdentity{Algorithm: "ES256", PrivateKey: strangerKey}

	// Self-consistent chain, but the signer is not in the payee's record.
	data := f.authorizationRequest(t, stranger,
		"https://supercard.com", "6875056745552109", domain.Amount(32000))

	_, err = f.svc.Authorize(context.Background(), mustParse(t, data))
	require.Error(t, err)
	assert.Equal(t, "SIG_002", appCode(t, err))
}

func TestProviderService_DirectDebit_DebitsBalance(t *testing.T) {
	f := newProviderFixture(t)
	data := f.settlementRequest(t, "8645-7800239403", domain.Amount(32000), true)

	out, err := f.svc.ReserveOrDebit(context.Background(), mustParse(t, data))
	require.NoError(t, err)

	response, err := protocol.ParseReserveOrDebitResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	require.True(t, response.Success())
	assert.True(t, response.DirectDebit)
	assert.Equal(t, "***********9403", response.AccountReference)

	account, err := f.ledger.Lookup("8645-7800239403")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(468000), account.Balance)
}

func TestProviderService_DirectDebit_InsufficientFunds(t *testing.T) {
	f := newProviderFixture(t)
	data := f.settlementRequest(t, "1111-0000000001", domain.Amount(32000), true)

	out, err := f.svc.ReserveOrDebit(context.Background(), mustParse(t, data))
	require.NoError(t, err)

	response, err := protocol.ParseReserveOrDebitResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	assert.False(t, response.Success())
	assert.Equal(t, domain.ErrorInsufficientFunds, response.ErrorReturn.Code)

	account, err := f.ledger.Lookup("1111-0000000001")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(1000), account.Balance, "declined debit must not move funds")
}

func TestProviderService_DirectDebit_BlockedAccount(t *testing.T) {
	f := newProviderFixture(t)
	data := f.settlementRequest(t, "2222-0000000002", domain.Amount(32000), true)

	out, err := f.svc.ReserveOrDebit(context.Background(), mustParse(t, data))
	require.NoError(t, err)

	response, err := protocol.ParseReserveOrDebitResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	assert.False(t, response.Success())
	assert.Equal(t, domain.ErrorBlockedAccount, response.ErrorReturn.Code)
}

func TestProviderService_ReserveThenFinalize(t *testing.T) {
	f := newProviderFixture(t)
	data := f.settlementRequest(t, "8645-7800239403", domain.Amount(32000), false)

	out, err := f.svc.ReserveOrDebit(context.Background(), mustParse(t, data))
	require.NoError(t, err)
	reservation, err := protocol.ParseReserveOrDebitResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	require.True(t, reservation.Success())
	assert.False(t, reservation.DirectDebit)

	// The hold removes the full amount from the available balance.
	account, err := f.ledger.Lookup("8645-7800239403")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(468000), account.Balance)

	finalizeWr, err := protocol.EncodeFinalizeRequest(
		reservation, domain.Amount(30000), "#3000001", fixedNow, f.signSvc, f.payeeIdentity)
	require.NoError(t, err)
	out, err = f.svc.Finalize(context.Background(), mustParse(t, finalizeWr.Serialize()))
	require.NoError(t, err)

	receipt, err := protocol.ParseFinalizeResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	require.True(t, receipt.Success())

	// Finalizing below the hold releases the remainder.
	account, err = f.ledger.Lookup("8645-7800239403")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(470000), account.Balance)
}

func TestProviderService_Finalize_DeclinesReplay(t *testing.T) {
	f := newProviderFixture(t)
	data := f.settlementRequest(t, "8645-7800239403", domain.Amount(32000), false)

	out, err := f.svc.ReserveOrDebit(context.Background(), mustParse(t, data))
	require.NoError(t, err)
	reservation, err := protocol.ParseReserveOrDebitResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	require.True(t, reservation.Success())

	finalizeWr, err := protocol.EncodeFinalizeRequest(
		reservation, domain.Amount(32000), "#3000002", fixedNow, f.signSvc, f.payeeIdentity)
	require.NoError(t, err)
	out, err = f.svc.Finalize(context.Background(), mustParse(t, finalizeWr.Serialize()))
	require.NoError(t, err)
	first, err := protocol.ParseFinalizeResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	require.True(t, first.Success())

	// A second finalize against the same hold is a business decline, not an
	// aborted request.
	replayWr, err := protocol.EncodeFinalizeRequest(
		reservation, domain.Amount(1000), "#3000003", fixedNow, f.signSvc, f.payeeIdentity)
	require.NoError(t, err)
	out, err = f.svc.Finalize(context.Background(), mustParse(t, replayWr.Serialize()))
	require.NoError(t, err)
	replay, err := protocol.ParseFinalizeResponse(mustParse(t, out), f.signSvc)
	require.NoError(t, err)
	assert.False(t, replay.Success())
	assert.Equal(t, domain.ErrorNotAuthorized, replay.ErrorReturn.Code)
}
