package service

import (
	"context"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/internal/metrics"
	"saturn-payment-network/internal/protocol"
	"saturn-payment-network/pkg/apperror"
)

// AcquirerService implements the card-rail settlement side: it accepts
// payee transaction requests built on bank-certified authorizations, opens
// the protected card data and emits signed receipts.
type AcquirerService struct {
	signSvc    ports.SigningService
	cipherSvc  ports.CipherService
	identity   ports.SigningIdentity
	keyring    *ports.Keyring
	registry   ports.PayeeRegistry
	trustRoots *x509.CertPool
	metrics    *metrics.Metrics
	log        zerolog.Logger
	now        func() time.Time
}

// NewAcquirerService creates an acquirer-side service. trustRoots anchors the
// payer banks whose authorization signatures are accepted. The now func is
// injectable for tests; pass nil for the wall clock.
func NewAcquirerService(
	signSvc ports.SigningService,
	cipherSvc ports.CipherService,
	identity ports.SigningIdentity,
	keyring *ports.Keyring,
	registry ports.PayeeRegistry,
	trustRoots *x509.CertPool,
	m *metrics.Metrics,
	log zerolog.Logger,
	now func() time.Time,
) *AcquirerService {
	if now == nil {
		now = time.Now
	}
	return &AcquirerService{
		signSvc:    signSvc,
		cipherSvc:  cipherSvc,
		identity:   identity,
		keyring:    keyring,
		registry:   registry,
		trustRoots: trustRoots,
		metrics:    m,
		log:        log,
		now:        now,
	}
}

// Transact settles a card transaction: verify the chain end to end, open the
// card data, and answer with a signed receipt. Protocol violations abort;
// business declines come back as signed error responses.
func (s *AcquirerService) Transact(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error) {
	request, err := protocol.ParseTransactionRequest(rd, s.signSvc)
	if err != nil {
		return nil, err
	}
	payee := request.PaymentRequest().Payee
	record, err := s.registry.Lookup(payee.ID)
	if err != nil {
		return nil, err
	}
	if !record.AcceptsKey(request.RequestSignature.PublicKey()) {
		return nil, apperror.ErrUntrustedSigner(nil)
	}
	if err := request.VerifyIssuerTrust(s.signSvc, s.trustRoots); err != nil {
		return nil, err
	}
	if !request.AuthorizationResponse.AuthorizationRequest.PayerAccountType.CardPayment {
		return nil, apperror.ErrProtocolMismatch("acquirer only settles card payment methods")
	}
	accountData, err := protocol.DecryptAccountData(
		request.AuthorizationResponse.EncryptedAccountData, s.cipherSvc, s.keyring)
	if err != nil {
		return nil, err
	}
	if err := accountData.CheckAccountTypes(domain.AccountTypeSuperCard); err != nil {
		return nil, err
	}
	now := s.now()
	referenceID := uuid.NewString()
	if now.After(accountData.Expires) {
		wr, err := protocol.EncodeTransactionError(
			&domain.ErrorReturn{Code: domain.ErrorExpiredCredential},
			referenceID, now, s.signSvc, s.identity)
		if err != nil {
			return nil, err
		}
		s.metrics.IncrementOutcome(string(protocol.MsgTransactionRequest), "declined")
		s.log.Info().
			Str("payee_id", payee.ID).
			Str("card", domain.MaskedReference(accountData.AccountID)).
			Msg("transaction declined, card expired")
		return wr.Serialize(), nil
	}

	logData := fmt.Sprintf("Charged %s to card %s",
		request.Amount.DisplayString(request.PaymentRequest().Currency),
		domain.MaskedReference(accountData.AccountID))
	wr, err := protocol.EncodeTransactionResponse(
		request, referenceID, logData, now, s.signSvc, s.identity)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementOutcome(string(protocol.MsgTransactionRequest), "success")
	s.log.Info().
		Str("payee_id", payee.ID).
		Str("reference_id", referenceID).
		Str("card", domain.MaskedReference(accountData.AccountID)).
		Bool("test_mode", request.AuthorizationResponse.AuthorizationRequest.TestMode).
		Msg("transaction settled")
	return wr.Serialize(), nil
}
