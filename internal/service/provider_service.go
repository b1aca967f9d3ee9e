package service

import (
	"context"
	"crypto"
	"crypto/rand"
	"io"
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

// ProviderService implements the payer-bank side of the protocol: it opens
// payer authorizations, answers the card-rail authorization flow and runs the
// account-rail settle/reserve/finalize flows against the ledger.
type ProviderService struct {
	signSvc     ports.SigningService
	cipherSvc   ports.CipherService
	identity    ports.SigningIdentity
	keyring     *ports.Keyring
	ledger      ports.AccountLedger
	registry    ports.PayeeRegistry
	acquirerKey crypto.PublicKey
	metrics     *metrics.Metrics
	log         zerolog.Logger
	now         func() time.Time
}

// NewProviderService creates a bank-side service. acquirerKey is the key
// account data is re-encrypted under for the card rail. The now func is
// injectable for tests; pass nil for the wall clock.
func NewProviderService(
	signSvc ports.SigningService,
	cipherSvc ports.CipherService,
	identity ports.SigningIdentity,
	keyring *ports.Keyring,
	ledger ports.AccountLedger,
	registry ports.PayeeRegistry,
	acquirerKey crypto.PublicKey,
	m *metrics.Metrics,
	log zerolog.Logger,
	now func() time.Time,
) *ProviderService {
	if now == nil {
		now = time.Now
	}
	return &ProviderService{
		signSvc:     signSvc,
		cipherSvc:   cipherSvc,
		identity:    identity,
		keyring:     keyring,
		ledger:      ledger,
		registry:    registry,
		acquirerKey: acquirerKey,
		metrics:     m,
		log:         log,
		now:         now,
	}
}

// checkAccount runs the business checks shared by every flow. A non-nil
// ErrorReturn is a decline, not an error.
func (s *ProviderService) checkAccount(
	authData *protocol.AuthorizationData,
	paymentRequest *protocol.PaymentRequest,
	cardPayment bool,
) (*domain.Account, *domain.ErrorReturn) {
	now := s.now()
	if now.After(paymentRequest.Expires) {
		return nil, &domain.ErrorReturn{Code: domain.ErrorExpiredCredential}
	}
	account, err := s.ledger.Lookup(authData.AccountID)
	if err != nil {
		return nil, &domain.ErrorReturn{Code: domain.ErrorNotAuthorized}
	}
	if account.Blocked {
		return nil, &domain.ErrorReturn{Code: domain.ErrorBlockedAccount}
	}
	if now.After(account.CredentialExpires) {
		return nil, &domain.ErrorReturn{Code: domain.ErrorExpiredCredential}
	}
	if cardPayment != (account.Type == domain.AccountTypeSuperCard) {
		return nil, &domain.ErrorReturn{Code: domain.ErrorNotAuthorized}
	}
	return account, nil
}

// verifyPayee checks the request signer against the payee registry.
func (s *ProviderService) verifyPayee(payee domain.Payee, signerKey crypto.PublicKey) error {
	record, err := s.registry.Lookup(payee.ID)
	if err != nil {
		return err
	}
	if !record.AcceptsKey(signerKey) {
		return apperror.ErrUntrustedSigner(nil)
	}
	return nil
}

// Authorize handles the card rail: it validates the chain, opens the payer's
// consent, and answers with account data re-encrypted for the acquirer.
func (s *ProviderService) Authorize(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error) {
	request, err := protocol.ParseAuthorizationRequest(rd, s.signSvc)
	if err != nil {
		return nil, err
	}
	if err := s.verifyPayee(request.PaymentRequest.Payee, request.Signature.PublicKey()); err != nil {
		return nil, err
	}
	authData, err := request.DecryptAuthorization(s.cipherSvc, s.keyring)
	if err != nil {
		return nil, err
	}
	now := s.now()
	referenceID := uuid.NewString()
	account, decline := s.checkAccount(authData, request.PaymentRequest, request.PayerAccountType.CardPayment)
	if decline != nil {
		return s.declineAuthorization(request, decline, referenceID, now)
	}

	nonce := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, apperror.InternalError(err)
	}
	accountData, err := protocol.EncodeAccountData(&protocol.AccountData{
		Context:      account.Type,
		AccountID:    account.ID,
		CardHolder:   account.Holder,
		Expires:      account.CredentialExpires,
		SecurityCode: account.SecurityCode,
		Nonce:        nonce,
	})
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	keyAlgorithm, err := protocol.KeyEncryptionAlgorithmFor(s.acquirerKey)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	encrypted, err := s.cipherSvc.Encrypt(
		accountData.Serialize(), s.acquirerKey, protocol.DataEncryptionA128CBCHS256, keyAlgorithm)
	if err != nil {
		return nil, err
	}

	wr, err := protocol.EncodeAuthorizationResponse(
		request,
		domain.MaskedReference(account.ID),
		encrypted,
		referenceID,
		"", // logData
		now,
		s.signSvc,
		s.identity,
	)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementOutcome(string(protocol.MsgAuthorizationRequest), "success")
	s.log.Info().
		Str("payee_id", request.PaymentRequest.Payee.ID).
		Str("reference_id", referenceID).
		Bool("test_mode", request.TestMode).
		Msg("authorization approved")
	return wr.Serialize(), nil
}

func (s *ProviderService) declineAuthorization(
	request *protocol.AuthorizationRequest,
	decline *domain.ErrorReturn,
	referenceID string,
	now time.Time,
) ([]byte, error) {
	wr, err := protocol.EncodeAuthorizationError(decline, referenceID, now, s.signSvc, s.identity)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementOutcome(string(protocol.MsgAuthorizationRequest), "declined")
	s.log.Info().
		Str("payee_id", request.PaymentRequest.Payee.ID).
		Str("reason", decline.ClearText()).
		Msg("authorization declined")
	return wr.Serialize(), nil
}

// ReserveOrDebit handles the account rails: an immediate debit or a
// two-phase hold, per the request's qualifier.
func (s *ProviderService) ReserveOrDebit(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error) {
	request, err := protocol.ParseReserveOrDebitRequest(rd, s.signSvc)
	if err != nil {
		return nil, err
	}
	if err := s.verifyPayee(request.PaymentRequest.Payee, request.Signature.PublicKey()); err != nil {
		return nil, err
	}
	authData, err := request.DecryptAuthorization(s.cipherSvc, s.keyring)
	if err != nil {
		return nil, err
	}
	now := s.now()
	referenceID := uuid.NewString()
	qualifier := protocol.MsgReserveFundsRequest
	if request.DirectDebit {
		qualifier = protocol.MsgDirectDebitRequest
	}

	account, decline := s.checkAccount(authData, request.PaymentRequest, request.PayerAccountType.CardPayment)
	if decline == nil {
		if request.DirectDebit {
			decline, err = s.ledger.Debit(account.ID, request.PaymentRequest.Amount)
		} else {
			// The response referenceId doubles as the reservation handle a
			// later finalize resolves against.
			decline, err = s.ledger.Reserve(referenceID, account.ID, request.PaymentRequest.Amount, request.Expires)
		}
		if err != nil {
			return nil, apperror.InternalError(err)
		}
	}
	if decline != nil {
		wr, err := protocol.EncodeReserveOrDebitError(
			request.DirectDebit, decline, referenceID, now, s.signSvc, s.identity)
		if err != nil {
			return nil, err
		}
		s.metrics.IncrementOutcome(string(qualifier), "declined")
		s.log.Info().
			Str("payee_id", request.PaymentRequest.Payee.ID).
			Str("reason", decline.ClearText()).
			Msg("settlement declined")
		return wr.Serialize(), nil
	}

	wr, err := protocol.EncodeReserveOrDebitResponse(
		request, domain.MaskedReference(account.ID), referenceID, now, s.signSvc, s.identity)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementOutcome(string(qualifier), "success")
	s.log.Info().
		Str("payee_id", request.PaymentRequest.Payee.ID).
		Str("reference_id", referenceID).
		Bool("direct_debit", request.DirectDebit).
		Msg("settlement approved")
	return wr.Serialize(), nil
}

// Finalize converts an earlier reservation into an actual transfer.
func (s *ProviderService) Finalize(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error) {
	request, err := protocol.ParseFinalizeRequest(rd, s.signSvc)
	if err != nil {
		return nil, err
	}
	now := s.now()
	referenceID := uuid.NewString()

	decline, err := s.ledger.Finalize(request.ProviderAuthorization.ReferenceID, request.Amount, now)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if decline != nil {
		wr, err := protocol.EncodeFinalizeError(decline, referenceID, now, s.signSvc, s.identity)
		if err != nil {
			return nil, err
		}
		s.metrics.IncrementOutcome(string(protocol.MsgFinalizeRequest), "declined")
		s.log.Info().
			Str("reservation_id", request.ProviderAuthorization.ReferenceID).
			Str("reason", decline.ClearText()).
			Msg("finalize declined")
		return wr.Serialize(), nil
	}

	wr, err := protocol.EncodeFinalizeResponse(request, referenceID, now, s.signSvc, s.identity)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementOutcome(string(protocol.MsgFinalizeRequest), "success")
	s.log.Info().
		Str("reservation_id", request.ProviderAuthorization.ReferenceID).
		Str("reference_id", referenceID).
		Msg("finalize approved")
	return wr.Serialize(), nil
}
