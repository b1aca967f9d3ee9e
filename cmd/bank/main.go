package main

import (
	"context"
	"crypto"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"saturn-payment-network/config"
	"saturn-payment-network/internal/adapter/http/handler"
	"saturn-payment-network/internal/adapter/storage/file"
	"saturn-payment-network/internal/adapter/storage/memory"
	"saturn-payment-network/internal/authority"
	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/metrics"
	"saturn-payment-network/internal/protocol"
	"saturn-payment-network/internal/service"
	"saturn-payment-network/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Int("port", cfg.Server.Port).
		Str("authority", cfg.Authority.URL).
		Msg("Starting Saturn payer bank")

	// Key material
	identity, err := file.LoadSigningIdentity(cfg.Keys.SigningKey, cfg.Keys.CertificatePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load signing identity")
	}
	ecKey, err := file.LoadPrivateKey(cfg.Keys.EncryptionECKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load EC encryption key")
	}
	keyring := &ports.Keyring{Keys: []crypto.PrivateKey{ecKey}}
	if cfg.Keys.EncryptionRSAKey != "" {
		rsaKey, err := file.LoadPrivateKey(cfg.Keys.EncryptionRSAKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load RSA encryption key")
		}
		keyring.Keys = append(keyring.Keys, rsaKey)
	}
	if cfg.Keys.AcquirerKey == "" {
		log.Fatal().Msg("keys.acquirer_key is required for the card rail")
	}
	acquirerKey, err := file.LoadPublicKey(cfg.Keys.AcquirerKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load acquirer encryption key")
	}

	// Payee database and demo ledger
	payeeDB, err := file.LoadPayeeRegistry(cfg.Payees.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load payee database")
	}
	ledger := memory.NewAccountLedger(demoAccounts(time.Now()))

	// Core services
	m := metrics.New()
	signSvc := service.NewJOSESigningService()
	cipherSvc := service.NewJOSECipherService()
	providerSvc := service.NewProviderService(
		signSvc, cipherSvc, identity, keyring,
		ledger, payeeDB, acquirerKey, m, log, nil)

	// Published authority objects
	var methods []string
	for _, t := range domain.PayerAccountTypes() {
		methods = append(methods, t.TypeURI)
	}
	spec := protocol.ProviderAuthoritySpec{
		AuthorityURL:            cfg.Authority.URL,
		HomePage:                cfg.Authority.HomePage,
		ServiceURL:              cfg.Authority.Service,
		SupportedPaymentMethods: methods,
		SignatureProfiles:       []string{"ES256", "RS256"},
		DataEncryptionAlgorithm: protocol.DataEncryptionA128CBCHS256,
		EncryptionKey:           ecKey.(crypto.Signer).Public(),
	}
	providerCache := authority.NewCache(func(now time.Time) ([]byte, error) {
		wr, err := protocol.EncodeProviderAuthority(spec, now, cfg.Authority.Lifetime, signSvc, identity)
		if err != nil {
			return nil, err
		}
		m.IncrementRenewal("provider")
		return wr.Serialize(), nil
	}, cfg.Authority.Lifetime, nil)

	payeeBase := strings.TrimSuffix(cfg.Authority.URL, "/authority")
	payeeAuthorities := authority.NewRegistry(payeeDB.IDs(), cfg.Authority.Lifetime, nil,
		func(id string) authority.Issuer {
			return func(now time.Time) ([]byte, error) {
				record, err := payeeDB.Lookup(id)
				if err != nil {
					return nil, err
				}
				wr, err := protocol.EncodePayeeAuthority(
					payeeBase+"/payees/"+id, cfg.Authority.URL, record,
					now, cfg.Authority.Lifetime, signSvc, identity)
				if err != nil {
					return nil, err
				}
				m.IncrementRenewal("payee")
				return wr.Serialize(), nil
			}
		})

	// Background refresh keeps the provider authority fresh without traffic
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go providerCache.Run(refreshCtx)

	// Setup Gin router with all routes
	router := handler.SetupRouter(handler.RouterDeps{
		ProviderFlows:     providerSvc,
		ProviderAuthority: providerCache,
		PayeeAuthorities:  payeeAuthorities,
		Metrics:           m,
		Logger:            log,
	})

	// HTTP Server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stopRefresh()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// demoAccounts seeds the in-memory ledger with one account per supported
// payment method. Real deployments replace this with a bank core connection.
func demoAccounts(now time.Time) []domain.Account {
	credentialExpiry := now.AddDate(2, 0, 0)
	return []domain.Account{
		{
			ID:                "6875056745552109",
			Type:              domain.AccountTypeSuperCard,
			Holder:            "Luke Skywalker",
			SecurityCode:      "943",
			CredentialExpires: credentialExpiry,
			Balance:           domain.Amount(500000),
		},
		{
			ID:                "8645-7800239403",
			Type:              domain.AccountTypeSEPA,
			Holder:            "Luke Skywalker",
			CredentialExpires: credentialExpiry,
			Balance:           domain.Amount(500000),
		},
		{
			ID:                "640-5040",
			Type:              domain.AccountTypeBankGiro,
			Holder:            "Luke Skywalker",
			CredentialExpires: credentialExpiry,
			Balance:           domain.Amount(500000),
		},
	}
}
