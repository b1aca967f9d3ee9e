package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"saturn-payment-network/internal/adapter/http/middleware"
	"saturn-payment-network/internal/authority"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/metrics"
)

// RouterDeps holds all dependencies needed to set up routes. A server is
// either a bank (ProviderFlows set) or an acquirer (AcquirerFlows set);
// both publish authority objects.
type RouterDeps struct {
	ProviderFlows     ports.ProviderFlows // nil on the acquirer
	AcquirerFlows     ports.AcquirerFlows // nil on the bank
	ProviderAuthority *authority.Cache
	PayeeAuthorities  *authority.Registry // nil when no payees are published
	Metrics           *metrics.Metrics
	HealthCheckers    []ports.HealthChecker
	Logger            zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authorityHandler := NewAuthorityHandler(deps.ProviderAuthority, deps.PayeeAuthorities)
	r.GET("/authority", authorityHandler.GetProviderAuthority)
	if deps.PayeeAuthorities != nil {
		r.GET("/payees/:id", authorityHandler.GetPayeeAuthority)
	}

	json := middleware.RequireJSON()
	if deps.ProviderFlows != nil {
		serviceHandler := NewServiceHandler(deps.ProviderFlows, deps.Metrics)
		r.POST("/service", json, serviceHandler.Process)
	}
	if deps.AcquirerFlows != nil {
		transactHandler := NewTransactHandler(deps.AcquirerFlows, deps.Metrics)
		r.POST("/authorize", json, transactHandler.Transact)
	}

	return r
}
