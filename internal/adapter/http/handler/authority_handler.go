package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"saturn-payment-network/internal/authority"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/pkg/apperror"
	"saturn-payment-network/pkg/response"
)

// AuthorityHandler serves the published authority objects.
type AuthorityHandler struct {
	provider *authority.Cache
	payees   *authority.Registry // nil when the server publishes no payees
}

// NewAuthorityHandler creates an authority handler.
func NewAuthorityHandler(provider *authority.Cache, payees *authority.Registry) *AuthorityHandler {
	return &AuthorityHandler{provider: provider, payees: payees}
}

// GetProviderAuthority handles GET /authority.
func (h *AuthorityHandler) GetProviderAuthority(c *gin.Context) {
	data, err := h.provider.Get()
	if err != nil {
		response.Error(c, apperror.ErrSigningServiceUnavailable(err))
		return
	}
	response.Envelope(c, data)
}

// GetPayeeAuthority handles GET /payees/:id.
func (h *AuthorityHandler) GetPayeeAuthority(c *gin.Context) {
	id := c.Param("id")
	data, known, err := h.payees.Get(id)
	if !known {
		response.Error(c, apperror.ErrUnknownPayee(id))
		return
	}
	if err != nil {
		response.Error(c, apperror.ErrSigningServiceUnavailable(err))
		return
	}
	response.Envelope(c, data)
}

// HealthCheck handles GET /health.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
