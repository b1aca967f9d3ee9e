package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/metrics"
	"saturn-payment-network/pkg/apperror"
	"saturn-payment-network/pkg/response"
)

// TransactHandler is the acquirer's settlement endpoint.
type TransactHandler struct {
	flows   ports.AcquirerFlows
	metrics *metrics.Metrics
}

// NewTransactHandler creates the acquirer's settlement handler.
func NewTransactHandler(flows ports.AcquirerFlows, m *metrics.Metrics) *TransactHandler {
	return &TransactHandler{flows: flows, metrics: m}
}

// Transact handles POST /authorize.
func (h *TransactHandler) Transact(c *gin.Context) {
	rd, err := readEnvelope(c)
	if err != nil {
		h.reject(c, err)
		return
	}
	data, err := h.flows.Transact(c.Request.Context(), rd)
	if err != nil {
		h.reject(c, err)
		return
	}
	response.Envelope(c, data)
}

func (h *TransactHandler) reject(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		h.metrics.IncrementRejection(appErr.Code)
	}
	response.Error(c, err)
}
