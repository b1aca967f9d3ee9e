package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/internal/metrics"
	"saturn-payment-network/internal/protocol"
	"saturn-payment-network/pkg/apperror"
	"saturn-payment-network/pkg/response"
)

// ServiceHandler is the bank's single protocol endpoint: every request
// message arrives on POST /service and is dispatched on its qualifier.
type ServiceHandler struct {
	flows   ports.ProviderFlows
	metrics *metrics.Metrics
}

// NewServiceHandler creates the bank's protocol endpoint handler.
func NewServiceHandler(flows ports.ProviderFlows, m *metrics.Metrics) *ServiceHandler {
	return &ServiceHandler{flows: flows, metrics: m}
}

// Process handles POST /service.
func (h *ServiceHandler) Process(c *gin.Context) {
	rd, err := readEnvelope(c)
	if err != nil {
		h.reject(c, err)
		return
	}
	qualifier, err := protocol.PeekQualifier(rd)
	if err != nil {
		h.reject(c, err)
		return
	}

	var data []byte
	switch qualifier {
	case protocol.MsgAuthorizationRequest:
		data, err = h.flows.Authorize(c.Request.Context(), rd)
	case protocol.MsgReserveFundsRequest, protocol.MsgDirectDebitRequest:
		data, err = h.flows.ReserveOrDebit(c.Request.Context(), rd)
	case protocol.MsgFinalizeRequest:
		data, err = h.flows.Finalize(c.Request.Context(), rd)
	default:
		err = apperror.ErrProtocolMismatch(fmt.Sprintf("unexpected qualifier %q", qualifier))
	}
	if err != nil {
		h.reject(c, err)
		return
	}
	response.Envelope(c, data)
}

func (h *ServiceHandler) reject(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		h.metrics.IncrementRejection(appErr.Code)
	}
	response.Error(c, err)
}

// readEnvelope reads and parses the request body as one protocol envelope.
func readEnvelope(c *gin.Context) (*jsonutil.ObjectReader, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apperror.ErrSchemaViolation("cannot read request body")
	}
	return jsonutil.Parse(body)
}
