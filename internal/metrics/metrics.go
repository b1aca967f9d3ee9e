// Package metrics provides observability for the payment message flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts message processing outcomes and authority renewals.
type Metrics struct {
	// Messages processed by qualifier and outcome
	MessageOutcome *prometheus.CounterVec

	// Rejections by error code (PROTO_001, SIG_001, ...)
	Rejections *prometheus.CounterVec

	// Authority object reissues by kind ("provider", "payee")
	AuthorityRenewals *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		MessageOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "saturn_messages_total",
			Help: "Total messages processed by qualifier and outcome",
		}, []string{"qualifier", "outcome"}), // outcome: "success", "declined", "rejected"

		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "saturn_rejections_total",
			Help: "Total protocol-level rejections by error code",
		}, []string{"code"}),

		AuthorityRenewals: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "saturn_authority_renewals_total",
			Help: "Total authority object reissues by kind",
		}, []string{"kind"}),
	}
}

// IncrementOutcome records a processed message.
func (m *Metrics) IncrementOutcome(qualifier, outcome string) {
	if m != nil {
		m.MessageOutcome.WithLabelValues(qualifier, outcome).Inc()
	}
}

// IncrementRejection records a protocol-level rejection.
func (m *Metrics) IncrementRejection(code string) {
	if m != nil {
		m.Rejections.WithLabelValues(code).Inc()
	}
}

// IncrementRenewal records an authority reissue.
func (m *Metrics) IncrementRenewal(kind string) {
	if m != nil {
		m.AuthorityRenewals.WithLabelValues(kind).Inc()
	}
}
