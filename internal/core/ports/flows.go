package ports

import (
	"context"

	"saturn-payment-network/internal/jsonutil"
)

// ProviderFlows is the payer bank's message-processing surface. Each method
// consumes one decoded envelope and returns the normalized response bytes.
type ProviderFlows interface {
	Authorize(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error)
	ReserveOrDebit(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error)
	Finalize(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error)
}

// AcquirerFlows is the acquirer's message-processing surface.
type AcquirerFlows interface {
	Transact(ctx context.Context, rd *jsonutil.ObjectReader) ([]byte, error)
}
