package protocol

import (
	"crypto/sha256"
	"fmt"

	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// RequestHashAlgorithm is the only hash algorithm request-hash blocks may
// declare (JOSE-style identifier for SHA-256).
const RequestHashAlgorithm = "S256"

// RequestHash computes the hash of a message over its normalized bytes.
func RequestHash(rd *jsonutil.ObjectReader) []byte {
	sum := sha256.Sum256(rd.Normalized())
	return sum[:]
}

// EncodeRequestHash writes a request-hash block.
func EncodeRequestHash(hash []byte) *jsonutil.ObjectWriter {
	return jsonutil.NewObjectWriter().
		SetString(algorithmJSON, RequestHashAlgorithm).
		SetBinary(valueJSON, hash)
}

// ParseRequestHash reads the request-hash block nested under requestHash.
func ParseRequestHash(rd *jsonutil.ObjectReader) ([]byte, error) {
	sub, err := rd.GetObject(requestHashJSON)
	if err != nil {
		return nil, err
	}
	algorithm, err := sub.GetString(algorithmJSON)
	if err != nil {
		return nil, err
	}
	if algorithm != RequestHashAlgorithm {
		return nil, apperror.ErrSchemaViolation(
			fmt.Sprintf("expected hash algorithm %q, got %q", RequestHashAlgorithm, algorithm))
	}
	return sub.GetBinary(valueJSON)
}
