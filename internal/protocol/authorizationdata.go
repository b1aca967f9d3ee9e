package protocol

import (
	"time"

	"saturn-payment-network/internal/jsonutil"
)

// AuthorizationData is the payer's consent object, carried end to end inside
// the encryptedAuthorization blob. Only the payer's bank ever sees it in the
// clear.
type AuthorizationData struct {
	RequestHash   []byte
	PaymentMethod string
	AccountID     string
	TimeStamp     time.Time
}

// EncodeAuthorizationData writes a consent object for encryption.
func EncodeAuthorizationData(
	requestHash []byte,
	paymentMethod string,
	accountID string,
	now time.Time,
) *jsonutil.ObjectWriter {
	return jsonutil.NewObjectWriter().
		SetObject(requestHashJSON, EncodeRequestHash(requestHash)).
		SetString(paymentMethodJSON, paymentMethod).
		SetString(accountIDJSON, accountID).
		SetDateTime(timeStampJSON, now)
}

// ParseAuthorizationData decodes a decrypted consent object.
func ParseAuthorizationData(rd *jsonutil.ObjectReader) (*AuthorizationData, error) {
	a := &AuthorizationData{}
	var err error
	if a.RequestHash, err = ParseRequestHash(rd); err != nil {
		return nil, err
	}
	if a.PaymentMethod, err = rd.GetString(paymentMethodJSON); err != nil {
		return nil, err
	}
	if a.AccountID, err = rd.GetString(accountIDJSON); err != nil {
		return nil, err
	}
	if a.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return a, nil
}
