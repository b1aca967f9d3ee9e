package protocol

import (
	"errors"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

// TransactionResponse is the acquirer's certified settlement receipt. A
// declined settlement carries an error return in place of the embedded
// request.
type TransactionResponse struct {
	Root               *jsonutil.ObjectReader
	ErrorReturn        *domain.ErrorReturn
	TransactionRequest *TransactionRequest
	ReferenceID        string
	LogData            string
	TimeStamp          time.Time
	Software           domain.Software
	IssuerSignature    *Signature
}

// Success reports whether the settlement was honored.
func (t *TransactionResponse) Success() bool {
	return t.ErrorReturn == nil
}

// EncodeTransactionError builds a signed decline.
func EncodeTransactionError(
	e *domain.ErrorReturn,
	referenceID string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := WriteErrorReturn(NewMessage(MsgTransactionResponse), e).
		SetString(referenceIDJSON, referenceID).
		SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareAcquirer))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// EncodeTransactionResponse wraps a verified settlement order in a
// certificate-signed receipt.
func EncodeTransactionResponse(
	request *TransactionRequest,
	referenceID string,
	logData string,
	now time.Time,
	svc ports.SigningService,
	identity ports.SigningIdentity,
) (*jsonutil.ObjectWriter, error) {
	wr := NewMessage(MsgTransactionResponse).
		SetRaw(EmbeddedName(MsgTransactionRequest), request.Root.Normalized()).
		SetString(referenceIDJSON, referenceID)
	if logData != "" {
		wr.SetString(logDataJSON, logData)
	}
	wr.SetDateTime(timeStampJSON, now).
		SetObject(softwareJSON, EncodeSoftware(domain.SoftwareAcquirer))
	if err := Sign(wr, svc, identity, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	return wr, nil
}

// ParseTransactionResponse decodes and verifies a settlement receipt.
func ParseTransactionResponse(rd *jsonutil.ObjectReader, svc ports.SigningService) (*TransactionResponse, error) {
	if err := ParseMessage(MsgTransactionResponse, rd); err != nil {
		return nil, err
	}
	t := &TransactionResponse{Root: rd}
	var err error
	if HasErrorReturn(rd) {
		if t.ErrorReturn, err = ParseErrorReturn(rd); err != nil {
			return nil, err
		}
	} else {
		inner, err := rd.GetObject(EmbeddedName(MsgTransactionRequest))
		if err != nil {
			return nil, err
		}
		if t.TransactionRequest, err = ParseTransactionRequest(inner, svc); err != nil {
			return nil, err
		}
	}
	if t.ReferenceID, err = rd.GetString(referenceIDJSON); err != nil {
		return nil, err
	}
	if t.LogData, _, err = rd.GetStringConditional(logDataJSON); err != nil {
		return nil, err
	}
	if t.TimeStamp, err = rd.GetDateTime(timeStampJSON); err != nil {
		return nil, err
	}
	if t.Software, err = ParseSoftware(rd); err != nil {
		return nil, err
	}
	if t.IssuerSignature, err = ParseSignature(rd, IssuerSignatureLabel); err != nil {
		return nil, err
	}
	if err = t.IssuerSignature.VerifyWith(svc); err != nil {
		return nil, err
	}
	if len(t.IssuerSignature.Block.CertificatePath) == 0 {
		return nil, apperror.ErrUntrustedSigner(errors.New("transaction response requires a certificate path"))
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return t, nil
}
