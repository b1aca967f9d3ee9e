package protocol

import (
	"fmt"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
	"saturn-payment-network/pkg/apperror"
)

const nonceLength = 32

// AccountData is the payer's actual account credential. It only travels
// encrypted (under encryptedAccountData) and is discriminated by @context.
// The card variant carries holder data; the account-to-account variants only
// the account number.
type AccountData struct {
	Context      domain.AccountTypeURI
	AccountID    string    // iban, cardNumber or bgNumber depending on Context
	CardHolder   string    // card variant only
	Expires      time.Time // card variant only; surfaced, not enforced here
	SecurityCode string    // card variant only
	Nonce        []byte
}

// CardAccount reports whether this is the card variant.
func (a *AccountData) CardAccount() bool {
	return a.Context == domain.AccountTypeSuperCard
}

// CheckAccountTypes verifies the variant against a consumer's accepted set.
func (a *AccountData) CheckAccountTypes(accepted ...domain.AccountTypeURI) error {
	for _, t := range accepted {
		if a.Context == t {
			return nil
		}
	}
	return apperror.ErrUnknownAccountType(string(a.Context))
}

// EncodeAccountData writes an account credential for encryption.
func EncodeAccountData(a *AccountData) (*jsonutil.ObjectWriter, error) {
	wr := jsonutil.NewObjectWriter().SetString(contextJSON, string(a.Context))
	switch a.Context {
	case domain.AccountTypeSEPA:
		wr.SetString(ibanJSON, a.AccountID)
	case domain.AccountTypeSuperCard:
		wr.SetString(cardNumberJSON, a.AccountID).
			SetString(cardHolderJSON, a.CardHolder).
			SetDateTime(expiresJSON, a.Expires).
			SetString(securityCodeJSON, a.SecurityCode)
	case domain.AccountTypeBankGiro:
		wr.SetString(bgNumberJSON, a.AccountID)
	default:
		return nil, fmt.Errorf("unknown account data context %q", a.Context)
	}
	if a.Nonce != nil {
		if len(a.Nonce) != nonceLength {
			return nil, fmt.Errorf("nonce must be %d bytes, got %d", nonceLength, len(a.Nonce))
		}
		wr.SetBinary(nonceJSON, a.Nonce)
	}
	return wr, nil
}

// ParseAccountData decodes a decrypted account credential.
func ParseAccountData(rd *jsonutil.ObjectReader) (*AccountData, error) {
	a := &AccountData{}
	ctx, err := rd.GetString(contextJSON)
	if err != nil {
		return nil, err
	}
	a.Context = domain.AccountTypeURI(ctx)
	switch a.Context {
	case domain.AccountTypeSEPA:
		if a.AccountID, err = rd.GetString(ibanJSON); err != nil {
			return nil, err
		}
	case domain.AccountTypeSuperCard:
		if a.AccountID, err = rd.GetString(cardNumberJSON); err != nil {
			return nil, err
		}
		if a.CardHolder, err = rd.GetString(cardHolderJSON); err != nil {
			return nil, err
		}
		if a.Expires, err = rd.GetDateTime(expiresJSON); err != nil {
			return nil, err
		}
		if a.SecurityCode, err = rd.GetString(securityCodeJSON); err != nil {
			return nil, err
		}
	case domain.AccountTypeBankGiro:
		if a.AccountID, err = rd.GetString(bgNumberJSON); err != nil {
			return nil, err
		}
	default:
		return nil, apperror.ErrUnknownAccountType(ctx)
	}
	if rd.Has(nonceJSON) {
		if a.Nonce, err = rd.GetBinary(nonceJSON); err != nil {
			return nil, err
		}
		if len(a.Nonce) != nonceLength {
			return nil, apperror.ErrSchemaViolation(
				fmt.Sprintf("nonce must be %d bytes, got %d", nonceLength, len(a.Nonce)))
		}
	}
	if err = rd.CheckForUnread(); err != nil {
		return nil, err
	}
	return a, nil
}

// DecryptAccountData opens an encryptedAccountData blob and decodes it.
func DecryptAccountData(
	block *ports.CipherBlock,
	cipher ports.CipherService,
	keyring *ports.Keyring,
) (*AccountData, error) {
	plain, err := cipher.Decrypt(block, keyring)
	if err != nil {
		return nil, err
	}
	rd, err := jsonutil.Parse(plain)
	if err != nil {
		return nil, err
	}
	return ParseAccountData(rd)
}
