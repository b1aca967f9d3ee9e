package domain

import (
	"fmt"
	"strconv"
	"strings"

	"saturn-payment-network/pkg/apperror"
)

// Currency is an entry in the closed currency table. Amounts are bound to a
// fixed decimal-place count per currency; there is no open-ended registry.
type Currency struct {
	Code        string
	Symbol      string
	SymbolFirst bool
	Decimals    int
}

var currencies = []Currency{
	{Code: "USD", Symbol: "$", SymbolFirst: true, Decimals: 2},
	{Code: "EUR", Symbol: "€", SymbolFirst: false, Decimals: 2},
	{Code: "GBP", Symbol: "£", SymbolFirst: true, Decimals: 2},
}

// CurrencyFromCode resolves a currency code against the fixed table.
func CurrencyFromCode(code string) (Currency, error) {
	for _, c := range currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return Currency{}, apperror.ErrUnknownCurrency(code)
}

func (c Currency) String() string {
	return c.Code
}

// scale returns the integer multiplier for the currency's decimal count.
func (c Currency) scale() int64 {
	s := int64(1)
	for i := 0; i < c.Decimals; i++ {
		s *= 10
	}
	return s
}

// Amount is a monetary value in the smallest currency unit. All amount
// arithmetic and comparison is exact integer math; binary floating point is
// never used for money.
type Amount int64

// ParseAmount parses a decimal string carrying exactly the currency's number
// of fractional digits ("10.00" for USD). Anything else is a schema violation.
func ParseAmount(s string, c Currency) (Amount, error) {
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if len(frac) != c.Decimals {
		return 0, apperror.ErrSchemaViolation(
			fmt.Sprintf("amount %q must have exactly %d decimals for %s", s, c.Decimals, c.Code))
	}
	if whole == "" || !allDigits(whole) || !allDigits(frac) {
		return 0, apperror.ErrSchemaViolation(fmt.Sprintf("malformed amount %q", s))
	}
	v, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, apperror.ErrSchemaViolation(fmt.Sprintf("amount %q exceeds the representable range", s))
	}
	return Amount(v), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Format renders the amount at the currency's fixed scale, e.g. 1000 -> "10.00".
func (a Amount) Format(c Currency) string {
	if c.Decimals == 0 {
		return fmt.Sprintf("%d", int64(a))
	}
	s := c.scale()
	return fmt.Sprintf("%d.%0*d", int64(a)/s, c.Decimals, int64(a)%s)
}

// DisplayString renders the amount with the currency symbol for UIs.
func (a Amount) DisplayString(c Currency) string {
	if c.SymbolFirst {
		return c.Symbol + a.Format(c)
	}
	return a.Format(c) + c.Symbol
}
