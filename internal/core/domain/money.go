package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is one of the closed set of currencies the ledger tracks.
// Amounts are never converted between currencies; aggregation groups
// per-currency first.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencySGD Currency = "SGD"
	CurrencyJPY Currency = "JPY"
	CurrencyCNY Currency = "CNY"
	CurrencyKRW Currency = "KRW"
)

// Currencies lists every supported currency in display order.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencySGD, CurrencyJPY, CurrencyCNY, CurrencyKRW}
}

// ParseCurrency validates a currency code against the closed set.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case CurrencyUSD, CurrencySGD, CurrencyJPY, CurrencyCNY, CurrencyKRW:
		return Currency(s), nil
	}
	return "", fmt.Errorf("unknown currency %q", s)
}

// Valid reports whether the currency is a member of the closed set.
func (c Currency) Valid() bool {
	_, err := ParseCurrency(string(c))
	return err == nil
}

// Money is a decimal-precision amount tagged with its currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// NewMoney builds a Money value.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add sums two Money values. Mixing currencies is disallowed.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add %s to %s: currency mismatch", other.Currency, m.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}
