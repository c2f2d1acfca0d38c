// Package money implements an immutable monetary value: a decimal amount
// paired with an ISO 4217 currency. Arithmetic and ordered comparisons are
// guarded by a currency-match invariant, so values in different currencies
// never combine silently.
package money

import (
	"errors"
	"fmt"

	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch indicates an operation between values of different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrDivisionByZero indicates a division of a Money value by a zero factor.
var ErrDivisionByZero = errors.New("division by zero")

// Money is an amount in a specific currency. The zero value carries no
// currency and is only useful as a placeholder; construct values with New
// and friends. Money is immutable: every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency currency.Currency
}

// NullMoney carries a Money that may be absent. It mirrors the two-column
// storage shape of a money field, where a NULL amount means no value
// regardless of what the currency column holds.
type NullMoney struct {
	Money Money
	Valid bool
}

// NullOf wraps a Money into a valid NullMoney.
func NullOf(m Money) NullMoney {
	return NullMoney{Money: m, Valid: true}
}

// New builds a Money from a decimal amount and a currency code. The code is
// resolved against the default currency registry.
func New(amount decimal.Decimal, code string) (Money, error) {
	c, err := currency.Get(code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: c}, nil
}

// MustNew is New, panicking on an unknown currency code. Intended for
// constants and test fixtures.
func MustNew(amount decimal.Decimal, code string) Money {
	m, err := New(amount, code)
	if err != nil {
		panic(err)
	}
	return m
}

// OfCurrency builds a Money from an already-resolved currency, bypassing the
// default registry. Callers working against their own currency.Registry use
// this after resolving the code themselves.
func OfCurrency(amount decimal.Decimal, c currency.Currency) Money {
	return Money{amount: amount, currency: c}
}

// FromString parses a decimal amount string ("12.34") into a Money.
func FromString(amount, code string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return New(d, code)
}

// FromFloat64 builds a Money from a float amount. Prefer FromString or
// FromMinorUnits where exactness matters.
func FromFloat64(f float64, code string) (Money, error) {
	return New(decimal.NewFromFloat(f), code)
}

// FromMinorUnits builds a Money from an integer count of the currency's minor
// units, e.g. FromMinorUnits(1050, "USD") is $10.50 and
// FromMinorUnits(1050, "JPY") is ¥1050.
func FromMinorUnits(units int64, code string) (Money, error) {
	c, err := currency.Get(code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: decimal.New(units, -c.Precision), currency: c}, nil
}

// Zero returns the zero amount in the given currency.
func Zero(code string) (Money, error) {
	return New(decimal.Zero, code)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency metadata the value was built with.
func (m Money) Currency() currency.Currency {
	return m.currency
}

// CurrencyCode returns the 3-letter currency code, or "" for the zero value.
func (m Money) CurrencyCode() string {
	return m.currency.Code
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is negative.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is positive.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// sameCurrency guards the currency-match invariant shared by arithmetic and
// ordered comparisons. It fails for any pair of distinct currencies, zero
// amounts included.
func (m Money) sameCurrency(other Money) error {
	if m.currency.Code != other.currency.Code {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency.Code, other.currency.Code)
	}
	return nil
}

// Add returns m + other. Fails with ErrCurrencyMismatch when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns m - other. Fails with ErrCurrencyMismatch when the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Mul returns m scaled by factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Div returns m divided by divisor.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{amount: m.amount.Div(divisor), currency: m.currency}, nil
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs(), currency: m.currency}
}

// Round returns m rounded half-up to the currency's precision.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(m.currency.Precision), currency: m.currency}
}

// Equal reports whether two values have the same currency and amount. Values
// in different currencies are never equal, even when both amounts are zero.
func (m Money) Equal(other Money) bool {
	return m.currency.Code == other.currency.Code && m.amount.Equal(other.amount)
}

// Cmp compares m against other: -1 when m is smaller, 0 when equal, 1 when
// larger. Fails with ErrCurrencyMismatch when the currencies differ.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

// LessThan reports m < other, failing on mismatched currencies.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// LessThanOrEqual reports m <= other, failing on mismatched currencies.
func (m Money) LessThanOrEqual(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c <= 0, nil
}

// GreaterThan reports m > other, failing on mismatched currencies.
func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// GreaterThanOrEqual reports m >= other, failing on mismatched currencies.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}
