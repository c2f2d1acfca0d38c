package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/shopspring/decimal"
)

// Update fetches current rates from a backend and persists them, one
// refresh cycle.
func Update(ctx context.Context, b Backend, store Store, base string) error {
	rates, err := b.FetchRates(ctx, base)
	if err != nil {
		return fmt.Errorf("fetch rates from %s: %w", b.Name(), err)
	}
	if err := store.SaveRates(ctx, b.Name(), base, rates, time.Now().UTC()); err != nil {
		return fmt.Errorf("save rates from %s: %w", b.Name(), err)
	}
	return nil
}

// Converter converts money values using one backend's stored rates, quoted
// against a single base currency.
type Converter struct {
	store   Store
	backend string
	base    string
}

func NewConverter(store Store, backend, base string) *Converter {
	return &Converter{store: store, backend: backend, base: strings.ToUpper(base)}
}

// Rate resolves the rate from one currency to another: identity for the
// same currency, then the stored direct (or inverse) rate, then the cross
// rate through the converter's base currency.
func (c *Converter) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rate, err := c.store.Rate(ctx, c.backend, from, to)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, ErrRateNotFound) {
		return decimal.Decimal{}, err
	}

	// Cross rate: from -> base -> to.
	baseFrom, err := c.store.Rate(ctx, c.backend, c.base, from)
	if err != nil {
		return decimal.Decimal{}, crossRateErr(err, from, to)
	}
	baseTo, err := c.store.Rate(ctx, c.backend, c.base, to)
	if err != nil {
		return decimal.Decimal{}, crossRateErr(err, from, to)
	}
	if baseFrom.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", ErrRateNotFound, from, to)
	}
	return baseTo.Div(baseFrom), nil
}

// Convert moves a money value into the target currency, rounded to its
// precision.
func (c *Converter) Convert(ctx context.Context, m money.Money, to string) (money.Money, error) {
	rate, err := c.Rate(ctx, m.CurrencyCode(), to)
	if err != nil {
		return money.Money{}, err
	}
	converted, err := money.New(m.Amount().Mul(rate), to)
	if err != nil {
		return money.Money{}, err
	}
	return converted.Round(), nil
}

func crossRateErr(err error, from, to string) error {
	if errors.Is(err, ErrRateNotFound) {
		return fmt.Errorf("%w: %s to %s", ErrRateNotFound, from, to)
	}
	return err
}
