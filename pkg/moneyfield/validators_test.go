package moneyfield_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/SscSPs/money_field_kit/pkg/moneyfield"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(s string) money.Money { return money.MustNew(decimal.RequireFromString(s), "USD") }
func eur(s string) money.Money { return money.MustNew(decimal.RequireFromString(s), "EUR") }

func TestMinValidator_PerCurrency(t *testing.T) {
	v := moneyfield.MinPerCurrency(map[string]decimal.Decimal{
		"EUR": decimal.NewFromInt(100),
		"USD": decimal.NewFromInt(50),
	})

	tests := []struct {
		name    string
		value   money.Money
		wantMsg string
	}{
		{name: "eur below bound", value: eur("99.99"), wantMsg: "Ensure this value is greater than or equal to €100.00."},
		{name: "usd below bound", value: usd("49"), wantMsg: "Ensure this value is greater than or equal to $50.00."},
		{name: "eur at bound", value: eur("100")},
		{name: "usd above bound", value: usd("51")},
		{name: "unlisted currency passes", value: money.MustNew(decimal.NewFromInt(1), "GBP")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.value)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantMsg)

			var issue moneyfield.Issue
			require.True(t, errors.As(err, &issue))
			assert.Equal(t, moneyfield.CodeMinValue, issue.Code)
		})
	}
}

func TestMinValidator_MoneyBound(t *testing.T) {
	v := moneyfield.MinMoney(money.MustNew(decimal.NewFromInt(500), "NOK"))

	err := v.Validate(money.MustNew(decimal.NewFromInt(499), "NOK"))
	require.Error(t, err)
	assert.EqualError(t, err, "Ensure this value is greater than or equal to NOK500.00.")

	assert.NoError(t, v.Validate(money.MustNew(decimal.NewFromInt(500), "NOK")))

	// A bound in another currency does not apply.
	assert.NoError(t, v.Validate(money.MustNew(decimal.NewFromInt(1), "SEK")))
}

func TestMinValidator_PlainAmount(t *testing.T) {
	v := moneyfield.MinAmount(decimal.NewFromInt(10))

	// Plain bounds compare amounts regardless of currency.
	for _, m := range []money.Money{usd("9.99"), eur("9.99")} {
		err := v.Validate(m)
		require.Error(t, err)
		assert.EqualError(t, err, "Ensure this value is greater than or equal to 10.")
	}
	assert.NoError(t, v.Validate(usd("10")))
	assert.NoError(t, v.Validate(eur("150")))
}

func TestMaxValidator(t *testing.T) {
	perCurrency := moneyfield.MaxPerCurrency(map[string]decimal.Decimal{
		"EUR": decimal.NewFromInt(1000),
		"USD": decimal.NewFromInt(500),
	})

	err := perCurrency.Validate(eur("1000.01"))
	require.Error(t, err)
	assert.EqualError(t, err, "Ensure this value is less than or equal to €1,000.00.")

	var issue moneyfield.Issue
	require.True(t, errors.As(err, &issue))
	assert.Equal(t, moneyfield.CodeMaxValue, issue.Code)

	assert.NoError(t, perCurrency.Validate(eur("1000")))
	assert.NoError(t, perCurrency.Validate(money.MustNew(decimal.NewFromInt(9999), "GBP")))

	bound := moneyfield.MaxMoney(money.MustNew(decimal.NewFromInt(500), "NOK"))
	err = bound.Validate(money.MustNew(decimal.NewFromInt(501), "NOK"))
	require.Error(t, err)
	assert.EqualError(t, err, "Ensure this value is less than or equal to NOK500.00.")
	assert.NoError(t, bound.Validate(money.MustNew(decimal.NewFromInt(99999), "DKK")))

	plain := moneyfield.MaxAmount(decimal.NewFromInt(10))
	err = plain.Validate(eur("10.01"))
	require.Error(t, err)
	assert.EqualError(t, err, "Ensure this value is less than or equal to 10.")
	assert.NoError(t, plain.Validate(usd("10")))
}
