package serializer_test

import (
	"testing"

	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/SscSPs/money_field_kit/pkg/moneyfield"
	"github.com/SscSPs/money_field_kit/pkg/serializer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullMoneyModel struct {
	ID    int64           `db:"id" json:"id"`
	Field money.NullMoney `db:"field" money:"default=USD"`
}

type vanillaMoneyModel struct {
	ID          int64       `db:"id" json:"id"`
	Integer     int         `db:"integer" json:"integer"`
	Money       money.Money `db:"money" money:"default=USD"`
	SecondMoney money.Money `db:"second_money" money:"default=EUR"`
}

type validatedMoneyModel struct {
	ID    int64       `db:"id" json:"id"`
	Money money.Money `db:"money" money:"default=USD"`
}

func (validatedMoneyModel) MoneyValidators() map[string][]moneyfield.Validator {
	return map[string][]moneyfield.Validator{
		"Money": {
			moneyfield.MinPerCurrency(map[string]decimal.Decimal{
				"EUR": decimal.NewFromInt(100),
				"USD": decimal.NewFromInt(50),
			}),
			moneyfield.MaxPerCurrency(map[string]decimal.Decimal{
				"EUR": decimal.NewFromInt(1000),
				"USD": decimal.NewFromInt(500),
			}),
			moneyfield.MinMoney(money.MustNew(decimal.NewFromInt(500), "NOK")),
			moneyfield.MaxMoney(money.MustNew(decimal.NewFromInt(900), "NOK")),
			moneyfield.MinAmount(decimal.NewFromInt(10)),
			moneyfield.MaxAmount(decimal.NewFromInt(1500)),
		},
	}
}

type propertyMoneyModel struct {
	ID    int64       `db:"id" json:"id"`
	Money money.Money `db:"money" money:"default=USD"`
}

// TenExtraMonies derives a read-only value from the stored one.
func (m *propertyMoneyModel) TenExtraMonies() money.Money {
	extra, _ := m.Money.Add(money.MustNew(decimal.NewFromInt(10), m.Money.CurrencyCode()))
	return extra
}

func mustMoney(amount, code string) money.Money {
	return money.MustNew(decimal.RequireFromString(amount), code)
}

func TestRepresentation(t *testing.T) {
	t.Run("null money keeps default currency sibling", func(t *testing.T) {
		s, err := serializer.NewModelSerializer(nullMoneyModel{})
		require.NoError(t, err)

		out, err := s.Representation(nullMoneyModel{ID: 1})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"id":             int64(1),
			"field":          nil,
			"field_currency": "USD",
		}, out)
	})

	t.Run("set money", func(t *testing.T) {
		s, err := serializer.NewModelSerializer(nullMoneyModel{})
		require.NoError(t, err)

		out, err := s.Representation(nullMoneyModel{ID: 2, Field: money.NullOf(mustMoney("10", "USD"))})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"id":             int64(2),
			"field":          "10.00",
			"field_currency": "USD",
		}, out)
	})

	t.Run("multiple fields and passthrough", func(t *testing.T) {
		s, err := serializer.NewModelSerializer(vanillaMoneyModel{})
		require.NoError(t, err)

		instance := vanillaMoneyModel{
			ID:          3,
			Money:       mustMoney("10", "USD"),
			SecondMoney: mustMoney("0", "EUR"),
		}
		out, err := s.Representation(instance)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"id":                    int64(3),
			"integer":               0,
			"money":                 "10.00",
			"money_currency":        "USD",
			"second_money":          "0.00",
			"second_money_currency": "EUR",
		}, out)
	})
}

func TestValidateInput_PostPutValues(t *testing.T) {
	override := func(defaultCurrency string) []*serializer.MoneyField {
		if defaultCurrency == "" {
			return nil
		}
		return []*serializer.MoneyField{{
			Source:          "Field",
			DefaultCurrency: defaultCurrency,
			AllowNull:       true,
		}}
	}

	tests := []struct {
		name            string
		body            string
		defaultCurrency string
		want            any // money.Money, decimal.Decimal or nil
	}{
		{name: "explicit currency", body: `{"field": "10", "field_currency": "EUR"}`, want: mustMoney("10", "EUR")},
		{name: "default currency", body: `{"field": "10"}`, defaultCurrency: "EUR", want: mustMoney("10", "EUR")},
		{name: "gbp", body: `{"field": "12.20", "field_currency": "GBP"}`, want: mustMoney("12.20", "GBP")},
		{name: "usd", body: `{"field": "15.15", "field_currency": "USD"}`, want: mustMoney("15.15", "USD")},
		{name: "both null", body: `{"field": null, "field_currency": null}`, want: nil},
		{name: "both null with default", body: `{"field": null, "field_currency": null}`, defaultCurrency: "EUR", want: nil},
		{name: "null currency yields bare decimal", body: `{"field": "16", "field_currency": null}`, want: decimal.RequireFromString("16")},
		{name: "null currency beats default", body: `{"field": "16", "field_currency": null}`, defaultCurrency: "EUR", want: decimal.RequireFromString("16")},
		{name: "null amount with currency", body: `{"field": null, "field_currency": "USD"}`, want: nil},
		{name: "null amount with currency and default", body: `{"field": null, "field_currency": "USD"}`, defaultCurrency: "EUR", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := serializer.NewModelSerializer(nullMoneyModel{}, override(tt.defaultCurrency)...)
			require.NoError(t, err)

			validated, err := s.ValidateInput([]byte(tt.body))
			require.NoError(t, err)
			require.Contains(t, validated, "field")

			switch want := tt.want.(type) {
			case nil:
				assert.Nil(t, validated["field"])
			case money.Money:
				got, ok := validated["field"].(money.Money)
				require.True(t, ok, "validated value is %T", validated["field"])
				assert.True(t, got.Equal(want), "got %v want %v", got, want)
			case decimal.Decimal:
				got, ok := validated["field"].(decimal.Decimal)
				require.True(t, ok, "validated value is %T", validated["field"])
				assert.True(t, got.Equal(want), "got %v want %v", got, want)
			}
		})
	}
}

func TestValidateInput_MoneyObjectPassthrough(t *testing.T) {
	tests := []struct {
		name      string
		overrides []*serializer.MoneyField
		body      string
		want      money.Money
	}{
		{
			name: "object keeps its own currency",
			body: `{"field": {"amount": "10", "currency": "USD"}}`,
			want: mustMoney("10", "USD"),
		},
		{
			name:      "object beats field default",
			overrides: []*serializer.MoneyField{{Source: "Field", DefaultCurrency: "EUR", AllowNull: true}},
			body:      `{"field": {"amount": 10, "currency": "USD"}}`,
			want:      mustMoney("10", "USD"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := serializer.NewModelSerializer(nullMoneyModel{}, tt.overrides...)
			require.NoError(t, err)

			validated, err := s.ValidateInput([]byte(tt.body))
			require.NoError(t, err)
			got, ok := validated["field"].(money.Money)
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestValidateInput_NullOnNonNullable(t *testing.T) {
	s, err := serializer.NewModelSerializer(vanillaMoneyModel{})
	require.NoError(t, err)

	_, err = s.ValidateInput([]byte(`{"money": null}`))
	var verrs serializer.Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs["money"], 1)
	assert.Equal(t, serializer.CodeNull, verrs["money"][0].Code)
	assert.Equal(t, "This field may not be null.", verrs["money"][0].Message)
}

func TestValidateInput_ModelValidators(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		wantMsg  string
	}{
		{amount: "50", currency: "EUR", wantMsg: "Ensure this value is greater than or equal to €100.00."},
		{amount: "1500", currency: "EUR", wantMsg: "Ensure this value is less than or equal to €1,000.00."},
		{amount: "40", currency: "USD", wantMsg: "Ensure this value is greater than or equal to $50.00."},
		{amount: "600", currency: "USD", wantMsg: "Ensure this value is less than or equal to $500.00."},
		{amount: "400", currency: "NOK", wantMsg: "Ensure this value is greater than or equal to NOK500.00."},
		{amount: "950", currency: "NOK", wantMsg: "Ensure this value is less than or equal to NOK900.00."},
		{amount: "5", currency: "SEK", wantMsg: "Ensure this value is greater than or equal to 10."},
		{amount: "1600", currency: "SEK", wantMsg: "Ensure this value is less than or equal to 1500."},
	}
	for _, tt := range tests {
		t.Run(tt.currency+" "+tt.amount, func(t *testing.T) {
			s, err := serializer.NewModelSerializer(validatedMoneyModel{})
			require.NoError(t, err)

			body := `{"money": "` + tt.amount + `", "money_currency": "` + tt.currency + `"}`
			_, err = s.ValidateInput([]byte(body))
			var verrs serializer.Errors
			require.ErrorAs(t, err, &verrs)
			require.NotEmpty(t, verrs["money"])
			assert.Equal(t, tt.wantMsg, verrs["money"][0].Message)
		})
	}
}

func TestValidateInput_BoundaryValues(t *testing.T) {
	bounds := &serializer.MoneyField{
		Source:    "Field",
		AllowNull: true,
		MinValue:  serializer.BoundInt(100),
		MaxValue:  serializer.BoundInt(1000),
	}

	tests := []struct {
		amount  string
		wantMsg string
	}{
		{amount: "50", wantMsg: "Ensure this value is greater than or equal to 100."},
		{amount: "1500", wantMsg: "Ensure this value is less than or equal to 1000."},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			s, err := serializer.NewModelSerializer(nullMoneyModel{}, bounds)
			require.NoError(t, err)

			body := `{"field": "` + tt.amount + `", "field_currency": "EUR"}`
			_, err = s.ValidateInput([]byte(body))
			var verrs serializer.Errors
			require.ErrorAs(t, err, &verrs)
			require.NotEmpty(t, verrs["field"])
			assert.Equal(t, tt.wantMsg, verrs["field"][0].Message)
		})
	}
}

func TestValidateInput_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "amount as empty string", body: `{"money": "", "money_currency": "XUA"}`, wantCode: serializer.CodeInvalid},
		{name: "amount as none", body: `{"money": null, "money_currency": "XUA"}`, wantCode: serializer.CodeNull},
		{name: "amount as invalid decimal", body: `{"money": "v", "money_currency": "XUA"}`, wantCode: serializer.CodeInvalid},
		{name: "invalid currency", body: `{"money": "0.01", "money_currency": "v"}`, wantCode: serializer.CodeInvalidCurrency},
		{name: "amount key not in data", body: `{"money_currency": "SEK"}`, wantCode: serializer.CodeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := serializer.NewSerializer(&serializer.MoneyField{Name: "money", MaxDigits: 9, DecimalPlaces: 2})
			require.NoError(t, err)

			_, err = s.ValidateInput([]byte(tt.body))
			var verrs serializer.Errors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs["money"], 1)
			assert.True(t, verrs.HasCode("money", tt.wantCode), "got %+v", verrs)
		})
	}
}

func TestValidateInput_DigitLimits(t *testing.T) {
	s, err := serializer.NewSerializer(&serializer.MoneyField{Name: "money", MaxDigits: 9, DecimalPlaces: 2})
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "too many digits in total",
			body:    `{"money": "12345678.901"}`,
			wantMsg: "Ensure that there are no more than 9 digits in total.",
		},
		{
			name:    "too many decimal places",
			body:    `{"money": "1.234"}`,
			wantMsg: "Ensure that there are no more than 2 decimal places.",
		},
		{
			name:    "too many whole digits",
			body:    `{"money": "12345678"}`,
			wantMsg: "Ensure that there are no more than 7 digits before the decimal point.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateInput([]byte(tt.body))
			var verrs serializer.Errors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs["money"], 1)
			assert.Equal(t, serializer.CodeInvalid, verrs["money"][0].Code)
			assert.Equal(t, tt.wantMsg, verrs["money"][0].Message)
		})
	}
}

func TestValidateInput_DecimalWhenNoCurrency(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "sibling null", body: `{"money": "0.01", "money_currency": null}`},
		{name: "sibling empty string", body: `{"money": "0.01", "money_currency": ""}`},
		{name: "sibling absent", body: `{"money": "0.01"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := serializer.NewSerializer(&serializer.MoneyField{Name: "money", MaxDigits: 9, DecimalPlaces: 2})
			require.NoError(t, err)

			validated, err := s.ValidateInput([]byte(tt.body))
			require.NoError(t, err)
			got, ok := validated["money"].(decimal.Decimal)
			require.True(t, ok, "validated value is %T", validated["money"])
			assert.True(t, got.Equal(decimal.RequireFromString("0.01")))
		})
	}
}

func TestValidateInput_MinValueZero(t *testing.T) {
	s, err := serializer.NewSerializer(&serializer.MoneyField{
		Name:          "money",
		MaxDigits:     10,
		DecimalPlaces: 2,
		MinValue:      serializer.BoundInt(0),
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    string
		isValid bool
	}{
		{name: "negative money object", body: `{"money": {"amount": "-1", "currency": "EUR"}}`, isValid: false},
		{name: "positive money object", body: `{"money": {"amount": "1", "currency": "EUR"}}`, isValid: true},
		{name: "negative flat value", body: `{"money": "-1", "money_currency": "EUR"}`, isValid: false},
		{name: "positive flat value", body: `{"money": "0.01", "money_currency": "EUR"}`, isValid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateInput([]byte(tt.body))
			if tt.isValid {
				assert.NoError(t, err)
				return
			}
			var verrs serializer.Errors
			require.ErrorAs(t, err, &verrs)
			require.NotEmpty(t, verrs["money"])
			assert.Equal(t, "Ensure this value is greater than or equal to 0.", verrs["money"][0].Message)
		})
	}
}

func TestRenamedSourceField(t *testing.T) {
	s, err := serializer.NewModelSerializer(vanillaMoneyModel{}, &serializer.MoneyField{
		Name:     "renamed_money_field",
		Source:   "Money",
		MinValue: serializer.BoundInt(0),
	})
	require.NoError(t, err)

	validated, err := s.ValidateInput([]byte(`{"renamed_money_field": "0.01", "renamed_money_field_currency": "EUR"}`))
	require.NoError(t, err)

	var model vanillaMoneyModel
	require.NoError(t, s.Apply(validated, &model))
	assert.True(t, model.Money.Equal(mustMoney("0.01", "EUR")))
}

func TestReadOnlyPropertyField(t *testing.T) {
	s, err := serializer.NewModelSerializer(propertyMoneyModel{}, &serializer.MoneyField{
		Name:            "extra_monies",
		Source:          "TenExtraMonies",
		DefaultCurrency: "EUR",
		Optional:        true,
		AllowNull:       true,
		ReadOnly:        true,
	})
	require.NoError(t, err)

	validated, err := s.ValidateInput([]byte(`{"money": {"amount": 12, "currency": "USD"}, "extra_monies": {"amount": 100, "currency": "USD"}}`))
	require.NoError(t, err)
	require.Len(t, validated, 1, "read-only field excluded from validated values")
	got, ok := validated["money"].(money.Money)
	require.True(t, ok)
	assert.True(t, got.Equal(mustMoney("12", "USD")))

	var model propertyMoneyModel
	require.NoError(t, s.Apply(validated, &model))
	assert.True(t, model.Money.Equal(mustMoney("12", "USD")))
	assert.True(t, model.TenExtraMonies().Equal(mustMoney("22", "USD")))

	out, err := s.Representation(&model)
	require.NoError(t, err)
	assert.Equal(t, "22.00", out["extra_monies"])
	assert.Equal(t, "USD", out["extra_monies_currency"])
	assert.Equal(t, "12.00", out["money"])
}

func TestNonexistentSourceFailsConstruction(t *testing.T) {
	_, err := serializer.NewModelSerializer(propertyMoneyModel{}, &serializer.MoneyField{
		Name:            "nonexistent_field",
		DefaultCurrency: "EUR",
		Optional:        true,
		AllowNull:       true,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "nonexistent_field is neither a db field nor a property on the model propertyMoneyModel")
}

func TestSelect(t *testing.T) {
	s, err := serializer.NewModelSerializer(vanillaMoneyModel{})
	require.NoError(t, err)

	instance := vanillaMoneyModel{Money: mustMoney("10", "USD"), SecondMoney: mustMoney("0", "EUR")}
	out, err := s.Select("money").Representation(instance)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"money": "10.00"}, out)

	// Unselected fields are not validated either.
	validated, err := s.Select("money").ValidateInput([]byte(`{"money": "10.00"}`))
	require.NoError(t, err)
	require.Contains(t, validated, "money")
	assert.NotContains(t, validated, "second_money")
}

func TestPartial(t *testing.T) {
	s, err := serializer.NewModelSerializer(vanillaMoneyModel{})
	require.NoError(t, err)

	// Required fields absent from a partial payload are simply skipped.
	validated, err := s.Partial().ValidateInput([]byte(`{"second_money": "5", "second_money_currency": "EUR"}`))
	require.NoError(t, err)
	assert.NotContains(t, validated, "money")
	got, ok := validated["second_money"].(money.Money)
	require.True(t, ok)
	assert.True(t, got.Equal(mustMoney("5", "EUR")))

	// Explicit null still validates against AllowNull.
	_, err = s.Partial().ValidateInput([]byte(`{"money": null}`))
	var verrs serializer.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasCode("money", serializer.CodeNull))

	// The full serializer still requires the field.
	_, err = s.ValidateInput([]byte(`{}`))
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasCode("money", serializer.CodeRequired))
}

func TestApply(t *testing.T) {
	s, err := serializer.NewModelSerializer(nullMoneyModel{})
	require.NoError(t, err)

	validated, err := s.ValidateInput([]byte(`{"field": "10", "field_currency": "EUR"}`))
	require.NoError(t, err)

	model := nullMoneyModel{Field: money.NullOf(mustMoney("1", "USD"))}
	require.NoError(t, s.Apply(validated, &model))
	require.True(t, model.Field.Valid)
	assert.True(t, model.Field.Money.Equal(mustMoney("10", "EUR")))

	// Explicit null clears a nullable field.
	validated, err = s.ValidateInput([]byte(`{"field": null}`))
	require.NoError(t, err)
	require.NoError(t, s.Apply(validated, &model))
	assert.False(t, model.Field.Valid)

	// A bare decimal is denominated in the field default.
	validated, err = s.ValidateInput([]byte(`{"field": "16", "field_currency": null}`))
	require.NoError(t, err)
	require.NoError(t, s.Apply(validated, &model))
	require.True(t, model.Field.Valid)
	assert.True(t, model.Field.Money.Equal(mustMoney("16", "USD")))

	// Passthrough fields land too.
	validated, err = s.ValidateInput([]byte(`{"id": 7, "field": "1", "field_currency": "USD"}`))
	require.NoError(t, err)
	require.NoError(t, s.Apply(validated, &model))
	assert.Equal(t, int64(7), model.ID)
}
