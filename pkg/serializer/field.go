package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/SscSPs/money_field_kit/pkg/moneyfield"
	"github.com/shopspring/decimal"
)

// Bound is a min or max limit on a money field. A money bound applies only
// to values of its own currency and renders currency-formatted in messages
// ("€100.00"); a plain bound applies to any value and renders bare ("100").
type Bound struct {
	money  *money.Money
	amount *decimal.Decimal
}

// BoundMoney limits values of the bound's currency.
func BoundMoney(m money.Money) *Bound {
	return &Bound{money: &m}
}

// BoundAmount limits the numeric amount regardless of currency.
func BoundAmount(d decimal.Decimal) *Bound {
	return &Bound{amount: &d}
}

// BoundInt is BoundAmount for integer limits.
func BoundInt(n int64) *Bound {
	return BoundAmount(decimal.NewFromInt(n))
}

// applies resolves the bound against a validated value. m is nil when the
// value carries no currency.
func (b *Bound) applies(amount decimal.Decimal, m *money.Money) (decimal.Decimal, string, bool) {
	switch {
	case b == nil:
		return decimal.Decimal{}, "", false
	case b.amount != nil:
		return *b.amount, b.amount.String(), true
	case b.money != nil:
		if m == nil || m.CurrencyCode() != b.money.CurrencyCode() {
			return decimal.Decimal{}, "", false
		}
		return b.money.Amount(), b.money.String(), true
	}
	return decimal.Decimal{}, "", false
}

// MoneyField validates and renders one money attribute on the wire: the
// amount under Name, the currency code under the sibling key CurrencyKey.
//
// The zero value of the flags mirrors the usual request contract: the field
// is required, rejects null and is writable. Optional, AllowNull and
// ReadOnly loosen that.
type MoneyField struct {
	// Name is the wire name of the amount key. On model serializers it
	// defaults to the source struct field's wire name.
	Name string
	// Source names the model attribute backing the field: an exported
	// struct field or a zero-argument getter method. Defaults to Name
	// interpreted as a struct field name.
	Source string
	// CurrencyKey overrides the sibling currency key. Defaults to
	// "<Name>_currency".
	CurrencyKey string

	MaxDigits     int
	DecimalPlaces int32
	// DefaultCurrency applies when the input carries no sibling key at all.
	// A sibling explicitly null or empty still means "no currency".
	DefaultCurrency string

	Optional  bool
	AllowNull bool
	ReadOnly  bool

	MinValue *Bound
	MaxValue *Bound

	// Validators run after the bounds, only when the validated value
	// carries a currency.
	Validators []moneyfield.Validator

	src       moneyfield.Source // resolved against the model at construction
	srcBound  bool
	modelName string
}

func (f *MoneyField) currencyKey() string {
	if f.CurrencyKey != "" {
		return f.CurrencyKey
	}
	return f.Name + "_currency"
}

// representAmount renders the amount with the field's decimal places, e.g.
// "10.00".
func (f *MoneyField) representAmount(m money.Money) string {
	return m.Amount().StringFixed(f.DecimalPlaces)
}

// validate consumes the field's keys from the raw input. The returned value
// is a money.Money, a decimal.Decimal (amount without currency) or nil
// (explicit null); present is false when the key was absent.
func (f *MoneyField) validate(data map[string]json.RawMessage, reg *currency.Registry, partial bool) (value any, present bool, errs []FieldError) {
	raw, ok := data[f.Name]
	if !ok {
		if f.Optional || partial {
			return nil, false, nil
		}
		return nil, false, []FieldError{{Code: CodeRequired, Message: "This field is required."}}
	}
	if isJSONNull(raw) {
		if f.AllowNull {
			return nil, true, nil
		}
		return nil, false, []FieldError{{Code: CodeNull, Message: "This field may not be null."}}
	}

	// Object form {"amount": ..., "currency": ...} passes its own currency
	// through; the sibling key is not consulted.
	if isJSONObject(raw) {
		m, errs := f.parseMoneyObject(raw, reg)
		if errs != nil {
			return nil, false, errs
		}
		if errs := f.digitIssues(m.Amount()); errs != nil {
			return nil, false, errs
		}
		return f.finish(m.Amount(), m.CurrencyCode(), reg)
	}

	var amount decimal.Decimal
	if err := json.Unmarshal(raw, &amount); err != nil {
		return nil, false, []FieldError{{Code: CodeInvalid, Message: "A valid number is required."}}
	}
	if errs := f.digitIssues(amount); errs != nil {
		return nil, false, errs
	}

	code, haveCode, errs := f.resolveCurrency(data, reg)
	if errs != nil {
		return nil, false, errs
	}
	if !haveCode {
		// No resolvable currency: the validated value is a bare decimal.
		amount = amount.Round(f.DecimalPlaces)
		return amount, true, f.rangeIssues(amount, nil)
	}
	return f.finish(amount, code, reg)
}

func (f *MoneyField) finish(amount decimal.Decimal, code string, reg *currency.Registry) (any, bool, []FieldError) {
	c, err := reg.Get(code)
	if err != nil {
		return nil, false, []FieldError{invalidCurrency(code)}
	}
	m := money.OfCurrency(amount.Round(f.DecimalPlaces), c)

	errs := f.rangeIssues(m.Amount(), &m)
	for _, v := range f.Validators {
		if err := v.Validate(m); err != nil {
			errs = append(errs, asFieldError(err))
		}
	}
	if errs != nil {
		return nil, false, errs
	}
	return m, true, nil
}

func (f *MoneyField) parseMoneyObject(raw json.RawMessage, reg *currency.Registry) (money.Money, []FieldError) {
	var body struct {
		Amount   json.RawMessage `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Amount) == 0 || body.Currency == "" {
		return money.Money{}, []FieldError{{Code: CodeInvalid, Message: "A valid number is required."}}
	}
	var amount decimal.Decimal
	if err := json.Unmarshal(body.Amount, &amount); err != nil {
		return money.Money{}, []FieldError{{Code: CodeInvalid, Message: "A valid number is required."}}
	}
	c, err := reg.Get(body.Currency)
	if err != nil {
		return money.Money{}, []FieldError{invalidCurrency(body.Currency)}
	}
	return money.OfCurrency(amount, c), nil
}

// resolveCurrency reads the sibling key. Null or empty mean "no currency";
// a missing key falls back to the field default.
func (f *MoneyField) resolveCurrency(data map[string]json.RawMessage, reg *currency.Registry) (code string, haveCode bool, errs []FieldError) {
	raw, ok := data[f.currencyKey()]
	if !ok {
		if f.DefaultCurrency != "" {
			return f.DefaultCurrency, true, nil
		}
		return "", false, nil
	}
	if isJSONNull(raw) {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, []FieldError{invalidCurrency(strings.TrimSpace(string(raw)))}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false, nil
	}
	if !reg.Valid(s) {
		return "", false, []FieldError{invalidCurrency(s)}
	}
	return strings.ToUpper(s), true, nil
}

// rangeIssues checks MinValue/MaxValue. m is nil for bare-decimal values,
// which only plain bounds apply to.
func (f *MoneyField) rangeIssues(amount decimal.Decimal, m *money.Money) []FieldError {
	var errs []FieldError
	if bound, display, ok := f.MinValue.applies(amount, m); ok && amount.Cmp(bound) < 0 {
		errs = append(errs, FieldError{
			Code:    CodeMinValue,
			Message: fmt.Sprintf("Ensure this value is greater than or equal to %s.", display),
		})
	}
	if bound, display, ok := f.MaxValue.applies(amount, m); ok && amount.Cmp(bound) > 0 {
		errs = append(errs, FieldError{
			Code:    CodeMaxValue,
			Message: fmt.Sprintf("Ensure this value is less than or equal to %s.", display),
		})
	}
	return errs
}

// digitIssues enforces MaxDigits/DecimalPlaces on the unrounded amount.
// Overflow keeps the precise limit in the message but reports under the
// invalid code, which is the whole fixed vocabulary callers dispatch on.
func (f *MoneyField) digitIssues(d decimal.Decimal) []FieldError {
	if f.MaxDigits <= 0 {
		return nil
	}
	total, places, whole := digitStats(d)
	maxWhole := f.MaxDigits - int(f.DecimalPlaces)
	switch {
	case total > f.MaxDigits:
		return []FieldError{{Code: CodeInvalid, Message: fmt.Sprintf("Ensure that there are no more than %d digits in total.", f.MaxDigits)}}
	case int32(places) > f.DecimalPlaces:
		return []FieldError{{Code: CodeInvalid, Message: fmt.Sprintf("Ensure that there are no more than %d decimal places.", f.DecimalPlaces)}}
	case whole > maxWhole:
		return []FieldError{{Code: CodeInvalid, Message: fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxWhole)}}
	}
	return nil
}

// digitStats counts digits the way a fixed-precision decimal column does:
// 123.45 has 5 total, 2 decimal places, 3 whole; 0.001 has 3 total, all
// decimal places.
func digitStats(d decimal.Decimal) (total, places, whole int) {
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	exp := int(d.Exponent())
	switch {
	case exp >= 0:
		total = digits + exp
	case digits > -exp:
		total = digits
		places = -exp
	default:
		total = -exp
		places = total
	}
	whole = total - places
	return total, places, whole
}

func invalidCurrency(code string) FieldError {
	return FieldError{Code: CodeInvalidCurrency, Message: fmt.Sprintf("%q is not a valid currency.", code)}
}

func asFieldError(err error) FieldError {
	var issue moneyfield.Issue
	if errors.As(err, &issue) {
		return FieldError{Code: issue.Code, Message: issue.Message}
	}
	return FieldError{Code: CodeInvalid, Message: err.Error()}
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func isJSONObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}
