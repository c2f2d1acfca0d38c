package moneyfield

import (
	"fmt"

	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/shopspring/decimal"
)

// Validation failure codes.
const (
	CodeMinValue = "min_value"
	CodeMaxValue = "max_value"
)

// Issue is a single validation failure: a stable machine-readable code plus
// the user-facing message. It satisfies error so validators can return it
// directly.
type Issue struct {
	Code    string
	Message string
}

func (i Issue) Error() string {
	return i.Message
}

// Validator checks one money value on its way into a model field. A nil
// return means the value passed.
type Validator interface {
	Validate(m money.Money) error
}

// limit is the bound of a min/max validator in one of three flavors: a plain
// decimal compared against any currency, a money value compared only against
// matching currencies, or a per-currency table.
type limit struct {
	plain       *decimal.Decimal
	money       *money.Money
	perCurrency map[string]decimal.Decimal
}

// resolve picks the bound applicable to m. ok is false when the limit does
// not apply, e.g. a EUR bound checked against a USD value.
func (l limit) resolve(m money.Money) (bound decimal.Decimal, display string, ok bool) {
	switch {
	case l.perCurrency != nil:
		d, found := l.perCurrency[m.CurrencyCode()]
		if !found {
			return decimal.Decimal{}, "", false
		}
		return d, displayAs(d, m.CurrencyCode()), true
	case l.money != nil:
		if l.money.CurrencyCode() != m.CurrencyCode() {
			return decimal.Decimal{}, "", false
		}
		return l.money.Amount(), l.money.String(), true
	case l.plain != nil:
		return *l.plain, l.plain.String(), true
	}
	return decimal.Decimal{}, "", false
}

func displayAs(d decimal.Decimal, code string) string {
	m, err := money.New(d, code)
	if err != nil {
		return d.String()
	}
	return m.String()
}

// MinValidator rejects values below its bound.
type MinValidator struct {
	limit limit
}

// MinAmount bounds the numeric amount regardless of currency.
func MinAmount(bound decimal.Decimal) *MinValidator {
	return &MinValidator{limit: limit{plain: &bound}}
}

// MinMoney bounds values of the bound's currency; other currencies pass.
func MinMoney(bound money.Money) *MinValidator {
	return &MinValidator{limit: limit{money: &bound}}
}

// MinPerCurrency bounds values per currency code; unlisted currencies pass.
func MinPerCurrency(bounds map[string]decimal.Decimal) *MinValidator {
	return &MinValidator{limit: limit{perCurrency: bounds}}
}

func (v *MinValidator) Validate(m money.Money) error {
	bound, display, ok := v.limit.resolve(m)
	if !ok {
		return nil
	}
	if m.Amount().Cmp(bound) < 0 {
		return Issue{
			Code:    CodeMinValue,
			Message: fmt.Sprintf("Ensure this value is greater than or equal to %s.", display),
		}
	}
	return nil
}

// MaxValidator rejects values above its bound.
type MaxValidator struct {
	limit limit
}

// MaxAmount bounds the numeric amount regardless of currency.
func MaxAmount(bound decimal.Decimal) *MaxValidator {
	return &MaxValidator{limit: limit{plain: &bound}}
}

// MaxMoney bounds values of the bound's currency; other currencies pass.
func MaxMoney(bound money.Money) *MaxValidator {
	return &MaxValidator{limit: limit{money: &bound}}
}

// MaxPerCurrency bounds values per currency code; unlisted currencies pass.
func MaxPerCurrency(bounds map[string]decimal.Decimal) *MaxValidator {
	return &MaxValidator{limit: limit{perCurrency: bounds}}
}

func (v *MaxValidator) Validate(m money.Money) error {
	bound, display, ok := v.limit.resolve(m)
	if !ok {
		return nil
	}
	if m.Amount().Cmp(bound) > 0 {
		return Issue{
			Code:    CodeMaxValue,
			Message: fmt.Sprintf("Ensure this value is less than or equal to %s.", display),
		}
	}
	return nil
}

var (
	_ Validator = (*MinValidator)(nil)
	_ Validator = (*MaxValidator)(nil)
)
