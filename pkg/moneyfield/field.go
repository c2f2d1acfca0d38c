// Package moneyfield maps money values onto model structs: one logical field
// backed by two physical columns (amount and currency), discovered through
// struct tags. It is the model half of the serializer integration and the
// column mapping used by repositories.
package moneyfield

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/shopspring/decimal"
)

// Defaults applied when the money tag does not say otherwise.
const (
	DefaultMaxDigits     = 10
	DefaultDecimalPlaces = 2
)

var (
	moneyType     = reflect.TypeOf(money.Money{})
	nullMoneyType = reflect.TypeOf(money.NullMoney{})
)

// Field is the descriptor of one money attribute on a model struct. Fields
// are built once per model type, at startup, and are safe to share.
type Field struct {
	Name            string // Go struct field name
	AmountColumn    string // physical column holding the amount
	CurrencyColumn  string // physical column holding the currency code
	DefaultCurrency string // code applied when a value or row carries none
	Nullable        bool   // true for money.NullMoney fields
	MaxDigits       int
	DecimalPlaces   int32
	Validators      []Validator
}

// ValidatorProvider lets a model declare validators for its money fields,
// keyed by Go field name. FieldsOf attaches them to the discovered fields.
type ValidatorProvider interface {
	MoneyValidators() map[string][]Validator
}

// FieldsOf reflects over a model struct and returns a descriptor for every
// exported money.Money or money.NullMoney field, embedded structs included.
//
// The amount column comes from the db tag (snake_case of the field name when
// absent) and the currency column defaults to "<amount column>_currency".
// The money tag tunes the rest:
//
//	Price money.Money `db:"price" money:"default=USD,digits=12,places=2"`
//
// Recognized options are default, currency_column, digits and places. When no
// default is tagged, the registry-wide default currency applies.
func FieldsOf(model any) ([]Field, error) {
	t := reflect.TypeOf(model)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %T", model)
	}

	fields, err := collectFields(t)
	if err != nil {
		return nil, err
	}

	if prov := validatorProviderOf(model, t); prov != nil {
		byName := prov.MoneyValidators()
		for i := range fields {
			fields[i].Validators = byName[fields[i].Name]
		}
	}
	return fields, nil
}

func collectFields(t reflect.Type) ([]Field, error) {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Type != moneyType && sf.Type != nullMoneyType {
			embedded, err := collectFields(sf.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, embedded...)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if sf.Type != moneyType && sf.Type != nullMoneyType {
			continue
		}
		f, err := fieldFromStructField(sf)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func fieldFromStructField(sf reflect.StructField) (Field, error) {
	f := Field{
		Name:          sf.Name,
		Nullable:      sf.Type == nullMoneyType,
		MaxDigits:     DefaultMaxDigits,
		DecimalPlaces: DefaultDecimalPlaces,
	}

	f.AmountColumn = sf.Tag.Get("db")
	if f.AmountColumn == "" {
		f.AmountColumn = snakeCase(sf.Name)
	}

	if tag := sf.Tag.Get("money"); tag != "" {
		for _, opt := range strings.Split(tag, ",") {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				continue
			}
			key, value, found := strings.Cut(opt, "=")
			if !found {
				return Field{}, fmt.Errorf("money field %s: malformed tag option %q", sf.Name, opt)
			}
			switch key {
			case "default":
				f.DefaultCurrency = strings.ToUpper(value)
			case "currency_column":
				f.CurrencyColumn = value
			case "digits":
				n, err := strconv.Atoi(value)
				if err != nil {
					return Field{}, fmt.Errorf("money field %s: invalid digits %q", sf.Name, value)
				}
				f.MaxDigits = n
			case "places":
				n, err := strconv.ParseInt(value, 10, 32)
				if err != nil {
					return Field{}, fmt.Errorf("money field %s: invalid places %q", sf.Name, value)
				}
				f.DecimalPlaces = int32(n)
			default:
				return Field{}, fmt.Errorf("money field %s: unknown tag option %q", sf.Name, key)
			}
		}
	}

	if f.CurrencyColumn == "" {
		f.CurrencyColumn = f.AmountColumn + "_currency"
	}
	if f.DefaultCurrency == "" {
		if def, ok := currency.Default(); ok {
			f.DefaultCurrency = def.Code
		}
	}
	if err := f.Check(); err != nil {
		return Field{}, err
	}
	return f, nil
}

func validatorProviderOf(model any, t reflect.Type) ValidatorProvider {
	if prov, ok := model.(ValidatorProvider); ok {
		return prov
	}
	if prov, ok := reflect.New(t).Interface().(ValidatorProvider); ok {
		return prov
	}
	return nil
}

// Lookup returns the descriptor of the named money field on a model struct.
func Lookup(model any, name string) (Field, error) {
	fields, err := FieldsOf(model)
	if err != nil {
		return Field{}, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("model %T has no money field %s", model, name)
}

// Check validates the field configuration itself. Misconfiguration is a
// programming error, surfaced before any value flows through the field.
func (f Field) Check() error {
	if f.Name == "" {
		return fmt.Errorf("money field has no name")
	}
	if f.MaxDigits <= 0 {
		return fmt.Errorf("money field %s: max digits must be positive, got %d", f.Name, f.MaxDigits)
	}
	if f.DecimalPlaces < 0 || int(f.DecimalPlaces) > f.MaxDigits {
		return fmt.Errorf("money field %s: decimal places %d out of range for %d digits", f.Name, f.DecimalPlaces, f.MaxDigits)
	}
	if f.DefaultCurrency != "" && !currency.Valid(f.DefaultCurrency) {
		return fmt.Errorf("money field %s: %w: %q", f.Name, currency.ErrUnknownCurrency, f.DefaultCurrency)
	}
	return nil
}

// Columns returns the amount and currency column names.
func (f Field) Columns() (amount, currencyCode string) {
	return f.AmountColumn, f.CurrencyColumn
}

// StoreValues converts a value into the two driver values for an INSERT or
// UPDATE. Amounts are rounded to the field's decimal places on the way out.
// A null value stores a NULL amount (only when the field is nullable) while
// the currency column keeps the field's default currency, so the row shape
// stays stable across null and non-null values.
func (f Field) StoreValues(v money.NullMoney) (amount, currencyCode any, err error) {
	if !v.Valid {
		if !f.Nullable {
			return nil, nil, fmt.Errorf("money field %s is not nullable", f.Name)
		}
		if f.DefaultCurrency != "" {
			return nil, f.DefaultCurrency, nil
		}
		return nil, nil, nil
	}
	code := v.Money.CurrencyCode()
	if code == "" {
		return nil, nil, fmt.Errorf("money field %s: value has no currency", f.Name)
	}
	return v.Money.Amount().Round(f.DecimalPlaces), code, nil
}

// Compose is the database-to-value hook: it assembles a value from the two
// scanned columns. A NULL amount yields a null money regardless of the
// currency column; a missing currency falls back to the field default.
func (f Field) Compose(amount decimal.NullDecimal, code sql.NullString) (money.NullMoney, error) {
	if !amount.Valid {
		return money.NullMoney{}, nil
	}
	c := strings.TrimSpace(code.String)
	if !code.Valid || c == "" {
		c = f.DefaultCurrency
	}
	if c == "" {
		return money.NullMoney{}, fmt.Errorf("money field %s: row has no currency and the field has no default", f.Name)
	}
	m, err := money.New(amount.Decimal, c)
	if err != nil {
		return money.NullMoney{}, fmt.Errorf("money field %s: %w", f.Name, err)
	}
	return money.NullOf(m), nil
}

// ScanTargets returns scan destinations for the amount and currency columns,
// in that order, plus a compose func that assembles the value once the row
// scan completed:
//
//	dests, composePrice := field.ScanTargets()
//	err := row.Scan(append([]any{&id}, dests...)...)
//	price, err := composePrice()
func (f Field) ScanTargets() (dests []any, compose func() (money.NullMoney, error)) {
	var amount decimal.NullDecimal
	var code sql.NullString
	return []any{&amount, &code}, func() (money.NullMoney, error) {
		return f.Compose(amount, code)
	}
}

// ValueOf reads the field's current value from a model instance. A plain
// money.Money field reads as a valid NullMoney.
func (f Field) ValueOf(model any) (money.NullMoney, error) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return money.NullMoney{}, fmt.Errorf("money field %s: nil model", f.Name)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return money.NullMoney{}, fmt.Errorf("money field %s: model must be a struct, got %T", f.Name, model)
	}
	fv := v.FieldByName(f.Name)
	if !fv.IsValid() {
		return money.NullMoney{}, fmt.Errorf("model %s has no field %s", v.Type().Name(), f.Name)
	}
	switch fv.Type() {
	case moneyType:
		return money.NullOf(fv.Interface().(money.Money)), nil
	case nullMoneyType:
		return fv.Interface().(money.NullMoney), nil
	}
	return money.NullMoney{}, fmt.Errorf("field %s on model %s is not a money field", f.Name, v.Type().Name())
}

// SetValue writes a value into the field on a model struct pointer. Null can
// only be assigned to nullable fields.
func (f Field) SetValue(model any, v money.NullMoney) error {
	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("money field %s: model must be a struct pointer, got %T", f.Name, model)
	}
	fv := rv.Elem().FieldByName(f.Name)
	if !fv.IsValid() {
		return fmt.Errorf("model %s has no field %s", rv.Elem().Type().Name(), f.Name)
	}
	if !fv.CanSet() {
		return fmt.Errorf("field %s on model %s cannot be set", f.Name, rv.Elem().Type().Name())
	}
	switch fv.Type() {
	case moneyType:
		if !v.Valid {
			return fmt.Errorf("cannot assign null to non-nullable money field %s", f.Name)
		}
		fv.Set(reflect.ValueOf(v.Money))
		return nil
	case nullMoneyType:
		fv.Set(reflect.ValueOf(v))
		return nil
	}
	return fmt.Errorf("field %s on model %s is not a money field", f.Name, rv.Elem().Type().Name())
}

// WireName returns the external name of a struct field: the json tag when one
// is present, otherwise the snake_case form of the Go name.
func WireName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return snakeCase(sf.Name)
}

func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			startsWord := i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1])))
			if startsWord {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
