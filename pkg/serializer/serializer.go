// Package serializer converts model values to and from the flat wire form
// where a money attribute travels as two sibling keys: the amount under the
// field name and the currency code under "<name>_currency". Validation is
// field scoped; failures carry stable codes plus user-facing messages.
package serializer

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/SscSPs/money_field_kit/pkg/moneyfield"
	"github.com/shopspring/decimal"
)

var (
	moneyType     = reflect.TypeOf(money.Money{})
	nullMoneyType = reflect.TypeOf(money.NullMoney{})
)

// Serializer validates flat wire input into internal values and renders
// model instances back out. Build one per model type at startup and share
// it; all per-request state stays on the stack.
type Serializer struct {
	// Registry resolves currency codes. Nil means the process default.
	Registry *currency.Registry

	modelType   reflect.Type
	fields      []*MoneyField
	passthrough []passthroughField
	selected    map[string]bool
	partial     bool
}

// passthroughField is a non-money model field carried through untouched.
type passthroughField struct {
	name string
	src  moneyfield.Source
	typ  reflect.Type
}

// NewSerializer builds a standalone serializer from explicit money fields,
// with no model binding: input validation only, no Representation or Apply.
func NewSerializer(fields ...*MoneyField) (*Serializer, error) {
	s := &Serializer{}
	seen := make(map[string]bool, len(fields))
	for _, in := range fields {
		f := in.clone()
		if f.Name == "" {
			return nil, fmt.Errorf("serializer field needs a Name")
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate serializer field %q", f.Name)
		}
		seen[f.Name] = true
		f.applyDefaults()
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// NewModelSerializer builds a serializer for a model struct. Every
// money.Money / money.NullMoney field becomes a wire field (digits, places,
// default currency and validators taken from its moneyfield descriptor);
// other exported fields pass through as plain JSON values.
//
// Overrides replace or extend the discovered set. An override matches a
// discovered field by Source (Go field name) or by wire name and inherits
// whatever it leaves unset; an unmatched override must resolve against the
// model as a struct field or a zero-argument getter, so a misnamed field is
// a construction error, not a request-time one.
func NewModelSerializer(model any, overrides ...*MoneyField) (*Serializer, error) {
	t := reflect.TypeOf(model)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %T", model)
	}

	mfields, err := moneyfield.FieldsOf(model)
	if err != nil {
		return nil, err
	}

	s := &Serializer{modelType: t}
	matched := make(map[*MoneyField]bool, len(overrides))
	moneySources := make(map[string]bool, len(mfields))

	for _, mf := range mfields {
		moneySources[mf.Name] = true
		sf, _ := t.FieldByName(mf.Name)
		fld := &MoneyField{
			Name:            moneyfield.WireName(sf),
			Source:          mf.Name,
			MaxDigits:       mf.MaxDigits,
			DecimalPlaces:   mf.DecimalPlaces,
			DefaultCurrency: mf.DefaultCurrency,
			Optional:        mf.Nullable,
			AllowNull:       mf.Nullable,
			Validators:      mf.Validators,
		}
		if ov := matchOverride(overrides, mf.Name, fld.Name); ov != nil {
			matched[ov] = true
			fld = mergeOverride(ov, fld)
		}
		if err := s.bindField(fld, t); err != nil {
			return nil, err
		}
	}

	for _, ov := range overrides {
		if matched[ov] {
			continue
		}
		fld := ov.clone()
		if fld.Name == "" {
			return nil, fmt.Errorf("serializer field needs a Name")
		}
		if fld.Source == "" {
			fld.Source = fld.Name
		}
		fld.applyDefaults()
		if err := s.bindField(fld, t); err != nil {
			return nil, err
		}
	}

	if err := s.collectPassthrough(t, moneySources); err != nil {
		return nil, err
	}
	return s, nil
}

// bindField resolves the field's source against the model and appends it.
func (s *Serializer) bindField(f *MoneyField, t reflect.Type) error {
	src, err := moneyfield.ResolveSource(t, f.Source)
	if err != nil {
		// Resolution failures name the wire field, not the Go attribute.
		if f.Source == f.Name {
			return err
		}
		return fmt.Errorf("field %s: %w", f.Name, err)
	}
	if src.ReadOnly() {
		// Getter-backed sources cannot be written back.
		f.ReadOnly = true
	}
	for _, existing := range s.fields {
		if existing.Name == f.Name {
			return fmt.Errorf("duplicate serializer field %q", f.Name)
		}
	}
	f.src = src
	f.srcBound = true
	f.modelName = t.Name()
	s.fields = append(s.fields, f)
	return nil
}

func (s *Serializer) collectPassthrough(t reflect.Type, moneySources map[string]bool) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Type != moneyType && sf.Type != nullMoneyType {
			if err := s.collectPassthrough(sf.Type, moneySources); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() || moneySources[sf.Name] {
			continue
		}
		if sf.Type == moneyType || sf.Type == nullMoneyType {
			continue
		}
		if tag, _ := sf.Tag.Lookup("json"); tag == "-" {
			continue
		}
		src, err := moneyfield.ResolveSource(s.modelType, sf.Name)
		if err != nil {
			return err
		}
		s.passthrough = append(s.passthrough, passthroughField{
			name: moneyfield.WireName(sf),
			src:  src,
			typ:  sf.Type,
		})
	}
	return nil
}

func matchOverride(overrides []*MoneyField, goName, wireName string) *MoneyField {
	for _, ov := range overrides {
		if ov.Source != "" {
			if ov.Source == goName {
				return ov
			}
			continue
		}
		if ov.Name == wireName {
			return ov
		}
	}
	return nil
}

// mergeOverride layers an explicit field over the model-derived one. Unset
// naming and precision inherit; flags, bounds and validators are taken from
// the override as written.
func mergeOverride(ov, auto *MoneyField) *MoneyField {
	f := ov.clone()
	if f.Name == "" {
		f.Name = auto.Name
	}
	f.Source = auto.Source
	if f.CurrencyKey == "" {
		f.CurrencyKey = auto.CurrencyKey
	}
	if f.MaxDigits == 0 {
		f.MaxDigits = auto.MaxDigits
		f.DecimalPlaces = auto.DecimalPlaces
	}
	if f.DefaultCurrency == "" {
		f.DefaultCurrency = auto.DefaultCurrency
	}
	return f
}

func (f *MoneyField) clone() *MoneyField {
	c := *f
	return &c
}

// applyDefaults fills precision for fields declared with neither digits nor
// places.
func (f *MoneyField) applyDefaults() {
	if f.MaxDigits == 0 && f.DecimalPlaces == 0 {
		f.MaxDigits = moneyfield.DefaultMaxDigits
		f.DecimalPlaces = moneyfield.DefaultDecimalPlaces
	}
}

// Select returns a copy restricted to the named wire fields, the analog of
// declaring a narrower field list. A money field's currency sibling is only
// emitted when selected itself.
func (s *Serializer) Select(names ...string) *Serializer {
	sel := make(map[string]bool, len(names))
	for _, n := range names {
		sel[n] = true
	}
	c := *s
	c.selected = sel
	return &c
}

// Partial returns a copy that treats absent fields as simply absent rather
// than required, for layering partial updates over stored values. Explicit
// nulls still validate against AllowNull.
func (s *Serializer) Partial() *Serializer {
	c := *s
	c.partial = true
	return &c
}

func (s *Serializer) included(name string) bool {
	return s.selected == nil || s.selected[name]
}

func (s *Serializer) registry() *currency.Registry {
	if s.Registry != nil {
		return s.Registry
	}
	return currency.DefaultRegistry
}

// Fields returns the serializer's money fields in declaration order.
func (s *Serializer) Fields() []*MoneyField {
	out := make([]*MoneyField, len(s.fields))
	copy(out, s.fields)
	return out
}

// Representation renders a model instance into the flat wire map. Money
// fields become "<name>": "<amount>" plus "<name>_currency": "<code>"; a
// null money renders a null amount while the sibling keeps the field's
// default currency, so clients always see which currency the attribute is
// denominated in.
func (s *Serializer) Representation(instance any) (map[string]any, error) {
	if s.modelType == nil {
		return nil, fmt.Errorf("serializer has no model")
	}

	out := make(map[string]any)
	for _, p := range s.passthrough {
		if !s.included(p.name) {
			continue
		}
		v, err := p.src.Value(instance)
		if err != nil {
			return nil, err
		}
		out[p.name] = v
	}

	for _, f := range s.fields {
		if !s.included(f.Name) {
			continue
		}
		v, err := f.src.Value(instance)
		if err != nil {
			return nil, err
		}
		nm, err := asNullMoney(f.Name, v)
		if err != nil {
			return nil, err
		}
		siblingWanted := s.selected == nil || s.selected[f.currencyKey()]
		if !nm.Valid {
			out[f.Name] = nil
			if siblingWanted && f.DefaultCurrency != "" {
				out[f.currencyKey()] = f.DefaultCurrency
			}
			continue
		}
		out[f.Name] = f.representAmount(nm.Money)
		if siblingWanted {
			out[f.currencyKey()] = nm.Money.CurrencyCode()
		}
	}
	return out, nil
}

// ValidateInput runs the full field pipeline over a JSON body and returns
// the validated values keyed by wire name: money.Money when a currency
// resolved, decimal.Decimal when none did, nil for explicit nulls. On any
// failure it returns Errors carrying every field's failures.
func (s *Serializer) ValidateInput(data []byte) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return s.ValidateFields(raw)
}

// ValidateFields is ValidateInput over pre-split raw fields.
func (s *Serializer) ValidateFields(raw map[string]json.RawMessage) (map[string]any, error) {
	errs := Errors{}
	validated := make(map[string]any)

	for _, f := range s.fields {
		if !s.included(f.Name) || f.ReadOnly {
			continue
		}
		v, present, ferrs := f.validate(raw, s.registry(), s.partial)
		if len(ferrs) > 0 {
			errs[f.Name] = append(errs[f.Name], ferrs...)
			continue
		}
		if !present {
			continue
		}
		validated[f.Name] = v
	}

	for _, p := range s.passthrough {
		if !s.included(p.name) {
			continue
		}
		rawV, ok := raw[p.name]
		if !ok {
			continue
		}
		val := reflect.New(p.typ)
		if err := json.Unmarshal(rawV, val.Interface()); err != nil {
			errs.add(p.name, CodeInvalid, "Invalid value.")
			continue
		}
		validated[p.name] = val.Elem().Interface()
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return validated, nil
}

// Apply writes validated values into a model struct pointer. Bare decimal
// amounts are denominated in the field's default currency; read-only fields
// are skipped.
func (s *Serializer) Apply(validated map[string]any, model any) error {
	if s.modelType == nil {
		return fmt.Errorf("serializer has no model")
	}

	for _, f := range s.fields {
		v, ok := validated[f.Name]
		if !ok || f.ReadOnly {
			continue
		}
		sf, isField := f.src.StructField()
		if !isField {
			continue
		}
		nm, err := f.applyValue(v, s.registry())
		if err != nil {
			return err
		}
		switch sf.Type {
		case moneyType:
			if !nm.Valid {
				return fmt.Errorf("field %s: cannot assign null to a non-nullable money field", f.Name)
			}
			if err := f.src.Assign(model, nm.Money); err != nil {
				return err
			}
		case nullMoneyType:
			if err := f.src.Assign(model, nm); err != nil {
				return err
			}
		default:
			return fmt.Errorf("field %s: source %s is not a money field", f.Name, f.Source)
		}
	}

	for _, p := range s.passthrough {
		v, ok := validated[p.name]
		if !ok {
			continue
		}
		if err := p.src.Assign(model, v); err != nil {
			return err
		}
	}
	return nil
}

// applyValue normalizes a validated entry to a NullMoney for assignment.
func (f *MoneyField) applyValue(v any, reg *currency.Registry) (money.NullMoney, error) {
	switch val := v.(type) {
	case nil:
		return money.NullMoney{}, nil
	case money.Money:
		return money.NullOf(val), nil
	case decimal.Decimal:
		if f.DefaultCurrency == "" {
			return money.NullMoney{}, fmt.Errorf("field %s: amount has no currency and the field has no default", f.Name)
		}
		c, err := reg.Get(f.DefaultCurrency)
		if err != nil {
			return money.NullMoney{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		return money.NullOf(money.OfCurrency(val, c)), nil
	}
	return money.NullMoney{}, fmt.Errorf("field %s: unexpected validated value %T", f.Name, v)
}

func asNullMoney(name string, v any) (money.NullMoney, error) {
	switch val := v.(type) {
	case money.Money:
		return money.NullOf(val), nil
	case money.NullMoney:
		return val, nil
	}
	return money.NullMoney{}, fmt.Errorf("field %s: source value %T is not a money value", name, v)
}
