package moneyfield

import (
	"fmt"
	"reflect"
)

// SourceKind says how a logical field name resolved against a model type.
type SourceKind int

const (
	// SourceField reads a struct field.
	SourceField SourceKind = iota + 1
	// SourceGetter calls a zero-argument method. Getter-backed sources are
	// read only.
	SourceGetter
)

// Source binds a logical field name to a struct field or a getter method on
// a model type. It is resolved once, when a serializer is built, so a name
// that matches nothing fails at construction instead of on the first request.
type Source struct {
	Model reflect.Type
	Name  string
	Kind  SourceKind

	index  []int // struct field index path, SourceField only
	method int   // method index on *Model, SourceGetter only
}

// ResolveSource maps name to an exported struct field or, failing that, a
// zero-argument single-result method on modelType. Methods stand in for
// computed properties such as a derived total.
func ResolveSource(modelType reflect.Type, name string) (Source, error) {
	t := modelType
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return Source{}, fmt.Errorf("model type %v is not a struct", modelType)
	}

	if sf, ok := t.FieldByName(name); ok && sf.IsExported() {
		return Source{Model: t, Name: name, Kind: SourceField, index: sf.Index}, nil
	}

	if m, ok := reflect.PointerTo(t).MethodByName(name); ok && m.Type.NumIn() == 1 && m.Type.NumOut() == 1 {
		return Source{Model: t, Name: name, Kind: SourceGetter, method: m.Index}, nil
	}

	return Source{}, fmt.Errorf("%s is neither a db field nor a property on the model %s", name, t.Name())
}

// ReadOnly reports whether the source can only be read, never assigned.
func (s Source) ReadOnly() bool {
	return s.Kind == SourceGetter
}

// StructField returns the resolved struct field, for sources of kind
// SourceField.
func (s Source) StructField() (reflect.StructField, bool) {
	if s.Kind != SourceField {
		return reflect.StructField{}, false
	}
	return s.Model.FieldByIndex(s.index), true
}

// Value reads the sourced attribute off a model instance, given either as a
// value or a pointer.
func (s Source) Value(model any) (any, error) {
	rv, err := s.instance(model)
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case SourceField:
		return rv.Elem().FieldByIndex(s.index).Interface(), nil
	case SourceGetter:
		out := rv.Method(s.method).Call(nil)
		return out[0].Interface(), nil
	}
	return nil, fmt.Errorf("source %s is unresolved", s.Name)
}

// Assign writes a value into the sourced struct field. The model must be a
// struct pointer and the source must not be read only.
func (s Source) Assign(model any, value any) error {
	if s.ReadOnly() {
		return fmt.Errorf("source %s on model %s is read only", s.Name, s.Model.Name())
	}
	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Type() != s.Model {
		return fmt.Errorf("model must be a *%s, got %T", s.Model.Name(), model)
	}
	fv := rv.Elem().FieldByIndex(s.index)
	val := reflect.ValueOf(value)
	if !val.IsValid() || !val.Type().AssignableTo(fv.Type()) {
		return fmt.Errorf("cannot assign %T to %s on model %s", value, s.Name, s.Model.Name())
	}
	fv.Set(val)
	return nil
}

// instance normalizes model to an addressable *Model so getter methods with
// pointer receivers work for values too.
func (s Source) instance(model any) (reflect.Value, error) {
	rv := reflect.ValueOf(model)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("source %s: nil model", s.Name)
		}
		if rv.Elem().Type() != s.Model {
			return reflect.Value{}, fmt.Errorf("model is %s, want %s", rv.Elem().Type(), s.Model)
		}
		return rv, nil
	}
	if !rv.IsValid() || rv.Type() != s.Model {
		return reflect.Value{}, fmt.Errorf("model is %T, want %s", model, s.Model)
	}
	p := reflect.New(s.Model)
	p.Elem().Set(rv)
	return p, nil
}
