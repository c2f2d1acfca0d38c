// Package currency defines ISO 4217 currency metadata and the registry that
// the money types resolve currency codes against.
package currency

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownCurrency indicates a code that is not present in the registry.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency describes a single ISO 4217 currency, or a custom one added via
// Register (tokens, loyalty points, test currencies).
type Currency struct {
	Code        string // 3-letter alphabetic code, e.g. "USD"
	NumericCode string // 3-digit numeric code, e.g. "840"
	Precision   int32  // digits after the decimal point, e.g. 2 for USD, 0 for JPY
	Symbol      string // display symbol; empty means formatting falls back to Code
	Name        string // English name
}

// Registry holds the set of currencies a process accepts plus the default
// currency used when a money field resolves no explicit code. Registries are
// safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	byCode      map[string]Currency
	defaultCode string
}

// NewRegistry returns a registry seeded with the built-in ISO 4217 table and
// no default currency.
func NewRegistry() *Registry {
	r := &Registry{byCode: make(map[string]Currency, len(isoTable))}
	for _, c := range isoTable {
		r.byCode[c.Code] = c
	}
	return r
}

// Get retrieves a currency by its code. Codes are case-insensitive.
func (r *Registry) Get(code string) (Currency, error) {
	norm := normalizeCode(code)

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byCode[norm]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// Valid reports whether code resolves to a registered currency.
func (r *Registry) Valid(code string) bool {
	_, err := r.Get(code)
	return err == nil
}

// Register adds or replaces a currency. The code must be at least three
// characters; it is stored uppercased.
func (r *Registry) Register(c Currency) error {
	c.Code = normalizeCode(c.Code)
	if len(c.Code) < 3 {
		return fmt.Errorf("currency code %q must be at least 3 characters", c.Code)
	}
	if c.Precision < 0 {
		return fmt.Errorf("currency %s precision must not be negative", c.Code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCode[c.Code] = c
	return nil
}

// SetDefault selects the registry-wide default currency. The code must
// already be registered.
func (r *Registry) SetDefault(code string) error {
	norm := normalizeCode(code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCode[norm]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	r.defaultCode = norm
	return nil
}

// ClearDefault removes the registry default, if any.
func (r *Registry) ClearDefault() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultCode = ""
}

// Default returns the registry default currency, and false when none is set.
func (r *Registry) Default() (Currency, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.defaultCode == "" {
		return Currency{}, false
	}
	c, ok := r.byCode[r.defaultCode]
	return c, ok
}

// Codes returns all registered codes in lexical order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DefaultRegistry is the process-wide registry shared by the money types.
// Applications that need isolated currency sets construct their own Registry
// and pass it explicitly.
var DefaultRegistry = NewRegistry()

// Get retrieves a currency from the default registry.
func Get(code string) (Currency, error) {
	return DefaultRegistry.Get(code)
}

// MustGet is Get, panicking on unknown codes. Intended for static
// initialization paths only.
func MustGet(code string) Currency {
	c, err := DefaultRegistry.Get(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether code resolves in the default registry.
func Valid(code string) bool {
	return DefaultRegistry.Valid(code)
}

// Register adds a currency to the default registry.
func Register(c Currency) error {
	return DefaultRegistry.Register(c)
}

// SetDefault selects the default currency of the default registry.
func SetDefault(code string) error {
	return DefaultRegistry.SetDefault(code)
}

// Default returns the default currency of the default registry.
func Default() (Currency, bool) {
	return DefaultRegistry.Default()
}
