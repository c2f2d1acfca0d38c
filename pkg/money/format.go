package money

import (
	"strings"

	"github.com/SscSPs/money_field_kit/pkg/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders Money values for humans: the currency symbol (or the
// code when no symbol is known) followed by the amount rounded to the
// currency's precision, with locale-aware digit grouping. Examples with the
// default settings: "$10.00", "€1,000.00", "NOK500.00".
type Formatter struct {
	// Lang selects the locale for digit grouping. The zero Tag means
	// American English.
	Lang language.Tag
	// Registry, when set, resolves symbol and precision instead of the
	// metadata embedded in the value. Useful when currencies are
	// re-registered after values were created.
	Registry *currency.Registry
}

// DefaultFormatter is the formatter behind Money.String.
var DefaultFormatter = Formatter{Lang: language.AmericanEnglish}

// Format renders m according to the formatter's locale and registry.
func (f Formatter) Format(m Money) string {
	cur := m.currency
	if f.Registry != nil {
		if rc, err := f.Registry.Get(cur.Code); err == nil {
			cur = rc
		}
	}

	lang := f.Lang
	if lang == (language.Tag{}) {
		lang = language.AmericanEnglish
	}
	p := message.NewPrinter(lang)

	amount := m.amount.Round(cur.Precision)
	digits := p.Sprintf("%v", number.Decimal(amount.Abs().InexactFloat64(), number.Scale(int(cur.Precision))))

	prefix := cur.Symbol
	if prefix == "" {
		prefix = cur.Code
	}

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(prefix)
	b.WriteString(digits)
	return b.String()
}

// String renders m with the DefaultFormatter, e.g. "$10.00" or "NOK500.00".
func (m Money) String() string {
	return DefaultFormatter.Format(m)
}
