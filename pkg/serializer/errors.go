package serializer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/money_field_kit/pkg/moneyfield"
)

// Validation failure codes. Min/max reuse the moneyfield codes so issues
// raised by attached validators keep their identity.
const (
	CodeRequired        = "required"
	CodeNull            = "null"
	CodeInvalid         = "invalid"
	CodeInvalidCurrency = "invalid_currency"
	CodeMinValue        = moneyfield.CodeMinValue
	CodeMaxValue        = moneyfield.CodeMaxValue
)

// FieldError is one validation failure on one input field.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Errors maps wire field names to their validation failures. It marshals
// directly into the error payload handlers return:
//
//	{"price": [{"code": "min_value", "message": "Ensure this value is ..."}]}
type Errors map[string][]FieldError

func (e Errors) add(field, code, message string) {
	e[field] = append(e[field], FieldError{Code: code, Message: message})
}

// Error renders all failures, fields in lexical order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		msgs := make([]string, len(e[f]))
		for j, fe := range e[f] {
			msgs[j] = fe.Message
		}
		fmt.Fprintf(&b, "%s: %s", f, strings.Join(msgs, " "))
	}
	return b.String()
}

// HasCode reports whether field failed with the given code.
func (e Errors) HasCode(field, code string) bool {
	for _, fe := range e[field] {
		if fe.Code == code {
			return true
		}
	}
	return false
}
