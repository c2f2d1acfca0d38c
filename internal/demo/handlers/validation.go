package handlers

import (
	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrency reports whether a string field holds a known currency code.
var validCurrency validator.Func = func(fl validator.FieldLevel) bool {
	code, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return currency.Valid(code)
}

// RegisterCurrencyValidation installs the "currency" rule on Gin's binding
// validator so DTOs can declare binding:"currency" on currency code fields.
// Registering twice is harmless.
func RegisterCurrencyValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validCurrency) // Only errors on an empty tag name
	}
}
