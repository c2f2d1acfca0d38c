package domain

import (
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/SscSPs/money_field_kit/pkg/moneyfield"
	"github.com/shopspring/decimal"
)

// taxRate is the flat tax applied by PriceWithTax.
var taxRate = decimal.NewFromFloat(0.08)

// Product represents a catalog item priced in a single currency, with an
// optional discount and a manufacturer suggested retail price. The money
// tags drive the two-column persistence mapping and the serializer defaults.
type Product struct {
	ProductID string `db:"product_id" json:"productID"`
	SKU       string `db:"sku" json:"sku"`
	Name      string `db:"name" json:"name"`

	Price    money.Money     `db:"price" json:"price" money:"default=USD,digits=12,places=2"`
	Discount money.NullMoney `db:"discount" json:"discount" money:"default=USD,digits=12,places=2"`
	MSRP     money.Money     `db:"msrp" json:"msrp" money:"default=USD,digits=12,places=2"`

	AuditFields
}

// PriceWithTax returns the list price with the flat tax applied, rounded to
// the price currency's precision.
func (p *Product) PriceWithTax() money.Money {
	return p.Price.Mul(decimal.NewFromInt(1).Add(taxRate)).Round()
}

// EffectivePrice returns the price minus the discount when one is set and
// shares the price currency. Mismatched discount currencies are ignored here;
// the service layer rejects them before persistence.
func (p *Product) EffectivePrice() money.Money {
	if !p.Discount.Valid {
		return p.Price
	}
	effective, err := p.Price.Sub(p.Discount.Money)
	if err != nil {
		return p.Price
	}
	return effective
}

// MoneyValidators attaches per-field validation rules picked up by the
// moneyfield discovery and, through it, by model serializers.
func (p Product) MoneyValidators() map[string][]moneyfield.Validator {
	return map[string][]moneyfield.Validator{
		"Price": {moneyfield.MinAmount(decimal.Zero)},
		"MSRP": {moneyfield.MinPerCurrency(map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("0.01"),
			"EUR": decimal.RequireFromString("0.01"),
			"JPY": decimal.NewFromInt(1),
		})},
	}
}
