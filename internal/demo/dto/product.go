package dto

import (
	"github.com/SscSPs/money_field_kit/internal/demo/domain"
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/shopspring/decimal"
)

// CreateProductRequest carries the plain fields of a product create call.
// The money fields (price, discount, msrp plus their *_currency siblings)
// ride in the same body and are validated by the product serializer rather
// than by binding tags.
type CreateProductRequest struct {
	SKU  string `json:"sku" binding:"required,max=64"`
	Name string `json:"name" binding:"required,max=255"`
}

// UpdateProductRequest carries the updatable plain fields. Everything is
// optional; absent keys leave the stored value untouched.
type UpdateProductRequest struct {
	SKU  *string `json:"sku" binding:"omitempty,max=64"`
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// ListProductsParams holds the query parameters for product listing.
type ListProductsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ProductRepresentation is the flat wire form produced by the product
// serializer: every money field appears as "<name>" plus "<name>_currency".
type ProductRepresentation = map[string]any

// ListProductsResponse wraps a page of product representations.
type ListProductsResponse struct {
	Products  []ProductRepresentation `json:"products"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ConvertPriceQuery selects the target currency for a price conversion.
// The currency rule is registered with the binding validator at startup.
type ConvertPriceQuery struct {
	Currency string `form:"currency" binding:"required,currency"`
}

// ConvertedPriceResponse returns a product price converted into another
// currency together with the rate that was applied.
type ConvertedPriceResponse struct {
	ProductID string          `json:"productID"`
	SKU       string          `json:"sku"`
	Price     money.Money     `json:"price"`
	Converted money.Money     `json:"converted"`
	Rate      decimal.Decimal `json:"rate"`
}

// ToConvertedPriceResponse builds the conversion response for a product.
func ToConvertedPriceResponse(p *domain.Product, converted money.Money, rate decimal.Decimal) ConvertedPriceResponse {
	return ConvertedPriceResponse{
		ProductID: p.ProductID,
		SKU:       p.SKU,
		Price:     p.Price,
		Converted: converted,
		Rate:      rate,
	}
}
