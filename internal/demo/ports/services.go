package ports

import (
	"context"
	"time"

	"github.com/SscSPs/money_field_kit/internal/demo/domain"
	"github.com/SscSPs/money_field_kit/internal/demo/dto"
	"github.com/SscSPs/money_field_kit/pkg/exchange"
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/shopspring/decimal"
)

// ProductReaderSvc defines read operations for product data.
type ProductReaderSvc interface {
	// GetProductByID retrieves a single product.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a page of products with token-based pagination.
	ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error)
}

// ProductWriterSvc defines write operations for product data.
type ProductWriterSvc interface {
	// CreateProduct persists a new product and returns it with generated fields set.
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// UpdateProduct persists changes to an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductPricingSvc defines currency conversion over product prices.
type ProductPricingSvc interface {
	// ConvertPrice returns the product's price converted into another currency.
	ConvertPrice(ctx context.Context, productID, toCode string) (*dto.ConvertedPriceResponse, error)
}

// ProductSvcFacade combines all product-related service interfaces.
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
	ProductPricingSvc
}

// RatesSvcFacade exposes exchange rate lookups and refreshes.
type RatesSvcFacade interface {
	// GetRate returns the conversion rate between two currencies.
	GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)

	// ListRates returns every stored rate for the active backend.
	ListRates(ctx context.Context) ([]exchange.StoredRate, error)

	// LastFetched reports when the active backend last delivered rates.
	LastFetched(ctx context.Context) (time.Time, error)

	// RefreshRates fetches fresh rates from the backend and stores them.
	RefreshRates(ctx context.Context) error
}

// RateConverter abstracts the exchange converter for the product pricing flow.
type RateConverter interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
	Convert(ctx context.Context, m money.Money, to string) (money.Money, error)
}

// ServiceContainer holds instances of all the application services. Handlers
// receive it at route registration time.
type ServiceContainer struct {
	Product ProductSvcFacade
	Rates   RatesSvcFacade
}
