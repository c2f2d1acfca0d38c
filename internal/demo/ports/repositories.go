package ports

import (
	"context"

	"github.com/SscSPs/money_field_kit/internal/demo/domain"
)

// ProductReaderRepo defines read operations for product data.
type ProductReaderRepo interface {
	// FindProductByID retrieves a product by its ID.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductBySKU retrieves a product by its SKU.
	FindProductBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// ListProducts retrieves a page of products ordered by creation time,
	// newest first, using token-based pagination.
	ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error)
}

// ProductWriterRepo defines write operations for product data.
type ProductWriterRepo interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct persists changes to an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product by its ID.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductRepository combines all product repository interfaces.
type ProductRepository interface {
	ProductReaderRepo
	ProductWriterRepo
}
