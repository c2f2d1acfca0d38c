package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_field_kit/internal/apperrors"
	"github.com/SscSPs/money_field_kit/internal/demo/domain"
	"github.com/SscSPs/money_field_kit/internal/demo/dto"
	"github.com/SscSPs/money_field_kit/internal/demo/ports"
	"github.com/SscSPs/money_field_kit/internal/middleware"
	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/google/uuid"
)

// ProductService provides business logic for the product catalog.
type ProductService struct {
	productRepo ports.ProductRepository
	converter   ports.RateConverter
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo ports.ProductRepository, converter ports.RateConverter) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		converter:   converter,
	}
}

// Ensure implementation matches interface
var _ ports.ProductSvcFacade = (*ProductService)(nil)

// CreateProduct validates money invariants, assigns generated fields and
// persists a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateProductMoney(&product); err != nil {
		return nil, err
	}

	// Reject duplicate SKUs up front for a friendlier error than the DB
	// constraint violation.
	existing, err := s.productRepo.FindProductBySKU(ctx, product.SKU)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check SKU uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, product.SKU)
	}

	now := time.Now()
	product.ProductID = uuid.NewString()
	product.CreatedAt = now
	product.LastUpdatedAt = now

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("sku", product.SKU), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create product in service: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

// GetProductByID retrieves a single product.
func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		// Repository layer handles ErrNotFound mapping
		return nil, fmt.Errorf("failed to get product in service: %w", err)
	}
	return product, nil
}

// ListProducts retrieves a page of products.
func (s *ProductService) ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error) {
	products, token, err := s.productRepo.ListProducts(ctx, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list products in service: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, token, nil
}

// UpdateProduct validates money invariants and persists changes to an
// existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if product.ProductID == "" {
		return nil, fmt.Errorf("%w: product ID is required", apperrors.ErrValidation)
	}
	if err := validateProductMoney(&product); err != nil {
		return nil, err
	}

	product.LastUpdatedAt = time.Now()

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to update product", slog.String("product_id", product.ProductID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update product in service: %w", err)
	}

	logger.Info("Product updated", slog.String("product_id", product.ProductID))
	return &product, nil
}

// DeleteProduct removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product in service: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Product deleted", slog.String("product_id", productID))
	return nil
}

// ConvertPrice returns the product's price converted into another currency.
func (s *ProductService) ConvertPrice(ctx context.Context, productID, toCode string) (*dto.ConvertedPriceResponse, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product in service: %w", err)
	}

	rate, err := s.converter.Rate(ctx, product.Price.CurrencyCode(), toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion rate: %w", err)
	}

	converted, err := s.converter.Convert(ctx, product.Price, toCode)
	if err != nil {
		if errors.Is(err, currency.ErrUnknownCurrency) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to convert price: %w", err)
	}

	resp := dto.ToConvertedPriceResponse(product, converted, rate)
	return &resp, nil
}

// validateProductMoney enforces the cross-field money rules that the
// serializer cannot see: the discount must share the price currency and not
// exceed it, and the MSRP may not undercut the price within one currency.
func validateProductMoney(p *domain.Product) error {
	if p.Discount.Valid {
		if p.Discount.Money.CurrencyCode() != p.Price.CurrencyCode() {
			return fmt.Errorf("%w: discount currency %s does not match price currency %s",
				apperrors.ErrValidation, p.Discount.Money.CurrencyCode(), p.Price.CurrencyCode())
		}
		if exceeds, err := p.Discount.Money.GreaterThan(p.Price); err == nil && exceeds {
			return fmt.Errorf("%w: discount cannot exceed the price", apperrors.ErrValidation)
		}
	}
	if p.MSRP.CurrencyCode() == p.Price.CurrencyCode() {
		if below, err := p.MSRP.LessThan(p.Price); err == nil && below {
			return fmt.Errorf("%w: msrp cannot be below the price", apperrors.ErrValidation)
		}
	}
	return nil
}
