package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/money_field_kit/internal/apperrors"
	"github.com/SscSPs/money_field_kit/internal/demo/domain"
	"github.com/SscSPs/money_field_kit/internal/demo/ports"
	"github.com/SscSPs/money_field_kit/internal/utils/pagination"
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/SscSPs/money_field_kit/pkg/moneyfield"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// productColumns lists the select columns in scanProduct order. Money fields
// occupy two columns each, amount first, per the moneyfield column layout.
const productColumns = `product_id, sku, name, price, price_currency, discount, discount_currency, msrp, msrp_currency, created_at, last_updated_at`

// PgxProductRepository persists products with pgx, delegating the
// money-to-columns mapping to the moneyfield descriptors discovered from the
// domain model.
type PgxProductRepository struct {
	BaseRepository
	price    moneyfield.Field
	discount moneyfield.Field
	msrp     moneyfield.Field
}

// NewPgxProductRepository creates a new repository for product data. It fails
// when the Product model's money tags are misdeclared, so wiring errors
// surface at startup.
func NewPgxProductRepository(pool *pgxpool.Pool) (*PgxProductRepository, error) {
	fields, err := moneyfield.FieldsOf(domain.Product{})
	if err != nil {
		return nil, fmt.Errorf("failed to discover product money fields: %w", err)
	}

	r := &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
	for _, f := range fields {
		switch f.Name {
		case "Price":
			r.price = f
		case "Discount":
			r.discount = f
		case "MSRP":
			r.msrp = f
		}
	}
	if r.price.Name == "" || r.discount.Name == "" || r.msrp.Name == "" {
		return nil, fmt.Errorf("product model is missing expected money fields")
	}
	return r, nil
}

// Ensure implementation matches interface
var _ ports.ProductRepository = (*PgxProductRepository)(nil)

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	priceAmount, priceCurrency, err := r.price.StoreValues(money.NullOf(product.Price))
	if err != nil {
		return fmt.Errorf("failed to store price for product %s: %w", product.ProductID, err)
	}
	discountAmount, discountCurrency, err := r.discount.StoreValues(product.Discount)
	if err != nil {
		return fmt.Errorf("failed to store discount for product %s: %w", product.ProductID, err)
	}
	msrpAmount, msrpCurrency, err := r.msrp.StoreValues(money.NullOf(product.MSRP))
	if err != nil {
		return fmt.Errorf("failed to store msrp for product %s: %w", product.ProductID, err)
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = r.Pool.Exec(ctx, query,
		product.ProductID,
		product.SKU,
		product.Name,
		priceAmount,
		priceCurrency,
		discountAmount,
		discountCurrency,
		msrpAmount,
		msrpCurrency,
		product.CreatedAt,
		product.LastUpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, product.SKU)
			}
		}
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}
	return nil
}

// scanProduct assembles a product from one row. rowScanner covers both
// pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PgxProductRepository) scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	priceDests, composePrice := r.price.ScanTargets()
	discountDests, composeDiscount := r.discount.ScanTargets()
	msrpDests, composeMSRP := r.msrp.ScanTargets()

	dests := []any{&p.ProductID, &p.SKU, &p.Name}
	dests = append(dests, priceDests...)
	dests = append(dests, discountDests...)
	dests = append(dests, msrpDests...)
	dests = append(dests, &p.CreatedAt, &p.LastUpdatedAt)

	if err := row.Scan(dests...); err != nil {
		return nil, err
	}

	price, err := composePrice()
	if err != nil {
		return nil, err
	}
	if !price.Valid {
		return nil, fmt.Errorf("product %s has a NULL price", p.ProductID)
	}
	p.Price = price.Money

	discount, err := composeDiscount()
	if err != nil {
		return nil, err
	}
	p.Discount = discount

	msrp, err := composeMSRP()
	if err != nil {
		return nil, err
	}
	if !msrp.Valid {
		return nil, fmt.Errorf("product %s has a NULL msrp", p.ProductID)
	}
	p.MSRP = msrp.Money

	return &p, nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	product, err := r.scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id %s: %w", productID, err)
	}
	return product, nil
}

// FindProductBySKU retrieves a product by its SKU.
func (r *PgxProductRepository) FindProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1;`

	product, err := r.scanProduct(r.Pool.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by sku %s: %w", sku, err)
	}
	return product, nil
}

// ListProducts retrieves a paginated list of products using token-based
// pagination, newest first.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + productColumns + ` FROM products`
	// Ordering must be stable; product_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, product_id DESC`

	var rows pgx.Rows
	var err error
	var args []interface{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastProductID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres.
		cursorClause := `WHERE (created_at, product_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastProductID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, fetchLimit)
	for rows.Next() {
		p, scanErr := r.scanProduct(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan product row: %w", scanErr)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	var nextTokenVal *string
	if len(products) > limit {
		last := products[limit-1] // The actual last item of the current page.
		token := pagination.EncodeCursor(last.CreatedAt, last.ProductID)
		nextTokenVal = &token
		products = products[:limit]
	}

	return products, nextTokenVal, nil
}

// UpdateProduct persists changes to an existing product. The row is locked
// inside a transaction so concurrent updates serialize.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	priceAmount, priceCurrency, err := r.price.StoreValues(money.NullOf(product.Price))
	if err != nil {
		return fmt.Errorf("failed to store price for product %s: %w", product.ProductID, err)
	}
	discountAmount, discountCurrency, err := r.discount.StoreValues(product.Discount)
	if err != nil {
		return fmt.Errorf("failed to store discount for product %s: %w", product.ProductID, err)
	}
	msrpAmount, msrpCurrency, err := r.msrp.StoreValues(money.NullOf(product.MSRP))
	if err != nil {
		return fmt.Errorf("failed to store msrp for product %s: %w", product.ProductID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	var existingID string
	err = tx.QueryRow(ctx, `SELECT product_id FROM products WHERE product_id = $1 FOR UPDATE;`, product.ProductID).Scan(&existingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock product %s for update: %w", product.ProductID, err)
	}

	query := `
		UPDATE products
		SET sku = $2, name = $3,
		    price = $4, price_currency = $5,
		    discount = $6, discount_currency = $7,
		    msrp = $8, msrp_currency = $9,
		    last_updated_at = $10
		WHERE product_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		product.ProductID,
		product.SKU,
		product.Name,
		priceAmount,
		priceCurrency,
		discountAmount,
		discountCurrency,
		msrpAmount,
		msrpCurrency,
		product.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, product.SKU)
		}
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// DeleteProduct removes a product by its ID.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
