package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/money_field_kit/internal/apperrors"
	"github.com/SscSPs/money_field_kit/internal/demo/domain"
	"github.com/SscSPs/money_field_kit/internal/demo/dto"
	"github.com/SscSPs/money_field_kit/internal/demo/ports"
	"github.com/SscSPs/money_field_kit/internal/middleware"
	"github.com/SscSPs/money_field_kit/pkg/exchange"
	"github.com/SscSPs/money_field_kit/pkg/serializer"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// productHandler handles HTTP requests related to products.
type productHandler struct {
	productService ports.ProductSvcFacade

	// full renders responses; input validates the money fields of create
	// bodies, partial those of update bodies. Plain fields (sku, name) bind
	// through the DTOs.
	full    *serializer.Serializer
	input   *serializer.Serializer
	partial *serializer.Serializer
}

// newProductHandler creates a new productHandler.
func newProductHandler(ps ports.ProductSvcFacade) (*productHandler, error) {
	// price_with_tax is getter-backed, so it renders in responses but is
	// never writable.
	s, err := serializer.NewModelSerializer(&domain.Product{},
		&serializer.MoneyField{Name: "price_with_tax", Source: "PriceWithTax"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build product serializer: %w", err)
	}
	input := s.Select("price", "discount", "msrp")
	return &productHandler{
		productService: ps,
		full:           s,
		input:          input,
		partial:        input.Partial(),
	}, nil
}

// RegisterProductRoutes registers routes related to products.
func RegisterProductRoutes(rg *gin.RouterGroup, productService ports.ProductSvcFacade) {
	h, err := newProductHandler(productService)
	if err != nil {
		// Only reachable when the product model is misdeclared, which is a
		// programming error caught at startup.
		panic(err)
	}

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProductByID)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deleteProduct)
		products.GET("/:productID/price", h.convertPrice)
	}
}

// bodyBytes returns the request body cached by ShouldBindBodyWith so the
// serializer can re-read it.
func bodyBytes(c *gin.Context) []byte {
	raw, _ := c.Get(gin.BodyBytesKey)
	body, _ := raw.([]byte)
	return body
}

// createProduct godoc
// @Summary Create a new product
// @Description Adds a product to the catalog. Money fields travel as an amount plus a "_currency" sibling, e.g. {"price": "10.00", "price_currency": "USD"}
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Invalid input or field validation errors"
// @Failure 409 {object} map[string]string "SKU already exists"
// @Failure 500 {object} map[string]string "Failed to create product"
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	validated, err := h.input.ValidateInput(bodyBytes(c))
	if err != nil {
		var verrs serializer.Errors
		if errors.As(err, &verrs) {
			logger.Warn("Money field validation failed for CreateProduct", slog.String("error", verrs.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := domain.Product{
		SKU:  req.SKU,
		Name: req.Name,
	}
	if err := h.input.Apply(validated, &product); err != nil {
		logger.Error("Failed to apply validated money fields", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Received request to create product", slog.String("sku", req.SKU))

	createdProduct, err := h.productService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate product", slog.String("sku", req.SKU))
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Product with SKU '%s' already exists", req.SKU)})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating product", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create product in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	rep, err := h.full.Representation(createdProduct)
	if err != nil {
		logger.Error("Failed to render product", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render product"})
		return
	}

	logger.Info("Product created successfully", slog.String("product_id", createdProduct.ProductID))
	c.JSON(http.StatusCreated, rep)
}

// getProductByID godoc
// @Summary Get a product by ID
// @Description Retrieves a single product with its money fields in flat wire form
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to retrieve product"
// @Router /products/{productID} [get]
func (h *productHandler) getProductByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	logger = logger.With(slog.String("product_id", productID))
	logger.Info("Received request to get product by ID")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			logger.Error("Failed to get product from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}

	rep, err := h.full.Representation(product)
	if err != nil {
		logger.Error("Failed to render product", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render product"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// listProducts godoc
// @Summary List products
// @Description Retrieves a page of products with token-based pagination
// @Tags products
// @Produce  json
// @Param   limit query int false "Maximum number of products to return (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list products"
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListProducts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	products, nextToken, err := h.productService.ListProducts(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list products from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	resp := dto.ListProductsResponse{
		Products:  make([]dto.ProductRepresentation, len(products)),
		NextToken: nextToken,
	}
	for i := range products {
		rep, err := h.full.Representation(&products[i])
		if err != nil {
			logger.Error("Failed to render product", slog.String("product_id", products[i].ProductID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render products"})
			return
		}
		resp.Products[i] = rep
	}

	logger.Info("Products listed successfully", slog.Int("count", len(products)))
	c.JSON(http.StatusOK, resp)
}

// updateProduct godoc
// @Summary Update a product
// @Description Applies a partial update. Absent fields keep their stored values; money fields use the flat two-key form
// @Tags products
// @Accept  json
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Invalid input or field validation errors"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "SKU already exists"
// @Failure 500 {object} map[string]string "Failed to update product"
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")
	logger = logger.With(slog.String("product_id", productID))

	var req dto.UpdateProductRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	validated, err := h.partial.ValidateInput(bodyBytes(c))
	if err != nil {
		var verrs serializer.Errors
		if errors.As(err, &verrs) {
			logger.Warn("Money field validation failed for UpdateProduct", slog.String("error", verrs.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Partial update: fetch the stored product and layer the request on top.
	existing, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			logger.Error("Failed to get product from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}

	product := *existing
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if err := h.partial.Apply(validated, &product); err != nil {
		logger.Error("Failed to apply validated money fields", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedProduct, err := h.productService.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product disappeared during update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("SKU conflict during update")
			c.JSON(http.StatusConflict, gin.H{"error": "Product with this SKU already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating product", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update product in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	rep, err := h.full.Representation(updatedProduct)
	if err != nil {
		logger.Error("Failed to render product", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render product"})
		return
	}

	logger.Info("Product updated successfully")
	c.JSON(http.StatusOK, rep)
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Removes a product from the catalog
// @Tags products
// @Param   productID path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to delete product"
// @Router /products/{productID} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")
	logger = logger.With(slog.String("product_id", productID))

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			logger.Error("Failed to delete product in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		}
		return
	}

	logger.Info("Product deleted successfully")
	c.Status(http.StatusNoContent)
}

// convertPrice godoc
// @Summary Convert a product's price
// @Description Returns the product price converted into the requested currency using the active exchange rate backend
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   currency query string true "Target currency code (3 letters)"
// @Success 200 {object} dto.ConvertedPriceResponse
// @Failure 400 {object} map[string]string "Invalid or unknown currency"
// @Failure 404 {object} map[string]string "Product or rate not found"
// @Failure 500 {object} map[string]string "Failed to convert price"
// @Router /products/{productID}/price [get]
func (h *productHandler) convertPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	var query dto.ConvertPriceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for ConvertPrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("product_id", productID), slog.String("to_currency", query.Currency))
	logger.Info("Received request to convert product price")

	resp, err := h.productService.ConvertPrice(c.Request.Context(), productID, query.Currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else if errors.Is(err, exchange.ErrRateNotFound) {
			logger.Warn("No rate available for conversion")
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No exchange rate available for %s", query.Currency)})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error converting price", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to convert price in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert price"})
		}
		return
	}

	logger.Info("Price converted successfully")
	c.JSON(http.StatusOK, resp)
}
