package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/money_field_kit/internal/apperrors"
	"github.com/SscSPs/money_field_kit/internal/demo/domain"
	"github.com/SscSPs/money_field_kit/internal/demo/dto"
	"github.com/SscSPs/money_field_kit/internal/demo/handlers"
	"github.com/SscSPs/money_field_kit/internal/demo/ports"
	"github.com/SscSPs/money_field_kit/pkg/exchange"
	"github.com/SscSPs/money_field_kit/pkg/money"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return products, token, args.Error(2)
}
func (m *MockProductService) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}
func (m *MockProductService) ConvertPrice(ctx context.Context, productID, toCode string) (*dto.ConvertedPriceResponse, error) {
	args := m.Called(ctx, productID, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConvertedPriceResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ ports.ProductSvcFacade = (*MockProductService)(nil)

// --- Test Suite ---
type ProductHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockProductService *MockProductService
}

func usdMoney(amount string) money.Money {
	return money.MustNew(decimal.RequireFromString(amount), "USD")
}

func eurMoney(amount string) money.Money {
	return money.MustNew(decimal.RequireFromString(amount), "EUR")
}

// testProduct returns a stored product as the service would hand it back.
func testProduct() *domain.Product {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Product{
		ProductID: uuid.NewString(),
		SKU:       "WIDGET-1",
		Name:      "Widget",
		Price:     usdMoney("19.99"),
		MSRP:      usdMoney("24.99"),
	}
	p.CreatedAt = now
	p.LastUpdatedAt = now
	return p
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCurrencyValidation()
	suite.router = gin.New()

	suite.mockProductService = new(MockProductService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterProductRoutes(v1, suite.mockProductService)
}

func (suite *ProductHandlerTestSuite) postJSON(url, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProductHandlerTestSuite) putJSON(url, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProductHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// fieldErrors unpacks the {"errors": {...}} payload of a validation failure.
func (suite *ProductHandlerTestSuite) fieldErrors(w *httptest.ResponseRecorder) map[string][]map[string]string {
	var body struct {
		Errors map[string][]map[string]string `json:"errors"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Errors
}

// --- Test Cases ---

func (suite *ProductHandlerTestSuite) TestCreateProduct_Success() {
	created := testProduct()
	suite.mockProductService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.SKU == "WIDGET-1" &&
			p.Name == "Widget" &&
			p.Price.Equal(usdMoney("19.99")) &&
			p.MSRP.Equal(usdMoney("24.99")) &&
			!p.Discount.Valid
	})).Return(created, nil).Once()

	body := `{"sku": "WIDGET-1", "name": "Widget", "price": "19.99", "price_currency": "USD", "msrp": "24.99", "msrp_currency": "USD"}`
	w := suite.postJSON("/api/v1/products", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var rep map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &rep))
	suite.Equal(created.ProductID, rep["productID"])
	suite.Equal("WIDGET-1", rep["sku"])
	suite.Equal("19.99", rep["price"])
	suite.Equal("USD", rep["price_currency"])
	suite.Equal("24.99", rep["msrp"])
	suite.Equal("USD", rep["msrp_currency"])
	// A null discount still reports the currency it would be denominated in.
	suite.Nil(rep["discount"])
	suite.Equal("USD", rep["discount_currency"])

	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_DefaultCurrencyApplies() {
	created := testProduct()
	suite.mockProductService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.Price.CurrencyCode() == "USD" && p.Price.Equal(usdMoney("19.99"))
	})).Return(created, nil).Once()

	// No price_currency sibling: the model default kicks in.
	body := `{"sku": "WIDGET-1", "name": "Widget", "price": "19.99", "msrp": "24.99"}`
	w := suite.postJSON("/api/v1/products", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_MissingPrice() {
	body := `{"sku": "WIDGET-1", "name": "Widget", "msrp": "24.99", "msrp_currency": "USD"}`
	w := suite.postJSON("/api/v1/products", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	errs := suite.fieldErrors(w)
	suite.Require().NotEmpty(errs["price"])
	suite.Equal("required", errs["price"][0]["code"])
	suite.mockProductService.AssertNotCalled(suite.T(), "CreateProduct")
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_InvalidCurrency() {
	body := `{"sku": "WIDGET-1", "name": "Widget", "price": "19.99", "price_currency": "ZZZ", "msrp": "24.99", "msrp_currency": "USD"}`
	w := suite.postJSON("/api/v1/products", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	errs := suite.fieldErrors(w)
	suite.Require().NotEmpty(errs["price"])
	suite.Equal("invalid_currency", errs["price"][0]["code"])
	suite.mockProductService.AssertNotCalled(suite.T(), "CreateProduct")
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_NegativePrice() {
	body := `{"sku": "WIDGET-1", "name": "Widget", "price": "-5.00", "price_currency": "USD", "msrp": "24.99", "msrp_currency": "USD"}`
	w := suite.postJSON("/api/v1/products", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	errs := suite.fieldErrors(w)
	suite.Require().NotEmpty(errs["price"])
	suite.Equal("min_value", errs["price"][0]["code"])
	suite.mockProductService.AssertNotCalled(suite.T(), "CreateProduct")
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_MissingSKU() {
	body := `{"name": "Widget", "price": "19.99", "price_currency": "USD", "msrp": "24.99", "msrp_currency": "USD"}`
	w := suite.postJSON("/api/v1/products", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid request format")
	suite.mockProductService.AssertNotCalled(suite.T(), "CreateProduct")
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_DuplicateSKU() {
	suite.mockProductService.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: product with SKU WIDGET-1 already exists", apperrors.ErrDuplicate)).Once()

	body := `{"sku": "WIDGET-1", "name": "Widget", "price": "19.99", "price_currency": "USD", "msrp": "24.99", "msrp_currency": "USD"}`
	w := suite.postJSON("/api/v1/products", body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestGetProduct_Success() {
	product := testProduct()
	product.Discount = money.NullOf(usdMoney("2.00"))
	suite.mockProductService.On("GetProductByID", mock.Anything, product.ProductID).Return(product, nil).Once()

	w := suite.get("/api/v1/products/" + product.ProductID)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var rep map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &rep))
	suite.Equal("19.99", rep["price"])
	suite.Equal("USD", rep["price_currency"])
	suite.Equal("2.00", rep["discount"])
	suite.Equal("USD", rep["discount_currency"])
	suite.Equal("Widget", rep["name"])
	// Getter-backed field: rendered, never writable. 19.99 plus 8% tax.
	suite.Equal("21.59", rep["price_with_tax"])
	suite.Equal("USD", rep["price_with_tax_currency"])

	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestGetProduct_NotFound() {
	productID := uuid.NewString()
	suite.mockProductService.On("GetProductByID", mock.Anything, productID).
		Return(nil, fmt.Errorf("%w: product not found", apperrors.ErrNotFound)).Once()

	w := suite.get("/api/v1/products/" + productID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestListProducts_Success() {
	first := testProduct()
	second := testProduct()
	second.SKU = "WIDGET-2"
	nextToken := "next-page-token"

	suite.mockProductService.On("ListProducts", mock.Anything, 10, (*string)(nil)).
		Return([]domain.Product{*first, *second}, &nextToken, nil).Once()

	w := suite.get("/api/v1/products?limit=10")

	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.ListProductsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Products, 2)
	suite.Equal("WIDGET-1", resp.Products[0]["sku"])
	suite.Equal("WIDGET-2", resp.Products[1]["sku"])
	suite.Equal("19.99", resp.Products[0]["price"])
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)

	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestListProducts_LimitTooLarge() {
	w := suite.get("/api/v1/products?limit=200")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "ListProducts")
}

func (suite *ProductHandlerTestSuite) TestUpdateProduct_PartialPrice() {
	existing := testProduct()
	updated := *existing
	updated.Price = usdMoney("15.00")

	suite.mockProductService.On("GetProductByID", mock.Anything, existing.ProductID).Return(existing, nil).Once()
	suite.mockProductService.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		// Only the price changes; everything else survives from the stored product.
		return p.ProductID == existing.ProductID &&
			p.SKU == existing.SKU &&
			p.Price.Equal(usdMoney("15.00")) &&
			p.MSRP.Equal(existing.MSRP)
	})).Return(&updated, nil).Once()

	w := suite.putJSON("/api/v1/products/"+existing.ProductID, `{"price": "15.00"}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var rep map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &rep))
	suite.Equal("15.00", rep["price"])
	suite.Equal("USD", rep["price_currency"])

	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestUpdateProduct_InvalidMoney() {
	existing := testProduct()

	w := suite.putJSON("/api/v1/products/"+existing.ProductID, `{"price": "1.999"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	errs := suite.fieldErrors(w)
	suite.Require().NotEmpty(errs["price"])
	suite.Equal("invalid", errs["price"][0]["code"])
	suite.mockProductService.AssertNotCalled(suite.T(), "UpdateProduct")
}

func (suite *ProductHandlerTestSuite) TestUpdateProduct_NotFound() {
	productID := uuid.NewString()
	suite.mockProductService.On("GetProductByID", mock.Anything, productID).
		Return(nil, fmt.Errorf("%w: product not found", apperrors.ErrNotFound)).Once()

	w := suite.putJSON("/api/v1/products/"+productID, `{"price": "15.00"}`)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "UpdateProduct")
}

func (suite *ProductHandlerTestSuite) TestDeleteProduct_Success() {
	productID := uuid.NewString()
	suite.mockProductService.On("DeleteProduct", mock.Anything, productID).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/products/"+productID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestDeleteProduct_NotFound() {
	productID := uuid.NewString()
	suite.mockProductService.On("DeleteProduct", mock.Anything, productID).
		Return(fmt.Errorf("%w: product not found", apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/products/"+productID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestConvertPrice_Success() {
	product := testProduct()
	expected := &dto.ConvertedPriceResponse{
		ProductID: product.ProductID,
		SKU:       product.SKU,
		Price:     product.Price,
		Converted: eurMoney("17.99"),
		Rate:      decimal.RequireFromString("0.9"),
	}
	suite.mockProductService.On("ConvertPrice", mock.Anything, product.ProductID, "EUR").Return(expected, nil).Once()

	w := suite.get("/api/v1/products/" + product.ProductID + "/price?currency=EUR")

	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.ConvertedPriceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(product.ProductID, resp.ProductID)
	suite.True(resp.Converted.Equal(eurMoney("17.99")))
	suite.True(resp.Rate.Equal(decimal.RequireFromString("0.9")))

	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestConvertPrice_UnknownCurrencyParam() {
	productID := uuid.NewString()

	w := suite.get("/api/v1/products/" + productID + "/price?currency=ZZZ")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "ConvertPrice")
}

func (suite *ProductHandlerTestSuite) TestConvertPrice_MissingCurrencyParam() {
	productID := uuid.NewString()

	w := suite.get("/api/v1/products/" + productID + "/price")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "ConvertPrice")
}

func (suite *ProductHandlerTestSuite) TestConvertPrice_RateNotFound() {
	productID := uuid.NewString()
	suite.mockProductService.On("ConvertPrice", mock.Anything, productID, "EUR").
		Return(nil, fmt.Errorf("failed to get conversion rate: %w", exchange.ErrRateNotFound)).Once()

	w := suite.get("/api/v1/products/" + productID + "/price?currency=EUR")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProductService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestProductHandler(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
