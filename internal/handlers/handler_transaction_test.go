package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
	"github.com/warestock/warehouse_ledger_app/internal/handlers"
	"github.com/warestock/warehouse_ledger_app/internal/platform/config"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorID string) (*domain.Product, error) {
	args := m.Called(ctx, req, creatorID)
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

func (m *MockProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListProductsResponse), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, updaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) DeactivateProduct(ctx context.Context, productID string, updaterID string) error {
	args := m.Called(ctx, productID, updaterID)
	return args.Error(0)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) ApplyTransaction(ctx context.Context, req dto.CreateTransactionRequest, actorID string) (*domain.Product, *domain.Transaction, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Product), args.Get(1).(*domain.Transaction), args.Error(2)
}

func (m *MockLedgerService) RepairSnapshot(ctx context.Context, productID string, actorID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockLedgerService) Replay(ctx context.Context, productID string) (*dto.ReplayResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReplayResponse), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) ListLowStock(ctx context.Context) (*dto.LowStockResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LowStockResponse), args.Error(1)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockProductService   *MockProductService
	mockLedgerService    *MockLedgerService
	mockReportingService *MockReportingService
	jwtSecret            string
	actorEmail           string
}

// generateTestToken creates a dummy JWT carrying the actor's email claim.
func (suite *TransactionHandlerTestSuite) generateTestToken(email string) string {
	claims := jwt.MapClaims{
		"email": email,
		"iss":   "wla-test",
		"exp":   time.Now().Add(1 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.actorEmail = "tester@warestock.dev"

	suite.mockProductService = new(MockProductService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockReportingService = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger registration
	}
	rate, _ := limiter.NewRateFromFormatted("1000-M")
	limiterInstance := limiter.New(memory.NewStore(), rate)

	services := &portssvc.ServiceContainer{
		Product:   suite.mockProductService,
		Ledger:    suite.mockLedgerService,
		Reporting: suite.mockReportingService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, limiterInstance)
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestApplyTransaction_Success() {
	productID := uuid.NewString()
	body := map[string]any{
		"productID": productID,
		"type":      "IN",
		"quantity":  5,
		"unitCost":  "2.50",
	}

	committed := &domain.Transaction{
		TransactionID: uuid.NewString(),
		ProductID:     productID,
		Type:          domain.TypeIn,
		Quantity:      5,
		UnitCost:      decimal.NewFromFloat(2.50),
	}
	product := &domain.Product{
		ProductID: productID,
		Code:      "WID-001",
		Status:    domain.StatusActive,
		IsActive:  true,
		StockSnapshot: domain.StockSnapshot{
			StockInHand: 5,
		},
	}

	suite.mockLedgerService.On("ApplyTransaction",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.ProductID == productID && r.Type == "IN" && r.Quantity == 5
		}),
		suite.actorEmail,
	).Return(product, committed, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", body, suite.generateTestToken(suite.actorEmail))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ApplyTransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(committed.TransactionID, resp.Transaction.TransactionID)
	suite.Equal(int64(5), resp.Product.StockInHand)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestApplyTransaction_RequiresToken() {
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"productID": uuid.NewString(),
		"type":      "IN",
		"quantity":  1,
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ApplyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestApplyTransaction_RejectsUnknownTypeAtBinding() {
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"productID": uuid.NewString(),
		"type":      "TRANSFER",
		"quantity":  1,
	}, suite.generateTestToken(suite.actorEmail))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ApplyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestApplyTransaction_InsufficientStock() {
	productID := uuid.NewString()

	suite.mockLedgerService.On("ApplyTransaction", mock.Anything, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.actorEmail).
		Return(nil, nil, apperrors.ErrInsufficientStock).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"productID": productID,
		"type":      "OUT",
		"quantity":  3,
		"channel":   "RETAIL",
	}, suite.generateTestToken(suite.actorEmail))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestApplyTransaction_ConflictAfterRetries() {
	suite.mockLedgerService.On("ApplyTransaction", mock.Anything, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.actorEmail).
		Return(nil, nil, apperrors.ErrConflict).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"productID": uuid.NewString(),
		"type":      "IN",
		"quantity":  1,
	}, suite.generateTestToken(suite.actorEmail))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	productID := uuid.NewString()
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), ProductID: productID, Type: "IN", Quantity: 5},
		},
	}

	suite.mockLedgerService.On("ListTransactions",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.ProductID == productID && p.Limit == 10
		}),
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?productID="+productID+"&limit=10", nil, suite.generateTestToken(suite.actorEmail))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestLowStockReport_Success() {
	expected := &dto.LowStockResponse{
		Products: []dto.ProductResponse{
			{ProductID: uuid.NewString(), Code: "WID-001", StockInHand: 1, RestockLevel: 5},
		},
	}
	suite.mockReportingService.On("ListLowStock", mock.Anything).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/reports/low-stock", nil, suite.generateTestToken(suite.actorEmail))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LowStockResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Products, 1)
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
