package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	portsrepo "github.com/warestock/warehouse_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/core/services"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
)

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	service         portssvc.ProductSvcFacade
	creatorID       string
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockProductRepo)
	suite.creatorID = "tester@warestock.dev"
}

func restockLevel(v int64) *int64 {
	return &v
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Code:         "WID-001",
		SKU:          "SKU-001",
		CategoryName: "Widgets",
		Vendor:       "Acme",
		RestockLevel: restockLevel(5),
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.Equal("WID-001", product.Code)
	suite.Equal(domain.StatusActive, product.Status)
	suite.Equal(int64(0), product.StockInHand, "new products start with no stock")
	suite.Equal(int64(5), product.RestockLevel)
	suite.True(product.LastPurchaseCost.IsZero())
	suite.True(product.IsActive)
	suite.Equal(suite.creatorID, product.CreatedBy)

	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_InvalidStatus() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Code:         "WID-001",
		SKU:          "SKU-001",
		CategoryName: "Widgets",
		Vendor:       "Acme",
		Status:       "RETIRED",
		RestockLevel: restockLevel(5),
	}

	_, err := suite.service.CreateProduct(ctx, req, suite.creatorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Code:         "WID-001",
		SKU:          "SKU-001",
		CategoryName: "Widgets",
		Vendor:       "Acme",
		RestockLevel: restockLevel(0),
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateProduct(ctx, req, suite.creatorID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_AppliesOnlyProvidedFields() {
	ctx := context.Background()
	productID := uuid.NewString()
	existing := &domain.Product{
		ProductID:    productID,
		Code:         "WID-001",
		SKU:          "SKU-001",
		CategoryName: "Widgets",
		Vendor:       "Acme",
		Status:       domain.StatusActive,
		IsActive:     true,
		StockSnapshot: domain.StockSnapshot{
			StockInHand:  3,
			RestockLevel: 5,
		},
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()
	suite.mockProductRepo.On("UpdateProductDetails", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	newVendor := "Globex"
	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Vendor: &newVendor}, suite.creatorID)

	suite.Require().NoError(err)
	suite.Equal("Globex", product.Vendor)
	suite.Equal("SKU-001", product.SKU, "absent fields stay untouched")
	suite.Equal("WID-001", product.Code, "code is immutable")
	suite.Equal(int64(3), product.StockInHand, "stock never changes through updates")
	suite.Equal(suite.creatorID, product.UpdatedBy)

	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_InactiveProduct() {
	ctx := context.Background()
	productID := uuid.NewString()
	existing := &domain.Product{
		ProductID: productID,
		IsActive:  false,
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()

	newVendor := "Globex"
	_, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Vendor: &newVendor}, suite.creatorID)

	suite.ErrorIs(err, apperrors.ErrInactive)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProductDetails", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	newVendor := "Globex"
	_, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Vendor: &newVendor}, suite.creatorID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestListProducts_ParsesFilter() {
	ctx := context.Background()
	products := []domain.Product{
		{ProductID: uuid.NewString(), Code: "WID-001", Status: domain.StatusActive},
	}
	expectedFilter := portsrepo.ProductListFilter{Status: domain.StatusActive, Vendor: "Acme"}

	suite.mockProductRepo.On("ListProducts", ctx, expectedFilter, 20, (*string)(nil)).Return(products, "token-1", nil).Once()

	resp, err := suite.service.ListProducts(ctx, dto.ListProductsParams{Status: "ACTIVE", Vendor: "Acme"})

	suite.Require().NoError(err)
	suite.Len(resp.Products, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-1", *resp.NextToken)

	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDeactivateProduct() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockProductRepo.On("DeactivateProduct", ctx, productID, suite.creatorID).Return(nil).Once()

	err := suite.service.DeactivateProduct(ctx, productID, suite.creatorID)

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
