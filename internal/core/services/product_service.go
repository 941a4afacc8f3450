package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	portsrepo "github.com/warestock/warehouse_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
	"github.com/warestock/warehouse_ledger_app/internal/middleware"
)

const defaultProductPageLimit = 20

// productService is the product registry. It never touches stock fields
// beyond initializing them to zero; those belong to the reconciliation engine.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new product registry service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct registers a new product with a zeroed stock snapshot.
// The code is a unique business key across active and inactive products.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.StatusActive
	if req.Status != "" {
		parsed, err := domain.ParseProductStatus(req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		status = parsed
	}
	if req.RestockLevel == nil || *req.RestockLevel < 0 {
		return nil, fmt.Errorf("%w: restock level is required and must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:        uuid.NewString(),
		Code:             req.Code,
		SKU:              req.SKU,
		Image:            req.Image,
		CategoryName:     req.CategoryName,
		Vendor:           req.Vendor,
		Status:           status,
		LastPurchaseCost: decimal.Zero,
		StockSnapshot: domain.StockSnapshot{
			RestockLevel: *req.RestockLevel,
		},
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: creatorID,
			UpdatedAt: now,
			UpdatedBy: creatorID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate product code", slog.String("code", req.Code))
			return nil, fmt.Errorf("%w: product code %s", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("code", product.Code))
	return &product, nil
}

// GetProductByID retrieves a specific product.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves a filtered, paginated list of products.
func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultProductPageLimit
	}

	filter := portsrepo.ProductListFilter{Vendor: params.Vendor}
	if params.Status != "" {
		status, err := domain.ParseProductStatus(params.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Status = status
	}

	products, nextToken, err := s.productRepo.ListProducts(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &dto.ListProductsResponse{
		Products:  dto.ToProductResponses(products),
		NextToken: nextToken,
	}, nil
}

// UpdateProduct updates the editable non-stock fields of a product.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrInactive, productID)
	}

	updated := false
	if req.SKU != nil {
		product.SKU = *req.SKU
		updated = true
	}
	if req.Image != nil {
		product.Image = *req.Image
		updated = true
	}
	if req.CategoryName != nil {
		product.CategoryName = *req.CategoryName
		updated = true
	}
	if req.Vendor != nil {
		product.Vendor = *req.Vendor
		updated = true
	}
	if req.RestockLevel != nil {
		if *req.RestockLevel < 0 {
			return nil, fmt.Errorf("%w: restock level must not be negative", apperrors.ErrValidation)
		}
		product.RestockLevel = *req.RestockLevel
		updated = true
	}
	if req.Status != nil {
		status, err := domain.ParseProductStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		product.Status = status
		updated = true
	}

	if !updated {
		return product, nil
	}

	now := time.Now().UTC()
	product.UpdatedAt = now
	product.UpdatedBy = updaterID

	if err := s.productRepo.UpdateProductDetails(ctx, *product); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: sku %s", apperrors.ErrDuplicate, product.SKU)
		}
		logger.Error("Failed to update product", slog.String("product_id", productID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

// DeactivateProduct soft-deletes a product. Its ledger history remains intact.
func (s *productService) DeactivateProduct(ctx context.Context, productID string, updaterID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeactivateProduct(ctx, productID, updaterID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate product", slog.String("product_id", productID), slog.String("error", err.Error()))
		}
		return fmt.Errorf("failed to deactivate product %s: %w", productID, err)
	}

	logger.Info("Product deactivated", slog.String("product_id", productID))
	return nil
}
