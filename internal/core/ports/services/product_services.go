package services

import (
	"context"

	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
)

// ProductReaderSvc defines read operations for product data.
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its ID.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a filtered, paginated list of products.
	ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error)
}

// ProductWriterSvc defines write operations for product data.
type ProductWriterSvc interface {
	// CreateProduct registers a new product with a zeroed stock snapshot.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorID string) (*domain.Product, error)

	// UpdateProduct updates a product's editable non-stock fields.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterID string) (*domain.Product, error)

	// DeactivateProduct soft-deletes a product.
	DeactivateProduct(ctx context.Context, productID string, updaterID string) error
}

// ProductSvcFacade combines all product service interfaces.
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
