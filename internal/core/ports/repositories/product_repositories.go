package repositories

import (
	"context"

	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
)

// ProductListFilter narrows ListProducts results. Zero values mean "no predicate".
type ProductListFilter struct {
	Status domain.ProductStatus
	Vendor string
}

// ProductReader defines read operations for product data.
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a filtered, token-paginated list of products.
	// It returns the products, a token for the next page, and an error.
	ListProducts(ctx context.Context, filter ProductListFilter, limit int, nextToken *string) ([]domain.Product, *string, error)

	// ListLowStockProducts retrieves active products with stock in hand at or
	// below their restock level, ordered by ascending stock in hand.
	ListLowStockProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data. Stock snapshot
// fields are never written through this interface; they change only via the
// ledger repository's commit.
type ProductWriter interface {
	// SaveProduct persists a new product with a zeroed stock snapshot.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProductDetails updates the editable non-stock fields
	// (sku, image, category, vendor, restock level, status).
	UpdateProductDetails(ctx context.Context, product domain.Product) error

	// DeactivateProduct soft-deletes a product, leaving its history intact.
	DeactivateProduct(ctx context.Context, productID string, deactivatedBy string) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
