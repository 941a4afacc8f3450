package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	portsrepo "github.com/warestock/warehouse_ledger_app/internal/core/ports/repositories"
	"github.com/warestock/warehouse_ledger_app/internal/models"
	"github.com/warestock/warehouse_ledger_app/internal/utils/mapping"
	"github.com/warestock/warehouse_ledger_app/internal/utils/pagination"
)

const productColumns = `product_id, code, sku, image, category_name, vendor, status, last_purchase_cost,
	       stock_in_hand, restock_level, kevin_quantity, jayesh_quantity, retail_quantity,
	       is_active, version, created_at, created_by, updated_at, updated_by`

type PgxProductRepository struct {
	pool *pgxpool.Pool
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Code,
		&m.SKU,
		&m.Image,
		&m.CategoryName,
		&m.Vendor,
		&m.Status,
		&m.LastPurchaseCost,
		&m.StockInHand,
		&m.RestockLevel,
		&m.KevinQuantity,
		&m.JayeshQuantity,
		&m.RetailQuantity,
		&m.IsActive,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product with its zeroed stock snapshot.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ProductID,
		m.Code,
		m.SKU,
		m.Image,
		m.CategoryName,
		m.Vendor,
		m.Status,
		m.LastPurchaseCost,
		m.StockInHand,
		m.RestockLevel,
		m.KevinQuantity,
		m.JayeshQuantity,
		m.RetailQuantity,
		m.IsActive,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.UpdatedAt,
		m.UpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation on code or sku
				return fmt.Errorf("%w: product with the same code or sku already exists", apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID, version included.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1;
	`
	m, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// ListProducts retrieves a paginated list of active products using token-based pagination.
// It returns the products, a token for the next page, and an error.
func (r *PgxProductRepository) ListProducts(ctx context.Context, filter portsrepo.ProductListFilter, limit int, nextToken *string) ([]domain.Product, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
	`
	// Ordering must be stable; code is unique so it is cursor and tie-breaker at once.
	orderByClause := `ORDER BY code ASC`

	args := []interface{}{}
	filterClause := ""
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		filterClause += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.Vendor != "" {
		args = append(args, filter.Vendor)
		filterClause += " AND vendor = $" + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCode, decodeErr := pagination.DecodeStringToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCode)
		filterClause += " AND code > $" + strconv.Itoa(len(args))
	}

	query := baseQuery + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	modelProducts := make([]models.Product, 0, fetchLimit)
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		modelProducts = append(modelProducts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}

	// Determine the next token from the extra row, if present.
	var nextTokenVal *string
	results := modelProducts
	if len(modelProducts) == fetchLimit {
		results = modelProducts[:limit]
		token := pagination.EncodeStringToken(results[limit-1].Code)
		nextTokenVal = &token
	}

	return mapping.ToDomainProductSlice(results), nextTokenVal, nil
}

// ListLowStockProducts retrieves active products at or below their restock level.
func (r *PgxProductRepository) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE AND stock_in_hand <= restock_level
		ORDER BY stock_in_hand ASC, code ASC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	defer rows.Close()

	modelProducts := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan low stock product row: %w", err)
		}
		modelProducts = append(modelProducts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low stock product rows: %w", err)
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

// UpdateProductDetails updates the editable non-stock fields of a product.
// Stock columns and version are owned by the ledger repository's commit path.
func (r *PgxProductRepository) UpdateProductDetails(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		UPDATE products
		SET sku = $2, image = $3, category_name = $4, vendor = $5, status = $6,
		    restock_level = $7, updated_at = $8, updated_by = $9
		WHERE product_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.ProductID,
		m.SKU,
		m.Image,
		m.CategoryName,
		m.Vendor,
		m.Status,
		m.RestockLevel,
		m.UpdatedAt,
		m.UpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation on sku
				return fmt.Errorf("%w: another product already uses sku %s", apperrors.ErrDuplicate, m.SKU)
			}
		}
		return fmt.Errorf("failed to execute update product %s: %w", m.ProductID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeactivateProduct marks a product as inactive, leaving its ledger history intact.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, deactivatedBy string) error {
	now := time.Now().UTC()
	query := `
		UPDATE products
		SET is_active = FALSE, updated_at = $2, updated_by = $3
		WHERE product_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.pool.Exec(ctx, query, productID, now, deactivatedBy)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate product %s: %w", productID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the product doesn't exist or it was already inactive.
		_, findErr := r.FindProductByID(ctx, productID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check product status after deactivation attempt for %s: %w", productID, findErr)
		}
		// The product exists but was already inactive.
		return apperrors.ErrInactive
	}

	return nil
}
