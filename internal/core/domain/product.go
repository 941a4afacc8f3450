package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle state of a product.
type ProductStatus string

const (
	StatusActive       ProductStatus = "ACTIVE"
	StatusDiscontinued ProductStatus = "DISCONTINUED"
	StatusOutOfStock   ProductStatus = "OUT_OF_STOCK"
)

// ParseProductStatus validates a caller-supplied status string at the boundary.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch ProductStatus(s) {
	case StatusActive, StatusDiscontinued, StatusOutOfStock:
		return ProductStatus(s), nil
	}
	return "", fmt.Errorf("unknown product status %q", s)
}

// Product is a warehouse item together with its materialized stock snapshot.
// The snapshot is a cache of the fold over the product's ledger; it is only
// ever mutated by applying transactions, never written directly by callers.
type Product struct {
	ProductID        string          `json:"productID"` // Primary key (UUID), immutable
	Code             string          `json:"code"`      // Unique, immutable business key
	SKU              string          `json:"sku"`       // Unique, editable
	Image            string          `json:"image"`     // Opaque asset storage key, resolved externally
	CategoryName     string          `json:"categoryName"`
	Vendor           string          `json:"vendor"`
	Status           ProductStatus   `json:"status"`
	LastPurchaseCost decimal.Decimal `json:"lastPurchaseCost"`
	StockSnapshot
	IsActive bool `json:"isActive"` // Soft-delete flag; history is never removed
	AuditFields

	// Version is the optimistic concurrency token of the snapshot row.
	// Storage concern only; bumped on every committed transaction.
	Version int64 `json:"-"`
}
