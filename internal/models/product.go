package models

import "github.com/shopspring/decimal"

// ProductStatus is the db-level lifecycle state of a product.
type ProductStatus string

const (
	StatusActive       ProductStatus = "ACTIVE"
	StatusDiscontinued ProductStatus = "DISCONTINUED"
	StatusOutOfStock   ProductStatus = "OUT_OF_STOCK"
)

// Product mirrors a row of the products table. The stock columns form the
// materialized snapshot; version is the optimistic concurrency token bumped
// on every committed transaction.
type Product struct {
	ProductID        string          `json:"productID"` // Primary Key (UUID)
	Code             string          `json:"code"`      // Unique index, immutable
	SKU              string          `json:"sku"`       // Unique index, editable
	Image            string          `json:"image"`     // Nullable opaque storage key
	CategoryName     string          `json:"categoryName"`
	Vendor           string          `json:"vendor"`
	Status           ProductStatus   `json:"status"`
	LastPurchaseCost decimal.Decimal `json:"lastPurchaseCost"`
	StockInHand      int64           `json:"stockInHand"`
	RestockLevel     int64           `json:"restockLevel"`
	KevinQuantity    int64           `json:"kevinQuantity"`
	JayeshQuantity   int64           `json:"jayeshQuantity"`
	RetailQuantity   int64           `json:"retailQuantity"`
	IsActive         bool            `json:"isActive"`
	Version          int64           `json:"version"`
	AuditFields
}
