package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the db-level kind of a stock movement.
type TransactionType string

const (
	TypeIn       TransactionType = "IN"
	TypeOut      TransactionType = "OUT"
	TypeAllocate TransactionType = "ALLOCATE"
)

// Transaction mirrors a row of the append-only transactions table.
// Rows are inserted once and never updated or deleted.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	ProductID       string          `json:"productID"`     // FK -> products.product_id (Not Null)
	Type            TransactionType `json:"type"`
	Quantity        int64           `json:"quantity"` // Positive
	Channel         string          `json:"channel"`  // Nullable; set for OUT and ALLOCATE
	UnitCost        decimal.Decimal `json:"unitCost"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes"`     // Nullable
	Reference       string          `json:"reference"` // Nullable
	AuditFields
}
