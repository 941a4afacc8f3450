package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of stock movement a transaction records.
type TransactionType string

const (
	// TypeIn is an unattributed intake into the central pool.
	TypeIn TransactionType = "IN"
	// TypeOut is a withdrawal attributed to a sales channel.
	TypeOut TransactionType = "OUT"
	// TypeAllocate moves stock from the unallocated pool into a channel.
	// Total stock in hand is unchanged.
	TypeAllocate TransactionType = "ALLOCATE"
)

// Channel is a sales outlet to which outgoing stock is attributed.
type Channel string

const (
	ChannelKevin  Channel = "KEVIN"
	ChannelJayesh Channel = "JAYESH"
	ChannelRetail Channel = "RETAIL"
)

// ParseTransactionType validates a caller-supplied type string at the boundary.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIn, TypeOut, TypeAllocate:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// ParseChannel validates a caller-supplied channel string at the boundary.
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelKevin, ChannelJayesh, ChannelRetail:
		return Channel(s), nil
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

// Transaction is one immutable entry in the stock ledger. Once committed it is
// never updated or deleted; a mistake is undone by a new compensating entry.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary key (UUID)
	ProductID       string          `json:"productID"`     // FK -> Product.productID (not null)
	Type            TransactionType `json:"type"`
	Quantity        int64           `json:"quantity"` // Always positive
	Channel         Channel         `json:"channel,omitempty"`
	UnitCost        decimal.Decimal `json:"unitCost"` // Meaningful for IN only
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes"`
	Reference       string          `json:"reference"`
	AuditFields
}
