package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
)

// StockSnapshot is the derived stock state of a product. It is a materialized
// fold over the product's transactions in commit order and must always be
// reproducible by replaying the ledger from the zero state.
//
// IN transactions are unattributed, so the channel quantities partition only
// the allocated share of stock: each quantity is >= 0 and their sum never
// exceeds StockInHand. The remainder is the unallocated pool, drawn down by
// ALLOCATE transactions.
type StockSnapshot struct {
	StockInHand    int64 `json:"stockInHand"`
	RestockLevel   int64 `json:"restockLevel"`
	KevinQuantity  int64 `json:"kevinQuantity"`
	JayeshQuantity int64 `json:"jayeshQuantity"`
	RetailQuantity int64 `json:"retailQuantity"`
}

// ChannelQuantity returns the current balance attributed to a channel.
func (s StockSnapshot) ChannelQuantity(ch Channel) int64 {
	switch ch {
	case ChannelKevin:
		return s.KevinQuantity
	case ChannelJayesh:
		return s.JayeshQuantity
	case ChannelRetail:
		return s.RetailQuantity
	}
	return 0
}

// Unallocated returns the share of stock in hand not yet attributed to any channel.
func (s StockSnapshot) Unallocated() int64 {
	return s.StockInHand - s.KevinQuantity - s.JayeshQuantity - s.RetailQuantity
}

func (s *StockSnapshot) addToChannel(ch Channel, delta int64) {
	switch ch {
	case ChannelKevin:
		s.KevinQuantity += delta
	case ChannelJayesh:
		s.JayeshQuantity += delta
	case ChannelRetail:
		s.RetailQuantity += delta
	}
}

// ApplyTransaction validates txn against the product's current snapshot and
// returns the product as it would be after committing it. The receiver is not
// modified; validation failures leave no partial effect by construction.
//
// Validation order and error kinds:
//  1. quantity must be positive -> ErrValidation
//  2. OUT/ALLOCATE require a valid channel -> ErrMissingChannel
//  3. resulting quantities must stay non-negative -> ErrInsufficientStock
func (p Product) ApplyTransaction(txn Transaction) (Product, error) {
	if txn.Quantity <= 0 {
		return Product{}, fmt.Errorf("%w: quantity must be a positive integer, got %d", apperrors.ErrValidation, txn.Quantity)
	}
	if txn.UnitCost.IsNegative() {
		return Product{}, fmt.Errorf("%w: unit cost must not be negative", apperrors.ErrValidation)
	}

	switch txn.Type {
	case TypeIn:
		p.StockInHand += txn.Quantity
		if txn.UnitCost.IsPositive() {
			p.LastPurchaseCost = txn.UnitCost
		}

	case TypeOut:
		if _, err := ParseChannel(string(txn.Channel)); err != nil {
			return Product{}, fmt.Errorf("%w: %v", apperrors.ErrMissingChannel, err)
		}
		if p.ChannelQuantity(txn.Channel) < txn.Quantity {
			return Product{}, fmt.Errorf("%w: channel %s holds %d, requested %d",
				apperrors.ErrInsufficientStock, txn.Channel, p.ChannelQuantity(txn.Channel), txn.Quantity)
		}
		if p.StockInHand < txn.Quantity {
			return Product{}, fmt.Errorf("%w: stock in hand is %d, requested %d",
				apperrors.ErrInsufficientStock, p.StockInHand, txn.Quantity)
		}
		p.StockInHand -= txn.Quantity
		p.addToChannel(txn.Channel, -txn.Quantity)

	case TypeAllocate:
		if _, err := ParseChannel(string(txn.Channel)); err != nil {
			return Product{}, fmt.Errorf("%w: %v", apperrors.ErrMissingChannel, err)
		}
		if p.Unallocated() < txn.Quantity {
			return Product{}, fmt.Errorf("%w: unallocated pool holds %d, requested %d",
				apperrors.ErrInsufficientStock, p.Unallocated(), txn.Quantity)
		}
		p.addToChannel(txn.Channel, txn.Quantity)

	default:
		return Product{}, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txn.Type)
	}

	p.Status = deriveStatus(p.Status, p.StockInHand)
	return p, nil
}

// deriveStatus flips the status across the zero-stock boundary. DISCONTINUED
// is caller-set and never auto-changed in either direction.
func deriveStatus(current ProductStatus, stockInHand int64) ProductStatus {
	if current == StatusDiscontinued {
		return current
	}
	if stockInHand == 0 {
		return StatusOutOfStock
	}
	return StatusActive
}

// Replay folds the product's full transaction history, in commit order, over
// the zero stock state. The result is the authoritative snapshot; a
// materialized snapshot that disagrees with it is stale.
func Replay(p Product, history []Transaction) (Product, error) {
	p.StockSnapshot = StockSnapshot{RestockLevel: p.RestockLevel}
	p.LastPurchaseCost = decimal.Zero
	if p.Status != StatusDiscontinued {
		p.Status = StatusOutOfStock
	}
	for _, txn := range history {
		next, err := p.ApplyTransaction(txn)
		if err != nil {
			return Product{}, fmt.Errorf("replay of transaction %s failed: %w", txn.TransactionID, err)
		}
		p = next
	}
	return p, nil
}
