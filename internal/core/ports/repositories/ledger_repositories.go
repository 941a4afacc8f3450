package repositories

import (
	"context"
	"time"

	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
)

// TransactionListFilter narrows ListTransactions results. Zero values mean
// "no predicate"; From/To bound the transaction date inclusively.
type TransactionListFilter struct {
	ProductID string
	From      time.Time
	To        time.Time
}

// LedgerReader defines read operations over the append-only transaction ledger.
type LedgerReader interface {
	// FindTransactionByID retrieves a single committed transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByProductID retrieves a product's full history in commit
	// order, as consumed by replay.
	FindTransactionsByProductID(ctx context.Context, productID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a filtered, token-paginated list ordered by
	// transaction date then insertion order.
	ListTransactions(ctx context.Context, filter TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriter defines the commit operations of the reconciliation cycle.
// Both methods guard the product row with a compare-and-swap on its version:
// they return apperrors.ErrConflict when another writer got there first, and
// commit the ledger append together with the snapshot write or not at all.
type LedgerWriter interface {
	// CommitTransaction appends txn to the ledger and installs the
	// post-transaction product snapshot in one database transaction.
	// expectedVersion is the product version the snapshot was computed from.
	CommitTransaction(ctx context.Context, txn domain.Transaction, product domain.Product, expectedVersion int64) error

	// ReplaceSnapshot installs a replayed snapshot without appending to the
	// ledger. Used by snapshot repair only.
	ReplaceSnapshot(ctx context.Context, product domain.Product, expectedVersion int64) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
