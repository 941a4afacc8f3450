package services

import (
	"context"

	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
)

// LedgerWriterSvc is the reconciliation engine's public contract.
type LedgerWriterSvc interface {
	// ApplyTransaction validates and applies a stock transaction against its
	// product, committing the ledger append and the snapshot update
	// atomically. Returns the post-transaction product and the committed
	// transaction.
	ApplyTransaction(ctx context.Context, req dto.CreateTransactionRequest, actorID string) (*domain.Product, *domain.Transaction, error)

	// RepairSnapshot rebuilds a product's materialized snapshot from a full
	// ledger replay and installs it. Used when the snapshot is suspected stale.
	RepairSnapshot(ctx context.Context, productID string, actorID string) (*domain.Product, error)
}

// LedgerReaderSvc defines read operations over the ledger.
type LedgerReaderSvc interface {
	// ListTransactions retrieves a filtered, paginated transaction history.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// Replay folds a product's full history from the zero state and returns
	// the resulting snapshot alongside the materialized one.
	Replay(ctx context.Context, productID string) (*dto.ReplayResponse, error)
}

// LedgerSvcFacade combines the reconciliation engine and ledger read interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
