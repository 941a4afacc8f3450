package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	portsrepo "github.com/warestock/warehouse_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
	"github.com/warestock/warehouse_ledger_app/internal/middleware"
)

const defaultTxnPageLimit = 20

// ledgerService is the reconciliation engine: it owns the
// read-validate-commit cycle that keeps product snapshots consistent with the
// append-only ledger.
type ledgerService struct {
	productRepo portsrepo.ProductRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	maxRetries  int
	backoff     time.Duration
}

// NewLedgerService creates the reconciliation engine. maxRetries bounds the
// internal retry loop on snapshot version conflicts; backoff is the base
// delay between attempts (grows linearly per attempt).
func NewLedgerService(productRepo portsrepo.ProductRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, maxRetries int, backoff time.Duration) portssvc.LedgerSvcFacade {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &ledgerService{
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
		maxRetries:  maxRetries,
		backoff:     backoff,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ApplyTransaction implements the contract described in portssvc.LedgerWriterSvc.
//
// Each attempt re-reads the product, validates against the fresh snapshot and
// tries to commit with a compare-and-swap on the snapshot version. A version
// conflict means another writer committed in between; the whole cycle restarts
// so validation always runs against committed state. Validation failures are
// never retried.
func (s *ledgerService) ApplyTransaction(ctx context.Context, req dto.CreateTransactionRequest, actorID string) (*domain.Product, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.Quantity <= 0 {
		return nil, nil, fmt.Errorf("%w: quantity must be a positive integer, got %d", apperrors.ErrValidation, req.Quantity)
	}

	var channel domain.Channel
	if txnType == domain.TypeOut || txnType == domain.TypeAllocate {
		channel, err = domain.ParseChannel(req.Channel)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrMissingChannel, err)
		}
	}

	unitCost := decimal.Zero
	if txnType == domain.TypeIn && req.UnitCost != nil {
		if req.UnitCost.IsNegative() {
			return nil, nil, fmt.Errorf("%w: unit cost must not be negative", apperrors.ErrValidation)
		}
		unitCost = *req.UnitCost
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load product %s: %w", req.ProductID, err)
		}
		if !product.IsActive {
			return nil, nil, fmt.Errorf("%w: product %s", apperrors.ErrInactive, req.ProductID)
		}

		now := time.Now().UTC()
		txnDate := now
		if req.TransactionDate != nil {
			txnDate = req.TransactionDate.UTC()
		}

		txn := domain.Transaction{
			TransactionID:   uuid.NewString(),
			ProductID:       product.ProductID,
			Type:            txnType,
			Quantity:        req.Quantity,
			Channel:         channel,
			UnitCost:        unitCost,
			TransactionDate: txnDate,
			Notes:           req.Notes,
			Reference:       req.Reference,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: actorID,
				UpdatedAt: now,
				UpdatedBy: actorID,
			},
		}

		updated, err := product.ApplyTransaction(txn)
		if err != nil {
			// Validation against committed state; no effect has happened.
			return nil, nil, err
		}
		updated.UpdatedAt = now
		updated.UpdatedBy = actorID

		err = s.ledgerRepo.CommitTransaction(ctx, txn, updated, product.Version)
		if err == nil {
			updated.Version = product.Version + 1
			logger.Info("Transaction applied",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("product_id", product.ProductID),
				slog.String("type", string(txn.Type)),
				slog.Int64("quantity", txn.Quantity),
				slog.Int64("stock_in_hand", updated.StockInHand),
			)
			return &updated, &txn, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			// Storage failure: the commit outcome is inconclusive, the caller
			// must re-query before retrying to avoid a duplicate movement.
			logger.Error("Transaction commit failed",
				slog.String("product_id", product.ProductID),
				slog.String("error", err.Error()))
			return nil, nil, fmt.Errorf("failed to commit transaction for product %s: %w", product.ProductID, err)
		}

		lastErr = err
		logger.Debug("Snapshot version conflict, retrying",
			slog.String("product_id", product.ProductID),
			slog.Int("attempt", attempt))
		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(s.backoff * time.Duration(attempt)):
			}
		}
	}

	logger.Warn("Retry budget exhausted applying transaction",
		slog.String("product_id", req.ProductID),
		slog.Int("attempts", s.maxRetries))
	return nil, nil, fmt.Errorf("retry budget exhausted for product %s: %w", req.ProductID, lastErr)
}

// Replay folds the product's full ledger from the zero state and reports the
// result next to the materialized snapshot.
func (s *ledgerService) Replay(ctx context.Context, productID string) (*dto.ReplayResponse, error) {
	product, history, err := s.replayProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	replayed, err := domain.Replay(*product, history)
	if err != nil {
		return nil, fmt.Errorf("ledger replay for product %s: %w", productID, err)
	}

	return &dto.ReplayResponse{
		ProductID:    productID,
		Materialized: product.StockSnapshot,
		Replayed:     replayed.StockSnapshot,
		Consistent:   product.StockSnapshot == replayed.StockSnapshot,
	}, nil
}

// RepairSnapshot rebuilds the materialized snapshot from a full replay and
// installs it with the same version CAS used by commits, so a concurrent
// writer cannot be overwritten silently.
func (s *ledgerService) RepairSnapshot(ctx context.Context, productID string, actorID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, history, err := s.replayProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	repaired, err := domain.Replay(*product, history)
	if err != nil {
		return nil, fmt.Errorf("ledger replay for product %s: %w", productID, err)
	}

	if repaired.StockSnapshot == product.StockSnapshot {
		logger.Debug("Snapshot already consistent with ledger", slog.String("product_id", productID))
		return product, nil
	}

	now := time.Now().UTC()
	repaired.UpdatedAt = now
	repaired.UpdatedBy = actorID

	if err := s.ledgerRepo.ReplaceSnapshot(ctx, repaired, product.Version); err != nil {
		return nil, fmt.Errorf("failed to install repaired snapshot for product %s: %w", productID, err)
	}
	repaired.Version = product.Version + 1

	logger.Info("Snapshot repaired from ledger replay",
		slog.String("product_id", productID),
		slog.Int64("stock_in_hand", repaired.StockInHand))
	return &repaired, nil
}

// ListTransactions retrieves a filtered page of the ledger.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTxnPageLimit
	}

	filter := portsrepo.TransactionListFilter{ProductID: params.ProductID}
	if params.From != nil {
		filter.From = params.From.UTC()
	}
	if params.To != nil {
		filter.To = params.To.UTC()
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *ledgerService) replayProduct(ctx context.Context, productID string) (*domain.Product, []domain.Transaction, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	history, err := s.ledgerRepo.FindTransactionsByProductID(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger for product %s: %w", productID, err)
	}
	return product, history, nil
}
