package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	portsrepo "github.com/warestock/warehouse_ledger_app/internal/core/ports/repositories"
	"github.com/warestock/warehouse_ledger_app/internal/models"
	"github.com/warestock/warehouse_ledger_app/internal/utils/mapping"
	"github.com/warestock/warehouse_ledger_app/internal/utils/pagination"
)

const transactionColumns = `transaction_id, product_id, type, quantity, channel, unit_cost,
	       transaction_date, notes, reference, created_at, created_by, updated_at, updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the transaction ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ProductID,
		&m.Type,
		&m.Quantity,
		&m.Channel,
		&m.UnitCost,
		&m.TransactionDate,
		&m.Notes,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	return m, err
}

// snapshotUpdateQuery writes the post-transaction snapshot back to the product
// row, guarded by a compare-and-swap on version. Zero rows affected means a
// concurrent writer committed first.
const snapshotUpdateQuery = `
	UPDATE products
	SET stock_in_hand = $3, kevin_quantity = $4, jayesh_quantity = $5, retail_quantity = $6,
	    status = $7, last_purchase_cost = $8, version = version + 1,
	    updated_at = $9, updated_by = $10
	WHERE product_id = $1 AND version = $2;
`

// CommitTransaction appends txn to the ledger and installs the post-transaction
// snapshot atomically. The product row update and the ledger insert share one
// database transaction; a version mismatch aborts both with ErrConflict.
func (r *PgxLedgerRepository) CommitTransaction(ctx context.Context, txn domain.Transaction, product domain.Product, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits successfully.
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelProduct(product)
	cmdTag, err := tx.Exec(ctx, snapshotUpdateQuery,
		m.ProductID,
		expectedVersion,
		m.StockInHand,
		m.KevinQuantity,
		m.JayeshQuantity,
		m.RetailQuantity,
		m.Status,
		m.LastPurchaseCost,
		m.UpdatedAt,
		m.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product snapshot for %s: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s changed since version %d", apperrors.ErrConflict, m.ProductID, expectedVersion)
	}

	modelTxn := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelTxn.TransactionID,
		modelTxn.ProductID,
		modelTxn.Type,
		modelTxn.Quantity,
		modelTxn.Channel,
		modelTxn.UnitCost,
		modelTxn.TransactionDate,
		modelTxn.Notes,
		modelTxn.Reference,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.UpdatedAt,
		modelTxn.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction %s to ledger: %w", modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// ReplaceSnapshot installs a replayed snapshot without touching the ledger.
func (r *PgxLedgerRepository) ReplaceSnapshot(ctx context.Context, product domain.Product, expectedVersion int64) error {
	m := mapping.ToModelProduct(product)
	cmdTag, err := r.Pool.Exec(ctx, snapshotUpdateQuery,
		m.ProductID,
		expectedVersion,
		m.StockInHand,
		m.KevinQuantity,
		m.JayeshQuantity,
		m.RetailQuantity,
		m.Status,
		m.LastPurchaseCost,
		m.UpdatedAt,
		m.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to replace snapshot for product %s: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s changed since version %d", apperrors.ErrConflict, m.ProductID, expectedVersion)
	}
	return nil
}

// FindTransactionByID retrieves a single committed transaction.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionsByProductID retrieves a product's full history in commit order.
// Replay depends on this ordering, so created_at ties break on transaction_id.
func (r *PgxLedgerRepository) FindTransactionsByProductID(ctx context.Context, productID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE product_id = $1
		ORDER BY created_at ASC, transaction_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for product %s: %w", productID, err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for product %s: %w", productID, err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for product %s: %w", productID, err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// ListTransactions retrieves a filtered, paginated list of transactions using
// token-based pagination. It returns the transactions, a token for the next
// page, and an error.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE 1=1
	`
	// Ordering is crucial and must be stable.
	// We use transaction_date DESC, and created_at DESC as a tie-breaker.
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{}
	filterClause := ""
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		filterClause += " AND product_id = $" + strconv.Itoa(len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		filterClause += " AND transaction_date >= $" + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		filterClause += " AND transaction_date <= $" + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		// Decode the token to get the cursor values
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		args = append(args, lastDate, lastCreatedAt)
		filterClause += " AND (transaction_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	query := baseQuery + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	// Determine the next token from the extra row, if present.
	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) == fetchLimit {
		results = modelTxns[:limit]
		last := results[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}
