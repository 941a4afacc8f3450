package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
)

// CreateTransactionRequest is the inbound payload for applying a stock
// transaction. Channel is required for OUT and ALLOCATE; UnitCost is
// meaningful for IN only.
type CreateTransactionRequest struct {
	ProductID       string           `json:"productID" binding:"required,uuid"`
	Type            string           `json:"type" binding:"required,transactiontype"`
	Quantity        int64            `json:"quantity" binding:"required,gt=0"`
	Channel         string           `json:"channel" binding:"omitempty,stockchannel"`
	UnitCost        *decimal.Decimal `json:"unitCost"`
	TransactionDate *time.Time       `json:"transactionDate"`
	Notes           string           `json:"notes"`
	Reference       string           `json:"reference"`
}

// ListTransactionsParams narrows and paginates transaction listings.
type ListTransactionsParams struct {
	ProductID string     `form:"productID" binding:"omitempty,uuid"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// TransactionResponse is the outbound representation of a committed transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	ProductID       string          `json:"productID"`
	Type            string          `json:"type"`
	Quantity        int64           `json:"quantity"`
	Channel         string          `json:"channel,omitempty"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ApplyTransactionResponse pairs the committed transaction with the
// post-transaction product snapshot.
type ApplyTransactionResponse struct {
	Product     ProductResponse     `json:"product"`
	Transaction TransactionResponse `json:"transaction"`
}

// ListTransactionsResponse is a page of transactions plus the next page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ReplayResponse reports a ledger replay next to the materialized snapshot.
// Consistent is false when the two disagree, which is the signal to repair.
type ReplayResponse struct {
	ProductID    string               `json:"productID"`
	Materialized domain.StockSnapshot `json:"materialized"`
	Replayed     domain.StockSnapshot `json:"replayed"`
	Consistent   bool                 `json:"consistent"`
}

// ToTransactionResponse converts a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		ProductID:       t.ProductID,
		Type:            string(t.Type),
		Quantity:        t.Quantity,
		Channel:         string(t.Channel),
		UnitCost:        t.UnitCost,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
		Reference:       t.Reference,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
